package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/neriko/catprint/internal/ble"
	"github.com/neriko/catprint/internal/config"
	"github.com/neriko/catprint/internal/gbproto"
	"github.com/neriko/catprint/internal/printjob"
)

func main() {
	logLevel := parseLogLevel(envStr("CATPRINT_LOG_LEVEL", "info"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	store, err := openStore()
	if err != nil {
		slog.Error("failed to open settings", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "scan":
		err = runScan(ctx)
	case "queues":
		err = runQueues(ctx)
	case "print":
		err = runPrint(ctx, store, os.Args[2:])
	case "watch":
		err = runWatch(ctx, store)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error(os.Args[1]+" failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: catprint <command> [options]

commands:
  scan             list nearby printers
  queues           list network print queues (mDNS)
  print <image>    print a PNG or JPEG file
  watch            hold a connection open with periodic keep-alive

print options:
  -device <id|name>   target printer (default: saved setting)
  -transport <mode>   "ble" or "spooler" (default: saved setting)
  -queue <name>       spooler queue for -transport spooler
  -energy <n>         heating energy, 0 = firmware default
  -quality <n>        quality preset, 0 = firmware default
  -rotate             rotate output 180 degrees
  -feed <n>           paper advance steps after the job
  -pdf <path>         write a PDF preview instead of printing
  -save               persist the given options as defaults

environment:
  CATPRINT_LOG_LEVEL  debug, info, warn, error (default info)
  CATPRINT_DATA_DIR   settings directory`)
}

func openStore() (*config.Store, error) {
	dataDir := os.Getenv("CATPRINT_DATA_DIR")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return config.NewMemoryStore(), nil
		}
		dataDir = filepath.Join(base, "catprint")
	}
	return config.NewStore(dataDir)
}

func runScan(ctx context.Context) error {
	conn, err := ble.New()
	if err != nil {
		return err
	}
	printer := printjob.NewPrinter(conn, gbproto.GB())

	slog.Info("scanning", "window", ble.ScanWindow)
	devices, err := printer.Discover(ctx)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("no printers found")
		return nil
	}
	for _, d := range devices {
		name := d.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("%s\t%s\n", d.ID, name)
	}
	return nil
}

func runQueues(ctx context.Context) error {
	queues, err := printjob.DiscoverQueues(ctx, 5*time.Second)
	if err != nil {
		return err
	}
	if len(queues) == 0 {
		fmt.Println("no print queues found")
		return nil
	}
	for _, q := range queues {
		fmt.Printf("%s\t%s:%d\t%s\n", q.Name, q.Host, q.Port, q.Service)
	}
	return nil
}

func runPrint(ctx context.Context, store *config.Store, args []string) error {
	settings := store.Get()

	fs := flag.NewFlagSet("print", flag.ExitOnError)
	device := fs.String("device", settings.Device, "target printer id or name")
	transport := fs.String("transport", settings.Transport, "ble or spooler")
	queue := fs.String("queue", settings.SpoolerQueue, "spooler queue name")
	energy := fs.Uint("energy", uint(settings.Energy), "heating energy")
	quality := fs.Uint("quality", uint(settings.Quality), "quality preset")
	rotate := fs.Bool("rotate", settings.Rotate, "rotate output 180 degrees")
	feed := fs.Uint("feed", 0, "paper advance steps after the job")
	pdfOut := fs.String("pdf", "", "write a PDF preview to this path instead of printing")
	save := fs.Bool("save", false, "persist these options as defaults")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("print needs exactly one image file")
	}

	bmp, err := printjob.LoadImage(fs.Arg(0))
	if err != nil {
		return err
	}
	opts := printjob.Options{
		Energy:    uint16(*energy),
		Quality:   byte(*quality),
		FeedSteps: uint16(*feed),
		Rotate:    *rotate,
	}

	if *save {
		settings.Device = *device
		settings.Transport = *transport
		settings.SpoolerQueue = *queue
		settings.Energy = uint16(*energy)
		settings.Quality = byte(*quality)
		settings.Rotate = *rotate
		if err := store.Update(settings); err != nil {
			slog.Warn("failed to save settings", "err", err)
		}
	}

	if *pdfOut != "" {
		if err := printjob.WritePDF(bmp, opts, *pdfOut); err != nil {
			return err
		}
		slog.Info("preview written", "path", *pdfOut, "rows", bmp.Rows())
		return nil
	}

	switch *transport {
	case "spooler":
		if *queue == "" {
			return fmt.Errorf("spooler transport needs -queue")
		}
		rows := bmp.Rows()
		stream := printjob.Stream(gbproto.GB(), bmp, opts)
		return printjob.SpoolRaw(*queue, stream, rows)
	case "ble", "":
		if *device == "" {
			return fmt.Errorf("no target printer; pass -device or run catprint scan")
		}
		conn, err := ble.New()
		if err != nil {
			return err
		}
		printer := printjob.NewPrinter(conn, gbproto.GB())
		return printer.Print(ctx, *device, bmp, opts)
	default:
		return fmt.Errorf("unknown transport %q", *transport)
	}
}

// runWatch keeps a connection to the configured printer warm. Every
// interval the link is refreshed at Level 1 (drop and redial on the
// same adapter); a reconnect failure with a fatal signature escalates
// to Level 2, discarding the adapter and acquiring a fresh one.
func runWatch(ctx context.Context, store *config.Store) error {
	settings := store.Get()
	if settings.Device == "" {
		return fmt.Errorf("no target printer configured; run catprint print -device ... -save first")
	}

	keepAlive := ble.NewKeepAlive(true, time.Duration(settings.KeepAliveInterval)*time.Second)

	conn, err := ble.New()
	if err != nil {
		return err
	}
	printer := printjob.NewPrinter(conn, gbproto.GB())
	if err := printer.Connect(ctx, settings.Device); err != nil {
		return err
	}
	slog.Info("watching", "device", settings.Device, "interval", keepAlive.Interval())

	ticker := time.NewTicker(keepAlive.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutting down...")
			return printer.Disconnect()
		case <-ticker.C:
			if err := keepAlive.RefreshLevel1(conn); err != nil {
				slog.Warn("keep-alive disconnect failed", "err", err)
			}
			err := printer.Connect(ctx, settings.Device)
			if err == nil {
				slog.Debug("link refreshed")
				continue
			}
			slog.Warn("reconnect failed", "err", err)
			if !keepAlive.ShouldForceReset(err) {
				continue
			}

			slog.Info("fatal link error, resetting adapter")
			fresh, resetErr := keepAlive.ResetLevel2(conn)
			if resetErr != nil {
				return resetErr
			}
			conn = fresh
			printer = printjob.NewPrinter(conn, gbproto.GB())
			if err := printer.Connect(ctx, settings.Device); err != nil {
				slog.Warn("reconnect after adapter reset failed", "err", err)
			}
		}
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
