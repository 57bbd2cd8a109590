package printjob

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/neriko/catprint/internal/ble"
	"github.com/neriko/catprint/internal/gbproto"
)

// Options selects per-job tunables.
type Options struct {
	Energy    uint16 // heating energy; 0 = protocol default
	Quality   byte   // quality preset; 0 = protocol default
	FeedSteps uint16 // paper advance after the last row; 0 = protocol default
	Rotate    bool   // rotate the bitmap 180 degrees before encoding
}

func (o Options) feedSteps() uint16 {
	if o.FeedSteps == 0 {
		return gbproto.DefaultFeedSteps
	}
	return o.FeedSteps
}

// Stream assembles the complete command stream for one job: init
// sequence, one row command per bitmap row, a paper feed, and the
// finish sequence. The result is what goes over the wire, regardless
// of transport.
func Stream(proto gbproto.Protocol, bmp Bitmap, opts Options) []byte {
	if opts.Rotate {
		bmp = bmp.Rotate180()
	}

	var stream []byte
	for _, cmd := range proto.InitSequence(gbproto.JobOptions{Energy: opts.Energy, Quality: opts.Quality}) {
		stream = append(stream, cmd...)
	}
	for y := 0; y < bmp.Rows(); y++ {
		stream = append(stream, proto.EncodeRow(bmp.Row(y), bmp.Width)...)
	}
	stream = append(stream, proto.FeedCommand(opts.feedSteps())...)
	for _, cmd := range proto.FinishSequence() {
		stream = append(stream, cmd...)
	}
	return stream
}

// Printer drives one protocol family over one wireless connection.
type Printer struct {
	proto gbproto.Protocol
	conn  *ble.Conn

	// ScanWindow overrides the discovery window when non-zero.
	ScanWindow time.Duration
}

// NewPrinter wraps conn for printing with proto.
func NewPrinter(conn *ble.Conn, proto gbproto.Protocol) *Printer {
	return &Printer{proto: proto, conn: conn}
}

// Conn exposes the underlying connection, for keep-alive management.
func (p *Printer) Conn() *ble.Conn { return p.conn }

// Discover scans for printers of this protocol family.
func (p *Printer) Discover(ctx context.Context) ([]ble.Device, error) {
	scanner := ble.NewScanner(p.conn.Backend())
	if p.ScanWindow > 0 {
		scanner.Window = p.ScanWindow
	}
	return scanner.Scan(ctx, p.proto.ServiceUUID(), p.proto.FallbackServiceUUID())
}

// Connect scans for the target device and dials it. Target resolution
// follows Match: exact id, normalized id, then exact name.
func (p *Printer) Connect(ctx context.Context, target string) error {
	devices, err := p.Discover(ctx)
	if err != nil {
		return err
	}
	device, ok := Match(devices, target)
	if !ok {
		return &ble.Error{Kind: ble.ErrDeviceNotFound, Msg: fmt.Sprintf("no printer matching %q among %d scan results", target, len(devices))}
	}
	return p.conn.Connect(device, p.proto.TXCharUUID())
}

// Disconnect drops the wireless link.
func (p *Printer) Disconnect() error { return p.conn.Disconnect() }

// Print runs the full wireless job: scan, match, connect, send the
// command stream, disconnect. A disconnect failure after a successful
// send is reported together with any send failure rather than being
// dropped, since it leaves the adapter's true state ambiguous.
func (p *Printer) Print(ctx context.Context, target string, bmp Bitmap, opts Options) error {
	if err := p.Connect(ctx, target); err != nil {
		return err
	}

	stream := Stream(p.proto, bmp, opts)
	slog.Info("sending print job", "rows", bmp.Rows(), "bytes", len(stream))

	var result *multierror.Error
	if err := p.conn.Write(stream); err != nil {
		result = multierror.Append(result, fmt.Errorf("send: %w", err))
	}
	if err := p.conn.Disconnect(); err != nil {
		result = multierror.Append(result, fmt.Errorf("disconnect: %w", err))
	}
	return result.ErrorOrNil()
}
