package printjob

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
)

// Physical media geometry of the print head. The head is 384 dots at
// roughly 203 dpi, i.e. 48 mm of printable width.
const (
	mediaWidthMM = 48.0
	dotsPerInch  = 203.0
	mmPerInch    = 25.4
)

// mediaHeightMM derives the physical job height from the row count.
func mediaHeightMM(rows int) float64 {
	return float64(rows) / dotsPerInch * mmPerInch
}

// SpoolRaw hands an already-encoded command stream to the OS print
// spooler as a raw job on the named queue, for printers attached over
// USB or the network instead of BLE. The media size option carries the
// computed height so the spooler does not truncate the job.
func SpoolRaw(queue string, stream []byte, rows int) error {
	media := fmt.Sprintf("Custom.%dx%dmm", int(mediaWidthMM), int(mediaHeightMM(rows))+1)
	cmd := exec.Command("lp", "-d", queue, "-o", "raw", "-o", "media="+media, "-s", "-")
	cmd.Stdin = bytes.NewReader(stream)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("spool to %s: %w: %s", queue, err, bytes.TrimSpace(out))
	}
	slog.Info("job spooled", "queue", queue, "bytes", len(stream), "media", media)
	return nil
}
