package ble

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// The negotiated MTU is not queryable through every backend, so chunk
// sizing assumes a conservative fixed value instead of negotiating.
const (
	assumedMTU = 185
	attHeader  = 3
	// ChunkSize is the largest single write assumed to fit the link.
	ChunkSize = assumedMTU - attHeader

	// chunkDelay paces consecutive writes. The protocol has no delivery
	// acknowledgement, so this pause is the only protection against
	// overrunning the device's receive buffer.
	chunkDelay = 20 * time.Millisecond
)

// Conn owns one adapter handle and at most one connected peripheral with
// its resolved write characteristic. A Conn is for exclusive use by one
// in-flight print at a time; serializing jobs is the caller's concern.
type Conn struct {
	backend    Backend
	peripheral Peripheral
	char       Characteristic
	chunkSize  int
}

// New acquires the host's default wireless adapter. This is the only
// place an adapter handle is created outside a Level-2 reset.
func New() (*Conn, error) {
	return NewWithBackend(DefaultBackend())
}

// NewWithBackend acquires the adapter behind the given backend.
func NewWithBackend(backend Backend) (*Conn, error) {
	if err := backend.Enable(); err != nil {
		return nil, &Error{Kind: ErrConnection, Msg: "no usable adapter", Err: err}
	}
	return &Conn{backend: backend, chunkSize: ChunkSize}, nil
}

// Backend returns the adapter handle, for scanning on the same adapter.
func (c *Conn) Backend() Backend { return c.backend }

// Connect dials device and resolves the write characteristic matching
// txUUID. A missing characteristic is reported distinctly from a failed
// connection.
func (c *Conn) Connect(device Device, txUUID string) error {
	peripheral, err := c.backend.Connect(device.ID)
	if err != nil {
		return &Error{Kind: ErrConnection, Msg: fmt.Sprintf("connect %s", device.ID), Err: err}
	}
	char, err := peripheral.ResolveCharacteristic(txUUID)
	if err != nil {
		_ = peripheral.Disconnect()
		if errors.Is(err, errNoCharacteristic) {
			return &Error{Kind: ErrMissingCharacteristic, Msg: fmt.Sprintf("characteristic %s", txUUID)}
		}
		return &Error{Kind: ErrConnection, Msg: "resolve characteristic", Err: err}
	}
	c.peripheral = peripheral
	c.char = char
	slog.Info("connected", "device", device.ID, "chunk_size", c.chunkSize)
	return nil
}

// Disconnect tears down the peripheral link and clears cached state.
// Calling it with nothing connected is a no-op.
func (c *Conn) Disconnect() error {
	if c.peripheral == nil {
		return nil
	}
	err := c.peripheral.Disconnect()
	c.peripheral = nil
	c.char = nil
	if err != nil {
		return &Error{Kind: ErrConnection, Msg: "disconnect", Err: err}
	}
	slog.Debug("disconnected")
	return nil
}

// IsConnected reports whether a peripheral is currently attached.
func (c *Conn) IsConnected() bool { return c.peripheral != nil }

// Write sends data in chunk-size pieces, strictly in order, pausing
// after every chunk. There is no per-chunk acknowledgement; on failure
// the error names the failed chunk so the caller can judge how much of
// the job reached the printer.
func (c *Conn) Write(data []byte) error {
	if c.char == nil {
		return &Error{Kind: ErrNotConnected, Msg: "write without connection"}
	}
	total := (len(data) + c.chunkSize - 1) / c.chunkSize
	for i := 0; i < total; i++ {
		start := i * c.chunkSize
		end := start + c.chunkSize
		if end > len(data) {
			end = len(data)
		}
		if _, err := c.char.WriteWithoutResponse(data[start:end]); err != nil {
			return &Error{Kind: ErrWrite, Msg: "chunked write", Chunk: i + 1, Total: total, Err: err}
		}
		time.Sleep(chunkDelay)
	}
	slog.Debug("write complete", "bytes", len(data), "chunks", total)
	return nil
}
