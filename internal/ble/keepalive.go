package ble

import (
	"strings"
	"time"
)

const (
	// MinKeepAliveInterval is the floor for refresh intervals; shorter
	// values are silently clamped, never rejected.
	MinKeepAliveInterval = 10 * time.Second

	level1Pause = 500 * time.Millisecond
	level2Pause = 2 * time.Second
)

// fatalSignatures are known platform failure messages after which a
// cheap reconnect no longer helps and the adapter must be reacquired.
// The underlying stacks do not expose structured error codes uniformly,
// so matching is by case-insensitive substring.
var fatalSignatures = []string{
	"already exists",
	"connection canceled",
	"can't dial",
	"broken pipe",
	"bluetooth",
}

// KeepAlive periodically refreshes a connection so the link does not go
// stale between prints. It is an explicit value owned by the
// orchestration layer, not process-wide state.
type KeepAlive struct {
	enabled  bool
	interval time.Duration

	newConn func() (*Conn, error) // adapter acquisition for Level 2
}

// NewKeepAlive builds a manager with the interval clamped to the floor.
func NewKeepAlive(enabled bool, interval time.Duration) *KeepAlive {
	return &KeepAlive{
		enabled:  enabled,
		interval: clampInterval(interval),
		newConn:  New,
	}
}

func clampInterval(d time.Duration) time.Duration {
	if d < MinKeepAliveInterval {
		return MinKeepAliveInterval
	}
	return d
}

func (k *KeepAlive) Enabled() bool           { return k.enabled }
func (k *KeepAlive) Interval() time.Duration { return k.interval }

func (k *KeepAlive) SetEnabled(enabled bool) { k.enabled = enabled }

// SetInterval updates the refresh interval, applying the same clamp as
// construction.
func (k *KeepAlive) SetInterval(d time.Duration) {
	k.interval = clampInterval(d)
}

// RefreshLevel1 drops the peripheral link and pauses, keeping the
// adapter handle alive. It does not reconnect: only the caller knows the
// previously targeted device and characteristic, and re-establishes the
// connection on the same Conn.
func (k *KeepAlive) RefreshLevel1(conn *Conn) error {
	if err := conn.Disconnect(); err != nil {
		return err
	}
	time.Sleep(level1Pause)
	return nil
}

// ResetLevel2 discards conn entirely and acquires a brand-new adapter
// handle. Used only after a Level-1 reconnect attempt fails with a fatal
// error.
func (k *KeepAlive) ResetLevel2(conn *Conn) (*Conn, error) {
	if conn != nil {
		_ = conn.Disconnect()
	}
	time.Sleep(level2Pause)
	fresh, err := k.newConn()
	if err != nil {
		return nil, &Error{Kind: ErrKeepAlive, Msg: "adapter reset", Err: err}
	}
	return fresh, nil
}

// ShouldForceReset reports whether err carries a known fatal failure
// signature, forcing escalation from Level 1 to Level 2.
func (k *KeepAlive) ShouldForceReset(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range fatalSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
