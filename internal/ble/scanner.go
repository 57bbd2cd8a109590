package ble

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ScanWindow is how long a discovery scan listens before reporting.
const ScanWindow = 10 * time.Second

// Device is one discovered peripheral. Values are ephemeral scan
// results: they are only valid for a connect attempt on the same
// backend that produced them and are never persisted.
type Device struct {
	Name string // advertised display name; may be empty
	ID   string // platform identifier (address or UUID string)
}

// Scanner performs time-boxed discovery scans on one backend.
type Scanner struct {
	backend Backend

	// Window is how long one Scan listens. Defaults to ScanWindow.
	Window time.Duration
}

// NewScanner creates a Scanner with the default scan window.
func NewScanner(backend Backend) *Scanner {
	return &Scanner{backend: backend, Window: ScanWindow}
}

// Scan listens to discovery events for the scan window and returns every
// device advertising serviceUUID or, when given, fallbackUUID. The
// fallback exists because the same printer advertises a different service
// identifier depending on host platform. Results are deduplicated by
// device identifier; a scan that finds nothing returns an empty list.
// The underlying scan is stopped regardless of outcome.
func (s *Scanner) Scan(ctx context.Context, serviceUUID, fallbackUUID string) ([]Device, error) {
	var (
		mu      sync.Mutex
		seen    = make(map[string]bool)
		devices []Device
	)

	scanErr := make(chan error, 1)
	go func() {
		scanErr <- s.backend.Scan(func(adv Advertisement) {
			mu.Lock()
			defer mu.Unlock()
			if seen[adv.ID()] {
				return
			}
			seen[adv.ID()] = true
			if !adv.AdvertisesService(serviceUUID) &&
				(fallbackUUID == "" || !adv.AdvertisesService(fallbackUUID)) {
				return
			}
			slog.Debug("printer candidate", "id", adv.ID(), "name", adv.Name())
			devices = append(devices, Device{Name: adv.Name(), ID: adv.ID()})
		})
	}()

	timer := time.NewTimer(s.Window)
	defer timer.Stop()

	var err error
	select {
	case <-timer.C:
	case <-ctx.Done():
		err = ctx.Err()
	case serr := <-scanErr:
		if serr != nil {
			err = &Error{Kind: ErrScan, Msg: "scan failed", Err: serr}
		}
	}

	if serr := s.backend.StopScan(); serr != nil {
		slog.Warn("stop scan", "err", serr)
	}

	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		return nil, err
	}
	slog.Info("scan finished", "found", len(devices))
	return devices, nil
}
