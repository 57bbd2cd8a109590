package ble

import (
	"fmt"
	"log/slog"
	"sync"

	"tinygo.org/x/bluetooth"
)

// tinygoBackend implements Backend on tinygo.org/x/bluetooth. Addresses
// seen during scans are cached so Connect can resolve an identifier
// string back to a platform address.
type tinygoBackend struct {
	adapter *bluetooth.Adapter

	mu   sync.Mutex
	seen map[string]bluetooth.Address
}

// DefaultBackend returns a Backend on the host's default adapter.
func DefaultBackend() Backend {
	return &tinygoBackend{
		adapter: bluetooth.DefaultAdapter,
		seen:    make(map[string]bluetooth.Address),
	}
}

func (b *tinygoBackend) Enable() error {
	return b.adapter.Enable()
}

func (b *tinygoBackend) Scan(fn func(Advertisement)) error {
	return b.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		b.mu.Lock()
		b.seen[result.Address.String()] = result.Address
		b.mu.Unlock()
		fn(tinygoAdvertisement{result})
	})
}

func (b *tinygoBackend) StopScan() error {
	return b.adapter.StopScan()
}

func (b *tinygoBackend) Connect(id string) (Peripheral, error) {
	b.mu.Lock()
	addr, ok := b.seen[id]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("device %q not seen in a scan", id)
	}
	device, err := b.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, err
	}
	return &tinygoPeripheral{device: device}, nil
}

type tinygoAdvertisement struct {
	result bluetooth.ScanResult
}

func (a tinygoAdvertisement) ID() string   { return a.result.Address.String() }
func (a tinygoAdvertisement) Name() string { return a.result.LocalName() }

func (a tinygoAdvertisement) AdvertisesService(uuid string) bool {
	u, err := bluetooth.ParseUUID(uuid)
	if err != nil {
		return false
	}
	return a.result.HasServiceUUID(u)
}

type tinygoPeripheral struct {
	device bluetooth.Device
}

func (p *tinygoPeripheral) ResolveCharacteristic(charUUID string) (Characteristic, error) {
	target, err := bluetooth.ParseUUID(charUUID)
	if err != nil {
		return nil, fmt.Errorf("parse characteristic uuid: %w", err)
	}
	services, err := p.device.DiscoverServices(nil)
	if err != nil {
		return nil, fmt.Errorf("discover services: %w", err)
	}
	for _, svc := range services {
		chars, err := svc.DiscoverCharacteristics([]bluetooth.UUID{target})
		if err != nil {
			// Service without the characteristic; keep looking.
			slog.Debug("no match in service", "service", svc.UUID().String())
			continue
		}
		for _, c := range chars {
			if c.UUID() == target {
				return tinygoCharacteristic{c}, nil
			}
		}
	}
	return nil, errNoCharacteristic
}

func (p *tinygoPeripheral) Disconnect() error {
	return p.device.Disconnect()
}

type tinygoCharacteristic struct {
	char bluetooth.DeviceCharacteristic
}

func (c tinygoCharacteristic) WriteWithoutResponse(data []byte) (int, error) {
	return c.char.WriteWithoutResponse(data)
}
