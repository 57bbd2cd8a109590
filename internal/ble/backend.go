package ble

import "errors"

// Backend abstracts the host wireless stack so the transport can run
// against a fake in tests. The real implementation lives in adapter.go;
// one Backend owns one adapter handle.
type Backend interface {
	// Enable powers up the adapter. It fails when the host has none.
	Enable() error
	// Scan streams advertisements to fn until StopScan is called. It
	// blocks for the duration of the scan.
	Scan(fn func(Advertisement)) error
	StopScan() error
	// Connect dials a peripheral previously seen in a Scan, identified
	// by its platform identifier string.
	Connect(id string) (Peripheral, error)
}

// Advertisement is a single discovery event.
type Advertisement interface {
	// ID is the platform identifier: a MAC address on most hosts, an
	// opaque UUID string on others.
	ID() string
	// Name is the advertised display name; may be empty.
	Name() string
	// AdvertisesService reports whether the advertisement carries the
	// given service UUID.
	AdvertisesService(uuid string) bool
}

// Peripheral is a connected remote device.
type Peripheral interface {
	// ResolveCharacteristic enumerates services and characteristics and
	// returns the one matching charUUID, or errNoCharacteristic.
	ResolveCharacteristic(charUUID string) (Characteristic, error)
	Disconnect() error
}

// Characteristic is a writable endpoint on a connected peripheral.
type Characteristic interface {
	WriteWithoutResponse(data []byte) (int, error)
}

var errNoCharacteristic = errors.New("characteristic not found")
