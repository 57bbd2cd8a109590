package ble

import "sync"

// Fake backend used across the package tests. It emits a scripted set of
// advertisements and records connects, writes, and disconnects.

type fakeAdvertisement struct {
	id       string
	name     string
	services []string
}

func (a fakeAdvertisement) ID() string   { return a.id }
func (a fakeAdvertisement) Name() string { return a.name }

func (a fakeAdvertisement) AdvertisesService(uuid string) bool {
	for _, s := range a.services {
		if s == uuid {
			return true
		}
	}
	return false
}

type fakeBackend struct {
	enableErr  error
	scanErr    error
	connectErr error

	advs        []fakeAdvertisement
	peripherals map[string]*fakePeripheral

	mu       sync.Mutex
	stopped  chan struct{}
	stopOnce sync.Once
	connects []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		peripherals: make(map[string]*fakePeripheral),
		stopped:     make(chan struct{}),
	}
}

func (b *fakeBackend) Enable() error { return b.enableErr }

func (b *fakeBackend) Scan(fn func(Advertisement)) error {
	if b.scanErr != nil {
		return b.scanErr
	}
	for _, adv := range b.advs {
		fn(adv)
	}
	<-b.stopped
	return nil
}

func (b *fakeBackend) StopScan() error {
	b.stopOnce.Do(func() { close(b.stopped) })
	return nil
}

func (b *fakeBackend) Connect(id string) (Peripheral, error) {
	b.mu.Lock()
	b.connects = append(b.connects, id)
	b.mu.Unlock()
	if b.connectErr != nil {
		return nil, b.connectErr
	}
	p, ok := b.peripherals[id]
	if !ok {
		p = newFakePeripheral()
		b.peripherals[id] = p
	}
	return p, nil
}

type fakePeripheral struct {
	chars         map[string]*fakeCharacteristic
	disconnectErr error
	disconnects   int
}

func newFakePeripheral() *fakePeripheral {
	return &fakePeripheral{chars: make(map[string]*fakeCharacteristic)}
}

func (p *fakePeripheral) withChar(uuid string) *fakeCharacteristic {
	c := &fakeCharacteristic{}
	p.chars[uuid] = c
	return c
}

func (p *fakePeripheral) ResolveCharacteristic(charUUID string) (Characteristic, error) {
	c, ok := p.chars[charUUID]
	if !ok {
		return nil, errNoCharacteristic
	}
	return c, nil
}

func (p *fakePeripheral) Disconnect() error {
	p.disconnects++
	return p.disconnectErr
}

type fakeCharacteristic struct {
	writes  [][]byte
	failAt  int // 1-based write index that fails; 0 = never
	failErr error
}

func (c *fakeCharacteristic) WriteWithoutResponse(data []byte) (int, error) {
	if c.failAt > 0 && len(c.writes)+1 == c.failAt {
		return 0, c.failErr
	}
	chunk := make([]byte, len(data))
	copy(chunk, data)
	c.writes = append(c.writes, chunk)
	return len(data), nil
}
