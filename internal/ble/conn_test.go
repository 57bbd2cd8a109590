package ble

import (
	"errors"
	"testing"
)

const testTXChar = "0000ae01-0000-1000-8000-00805f9b34fb"

func connectedConn(t *testing.T) (*Conn, *fakeBackend, *fakeCharacteristic) {
	t.Helper()
	backend := newFakeBackend()
	p := newFakePeripheral()
	char := p.withChar(testTXChar)
	backend.peripherals["AA:00:00:00:00:01"] = p

	conn, err := NewWithBackend(backend)
	if err != nil {
		t.Fatalf("NewWithBackend failed: %v", err)
	}
	if err := conn.Connect(Device{ID: "AA:00:00:00:00:01", Name: "GB01"}, testTXChar); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	return conn, backend, char
}

func TestNewWithBackend_EnableFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.enableErr = errors.New("radio off")

	_, err := NewWithBackend(backend)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if KindOf(err) != ErrConnection {
		t.Errorf("error kind = %v, want ErrConnection", KindOf(err))
	}
}

func TestConnect_MissingCharacteristic(t *testing.T) {
	backend := newFakeBackend()
	p := newFakePeripheral() // no characteristics at all
	backend.peripherals["AA:00:00:00:00:01"] = p

	conn, err := NewWithBackend(backend)
	if err != nil {
		t.Fatalf("NewWithBackend failed: %v", err)
	}
	err = conn.Connect(Device{ID: "AA:00:00:00:00:01"}, testTXChar)
	if KindOf(err) != ErrMissingCharacteristic {
		t.Fatalf("error kind = %v, want ErrMissingCharacteristic", KindOf(err))
	}
	if p.disconnects != 1 {
		t.Errorf("peripheral disconnected %d times, want 1", p.disconnects)
	}
	if conn.IsConnected() {
		t.Error("conn reports connected after failed characteristic resolution")
	}
}

func TestWrite_Chunking(t *testing.T) {
	conn, _, char := connectedConn(t)
	conn.chunkSize = 182

	data := make([]byte, 400)
	for i := range data {
		data[i] = byte(i)
	}
	if err := conn.Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	wantSizes := []int{182, 182, 36}
	if len(char.writes) != len(wantSizes) {
		t.Fatalf("wrote %d chunks, want %d", len(char.writes), len(wantSizes))
	}
	off := 0
	for i, chunk := range char.writes {
		if len(chunk) != wantSizes[i] {
			t.Errorf("chunk %d has %d bytes, want %d", i+1, len(chunk), wantSizes[i])
		}
		if chunk[0] != data[off] {
			t.Errorf("chunk %d out of order", i+1)
		}
		off += len(chunk)
	}
}

func TestWrite_FailureReportsChunkIndex(t *testing.T) {
	conn, _, char := connectedConn(t)
	conn.chunkSize = 182
	char.failAt = 2
	char.failErr = errors.New("gatt timeout")

	err := conn.Write(make([]byte, 400))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var bErr *Error
	if !errors.As(err, &bErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if bErr.Kind != ErrWrite || bErr.Chunk != 2 || bErr.Total != 3 {
		t.Errorf("got kind=%v chunk=%d total=%d, want ErrWrite 2/3", bErr.Kind, bErr.Chunk, bErr.Total)
	}
}

func TestWrite_NotConnected(t *testing.T) {
	conn, err := NewWithBackend(newFakeBackend())
	if err != nil {
		t.Fatalf("NewWithBackend failed: %v", err)
	}
	if KindOf(conn.Write([]byte{0x51})) != ErrNotConnected {
		t.Error("write without a connection did not report ErrNotConnected")
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	conn, backend, _ := connectedConn(t)

	if err := conn.Disconnect(); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if conn.IsConnected() {
		t.Error("conn reports connected after disconnect")
	}
	if err := conn.Disconnect(); err != nil {
		t.Errorf("second Disconnect returned %v, want nil", err)
	}
	if p := backend.peripherals["AA:00:00:00:00:01"]; p.disconnects != 1 {
		t.Errorf("peripheral disconnected %d times, want 1", p.disconnects)
	}
}
