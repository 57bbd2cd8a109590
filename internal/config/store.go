package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Settings holds user-configurable print defaults.
type Settings struct {
	Device            string `json:"device"`            // BLE target: address/UUID or advertised name
	Transport         string `json:"transport"`         // "ble" or "spooler"
	SpoolerQueue      string `json:"spoolerQueue"`      // queue name when Transport="spooler"
	Energy            uint16 `json:"energy"`            // heating energy; 0 = firmware default
	Quality           byte   `json:"quality"`           // quality preset; 0 = firmware default
	Rotate            bool   `json:"rotate"`            // rotate output 180 degrees
	KeepAlive         bool   `json:"keepAlive"`         // keep the link warm between prints
	KeepAliveInterval int    `json:"keepAliveInterval"` // seconds; clamped to the floor at use
}

// DefaultSettings returns the default print settings.
func DefaultSettings() Settings {
	return Settings{
		Transport:         "ble",
		KeepAliveInterval: 60,
	}
}

// Store provides thread-safe settings persistence backed by a JSON file.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	path     string
}

// NewStore creates a Store that persists settings to dataDir/settings.json.
// If the file does not exist or is invalid, default settings are used.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	s := &Store{
		path:     filepath.Join(dataDir, "settings.json"),
		settings: DefaultSettings(),
	}
	s.load()
	return s, nil
}

// NewMemoryStore creates a Store that keeps settings in memory only (no file persistence).
func NewMemoryStore() *Store {
	return &Store{settings: DefaultSettings()}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists to disk.
func (s *Store) Update(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.save()
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // file missing is OK, use defaults
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("invalid settings file, using defaults", "path", s.path, "err", err)
		return
	}
	s.settings = settings
}

func (s *Store) save() error {
	if s.path == "" {
		return nil // memory-only mode
	}
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
