package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/eywa-run/eywa/internal/core/domain"
	"github.com/eywa-run/eywa/internal/core/ports/driven"
	"github.com/eywa-run/eywa/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore
// using TOML, stored at ~/.eywa/config.toml by default.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store. If configDir
// is empty, defaults to ~/.eywa.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".eywa")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from disk. A missing file yields
// domain.DefaultAppSettings() rather than an error.
func (s *ConfigStore) Load() (domain.AppSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultAppSettings(), nil
		}
		return domain.AppSettings{}, err
	}

	settings := domain.DefaultAppSettings()
	if len(data) == 0 {
		return settings, nil
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.AppSettings{}, err
	}
	return settings, nil
}

// Save persists settings to disk with restricted permissions.
func (s *ConfigStore) Save(settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Watch notifies onChange whenever the settings file is written by
// another process (e.g. a user hand-editing config.toml), re-reading
// and re-validating it first. It blocks until ctx is cancelled.
func (s *ConfigStore) Watch(ctx context.Context, onChange func(domain.AppSettings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			settings, err := s.Load()
			if err != nil {
				logger.Warn("config: reloading %s: %v", s.filePath, err)
				continue
			}
			onChange(settings)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config: watch error: %v", err)
		}
	}
}
