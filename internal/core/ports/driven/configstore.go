package driven

import "github.com/eywa-run/eywa/internal/core/domain"

// ConfigStore persists application settings across runs.
type ConfigStore interface {
	// Load reads settings from disk, returning domain.DefaultAppSettings()
	// merged with whatever overrides are present if no file exists yet.
	Load() (domain.AppSettings, error)

	// Save persists settings to disk.
	Save(settings domain.AppSettings) error

	// Path returns the settings file location.
	Path() string
}
