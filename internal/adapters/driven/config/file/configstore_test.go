package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eywa-run/eywa/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".eywa", "config.toml"), store.Path())

	_ = os.RemoveAll(filepath.Join(home, ".eywa"))
}

func TestConfigStore_Load_NoFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestConfigStore_SaveAndLoad_RoundTrips(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	settings := domain.DefaultAppSettings()
	settings.Device = domain.DeviceCPU
	settings.Fusion.DenseWeight = 0.7
	settings.Fusion.LexicalWeight = 0.3
	settings.ContentRoot = "/data/eywa"

	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestConfigStore_Load_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()
	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	settings := domain.DefaultAppSettings()
	settings.Embedding.ID = "custom-model"
	require.NoError(t, store1.Save(settings))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	loaded, err := store2.Load()
	require.NoError(t, err)
	assert.Equal(t, "custom-model", loaded.Embedding.ID)
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("not valid toml {{{[["), 0600))

	_, err = store.Load()
	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save(domain.DefaultAppSettings()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	invalidPath := "/dev/null/cannot/create/dirs"

	store, err := NewConfigStore(invalidPath)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "deep", "path")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestConfigStore_Watch_NotifiesOnExternalWrite(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Save(domain.DefaultAppSettings()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	changes := make(chan domain.AppSettings, 1)
	go func() {
		_ = store.Watch(ctx, func(s domain.AppSettings) {
			select {
			case changes <- s:
			default:
			}
		})
	}()

	time.Sleep(50 * time.Millisecond)
	updated := domain.DefaultAppSettings()
	updated.Device = domain.DeviceCUDA
	require.NoError(t, store.Save(updated))

	select {
	case s := <-changes:
		assert.Equal(t, domain.DeviceCUDA, s.Device)
	case <-ctx.Done():
		t.Fatal("timed out waiting for watch notification")
	}
}

func TestConfigStore_Load_ReadFileError(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save(domain.DefaultAppSettings()))
	require.NoError(t, os.Chmod(store.Path(), 0000))
	defer os.Chmod(store.Path(), 0600)

	_, err = store.Load()
	assert.Error(t, err)
	assert.False(t, os.IsNotExist(err))
}
