package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and rejected values.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)

	// Empty config gets defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, Default(), cfg)

	// Unknown storage.
	cfg = &Config{Storage: "postgres"}
	require.ErrorIs(t, Validate(cfg), errUnknownStorage)

	// Threshold out of range.
	cfg = &Config{ConfidenceThreshold: 120}
	require.ErrorIs(t, Validate(cfg), errThresholdOutOfRange)

	cfg = &Config{ConfidenceThreshold: -1}
	require.ErrorIs(t, Validate(cfg), errThresholdOutOfRange)

	// Bad log level.
	cfg = &Config{LogLevel: "verbose"}
	require.ErrorIs(t, Validate(cfg), errUnknownLogLevel)

	// Alarm command without a program.
	cfg = &Config{AlarmCommand: []string{"", "--loud"}}
	require.ErrorIs(t, Validate(cfg), errAlarmCommandProgram)

	// SQLite with explicit values.
	cfg = &Config{Storage: StorageSQLite, Database: "x.db", ConfidenceThreshold: 75, LogLevel: "debug"}
	require.NoError(t, Validate(cfg))
	require.Equal(t, "x.db", cfg.Database)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		Storage:             StorageSQLite,
		Database:            "/var/lib/catpoint/state.db",
		ConfidenceThreshold: 65,
		LogLevel:            "warn",
		AlarmCommand:        []string{"/usr/local/bin/siren", "--loud"},
		AlarmCommandTimeout: 3 * time.Second,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	_, err = os.Stat(path)
	require.NoError(t, err)

	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}

// TestLoad_Missing verifies that a missing file is reported as os.ErrNotExist.
func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

// TestLoad_Invalid verifies YAML and validation errors.
func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("storage: ["), DefaultFilePermissions))

	_, err := Load(broken)
	require.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("storage: etcd\n"), DefaultFilePermissions))

	_, err = Load(unknown)
	require.ErrorIs(t, err, errUnknownStorage)
}
