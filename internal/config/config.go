package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/catpoint/internal/logger"
)

// Config holds the settings shared by every catpoint command.
type Config struct {
	// Storage selects the repository backend: memory, file or sqlite.
	Storage string `yaml:"storage"`
	// StateFile is the path to the JSON state file used by the file backend.
	StateFile string `yaml:"state_file"`
	// Database is the path to the SQLite database used by the sqlite backend.
	Database string `yaml:"database"`
	// ConfidenceThreshold is the detector confidence, in percent, required to report a cat.
	ConfidenceThreshold float32 `yaml:"confidence_threshold"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// AlarmCommand is an optional program, with arguments, run whenever the alarm goes off.
	AlarmCommand []string `yaml:"alarm_command,omitempty"`
	// AlarmCommandTimeout bounds each run of AlarmCommand.
	AlarmCommandTimeout time.Duration `yaml:"alarm_command_timeout,omitempty"`
}

const (
	// StorageMemory keeps state for the lifetime of the process only.
	StorageMemory = "memory"
	// StorageFile keeps state in a JSON file.
	StorageFile = "file"
	// StorageSQLite keeps state in a SQLite database.
	StorageSQLite = "sqlite"

	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "catpoint-settings.yaml"

	// DefaultStateFilename is the default filename for the JSON state.
	DefaultStateFilename = "catpoint-state.json"

	// DefaultDatabaseFilename is the default filename for the SQLite database.
	DefaultDatabaseFilename = "catpoint.db"

	// DefaultConfidenceThreshold matches the controller default.
	DefaultConfidenceThreshold float32 = 50

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the permission for files written by catpoint.
	DefaultFilePermissions = 0o600

	// maxConfidenceThreshold is the upper bound of a percentage.
	maxConfidenceThreshold float32 = 100
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownStorage is returned for an unsupported storage backend.
	errUnknownStorage = errors.New("unknown storage backend")
	// errThresholdOutOfRange is returned when the confidence threshold is not a percentage.
	errThresholdOutOfRange = errors.New("confidence threshold must be within (0, 100]")
	// errUnknownLogLevel is returned for an unsupported log level.
	errUnknownLogLevel = errors.New("unknown log level")
	// errAlarmCommandProgram is returned when the alarm command has arguments but no program.
	errAlarmCommandProgram = errors.New("alarm command must start with a program")
)

// Default returns a configuration with every field set to its default.
func Default() *Config {
	return &Config{
		Storage:             StorageFile,
		StateFile:           DefaultStateFilename,
		Database:            DefaultDatabaseFilename,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		LogLevel:            DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file yields an error wrapping os.ErrNotExist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for empty fields and checks the rest.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Storage == "" {
		cfg.Storage = StorageFile
	}

	if !slices.Contains([]string{StorageMemory, StorageFile, StorageSQLite}, cfg.Storage) {
		return fmt.Errorf("%w: %q", errUnknownStorage, cfg.Storage)
	}

	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFilename
	}

	if cfg.Database == "" {
		cfg.Database = DefaultDatabaseFilename
	}

	if cfg.ConfidenceThreshold == 0 {
		cfg.ConfidenceThreshold = DefaultConfidenceThreshold
	}

	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > maxConfidenceThreshold {
		return fmt.Errorf("%w: %v", errThresholdOutOfRange, cfg.ConfidenceThreshold)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if len(cfg.AlarmCommand) > 0 && cfg.AlarmCommand[0] == "" {
		return errAlarmCommandProgram
	}

	return nil
}
