package system

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder.
	_ "image/jpeg" // JPEG decoder.
	_ "image/png"  // PNG decoder.
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/catpoint/internal/config"
	"github.com/oshokin/catpoint/internal/detector"
	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/listener"
	"github.com/oshokin/catpoint/internal/logger"
	repository "github.com/oshokin/catpoint/internal/repository/state"
	"github.com/oshokin/catpoint/internal/service/security"
)

// ErrSensorNotFound is returned when a command names a sensor that does not exist.
var ErrSensorNotFound = errors.New("no such sensor")

// Options controls how a System is opened.
type Options struct {
	// Config is the validated configuration.
	Config *config.Config
	// Detector overrides the randomised detector.
	Detector security.CatDetector
}

// System is a controller bound to a repository opened from configuration.
type System struct {
	// Controller applies the alarm rules.
	Controller *security.Controller

	// closer releases the repository, if it holds resources.
	closer io.Closer
}

// Open builds the repository, detector and controller described by opts.
func Open(ctx context.Context, opts *Options) (*System, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	repo, closer, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	catDetector := opts.Detector
	if catDetector == nil {
		now := uint64(time.Now().UnixNano()) //nolint:gosec // Only used as a seed.
		catDetector = detector.NewRandom(now, uint64(os.Getpid()))
	}

	controller := security.NewController(
		repo,
		catDetector,
		security.WithConfidenceThreshold(cfg.ConfidenceThreshold),
	)
	controller.AddStatusListener(listener.NewLogging("notifications"))

	if len(cfg.AlarmCommand) > 0 {
		command, commandErr := listener.NewCommand(cfg.AlarmCommand, cfg.AlarmCommandTimeout)
		if commandErr != nil {
			_ = closeRepository(closer)

			return nil, fmt.Errorf("alarm command: %w", commandErr)
		}

		controller.AddStatusListener(command)
	}

	logger.DebugKV(ctx, "System opened", "storage", cfg.Storage, "threshold", cfg.ConfidenceThreshold)

	return &System{
		Controller: controller,
		closer:     closer,
	}, nil
}

// Close releases the repository.
func (s *System) Close() error {
	if s == nil {
		return nil
	}

	return closeRepository(s.closer)
}

// FindSensor returns the stored sensor with the given name.
func (s *System) FindSensor(ctx context.Context, name string) (*domain.Sensor, error) {
	sensors, err := s.Controller.Sensors(ctx)
	if err != nil {
		return nil, err
	}

	for _, sensor := range sensors {
		if sensor.Name == name {
			return sensor, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrSensorNotFound, name)
}

// ProcessImageFile decodes a PNG, JPEG or GIF file and passes it to the controller.
func (s *System) ProcessImageFile(ctx context.Context, path string) error {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	img, format, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", path, err)
	}

	logger.DebugKV(ctx, "Image decoded", "path", path, "format", format, "bounds", img.Bounds().String())

	return s.Controller.ProcessImage(ctx, img)
}

// Report is a point-in-time view of the system.
type Report struct {
	Arming  domain.ArmingStatus
	Alarm   domain.AlarmStatus
	Sensors []*domain.Sensor
}

// Report reads statuses and sensors.
func (s *System) Report(ctx context.Context) (*Report, error) {
	arming, err := s.Controller.ArmingStatus(ctx)
	if err != nil {
		return nil, err
	}

	alarm, err := s.Controller.AlarmStatus(ctx)
	if err != nil {
		return nil, err
	}

	sensors, err := s.Controller.Sensors(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		Arming:  arming,
		Alarm:   alarm,
		Sensors: sensors,
	}, nil
}

func closeRepository(closer io.Closer) error {
	if closer == nil {
		return nil
	}

	return closer.Close()
}

func openRepository(ctx context.Context, cfg *config.Config) (security.Repository, io.Closer, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return repository.NewMemoryRepository(), nil, nil
	case config.StorageSQLite:
		repo, err := repository.NewSQLiteRepository(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}

		return repo, repo, nil
	default:
		return repository.NewFileRepository(cfg.StateFile), nil, nil
	}
}
