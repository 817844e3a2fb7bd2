package security

import (
	"context"
	"image"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// Repository is the sole source of truth for the controller.
// Errors returned by an implementation are passed to the controller's callers unchanged.
type Repository interface {
	AlarmStatus(ctx context.Context) (domain.AlarmStatus, error)
	SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error
	ArmingStatus(ctx context.Context) (domain.ArmingStatus, error)
	SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error
	Sensors(ctx context.Context) ([]*domain.Sensor, error)
	AddSensor(ctx context.Context, sensor *domain.Sensor) error
	RemoveSensor(ctx context.Context, sensor *domain.Sensor) error
	UpdateSensor(ctx context.Context, sensor *domain.Sensor) error
}

// CatDetector classifies camera images.
type CatDetector interface {
	// ContainsCat reports whether img shows a cat with at least the given confidence (0-100).
	ContainsCat(ctx context.Context, img image.Image, confidenceThreshold float32) (bool, error)
}

// StatusListener observes the controller.
//
// Implementations must be comparable (typically pointers) so that they can be
// removed again. Callbacks run synchronously on the caller's goroutine and
// should return quickly.
type StatusListener interface {
	// AlarmStatusChanged is called after every alarm status write.
	AlarmStatusChanged(ctx context.Context, status domain.AlarmStatus)
	// CatDetected is called with the result of every processed image.
	CatDetected(ctx context.Context, detected bool)
	// SensorsChanged is called after sensors were added, removed or changed state.
	SensorsChanged(ctx context.Context)
}
