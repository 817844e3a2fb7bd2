package state

import (
	"context"
	"sync"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// MemoryRepository keeps the state in process memory. The zero value is not usable.
type MemoryRepository struct {
	// mu protects state.
	mu    sync.Mutex
	state snapshot
}

// NewMemoryRepository creates an empty repository: disarmed, no alarm, no sensors.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		state: newSnapshot(),
	}
}

// AlarmStatus returns the stored alarm status.
func (r *MemoryRepository) AlarmStatus(context.Context) (domain.AlarmStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.alarm, nil
}

// SetAlarmStatus stores the alarm status.
func (r *MemoryRepository) SetAlarmStatus(_ context.Context, status domain.AlarmStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.alarm = status

	return nil
}

// ArmingStatus returns the stored arming status.
func (r *MemoryRepository) ArmingStatus(context.Context) (domain.ArmingStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.arming, nil
}

// SetArmingStatus stores the arming status.
func (r *MemoryRepository) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.arming = status

	return nil
}

// Sensors returns copies of all sensors ordered by name.
func (r *MemoryRepository) Sensors(context.Context) ([]*domain.Sensor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.sortedSensors(), nil
}

// AddSensor stores a sensor, replacing one with the same name.
func (r *MemoryRepository) AddSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.addSensor(sensor)
}

// RemoveSensor deletes a sensor by name. Unknown sensors are ignored.
func (r *MemoryRepository) RemoveSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.removeSensor(sensor)
}

// UpdateSensor replaces a stored sensor.
func (r *MemoryRepository) UpdateSensor(_ context.Context, sensor *domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.updateSensor(sensor)
}
