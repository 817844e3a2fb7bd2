package state

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

var (
	// ErrSensorNotFound is returned when updating a sensor that is not stored.
	ErrSensorNotFound = errors.New("sensor not found")
	// errSensorRequired is returned when a nil or unnamed sensor is passed.
	errSensorRequired = errors.New("sensor with a name must be provided")
)

// snapshot is the complete system state held by the memory and file repositories.
type snapshot struct {
	alarm   domain.AlarmStatus
	arming  domain.ArmingStatus
	sensors map[string]*domain.Sensor
}

func newSnapshot() snapshot {
	return snapshot{
		sensors: make(map[string]*domain.Sensor),
	}
}

// clone returns a deep copy so that failed writes can be discarded.
func (s snapshot) clone() snapshot {
	cloned := snapshot{
		alarm:   s.alarm,
		arming:  s.arming,
		sensors: make(map[string]*domain.Sensor, len(s.sensors)),
	}

	for name, sensor := range s.sensors {
		cloned.sensors[name] = sensor.Clone()
	}

	return cloned
}

func (s snapshot) sortedSensors() []*domain.Sensor {
	result := make([]*domain.Sensor, 0, len(s.sensors))
	for _, name := range slices.Sorted(maps.Keys(s.sensors)) {
		result = append(result, s.sensors[name].Clone())
	}

	return result
}

func (s snapshot) addSensor(sensor *domain.Sensor) error {
	if err := validateSensor(sensor); err != nil {
		return err
	}

	s.sensors[sensor.Name] = sensor.Clone()

	return nil
}

func (s snapshot) removeSensor(sensor *domain.Sensor) error {
	if err := validateSensor(sensor); err != nil {
		return err
	}

	delete(s.sensors, sensor.Name)

	return nil
}

func (s snapshot) updateSensor(sensor *domain.Sensor) error {
	if err := validateSensor(sensor); err != nil {
		return err
	}

	if _, ok := s.sensors[sensor.Name]; !ok {
		return fmt.Errorf("update %q: %w", sensor.Name, ErrSensorNotFound)
	}

	s.sensors[sensor.Name] = sensor.Clone()

	return nil
}

func validateSensor(sensor *domain.Sensor) error {
	if sensor == nil || sensor.Name == "" {
		return errSensorRequired
	}

	return nil
}
