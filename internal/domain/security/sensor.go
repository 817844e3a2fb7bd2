package security

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SensorType describes the kind of device. It never changes rule outcomes.
type SensorType uint8

const (
	// Door is a contact sensor mounted on a door.
	Door SensorType = iota
	// Window is a contact sensor mounted on a window.
	Window
	// Motion is a motion detector.
	Motion
)

// ErrUnknownSensorType is returned when text does not name a known sensor type.
var ErrUnknownSensorType = errors.New("unknown sensor type")

var sensorTypeNames = [...]string{
	Door:   "DOOR",
	Window: "WINDOW",
	Motion: "MOTION",
}

// String returns the canonical upper-case name of the sensor type.
func (t SensorType) String() string {
	if int(t) < len(sensorTypeNames) {
		return sensorTypeNames[t]
	}

	return fmt.Sprintf("SensorType(%d)", uint8(t))
}

// ParseSensorType converts a name such as "door" into a SensorType.
func ParseSensorType(s string) (SensorType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))

	for i, candidate := range sensorTypeNames {
		if candidate == name {
			return SensorType(i), nil
		}
	}

	return Door, fmt.Errorf("sensor type %q: %w", s, ErrUnknownSensorType)
}

// Sensor is a named boolean input device.
type Sensor struct {
	// ID is a stable random identifier assigned at creation.
	ID uuid.UUID
	// Name is the unique identity of the sensor within a repository.
	Name string
	// Type is informational only.
	Type SensorType
	// Active is true while the device reports an opening or presence.
	Active bool
}

// NewSensor creates an inactive sensor with a fresh ID.
func NewSensor(name string, sensorType SensorType) *Sensor {
	return &Sensor{
		ID:   uuid.New(),
		Name: name,
		Type: sensorType,
	}
}

// Clone returns a copy of the sensor.
func (s *Sensor) Clone() *Sensor {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// String renders the sensor as "name (TYPE, active)".
func (s *Sensor) String() string {
	state := "inactive"
	if s.Active {
		state = "active"
	}

	return fmt.Sprintf("%s (%s, %s)", s.Name, s.Type, state)
}

// CompareSensors orders sensors by name, then by ID.
func CompareSensors(a, b *Sensor) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	return cmp.Compare(a.ID.String(), b.ID.String())
}

// AnyActive reports whether at least one of the sensors is active.
func AnyActive(sensors []*Sensor) bool {
	for _, s := range sensors {
		if s.Active {
			return true
		}
	}

	return false
}
