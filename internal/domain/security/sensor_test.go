package security

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewSensor verifies that new sensors are inactive and get distinct IDs.
func TestNewSensor(t *testing.T) {
	t.Parallel()

	a := NewSensor("front door", Door)
	b := NewSensor("front door", Door)

	require.False(t, a.Active)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, "front door (DOOR, inactive)", a.String())
}

// TestSensorClone verifies that Clone returns a copy and handles nil safely.
func TestSensorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Sensor)(nil).Clone())

	s := NewSensor("hall", Motion)
	c := s.Clone()

	require.Equal(t, s, c)
	require.NotSame(t, s, c)

	c.Active = true
	require.False(t, s.Active)
}

// TestParseSensorType checks names and rejection of unknown types.
func TestParseSensorType(t *testing.T) {
	t.Parallel()

	got, err := ParseSensorType("window")
	require.NoError(t, err)
	require.Equal(t, Window, got)

	_, err = ParseSensorType("laser")
	require.ErrorIs(t, err, ErrUnknownSensorType)
}

// TestCompareSensors verifies ordering by name and AnyActive.
func TestCompareSensors(t *testing.T) {
	t.Parallel()

	sensors := []*Sensor{
		NewSensor("window", Window),
		NewSensor("door", Door),
		NewSensor("motion", Motion),
	}

	slices.SortFunc(sensors, CompareSensors)

	require.Equal(t, "door", sensors[0].Name)
	require.Equal(t, "motion", sensors[1].Name)
	require.Equal(t, "window", sensors[2].Name)
	require.False(t, AnyActive(sensors))

	sensors[1].Active = true
	require.True(t, AnyActive(sensors))
}
