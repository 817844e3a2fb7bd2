package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestZeroValues verifies that the zero values are the initial states.
func TestZeroValues(t *testing.T) {
	t.Parallel()

	var (
		alarm  AlarmStatus
		arming ArmingStatus
	)

	require.Equal(t, NoAlarm, alarm)
	require.Equal(t, Disarmed, arming)
}

// TestParseAlarmStatus checks that every name round-trips and unknown text is rejected.
func TestParseAlarmStatus(t *testing.T) {
	t.Parallel()

	for _, status := range AlarmStatuses() {
		got, err := ParseAlarmStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, got)
	}

	got, err := ParseAlarmStatus(" pending-alarm ")
	require.NoError(t, err)
	require.Equal(t, PendingAlarm, got)

	_, err = ParseAlarmStatus("siren")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

// TestParseArmingStatus checks canonical names and the home/away shortcuts.
func TestParseArmingStatus(t *testing.T) {
	t.Parallel()

	for _, status := range ArmingStatuses() {
		got, err := ParseArmingStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, got)
	}

	got, err := ParseArmingStatus("home")
	require.NoError(t, err)
	require.Equal(t, ArmedHome, got)

	got, err = ParseArmingStatus("Away")
	require.NoError(t, err)
	require.Equal(t, ArmedAway, got)

	_, err = ParseArmingStatus("vacation")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

// TestArmingStatus_IsArmed verifies which modes count as armed.
func TestArmingStatus_IsArmed(t *testing.T) {
	t.Parallel()

	require.False(t, Disarmed.IsArmed())
	require.True(t, ArmedHome.IsArmed())
	require.True(t, ArmedAway.IsArmed())
}

// TestStatus_OutOfRange ensures unknown numeric values render and validate safely.
func TestStatus_OutOfRange(t *testing.T) {
	t.Parallel()

	require.False(t, AlarmStatus(42).IsValid())
	require.Equal(t, "AlarmStatus(42)", AlarmStatus(42).String())
	require.False(t, ArmingStatus(7).IsValid())
	require.Equal(t, "ArmingStatus(7)", ArmingStatus(7).String())
	require.Equal(t, "Awooga!", Alarm.Description())
}
