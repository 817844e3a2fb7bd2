package security

import (
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// TestNextAlarmStatus walks the rule table row by row.
func TestNextAlarmStatus(t *testing.T) {
	t.Parallel()

	type want struct {
		status  domain.AlarmStatus
		changed bool
	}

	cases := []struct {
		name string
		e    event
		s    situation
		want want
	}{
		{"disarmed ignores activation", sensorActivated, situation{alarm: domain.NoAlarm, arming: domain.Disarmed}, want{domain.NoAlarm, false}},
		{"disarmed ignores deactivation", sensorDeactivated, situation{alarm: domain.PendingAlarm, arming: domain.Disarmed}, want{domain.PendingAlarm, false}},
		{"home activation raises pending", sensorActivated, situation{alarm: domain.NoAlarm, arming: domain.ArmedHome}, want{domain.PendingAlarm, true}},
		{"away activation raises pending", sensorActivated, situation{alarm: domain.NoAlarm, arming: domain.ArmedAway}, want{domain.PendingAlarm, true}},
		{"activation escalates pending", sensorActivated, situation{alarm: domain.PendingAlarm, arming: domain.ArmedAway}, want{domain.Alarm, true}},
		{"activation keeps alarm", sensorActivated, situation{alarm: domain.Alarm, arming: domain.ArmedAway}, want{domain.Alarm, false}},
		{"last deactivation clears pending", sensorDeactivated, situation{alarm: domain.PendingAlarm, arming: domain.ArmedHome}, want{domain.NoAlarm, true}},
		{"deactivation with others keeps pending", sensorDeactivated, situation{alarm: domain.PendingAlarm, arming: domain.ArmedHome, othersActive: true}, want{domain.PendingAlarm, false}},
		{"deactivation keeps alarm", sensorDeactivated, situation{alarm: domain.Alarm, arming: domain.ArmedAway}, want{domain.Alarm, false}},
		{"deactivation keeps no alarm", sensorDeactivated, situation{alarm: domain.NoAlarm, arming: domain.ArmedAway}, want{domain.NoAlarm, false}},
		{"cat at home raises alarm", catSeen, situation{alarm: domain.NoAlarm, arming: domain.ArmedHome}, want{domain.Alarm, true}},
		{"cat while away is ignored", catSeen, situation{alarm: domain.PendingAlarm, arming: domain.ArmedAway}, want{domain.PendingAlarm, false}},
		{"cat while disarmed is ignored", catSeen, situation{alarm: domain.NoAlarm, arming: domain.Disarmed}, want{domain.NoAlarm, false}},
		{"no cat clears alarm", noCatSeen, situation{alarm: domain.Alarm, arming: domain.ArmedHome}, want{domain.NoAlarm, true}},
		{"no cat keeps sensor alarm", noCatSeen, situation{alarm: domain.Alarm, arming: domain.ArmedHome, othersActive: true}, want{domain.Alarm, false}},
		{"disarm always clears", disarmed, situation{alarm: domain.Alarm, arming: domain.ArmedAway, othersActive: true}, want{domain.NoAlarm, true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, changed := nextAlarmStatus(tc.e, tc.s)
			require.Equal(t, tc.want.changed, changed)
			require.Equal(t, tc.want.status, got)
		})
	}
}

// TestEventString ensures every event has a readable name for logs.
func TestEventString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sensor_activated", sensorActivated.String())
	require.Equal(t, "disarmed", disarmed.String())
	require.Equal(t, "unknown", event(99).String())
}
