package security

import domain "github.com/oshokin/catpoint/internal/domain/security"

// event is an input of the rule table.
type event uint8

const (
	// sensorActivated is an inactive-to-active transition or an explicit re-activation.
	sensorActivated event = iota
	// sensorDeactivated is an active-to-inactive transition.
	sensorDeactivated
	// catSeen is a processed image that contains a cat.
	catSeen
	// noCatSeen is a processed image without a cat.
	noCatSeen
	// disarmed is an arming request to DISARMED.
	disarmed
)

var eventNames = [...]string{
	sensorActivated:   "sensor_activated",
	sensorDeactivated: "sensor_deactivated",
	catSeen:           "cat_seen",
	noCatSeen:         "no_cat_seen",
	disarmed:          "disarmed",
}

func (e event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}

	return "unknown"
}

// situation is everything the rule table looks at besides the event.
type situation struct {
	alarm  domain.AlarmStatus
	arming domain.ArmingStatus
	// othersActive is true when any sensor, other than the one that triggered
	// the event, is active. For image events it covers every sensor.
	othersActive bool
}

// nextAlarmStatus evaluates the rule table.
// It returns the status to write and false when the alarm status must be left untouched.
//
//nolint:cyclop,exhaustive // The switch mirrors the rule table row by row.
func nextAlarmStatus(e event, s situation) (domain.AlarmStatus, bool) {
	switch e {
	case disarmed:
		return domain.NoAlarm, true

	case sensorActivated:
		if !s.arming.IsArmed() {
			return s.alarm, false
		}

		switch s.alarm {
		case domain.NoAlarm:
			return domain.PendingAlarm, true
		case domain.PendingAlarm:
			return domain.Alarm, true
		case domain.Alarm:
			return s.alarm, false
		}

	case sensorDeactivated:
		if !s.arming.IsArmed() {
			return s.alarm, false
		}

		switch s.alarm {
		case domain.PendingAlarm:
			if s.othersActive {
				return s.alarm, false
			}

			return domain.NoAlarm, true
		case domain.NoAlarm, domain.Alarm:
			return s.alarm, false
		}

	case catSeen:
		if s.arming == domain.ArmedHome {
			return domain.Alarm, true
		}

		return s.alarm, false

	case noCatSeen:
		// Active sensors keep whatever alarm they caused.
		if s.othersActive {
			return s.alarm, false
		}

		return domain.NoAlarm, true
	}

	return s.alarm, false
}
