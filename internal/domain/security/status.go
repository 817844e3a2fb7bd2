package security

import (
	"errors"
	"fmt"
	"strings"
)

// AlarmStatus is the current threat assessment of the system.
type AlarmStatus uint8

const (
	// NoAlarm means nothing suspicious is happening.
	NoAlarm AlarmStatus = iota
	// PendingAlarm means a single trigger was observed while armed.
	PendingAlarm
	// Alarm means the system is raising the alarm.
	Alarm
)

// ArmingStatus tells whether monitoring is active and in which mode.
type ArmingStatus uint8

const (
	// Disarmed means sensors never influence the alarm status.
	Disarmed ArmingStatus = iota
	// ArmedHome means the owner is at home; the camera watches for the cat.
	ArmedHome
	// ArmedAway means nobody is expected to be at home.
	ArmedAway
)

// ErrUnknownStatus is returned when text does not name a known status.
var ErrUnknownStatus = errors.New("unknown status")

var (
	alarmStatusNames = [...]string{
		NoAlarm:      "NO_ALARM",
		PendingAlarm: "PENDING_ALARM",
		Alarm:        "ALARM",
	}

	armingStatusNames = [...]string{
		Disarmed:  "DISARMED",
		ArmedHome: "ARMED_HOME",
		ArmedAway: "ARMED_AWAY",
	}
)

// AlarmStatuses lists every alarm status in declaration order.
func AlarmStatuses() []AlarmStatus {
	return []AlarmStatus{NoAlarm, PendingAlarm, Alarm}
}

// ArmingStatuses lists every arming status in declaration order.
func ArmingStatuses() []ArmingStatus {
	return []ArmingStatus{Disarmed, ArmedHome, ArmedAway}
}

// String returns the canonical upper-case name, e.g. "PENDING_ALARM".
func (s AlarmStatus) String() string {
	if int(s) < len(alarmStatusNames) {
		return alarmStatusNames[s]
	}

	return fmt.Sprintf("AlarmStatus(%d)", uint8(s))
}

// Description returns a short human-readable text for the status.
func (s AlarmStatus) Description() string {
	switch s {
	case NoAlarm:
		return "Cool and Good"
	case PendingAlarm:
		return "I'm in Danger..."
	case Alarm:
		return "Awooga!"
	default:
		return s.String()
	}
}

// IsValid reports whether s is one of the declared statuses.
func (s AlarmStatus) IsValid() bool {
	return int(s) < len(alarmStatusNames)
}

// String returns the canonical upper-case name, e.g. "ARMED_HOME".
func (s ArmingStatus) String() string {
	if int(s) < len(armingStatusNames) {
		return armingStatusNames[s]
	}

	return fmt.Sprintf("ArmingStatus(%d)", uint8(s))
}

// Description returns a short human-readable text for the status.
func (s ArmingStatus) Description() string {
	switch s {
	case Disarmed:
		return "Disarmed"
	case ArmedHome:
		return "Armed - At Home"
	case ArmedAway:
		return "Armed - Away"
	default:
		return s.String()
	}
}

// IsArmed reports whether monitoring is active.
func (s ArmingStatus) IsArmed() bool {
	return s == ArmedHome || s == ArmedAway
}

// IsValid reports whether s is one of the declared statuses.
func (s ArmingStatus) IsValid() bool {
	return int(s) < len(armingStatusNames)
}

// ParseAlarmStatus converts a name such as "pending_alarm" or "PENDING-ALARM" into an AlarmStatus.
func ParseAlarmStatus(s string) (AlarmStatus, error) {
	name := normalizeName(s)

	for i, candidate := range alarmStatusNames {
		if candidate == name {
			return AlarmStatus(i), nil
		}
	}

	return NoAlarm, fmt.Errorf("alarm status %q: %w", s, ErrUnknownStatus)
}

// ParseArmingStatus converts a name into an ArmingStatus.
// The short forms "home" and "away" are accepted as well.
func ParseArmingStatus(s string) (ArmingStatus, error) {
	name := normalizeName(s)

	switch name {
	case "HOME":
		return ArmedHome, nil
	case "AWAY":
		return ArmedAway, nil
	}

	for i, candidate := range armingStatusNames {
		if candidate == name {
			return ArmingStatus(i), nil
		}
	}

	return Disarmed, fmt.Errorf("arming status %q: %w", s, ErrUnknownStatus)
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
}
