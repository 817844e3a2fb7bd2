// Package security contains the core domain types of the home-security system.
//
// AlarmStatus and ArmingStatus are closed enumerations whose zero values are
// the initial states (NoAlarm and Disarmed). Sensor describes a named input
// device; Clone helpers avoid leaking repository-owned references.
package security
