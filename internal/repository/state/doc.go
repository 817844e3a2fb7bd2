// Package state persists the security system state: alarm status, arming
// status and the set of sensors.
//
// Three implementations share the same method set, which is the Repository
// capability consumed by the alarm controller:
//   - MemoryRepository keeps everything in process memory,
//   - FileRepository stores the state as protobuf JSON in a single file,
//   - SQLiteRepository stores it in a SQLite database (modernc.org/sqlite).
//
// Every implementation returns sensors as sorted copies, so callers can never
// mutate stored state without going through UpdateSensor.
package state
