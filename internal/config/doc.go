// Package config defines the catpoint settings and helpers to load, validate
// and save them in YAML format.
//
// The Config type selects the storage backend (memory, file or sqlite), its
// location, the cat detector confidence threshold and the log level.
package config
