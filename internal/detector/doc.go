// Package detector provides cat detectors for hosts that have no real image classifier.
package detector
