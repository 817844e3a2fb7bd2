// Package system assembles a ready-to-use alarm controller from configuration.
//
// It opens the configured repository, attaches the logging listener and
// exposes the operations the CLI needs, each as a single synchronous call.
package system
