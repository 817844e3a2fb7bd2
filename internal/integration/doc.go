// Package integration holds end-to-end tests that run the controller over
// real storage backends across process-like restarts.
package integration
