// Package security implements the alarm controller.
//
// The Controller owns no state of its own: it reads and writes alarm status,
// arming status and sensors through an injected Repository, asks a
// CatDetector about camera images, and fans every change out to registered
// StatusListeners synchronously. All decisions about the next alarm status
// are made by a single evaluation function over the rule table.
package security
