// Package listener contains status listeners used by the catpoint hosts.
package listener

import (
	"context"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
)

// Logging writes every controller notification to the context logger.
type Logging struct {
	// name is appended to the logger name of every message.
	name string
}

// NewLogging creates a logging listener that logs under the given name.
func NewLogging(name string) *Logging {
	return &Logging{
		name: name,
	}
}

// AlarmStatusChanged logs the new alarm status.
func (l *Logging) AlarmStatusChanged(ctx context.Context, status domain.AlarmStatus) {
	ctx = logger.WithName(ctx, l.name)

	logger.InfoKV(ctx, "Alarm status notification", "alarm_status", status, "description", status.Description())
}

// CatDetected logs the detection result.
func (l *Logging) CatDetected(ctx context.Context, detected bool) {
	ctx = logger.WithName(ctx, l.name)

	if detected {
		logger.WarnKV(ctx, "Cat detected", "cat_detected", true)

		return
	}

	logger.InfoKV(ctx, "No cat detected", "cat_detected", false)
}

// SensorsChanged logs that the sensor set or a sensor state changed.
func (l *Logging) SensorsChanged(ctx context.Context) {
	ctx = logger.WithName(ctx, l.name)

	logger.Debug(ctx, "Sensors changed")
}
