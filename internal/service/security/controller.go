package security

import (
	"context"
	"image"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
)

// DefaultConfidenceThreshold is the detector confidence, in percent, required to report a cat.
const DefaultConfidenceThreshold float32 = 50

// Controller applies the alarm rule table to arming requests, sensor events and camera images.
//
// A Controller is not safe for concurrent use: rule evaluation reads and then
// writes the alarm status without locking. Hosts with several goroutines must
// confine it to one of them or guard it with a single mutex.
type Controller struct {
	// repo stores statuses and sensors.
	repo Repository
	// detector classifies camera images.
	detector CatDetector
	// threshold is passed to the detector on every image.
	threshold float32
	// listeners receive every notification.
	listeners listenerRegistry
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfidenceThreshold overrides DefaultConfidenceThreshold.
func WithConfidenceThreshold(threshold float32) Option {
	return func(c *Controller) {
		c.threshold = threshold
	}
}

// NewController builds a controller over the provided collaborators.
func NewController(repo Repository, detector CatDetector, opts ...Option) *Controller {
	c := &Controller{
		repo:      repo,
		detector:  detector,
		threshold: DefaultConfidenceThreshold,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetArmingStatus changes the arming mode.
// Disarming forces NO_ALARM. Arming silently deactivates every active sensor
// and never raises the alarm by itself.
func (c *Controller) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	ctx = logger.WithName(ctx, "controller")

	if status.IsArmed() {
		if err := c.resetSensors(ctx); err != nil {
			return err
		}
	} else if err := c.apply(ctx, disarmed, situation{arming: status}); err != nil {
		return err
	}

	if err := c.repo.SetArmingStatus(ctx, status); err != nil {
		logger.ErrorKV(ctx, "Failed to persist arming status", "arming_status", status, "error", err)

		return err
	}

	logger.InfoKV(ctx, "Arming status changed", "arming_status", status)

	return nil
}

// ChangeSensorActivationStatus sets sensor.Active to active, persists the
// sensor and evaluates the rule table when the flag actually changed.
// The sensor is updated in place.
func (c *Controller) ChangeSensorActivationStatus(ctx context.Context, sensor *domain.Sensor, active bool) error {
	wasActive := sensor.Active

	switch {
	case !wasActive && active:
		return c.changeSensor(ctx, sensor, true, sensorActivated)
	case wasActive && !active:
		return c.changeSensor(ctx, sensor, false, sensorDeactivated)
	default:
		return c.repo.UpdateSensor(ctx, sensor)
	}
}

// ActivateSensor marks the sensor active and applies the activation rule
// even if the sensor was already active, so a repeated trigger escalates
// PENDING_ALARM to ALARM.
func (c *Controller) ActivateSensor(ctx context.Context, sensor *domain.Sensor) error {
	return c.changeSensor(ctx, sensor, true, sensorActivated)
}

// ProcessImage asks the detector whether img contains a cat and updates the alarm status.
// Listeners learn the detection result after any status change.
func (c *Controller) ProcessImage(ctx context.Context, img image.Image) error {
	ctx = logger.WithName(ctx, "controller")

	hasCat, err := c.detector.ContainsCat(ctx, img, c.threshold)
	if err != nil {
		logger.ErrorKV(ctx, "Cat detection failed", "error", err)

		return err
	}

	logger.DebugKV(ctx, "Image processed", "cat_detected", hasCat, "threshold", c.threshold)

	e := noCatSeen
	if hasCat {
		e = catSeen
	}

	s, err := c.situation(ctx, nil)
	if err != nil {
		return err
	}

	if err = c.apply(ctx, e, s); err != nil {
		return err
	}

	c.listeners.catDetected(ctx, hasCat)

	return nil
}

// AddSensor stores a new sensor.
func (c *Controller) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	if err := c.repo.AddSensor(ctx, sensor); err != nil {
		return err
	}

	c.listeners.sensorsChanged(ctx)

	return nil
}

// RemoveSensor deletes a sensor.
func (c *Controller) RemoveSensor(ctx context.Context, sensor *domain.Sensor) error {
	if err := c.repo.RemoveSensor(ctx, sensor); err != nil {
		return err
	}

	c.listeners.sensorsChanged(ctx)

	return nil
}

// AddStatusListener registers l. Registering the same listener twice makes it fire twice.
func (c *Controller) AddStatusListener(l StatusListener) {
	c.listeners.add(l)
}

// RemoveStatusListener removes one registration of l. Unknown listeners are ignored.
func (c *Controller) RemoveStatusListener(l StatusListener) {
	c.listeners.remove(l)
}

// AlarmStatus returns the stored alarm status.
func (c *Controller) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	return c.repo.AlarmStatus(ctx)
}

// ArmingStatus returns the stored arming status.
func (c *Controller) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	return c.repo.ArmingStatus(ctx)
}

// Sensors returns the stored sensors.
func (c *Controller) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	return c.repo.Sensors(ctx)
}

// changeSensor persists the new flag, then evaluates e against the state before the event.
func (c *Controller) changeSensor(ctx context.Context, sensor *domain.Sensor, active bool, e event) error {
	ctx = logger.WithKV(logger.WithName(ctx, "controller"), "sensor", sensor.Name)

	if err := c.persistSensor(ctx, sensor, active); err != nil {
		return err
	}

	s, err := c.situation(ctx, sensor)
	if err != nil {
		return err
	}

	return c.apply(ctx, e, s)
}

// persistSensor stores the new flag and only then updates the caller's sensor.
func (c *Controller) persistSensor(ctx context.Context, sensor *domain.Sensor, active bool) error {
	updated := sensor.Clone()
	updated.Active = active

	if err := c.repo.UpdateSensor(ctx, updated); err != nil {
		logger.ErrorKV(ctx, "Failed to persist sensor", "active", active, "error", err)

		return err
	}

	sensor.Active = active

	logger.DebugKV(ctx, "Sensor updated", "active", active)
	c.listeners.sensorsChanged(ctx)

	return nil
}

// situation reads the current statuses and whether any sensor other than
// exclude is active. A nil exclude considers every sensor.
func (c *Controller) situation(ctx context.Context, exclude *domain.Sensor) (situation, error) {
	alarm, err := c.repo.AlarmStatus(ctx)
	if err != nil {
		return situation{}, err
	}

	arming, err := c.repo.ArmingStatus(ctx)
	if err != nil {
		return situation{}, err
	}

	sensors, err := c.repo.Sensors(ctx)
	if err != nil {
		return situation{}, err
	}

	var othersActive bool

	for _, s := range sensors {
		if exclude != nil && s.Name == exclude.Name {
			continue
		}

		if s.Active {
			othersActive = true

			break
		}
	}

	return situation{
		alarm:        alarm,
		arming:       arming,
		othersActive: othersActive,
	}, nil
}

// apply evaluates the rule table and, when it yields a status, writes it and notifies listeners.
func (c *Controller) apply(ctx context.Context, e event, s situation) error {
	next, ok := nextAlarmStatus(e, s)
	if !ok {
		return nil
	}

	if err := c.repo.SetAlarmStatus(ctx, next); err != nil {
		logger.ErrorKV(ctx, "Failed to persist alarm status", "alarm_status", next, "error", err)

		return err
	}

	logger.InfoKV(ctx, "Alarm status set", "alarm_status", next, "trigger", e)

	c.listeners.alarmStatusChanged(ctx, next)

	return nil
}

// resetSensors deactivates every active sensor without evaluating the rule table.
func (c *Controller) resetSensors(ctx context.Context) error {
	sensors, err := c.repo.Sensors(ctx)
	if err != nil {
		return err
	}

	var reset int

	for _, sensor := range sensors {
		if !sensor.Active {
			continue
		}

		sensor.Active = false

		if err = c.repo.UpdateSensor(ctx, sensor); err != nil {
			logger.ErrorKV(ctx, "Failed to reset sensor", "sensor", sensor.Name, "error", err)

			return err
		}

		reset++
	}

	if reset > 0 {
		logger.InfoKV(ctx, "Sensors reset on arming", "count", reset)
		c.listeners.sensorsChanged(ctx)
	}

	return nil
}
