package security

import (
	"context"
	"errors"
	"image"
	"slices"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

var errTestStorage = errors.New("test storage error")

// fakeRepository is an in-memory Repository that records alarm status writes.
type fakeRepository struct {
	// alarm is the stored alarm status.
	alarm domain.AlarmStatus
	// arming is the stored arming status.
	arming domain.ArmingStatus
	// sensors holds stored sensors by name.
	sensors map[string]*domain.Sensor
	// alarmWrites records every SetAlarmStatus call in order.
	alarmWrites []domain.AlarmStatus
	// err, when set, is returned by every method.
	err error
}

func newFakeRepository(arming domain.ArmingStatus, alarm domain.AlarmStatus, sensors ...*domain.Sensor) *fakeRepository {
	r := &fakeRepository{
		alarm:   alarm,
		arming:  arming,
		sensors: make(map[string]*domain.Sensor, len(sensors)),
	}

	for _, s := range sensors {
		r.sensors[s.Name] = s.Clone()
	}

	return r
}

func (r *fakeRepository) AlarmStatus(context.Context) (domain.AlarmStatus, error) {
	return r.alarm, r.err
}

func (r *fakeRepository) SetAlarmStatus(_ context.Context, status domain.AlarmStatus) error {
	if r.err != nil {
		return r.err
	}

	r.alarm = status
	r.alarmWrites = append(r.alarmWrites, status)

	return nil
}

func (r *fakeRepository) ArmingStatus(context.Context) (domain.ArmingStatus, error) {
	return r.arming, r.err
}

func (r *fakeRepository) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	if r.err != nil {
		return r.err
	}

	r.arming = status

	return nil
}

func (r *fakeRepository) Sensors(context.Context) ([]*domain.Sensor, error) {
	if r.err != nil {
		return nil, r.err
	}

	result := make([]*domain.Sensor, 0, len(r.sensors))
	for _, s := range r.sensors {
		result = append(result, s.Clone())
	}

	slices.SortFunc(result, domain.CompareSensors)

	return result, nil
}

func (r *fakeRepository) AddSensor(_ context.Context, sensor *domain.Sensor) error {
	if r.err != nil {
		return r.err
	}

	r.sensors[sensor.Name] = sensor.Clone()

	return nil
}

func (r *fakeRepository) RemoveSensor(_ context.Context, sensor *domain.Sensor) error {
	if r.err != nil {
		return r.err
	}

	delete(r.sensors, sensor.Name)

	return nil
}

func (r *fakeRepository) UpdateSensor(_ context.Context, sensor *domain.Sensor) error {
	if r.err != nil {
		return r.err
	}

	r.sensors[sensor.Name] = sensor.Clone()

	return nil
}

// sensor returns the stored copy of the named sensor.
func (r *fakeRepository) sensor(name string) *domain.Sensor {
	return r.sensors[name]
}

// fakeDetector answers with a fixed result and records the threshold it was asked with.
type fakeDetector struct {
	// result is returned by ContainsCat.
	result bool
	// err is returned by ContainsCat when set.
	err error
	// threshold is the last confidence threshold received.
	threshold float32
	// calls counts ContainsCat invocations.
	calls int
}

func (d *fakeDetector) ContainsCat(_ context.Context, _ image.Image, threshold float32) (bool, error) {
	d.calls++
	d.threshold = threshold

	return d.result, d.err
}

// recordingListener stores every notification it receives.
type recordingListener struct {
	// statuses holds every AlarmStatusChanged argument.
	statuses []domain.AlarmStatus
	// cats holds every CatDetected argument.
	cats []bool
	// sensorChanges counts SensorsChanged calls.
	sensorChanges int
}

func (l *recordingListener) AlarmStatusChanged(_ context.Context, status domain.AlarmStatus) {
	l.statuses = append(l.statuses, status)
}

func (l *recordingListener) CatDetected(_ context.Context, detected bool) {
	l.cats = append(l.cats, detected)
}

func (l *recordingListener) SensorsChanged(context.Context) {
	l.sensorChanges++
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}
