package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/catpoint/internal/config"
	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// errMalformedState is returned when the state file has an unexpected shape.
var errMalformedState = errors.New("malformed state file")

// FileRepository persists the whole state to a JSON file on disk.
// JSON is produced and consumed with protobuf JSON over structpb, the same
// encoder the rest of the system uses for generated types.
// The file is read on first access and rewritten after every mutation;
// a missing file means the initial state.
type FileRepository struct {
	// path is the filesystem location of the JSON state file.
	path string
	// mu protects state, loaded and the file itself.
	mu sync.Mutex
	// loaded is true once the file was read.
	loaded bool
	state  snapshot
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path:  filepath.Clean(path),
		state: newSnapshot(),
	}
}

// Path returns the state file location.
func (r *FileRepository) Path() string {
	return r.path
}

// AlarmStatus returns the stored alarm status.
func (r *FileRepository) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	var status domain.AlarmStatus

	err := r.read(ctx, func(s snapshot) {
		status = s.alarm
	})

	return status, err
}

// SetAlarmStatus stores the alarm status.
func (r *FileRepository) SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	return r.write(ctx, func(s *snapshot) error {
		s.alarm = status

		return nil
	})
}

// ArmingStatus returns the stored arming status.
func (r *FileRepository) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	var status domain.ArmingStatus

	err := r.read(ctx, func(s snapshot) {
		status = s.arming
	})

	return status, err
}

// SetArmingStatus stores the arming status.
func (r *FileRepository) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	return r.write(ctx, func(s *snapshot) error {
		s.arming = status

		return nil
	})
}

// Sensors returns copies of all sensors ordered by name.
func (r *FileRepository) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	var sensors []*domain.Sensor

	err := r.read(ctx, func(s snapshot) {
		sensors = s.sortedSensors()
	})

	return sensors, err
}

// AddSensor stores a sensor, replacing one with the same name.
func (r *FileRepository) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	return r.write(ctx, func(s *snapshot) error {
		return s.addSensor(sensor)
	})
}

// RemoveSensor deletes a sensor by name. Unknown sensors are ignored.
func (r *FileRepository) RemoveSensor(ctx context.Context, sensor *domain.Sensor) error {
	return r.write(ctx, func(s *snapshot) error {
		return s.removeSensor(sensor)
	})
}

// UpdateSensor replaces a stored sensor.
func (r *FileRepository) UpdateSensor(ctx context.Context, sensor *domain.Sensor) error {
	return r.write(ctx, func(s *snapshot) error {
		return s.updateSensor(sensor)
	})
}

func (r *FileRepository) read(ctx context.Context, fn func(s snapshot)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	fn(r.state)

	return nil
}

// write applies fn to a copy of the state and keeps it only if the file was written.
func (r *FileRepository) write(ctx context.Context, fn func(s *snapshot) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	next := r.state.clone()
	if err := fn(&next); err != nil {
		return err
	}

	if err := r.save(next); err != nil {
		return err
	}

	r.state = next

	return nil
}

func (r *FileRepository) ensureLoaded(_ context.Context) error {
	if r.loaded {
		return nil
	}

	contents, err := os.ReadFile(r.path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		r.state = newSnapshot()
	case err != nil:
		return fmt.Errorf("read state file: %w", err)
	default:
		loaded, decodeErr := decodeSnapshot(contents)
		if decodeErr != nil {
			return fmt.Errorf("decode state file: %w", decodeErr)
		}

		r.state = loaded
	}

	r.loaded = true

	return nil
}

func (r *FileRepository) save(s snapshot) error {
	data, err := encodeSnapshot(s, time.Now())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// encodeSnapshot renders the state as multi-line protobuf JSON.
func encodeSnapshot(s snapshot, updatedAt time.Time) ([]byte, error) {
	sensors := make([]any, 0, len(s.sensors))
	for _, sensor := range s.sortedSensors() {
		sensors = append(sensors, map[string]any{
			"id":     sensor.ID.String(),
			"name":   sensor.Name,
			"type":   sensor.Type.String(),
			"active": sensor.Active,
		})
	}

	message, err := structpb.NewStruct(map[string]any{
		"alarm_status":  s.alarm.String(),
		"arming_status": s.arming.String(),
		"updated_at":    updatedAt.UTC().Format(time.RFC3339Nano),
		"sensors":       sensors,
	})
	if err != nil {
		return nil, err
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline:       true,
		EmitUnpopulated: true,
	}

	return marshalOptions.Marshal(message)
}

func decodeSnapshot(contents []byte) (snapshot, error) {
	var message structpb.Struct
	if err := protojson.Unmarshal(contents, &message); err != nil {
		return snapshot{}, err
	}

	fields := message.GetFields()
	result := newSnapshot()

	alarm, err := domain.ParseAlarmStatus(fields["alarm_status"].GetStringValue())
	if err != nil {
		return snapshot{}, err
	}

	arming, err := domain.ParseArmingStatus(fields["arming_status"].GetStringValue())
	if err != nil {
		return snapshot{}, err
	}

	result.alarm = alarm
	result.arming = arming

	for _, value := range fields["sensors"].GetListValue().GetValues() {
		sensor, decodeErr := decodeSensor(value.GetStructValue())
		if decodeErr != nil {
			return snapshot{}, decodeErr
		}

		result.sensors[sensor.Name] = sensor
	}

	return result, nil
}

func decodeSensor(message *structpb.Struct) (*domain.Sensor, error) {
	fields := message.GetFields()

	name := fields["name"].GetStringValue()
	if name == "" {
		return nil, fmt.Errorf("sensor without name: %w", errMalformedState)
	}

	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("sensor %q id: %w", name, err)
	}

	sensorType, err := domain.ParseSensorType(fields["type"].GetStringValue())
	if err != nil {
		return nil, err
	}

	return &domain.Sensor{
		ID:     id,
		Name:   name,
		Type:   sensorType,
		Active: fields["active"].GetBoolValue(),
	}, nil
}
