package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

const (
	alarmStatusKey  = "alarm_status"
	armingStatusKey = "arming_status"
)

// migrations are applied in order; the index plus one is the schema version.
//
//nolint:gochecknoglobals // Static schema definition.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sensors (
		name TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		type TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// SQLiteRepository stores the state in a SQLite database.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepository opens (creating if needed) the database at path and migrates it.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps writes ordered and in-memory databases shared.
	db.SetMaxOpenConns(1)

	r := &SQLiteRepository{
		db:   db,
		path: path,
	}

	if err = r.migrate(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return r, nil
}

// Close releases the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Path returns the database location.
func (r *SQLiteRepository) Path() string {
	return r.path
}

func (r *SQLiteRepository) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var current int
	if err = r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		if err = r.applyMigration(ctx, i+1, migrations[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *SQLiteRepository) applyMigration(ctx context.Context, version int, statement string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", version, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("apply migration %d: %w", version, err)
	}

	if _, err = tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("record migration %d: %w", version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", version, err)
	}

	return nil
}

// AlarmStatus returns the stored alarm status, NO_ALARM if never set.
func (r *SQLiteRepository) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	value, err := r.setting(ctx, alarmStatusKey)
	if err != nil || value == "" {
		return domain.NoAlarm, err
	}

	return domain.ParseAlarmStatus(value)
}

// SetAlarmStatus stores the alarm status.
func (r *SQLiteRepository) SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	return r.setSetting(ctx, alarmStatusKey, status.String())
}

// ArmingStatus returns the stored arming status, DISARMED if never set.
func (r *SQLiteRepository) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	value, err := r.setting(ctx, armingStatusKey)
	if err != nil || value == "" {
		return domain.Disarmed, err
	}

	return domain.ParseArmingStatus(value)
}

// SetArmingStatus stores the arming status.
func (r *SQLiteRepository) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	return r.setSetting(ctx, armingStatusKey, status.String())
}

// Sensors returns all sensors ordered by name.
func (r *SQLiteRepository) Sensors(ctx context.Context) ([]*domain.Sensor, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, type, active FROM sensors ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query sensors: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	var sensors []*domain.Sensor

	for rows.Next() {
		var (
			id, name, sensorType string
			active               bool
		)

		if err = rows.Scan(&id, &name, &sensorType, &active); err != nil {
			return nil, fmt.Errorf("scan sensor: %w", err)
		}

		sensor, parseErr := parseSensorRow(id, name, sensorType, active)
		if parseErr != nil {
			return nil, parseErr
		}

		sensors = append(sensors, sensor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sensors: %w", err)
	}

	return sensors, nil
}

// AddSensor stores a sensor, replacing one with the same name.
func (r *SQLiteRepository) AddSensor(ctx context.Context, sensor *domain.Sensor) error {
	if err := validateSensor(sensor); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sensors (name, id, type, active, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			type = excluded.type,
			active = excluded.active,
			updated_at = CURRENT_TIMESTAMP
	`, sensor.Name, sensor.ID.String(), sensor.Type.String(), sensor.Active)
	if err != nil {
		return fmt.Errorf("insert sensor %q: %w", sensor.Name, err)
	}

	return nil
}

// RemoveSensor deletes a sensor by name. Unknown sensors are ignored.
func (r *SQLiteRepository) RemoveSensor(ctx context.Context, sensor *domain.Sensor) error {
	if err := validateSensor(sensor); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM sensors WHERE name = ?", sensor.Name); err != nil {
		return fmt.Errorf("delete sensor %q: %w", sensor.Name, err)
	}

	return nil
}

// UpdateSensor replaces a stored sensor.
func (r *SQLiteRepository) UpdateSensor(ctx context.Context, sensor *domain.Sensor) error {
	if err := validateSensor(sensor); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE sensors SET id = ?, type = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, sensor.ID.String(), sensor.Type.String(), sensor.Active, sensor.Name)
	if err != nil {
		return fmt.Errorf("update sensor %q: %w", sensor.Name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sensor %q: %w", sensor.Name, err)
	}

	if affected == 0 {
		return fmt.Errorf("update %q: %w", sensor.Name, ErrSensorNotFound)
	}

	return nil
}

func (r *SQLiteRepository) setting(ctx context.Context, key string) (string, error) {
	var value string

	err := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}

	return value, nil
}

func (r *SQLiteRepository) setSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}

	return nil
}

func parseSensorRow(id, name, sensorType string, active bool) (*domain.Sensor, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("sensor %q id: %w", name, err)
	}

	parsedType, err := domain.ParseSensorType(sensorType)
	if err != nil {
		return nil, err
	}

	return &domain.Sensor{
		ID:     parsedID,
		Name:   name,
		Type:   parsedType,
		Active: active,
	}, nil
}
