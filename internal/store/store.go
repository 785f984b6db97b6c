package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"building-telemetry-backend/internal/model"
)

// DefaultHistoryLimit bounds a history query when the caller supplies no
// usable limit.
const DefaultHistoryLimit = 100

var (
	// ErrDuplicateSensor reports a sensor_id uniqueness violation on AddSensor.
	ErrDuplicateSensor = errors.New("sensor already exists")
	// ErrUnknownSensor reports a reading referencing a sensor_id that does not exist.
	ErrUnknownSensor = errors.New("unknown sensor")
)

// Store defines the persistence operations of the sensor data pipeline.
// Readings are append-only; they are removed only by the cascade from
// RemoveSensor.
type Store interface {
	AddSensor(ctx context.Context, sensor *model.Sensor) error
	AddReading(ctx context.Context, reading *model.Reading) error
	RemoveSensor(ctx context.Context, sensorID string) error
	LatestPerSensor(ctx context.Context) ([]SensorLatest, error)
	History(ctx context.Context, sensorID string, limit int) ([]ReadingPoint, error)
	SensorCount(ctx context.Context) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// AddSensor inserts one sensor row. A sensor_id collision is reported as
// ErrDuplicateSensor so provisioning callers can skip and continue.
func (s *gormStore) AddSensor(ctx context.Context, sensor *model.Sensor) error {
	err := s.db.WithContext(ctx).Omit("Readings").Create(sensor).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("sensor %s: %w", sensor.SensorID, ErrDuplicateSensor)
	}
	return fmt.Errorf("failed to insert sensor %s: %w", sensor.SensorID, err)
}

// AddReading appends one reading row. The timestamp defaults to the current
// UTC time when the producer did not supply one. Duplicate timestamps per
// sensor are allowed.
func (s *gormStore) AddReading(ctx context.Context, reading *model.Reading) error {
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now().UTC()
	}
	err := s.db.WithContext(ctx).Omit("Sensor").Create(reading).Error
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("reading for %s: %w", reading.SensorID, ErrUnknownSensor)
	}
	return fmt.Errorf("failed to insert reading for %s: %w", reading.SensorID, err)
}

// RemoveSensor deletes a sensor; its readings go with it via the cascade.
// Removing an unknown sensor is a no-op.
func (s *gormStore) RemoveSensor(ctx context.Context, sensorID string) error {
	if err := s.db.WithContext(ctx).
		Where("sensor_id = ?", sensorID).
		Delete(&model.Sensor{}).Error; err != nil {
		return fmt.Errorf("failed to delete sensor %s: %w", sensorID, err)
	}
	return nil
}

// latestPerSensorQuery joins every sensor with its single most recent reading.
// The correlated subquery makes tie resolution deterministic (max timestamp,
// then max row id) on both SQLite and Postgres, unlike a bare GROUP BY.
const latestPerSensorQuery = `
SELECT
	s.sensor_id,
	s.element_id,
	s.element_name,
	s.location,
	s.sensor_type,
	r.temperature,
	r.humidity,
	r.co2,
	r.timestamp
FROM sensors s
LEFT JOIN sensor_readings r ON r.id = (
	SELECT id FROM sensor_readings
	WHERE sensor_id = s.sensor_id
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
)
ORDER BY s.sensor_id ASC`

// LatestPerSensor returns every sensor with its most recent reading, ordered
// by sensor_id ascending. Sensors without readings appear with nil channels.
func (s *gormStore) LatestPerSensor(ctx context.Context) ([]SensorLatest, error) {
	rows := make([]SensorLatest, 0)
	if err := s.db.WithContext(ctx).Raw(latestPerSensorQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query latest readings: %w", err)
	}
	return rows, nil
}

// History returns up to limit readings for one sensor, newest first. Duplicate
// timestamps fall back to insertion-recency order. An unknown sensor yields an
// empty slice, not an error.
func (s *gormStore) History(ctx context.Context, sensorID string, limit int) ([]ReadingPoint, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	points := make([]ReadingPoint, 0, limit)
	if err := s.db.WithContext(ctx).
		Model(&model.Reading{}).
		Select("temperature", "humidity", "co2", "timestamp").
		Where("sensor_id = ?", sensorID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", sensorID, err)
	}
	return points, nil
}

// SensorCount returns the number of provisioned sensors.
func (s *gormStore) SensorCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Sensor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sensors: %w", err)
	}
	return count, nil
}

// isUniqueViolation matches the uniqueness signal across drivers: GORM's
// translated error where available, otherwise the raw SQLite and Postgres
// messages.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}
