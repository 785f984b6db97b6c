package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"building-telemetry-backend/config"
	"building-telemetry-backend/internal/model"
	"building-telemetry-backend/internal/store"
)

func newTestStore(t *testing.T) (store.Store, *gorm.DB) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&model.Sensor{}, &model.Reading{}))
	return store.NewGormStore(db), db
}

func seedConfig() *config.SeedConfig {
	return &config.SeedConfig{Enabled: true, HistoryHours: 24, StepMinutes: 30}
}

func TestRunSeedsSensorsAndBackfill(t *testing.T) {
	st, db := newTestStore(t)

	res := Run(context.Background(), st, seedConfig())

	assert.Equal(t, len(Sensors), res.SensorsAdded)
	assert.Equal(t, 0, res.SensorsSkipped)
	// 24h at 30-minute steps is 48 intervals, 49 points per sensor.
	assert.Equal(t, 49*len(Sensors), res.ReadingsAdded)

	var sensorCount, readingCount int64
	db.Model(&model.Sensor{}).Count(&sensorCount)
	db.Model(&model.Reading{}).Count(&readingCount)
	assert.Equal(t, int64(len(Sensors)), sensorCount)
	assert.Equal(t, int64(49*len(Sensors)), readingCount)

	// Backfill covers the preceding day.
	history, err := st.History(context.Background(), "SENS-001", 100)
	require.NoError(t, err)
	require.Len(t, history, 49)
	newest := history[0].Timestamp
	oldest := history[len(history)-1].Timestamp
	assert.WithinDuration(t, time.Now().UTC(), newest, time.Minute)
	assert.WithinDuration(t, newest.Add(-24*time.Hour), oldest, time.Minute)
}

func TestRunIsIdempotent(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	Run(ctx, st, seedConfig())

	var sensorsBefore, readingsBefore int64
	db.Model(&model.Sensor{}).Count(&sensorsBefore)
	db.Model(&model.Reading{}).Count(&readingsBefore)

	res := Run(ctx, st, seedConfig())
	assert.Equal(t, 0, res.SensorsAdded)
	assert.Equal(t, len(Sensors), res.SensorsSkipped, "every sensor is reported as a duplicate")
	assert.Equal(t, 0, res.ReadingsAdded, "existing sensors are not backfilled again")

	var sensorsAfter, readingsAfter int64
	db.Model(&model.Sensor{}).Count(&sensorsAfter)
	db.Model(&model.Reading{}).Count(&readingsAfter)
	assert.Equal(t, sensorsBefore, sensorsAfter)
	assert.Equal(t, readingsBefore, readingsAfter)
}
