package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"building-telemetry-backend/config"
	"building-telemetry-backend/internal/api"
	"building-telemetry-backend/internal/auth"
	"building-telemetry-backend/internal/db"
	"building-telemetry-backend/internal/model"
	"building-telemetry-backend/internal/seed"
	"building-telemetry-backend/internal/simulator"
	"building-telemetry-backend/internal/store"
)

type latestEnvelope struct {
	Success   bool                 `json:"success"`
	Count     int                  `json:"count"`
	Data      []store.SensorLatest `json:"data"`
	Timestamp time.Time            `json:"timestamp"`
}

type historyEnvelope struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Data    []store.ReadingPoint `json:"data"`
}

func setupBackend(t *testing.T, name string) (store.Store, *gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})

	// Running the migration twice proves schema creation is idempotent.
	require.NoError(t, db.Migrate(testDB))
	require.NoError(t, db.Migrate(testDB))

	appStore := store.NewGormStore(testDB)
	router := api.NewRouter(appStore, auth.NewRegistry(), &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
	})
	return appStore, testDB, router
}

func getJSON(t *testing.T, router *gin.Engine, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

// TestSensorPipelineLifecycle walks the whole pipeline: seed, simulated tick,
// and the two read endpoints the UI consumes.
func TestSensorPipelineLifecycle(t *testing.T) {
	ctx := context.Background()
	appStore, testDB, router := setupBackend(t, "pipeline")

	seedCfg := &config.SeedConfig{Enabled: true, HistoryHours: 24, StepMinutes: 30}
	res := seed.Run(ctx, appStore, seedCfg)
	require.Equal(t, 8, res.SensorsAdded)

	t.Run("latest feed covers every seeded sensor", func(t *testing.T) {
		var resp latestEnvelope
		code := getJSON(t, router, "/api/sensors/latest", &resp)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, resp.Success)
		assert.Equal(t, 8, resp.Count)

		for i, row := range resp.Data {
			assert.Equal(t, seed.Sensors[i].SensorID, row.SensorID, "rows come back ordered by sensor_id")
			require.NotNil(t, row.Temperature, "every seeded sensor has a latest reading")
			require.NotNil(t, row.Timestamp)
		}
	})

	t.Run("simulated tick advances the latest feed", func(t *testing.T) {
		var before latestEnvelope
		getJSON(t, router, "/api/sensors/latest", &before)

		simCfg := &config.Config{Simulator: config.SimulatorConfig{Enabled: true}}
		simCfg.ApplyDefaults()
		simulator.NewService(&simCfg.Simulator, appStore).TickOnce(ctx)

		var after latestEnvelope
		getJSON(t, router, "/api/sensors/latest", &after)
		require.Equal(t, 8, after.Count)
		for i := range after.Data {
			assert.True(t, after.Data[i].Timestamp.After(*before.Data[i].Timestamp),
				"sensor %s should carry the tick's reading", after.Data[i].SensorID)
		}

		var readingCount int64
		testDB.Model(&model.Reading{}).Count(&readingCount)
		assert.Equal(t, int64(8*49+8), readingCount, "one new reading per sensor")
	})

	t.Run("history is bounded and newest first", func(t *testing.T) {
		var resp historyEnvelope
		code := getJSON(t, router, "/api/sensors/SENS-003/history?limit=10", &resp)
		assert.Equal(t, http.StatusOK, code)
		require.Equal(t, 10, resp.Count)
		for i := 1; i < len(resp.Data); i++ {
			assert.False(t, resp.Data[i].Timestamp.After(resp.Data[i-1].Timestamp))
		}
	})
}

// TestLatestReflectsNewestOfThree is the reference scenario: three readings
// T1<T2<T3, history limit 2 returns [T3, T2], latest matches T3.
func TestLatestReflectsNewestOfThree(t *testing.T) {
	ctx := context.Background()
	appStore, _, router := setupBackend(t, "scenario")

	require.NoError(t, appStore.AddSensor(ctx, &model.Sensor{
		SensorID: "SENS-001", ElementID: "wall-001", ElementName: "Exterior Wall - North",
		Location: "Floor 1, North Wall", SensorType: "multi",
	}))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	temps := []float64{19.5, 20.5, 21.5}
	for i := range temps {
		h := 45.0 + float64(i)
		c := 400.0 + float64(i)*10
		require.NoError(t, appStore.AddReading(ctx, &model.Reading{
			SensorID: "SENS-001", Temperature: &temps[i], Humidity: &h, CO2: &c,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	var history historyEnvelope
	getJSON(t, router, "/api/sensors/SENS-001/history?limit=2", &history)
	require.Equal(t, 2, history.Count)
	assert.Equal(t, 21.5, *history.Data[0].Temperature)
	assert.Equal(t, 20.5, *history.Data[1].Temperature)

	var latest latestEnvelope
	getJSON(t, router, "/api/sensors/latest", &latest)
	require.Equal(t, 1, latest.Count)
	assert.Equal(t, 21.5, *latest.Data[0].Temperature)
	assert.Equal(t, 47.0, *latest.Data[0].Humidity)
	assert.Equal(t, 420.0, *latest.Data[0].CO2)
	assert.Equal(t, base.Add(2*time.Hour).Unix(), latest.Data[0].Timestamp.Unix())
}
