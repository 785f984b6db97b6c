// Package seed provisions the demo sensor set and backfills historical
// readings. Running it against an already-seeded store is safe: duplicate
// sensors are reported and skipped.
package seed

import (
	"context"
	"errors"
	"log"
	"time"

	"building-telemetry-backend/config"
	"building-telemetry-backend/internal/model"
	"building-telemetry-backend/internal/simulate"
	"building-telemetry-backend/internal/store"
)

// Sensors is the demo sensor set, each bound to an IFC building element.
var Sensors = []model.Sensor{
	{SensorID: "SENS-001", ElementID: "wall-001", ElementName: "Exterior Wall - North", Location: "Floor 1, North Wall", SensorType: "multi"},
	{SensorID: "SENS-002", ElementID: "room-001", ElementName: "Conference Room A", Location: "Floor 1, Room 101", SensorType: "multi"},
	{SensorID: "SENS-003", ElementID: "hvac-001", ElementName: "HVAC Unit 1", Location: "Floor 1, Mechanical Room", SensorType: "multi"},
	{SensorID: "SENS-004", ElementID: "wall-002", ElementName: "Interior Wall - Office", Location: "Floor 2, Office Space", SensorType: "multi"},
	{SensorID: "SENS-005", ElementID: "room-002", ElementName: "Server Room", Location: "Floor 1, Room 105", SensorType: "multi"},
	{SensorID: "SENS-006", ElementID: "window-001", ElementName: "Window - South Facade", Location: "Floor 2, South Side", SensorType: "multi"},
	{SensorID: "SENS-007", ElementID: "room-003", ElementName: "Meeting Room B", Location: "Floor 1, Room 102", SensorType: "multi"},
	{SensorID: "SENS-008", ElementID: "corridor-001", ElementName: "Main Corridor", Location: "Floor 1, Main Hallway", SensorType: "multi"},
}

// Result summarizes one seeding run.
type Result struct {
	SensorsAdded   int
	SensorsSkipped int
	ReadingsAdded  int
}

// Run provisions the demo sensors and backfills readings covering the
// configured history window for each newly added sensor. Per-item failures
// are logged and the run continues with the next item.
func Run(ctx context.Context, st store.Store, cfg *config.SeedConfig) Result {
	var res Result
	now := time.Now().UTC()

	for i := range Sensors {
		sensor := Sensors[i]
		if err := st.AddSensor(ctx, &sensor); err != nil {
			if errors.Is(err, store.ErrDuplicateSensor) {
				log.Printf("Sensor %s already exists", sensor.SensorID)
				res.SensorsSkipped++
			} else {
				log.Printf("Error adding sensor %s: %v", sensor.SensorID, err)
			}
			continue
		}
		res.SensorsAdded++

		added := backfill(ctx, st, sensor.SensorID, i, now, cfg)
		res.ReadingsAdded += added
		log.Printf("Generated %d readings for %s", added, sensor.SensorID)
	}

	total, err := st.SensorCount(ctx)
	if err != nil {
		log.Printf("Error counting sensors after seeding: %v", err)
	}
	log.Printf("Seeding complete: %d sensors added, %d already present, %d total, %d readings", res.SensorsAdded, res.SensorsSkipped, total, res.ReadingsAdded)
	return res
}

// backfill inserts one reading per step covering the preceding history window,
// oldest step first. Bases vary per sensor index, with a day/night cycle
// adjustment on top.
func backfill(ctx context.Context, st store.Store, sensorID string, index int, now time.Time, cfg *config.SeedConfig) int {
	baseTemperature := 20 + float64(index%5)
	baseHumidity := 40 + float64(index%15)
	baseCO2 := 400 + float64(index)*20

	step := time.Duration(cfg.StepMinutes) * time.Minute
	steps := int(time.Duration(cfg.HistoryHours) * time.Hour / step)

	added := 0
	for n := steps; n >= 0; n-- {
		ts := now.Add(-time.Duration(n) * step)
		vals := simulate.Reading(baseTemperature, baseHumidity, baseCO2).
			WithDiurnal(simulate.Diurnal(ts))

		reading := &model.Reading{
			SensorID:    sensorID,
			Temperature: &vals.Temperature,
			Humidity:    &vals.Humidity,
			CO2:         &vals.CO2,
			Timestamp:   ts,
		}
		if err := st.AddReading(ctx, reading); err != nil {
			log.Printf("Error adding reading for %s: %v", sensorID, err)
			continue
		}
		added++
	}
	return added
}
