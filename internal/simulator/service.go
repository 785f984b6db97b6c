// Package simulator drives the periodic simulated-reading updates.
package simulator

import (
	"context"
	"log"
	"time"

	"building-telemetry-backend/config"
	"building-telemetry-backend/internal/model"
	"building-telemetry-backend/internal/simulate"
	"building-telemetry-backend/internal/store"
)

// Service appends one simulated reading per known sensor on a fixed period.
// It is a managed task: Run returns when the passed context is cancelled.
type Service struct {
	cfg   *config.SimulatorConfig
	store store.Store
}

// NewService creates a new simulator service.
func NewService(cfg *config.SimulatorConfig, st store.Store) *Service {
	return &Service{cfg: cfg, store: st}
}

// Run starts the update loop. The first tick fires after one full interval;
// seeded data covers the gap.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Simulator is disabled. Not starting.")
		return
	}
	log.Printf("Starting simulator service, interval %s...", s.cfg.Interval)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Simulator service shutting down.")
			return
		case <-timer.C:
			s.TickOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// TickOnce generates one default-base reading for every sensor the store
// currently knows about. A failure for one sensor does not abort the tick for
// the rest; the tick is not transactional.
func (s *Service) TickOnce(ctx context.Context) {
	sensors, err := s.store.LatestPerSensor(ctx)
	if err != nil {
		log.Printf("Error listing sensors for update tick: %v", err)
		return
	}

	now := time.Now().UTC()
	updated := 0
	for _, sensor := range sensors {
		vals := simulate.Reading(
			simulate.DefaultBaseTemperature,
			simulate.DefaultBaseHumidity,
			simulate.DefaultBaseCO2,
		)
		reading := &model.Reading{
			SensorID:    sensor.SensorID,
			Temperature: &vals.Temperature,
			Humidity:    &vals.Humidity,
			CO2:         &vals.CO2,
			Timestamp:   now,
		}
		if err := s.store.AddReading(ctx, reading); err != nil {
			log.Printf("Error updating sensor %s: %v", sensor.SensorID, err)
			continue
		}
		updated++
	}

	log.Printf("Updated %d sensors", updated)
}
