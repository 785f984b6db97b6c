// Package simulate produces randomized sensor channel values for seeding and
// for the live update tick.
package simulate

import (
	"math"
	"math/rand"
	"time"
)

// Default channel bases for a simulated reading.
const (
	DefaultBaseTemperature = 22.0
	DefaultBaseHumidity    = 45.0
	DefaultBaseCO2         = 400.0
)

// Spread widths per channel. Each generated value lands in
// [base-spread/2, base+spread/2].
const (
	temperatureSpread = 4.0
	humiditySpread    = 10.0
	co2Spread         = 100.0
)

// Diurnal cycle amplitudes applied at seed time.
const (
	temperatureAmplitude = 2.0
	humidityAmplitude    = 5.0
	co2Amplitude         = 100.0
)

// Channels holds one generated observation. Temperature and humidity carry one
// decimal, co2 a whole number of ppm.
type Channels struct {
	Temperature float64
	Humidity    float64
	CO2         float64
}

// Reading generates one randomized observation around the given bases.
func Reading(baseTemperature, baseHumidity, baseCO2 float64) Channels {
	return Channels{
		Temperature: round1(baseTemperature + jitter(temperatureSpread)),
		Humidity:    round1(baseHumidity + jitter(humiditySpread)),
		CO2:         math.Round(baseCO2 + jitter(co2Spread)),
	}
}

// Diurnal returns the day/night cycle factor for t, in [0,1]: zero around
// midnight, peaking mid-day.
func Diurnal(t time.Time) float64 {
	return math.Sin(float64(t.Hour()) / 24 * math.Pi)
}

// WithDiurnal applies the day/night adjustment for factor f: warmer and more
// CO2 during the day, drier air.
func (c Channels) WithDiurnal(f float64) Channels {
	return Channels{
		Temperature: round1(c.Temperature + f*temperatureAmplitude),
		Humidity:    round1(c.Humidity - f*humidityAmplitude),
		CO2:         math.Round(c.CO2 + f*co2Amplitude),
	}
}

func jitter(width float64) float64 {
	return rand.Float64()*width - width/2
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
