package store

import "time"

// SensorLatest is one row of the latest-per-sensor join: a sensor's metadata
// augmented with its most recent reading. The reading columns are nil when the
// sensor has no readings yet.
type SensorLatest struct {
	SensorID    string     `json:"sensor_id"`
	ElementID   string     `json:"element_id"`
	ElementName string     `json:"element_name"`
	Location    string     `json:"location"`
	SensorType  string     `json:"sensor_type"`
	Temperature *float64   `json:"temperature"`
	Humidity    *float64   `json:"humidity"`
	CO2         *float64   `json:"co2"`
	Timestamp   *time.Time `json:"timestamp"`
}

// ReadingPoint is the history projection of a reading: channel values and
// observation time only.
type ReadingPoint struct {
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	CO2         *float64  `json:"co2"`
	Timestamp   time.Time `json:"timestamp"`
}
