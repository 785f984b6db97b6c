package model

import "time"

// Reading is one timestamped observation from a sensor. Rows are append-only;
// each channel is independently nullable (a reading may omit a channel).
type Reading struct {
	ID          int64     `gorm:"primaryKey" json:"-"`
	SensorID    string    `gorm:"index;size:64;not null" json:"sensor_id"`
	Temperature *float64  `json:"temperature"`
	Humidity    *float64  `json:"humidity"`
	CO2         *float64  `gorm:"column:co2" json:"co2"`
	Timestamp   time.Time `gorm:"index;not null" json:"timestamp"`

	// Associations
	Sensor Sensor `gorm:"foreignKey:SensorID;references:SensorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the historical relation name.
func (Reading) TableName() string { return "sensor_readings" }
