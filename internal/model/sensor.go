package model

import "time"

// Sensor represents a stationary monitoring point bound to one IFC building element.
type Sensor struct {
	ID          int64     `gorm:"primaryKey" json:"-"`
	SensorID    string    `gorm:"uniqueIndex;size:64;not null" json:"sensor_id"`
	ElementID   string    `gorm:"size:128;not null" json:"element_id"`
	ElementName string    `gorm:"size:256" json:"element_name"`
	Location    string    `gorm:"size:256" json:"location"`
	SensorType  string    `gorm:"size:64;not null" json:"sensor_type"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`

	// Associations
	Readings []Reading `gorm:"foreignKey:SensorID;references:SensorID"`
}
