package models

import "time"

// DailyGame binds a calendar date (UTC, day granularity) to the Solo served
// that day. At most one row exists per date; the store enforces it.
type DailyGame struct {
	ID     int       `gorm:"primaryKey" json:"id"`
	Date   time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	SoloID int       `gorm:"not null" json:"solo_id"`
}
