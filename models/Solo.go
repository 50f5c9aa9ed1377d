package models

// Solo represents one puzzle unit: a guitar-solo clip within a track plus
// the metadata revealed to the player as the round progresses. Title is the
// answer key. SoloStartMs and SoloEndMs bound the clip within the track;
// SoloEndMs must be greater than SoloStartMs, which must be non-negative.
type Solo struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Artist      string `gorm:"type:varchar(255);not null" json:"artist"`
	Guitarist   string `gorm:"type:varchar(255)" json:"guitarist"`
	SpotifyID   string `gorm:"type:varchar(64);not null" json:"spotify_id"`
	SoloStartMs int    `gorm:"not null" json:"solo_start_ms"`
	SoloEndMs   int    `gorm:"not null" json:"solo_end_ms"`
	Hint        string `gorm:"type:text" json:"hint"`
}
