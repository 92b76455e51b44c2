package models

import "time"

// ShortsScript represents the shorts_scripts table
type ShortsScript struct {
	ID           string    `gorm:"primaryKey"`
	Theme        string    `gorm:"column:theme;index;not null"`
	Duration     int       `gorm:"column:duration;not null"`
	ScriptFormat string    `gorm:"column:script_format;not null"`
	Tone         string    `gorm:"column:tone;not null"`
	Sections     []byte    `gorm:"column:sections;type:jsonb;not null"`
	GeneratedAt  time.Time `gorm:"column:generated_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}
