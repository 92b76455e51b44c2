package models

import "time"

// LivePlan represents the live_plans table
type LivePlan struct {
	ID                 string    `gorm:"primaryKey"`
	Type               string    `gorm:"column:type;index;not null"`
	Title              string    `gorm:"column:title;index;not null"`
	DurationHours      int       `gorm:"column:duration_hours;not null"`
	DurationMinutes    int       `gorm:"column:duration_minutes;not null"`
	Purposes           []byte    `gorm:"column:purposes;type:jsonb;not null"`
	TargetAudience     string    `gorm:"column:target_audience;not null"`
	PreferredTimeStart string    `gorm:"column:preferred_time_start"`
	PreferredTimeEnd   string    `gorm:"column:preferred_time_end"`
	Notes              string    `gorm:"column:notes;type:text"`
	Difficulty         string    `gorm:"column:difficulty"`
	Flow               []byte    `gorm:"column:flow;type:jsonb;not null"`
	Preparations       []byte    `gorm:"column:preparations;type:jsonb;not null"`
	GeneratedAt        time.Time `gorm:"column:generated_at;not null"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}
