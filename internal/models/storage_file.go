package models

import "time"

// File categories stored in storage_files.category.
const (
	FileCategoryReport        = "report"
	FileCategoryScheduledPost = "scheduled_post"
)

// Report types stored in storage_files.report_type.
const (
	ReportTypeYouTubeAnalytics = "youtube_analytics"
	ReportTypeXAnalytics       = "x_analytics"
)

// StorageFile represents the storage_files table
type StorageFile struct {
	ID          string    `gorm:"primaryKey"`
	Category    string    `gorm:"column:category;index;not null"`
	ReportType  string    `gorm:"column:report_type;index"`
	FileName    string    `gorm:"column:file_name;index;not null"`
	FilePath    string    `gorm:"column:file_path;uniqueIndex;not null"`
	FileSize    int64     `gorm:"column:file_size;not null"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// Scheduled post statuses.
const (
	PostStatusPending   = "pending"
	PostStatusPosted    = "posted"
	PostStatusCancelled = "cancelled"
)

// ScheduledPost represents the scheduled_posts table
type ScheduledPost struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Content           string    `gorm:"column:content;type:text;not null" json:"content"`
	ImagePath         string    `gorm:"column:image_path" json:"image_path,omitempty"`
	ScheduledDatetime time.Time `gorm:"column:scheduled_datetime;index;not null" json:"scheduled_datetime"`
	Status            string    `gorm:"column:status;index;not null;default:pending" json:"status"`
	CreatedAt         time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at" json:"updated_at"`
}
