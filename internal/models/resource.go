package models

import "time"

// Resource is a shared course material scoped to a cohort. WeekNumber is nil
// for general resources that are not tied to a specific week.
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	URL         string    `gorm:"size:512;not null" json:"url"`
	Type        string    `gorm:"size:32;not null;index" json:"type"`
	WeekNumber  *int      `gorm:"index" json:"week_number"`
	CohortID    uint      `gorm:"not null;index" json:"cohort_id"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Creator     User      `gorm:"foreignKey:CreatedBy" json:"creator"`
}

const (
	ResourceTypeRecording = "recording"
	ResourceTypeGithub    = "github"
	ResourceTypeSlides    = "slides"
	ResourceTypeDocument  = "document"
	ResourceTypeCommunity = "community"
)
