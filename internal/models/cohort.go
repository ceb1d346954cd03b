package models

import "time"

// Cohort is a time-boxed group of students sharing a start and end date.
// Week numbers are always computed against StartDate; cohorts are never
// mutated after creation.
type Cohort struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	Users     []User    `json:"-"`
}
