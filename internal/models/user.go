package models

import "time"

// User represents a platform account ingested from the identity provider.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClerkID   string    `gorm:"size:255;uniqueIndex;not null" json:"clerk_id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	CohortID  *uint     `json:"cohort_id"`
	Cohort    *Cohort   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// RoleStudent identifies cohort members who submit weekly projects.
	RoleStudent = "student"
	// RoleAdmin identifies staff who grade submissions and manage resources.
	RoleAdmin = "admin"
)

// IsAdmin reports whether the user can grade and manage resources.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
