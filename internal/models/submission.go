package models

import "time"

// Submission is a weekly project submission. Link fields are stored exactly
// as supplied; the workflow performs no URL validation. Multiple submissions
// for the same student and week are permitted.
type Submission struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	StudentID        uint       `gorm:"not null;index" json:"student_id"`
	WeekNumber       int        `gorm:"not null;index" json:"week_number"`
	VideoURL         string     `gorm:"size:512" json:"video_url"`
	GithubURL        string     `gorm:"size:512" json:"github_url"`
	SocialURL        string     `gorm:"size:512" json:"social_url"`
	DocumentURL      string     `gorm:"size:512" json:"document_url"`
	SocialEngagement int        `gorm:"not null;default:0" json:"social_engagement"`
	IsPassed         *bool      `json:"is_passed"`
	SubmittedAt      time.Time  `gorm:"not null" json:"submitted_at"`
	GradedAt         *time.Time `json:"graded_at"`
	GradedBy         *uint      `json:"graded_by"`
	Student          User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
	Grader           *User      `gorm:"foreignKey:GradedBy" json:"grader,omitempty"`
}

// IsGraded reports whether a grading outcome has been recorded. The grading
// trio (IsPassed, GradedBy, GradedAt) is always written together.
func (s Submission) IsGraded() bool {
	return s.IsPassed != nil
}
