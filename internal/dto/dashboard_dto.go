package dto

import "time"

// StudentDashboardResponse aggregates a student's submission history.
type StudentDashboardResponse struct {
	StudentID        uint       `json:"student_id"`
	CurrentWeek      int        `json:"current_week"`
	TotalSubmissions int        `json:"total_submissions"`
	Passed           int        `json:"passed"`
	Failed           int        `json:"failed"`
	Pending          int        `json:"pending"`
	WeeksSubmitted   []int      `json:"weeks_submitted"`
	LastSubmittedAt  *time.Time `json:"last_submitted_at"`
}
