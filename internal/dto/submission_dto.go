package dto

import (
	"time"

	"github.com/cohortly/cohort-api/internal/models"
)

// SubmissionCreateRequest is the payload for submitting a weekly project.
// Link fields are accepted verbatim; the week number is checked against the
// submission window by the service, not by the validator, so that closed
// weeks surface as a window error rather than a generic validation failure.
type SubmissionCreateRequest struct {
	WeekNumber  int    `json:"week_number"`
	VideoURL    string `json:"video_url"`
	GithubURL   string `json:"github_url"`
	SocialURL   string `json:"social_url"`
	DocumentURL string `json:"document_url"`
}

// SubmissionGradeRequest records a pass/fail outcome for a submission.
type SubmissionGradeRequest struct {
	Passed *bool `json:"passed" validate:"required"`
}

// SubmissionEngagementRequest overwrites the social engagement metric. Any
// integer is accepted, including negative values.
type SubmissionEngagementRequest struct {
	Engagement *int `json:"engagement" validate:"required"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID               uint       `json:"id"`
	StudentID        uint       `json:"student_id"`
	StudentName      string     `json:"student_name,omitempty"`
	WeekNumber       int        `json:"week_number"`
	VideoURL         string     `json:"video_url"`
	GithubURL        string     `json:"github_url"`
	SocialURL        string     `json:"social_url"`
	DocumentURL      string     `json:"document_url"`
	SocialEngagement int        `json:"social_engagement"`
	IsPassed         *bool      `json:"is_passed"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	GradedAt         *time.Time `json:"graded_at"`
	GradedBy         *uint      `json:"graded_by"`
	GraderName       *string    `json:"grader_name,omitempty"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:               model.ID,
		StudentID:        model.StudentID,
		WeekNumber:       model.WeekNumber,
		VideoURL:         model.VideoURL,
		GithubURL:        model.GithubURL,
		SocialURL:        model.SocialURL,
		DocumentURL:      model.DocumentURL,
		SocialEngagement: model.SocialEngagement,
		IsPassed:         model.IsPassed,
		SubmittedAt:      model.SubmittedAt,
		GradedAt:         model.GradedAt,
		GradedBy:         model.GradedBy,
	}

	if model.Student.ID != 0 {
		response.StudentName = model.Student.Name
	}

	if model.Grader != nil && model.Grader.ID != 0 {
		name := model.Grader.Name
		response.GraderName = &name
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(models []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(models))
	for _, submission := range models {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
