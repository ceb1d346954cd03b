package dto

import (
	"time"

	"github.com/cohortly/cohort-api/internal/models"
)

// ResourceCreateRequest is the payload for publishing a shared resource.
type ResourceCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	URL         string `json:"url" validate:"required,max=512"`
	Type        string `json:"type" validate:"required,oneof=recording github slides document community"`
	WeekNumber  *int   `json:"week_number" validate:"omitempty,gte=1"`
	CohortID    uint   `json:"cohort_id" validate:"required,gt=0"`
	Description string `json:"description"`
}

// ResourceUpdateRequest carries the only fields a resource allows to change.
type ResourceUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	URL         *string `json:"url" validate:"omitempty,max=512"`
	Description *string `json:"description"`
}

// ResourceResponse is returned to API clients when browsing resources.
type ResourceResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Type          string    `json:"type"`
	WeekNumber    *int      `json:"week_number"`
	CohortID      uint      `json:"cohort_id"`
	CreatedBy     uint      `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewResourceResponse converts a Resource model into a DTO.
func NewResourceResponse(model models.Resource) ResourceResponse {
	response := ResourceResponse{
		ID:          model.ID,
		Title:       model.Title,
		URL:         model.URL,
		Type:        model.Type,
		WeekNumber:  model.WeekNumber,
		CohortID:    model.CohortID,
		CreatedBy:   model.CreatedBy,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}

	if model.Creator.ID != 0 {
		response.CreatedByName = model.Creator.Name
	}

	return response
}

// NewResourceResponseSlice converts resource models into DTOs.
func NewResourceResponseSlice(models []models.Resource) []ResourceResponse {
	responses := make([]ResourceResponse, 0, len(models))
	for _, resource := range models {
		responses = append(responses, NewResourceResponse(resource))
	}

	return responses
}
