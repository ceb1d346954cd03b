package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/models"
	"github.com/cohortly/cohort-api/internal/repository"
)

// ErrResourceNotFound indicates a resource could not be found.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceService manages the shared per-cohort resource library.
type ResourceService interface {
	Create(ctx context.Context, adminID uint, payload dto.ResourceCreateRequest) (dto.ResourceResponse, error)
	Update(ctx context.Context, id uint, payload dto.ResourceUpdateRequest) (dto.ResourceResponse, error)
	Delete(ctx context.Context, id uint) error
	ListByWeek(ctx context.Context, cohortID uint, weekNumber int) ([]dto.ResourceResponse, error)
	ListByType(ctx context.Context, cohortID uint, resourceType string) ([]dto.ResourceResponse, error)
	ListByCohort(ctx context.Context, cohortID uint) ([]dto.ResourceResponse, error)
	ListCommunity(ctx context.Context, cohortID uint) ([]dto.ResourceResponse, error)
}

type resourceService struct {
	resources repository.ResourceRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewResourceService constructs a ResourceService instance.
func NewResourceService(repo repository.ResourceRepository, validate *validator.Validate, logger zerolog.Logger) ResourceService {
	return &resourceService{
		resources: repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "resource_service").Logger(),
	}
}

func (s *resourceService) Create(ctx context.Context, adminID uint, payload dto.ResourceCreateRequest) (dto.ResourceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ResourceResponse{}, err
	}

	resource := models.Resource{
		Title:       payload.Title,
		URL:         payload.URL,
		Type:        payload.Type,
		WeekNumber:  payload.WeekNumber,
		CohortID:    payload.CohortID,
		CreatedBy:   adminID,
		Description: s.sanitizer.Sanitize(payload.Description),
	}

	if err := s.resources.Create(ctx, &resource); err != nil {
		return dto.ResourceResponse{}, err
	}

	created, err := s.resources.GetByID(ctx, resource.ID)
	if err != nil {
		return dto.ResourceResponse{}, err
	}

	s.logger.Info().
		Uint("resource_id", created.ID).
		Str("type", created.Type).
		Uint("cohort_id", created.CohortID).
		Msg("resource created")

	return dto.NewResourceResponse(created), nil
}

func (s *resourceService) Update(ctx context.Context, id uint, payload dto.ResourceUpdateRequest) (dto.ResourceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ResourceResponse{}, err
	}

	update := repository.ResourceUpdate{
		Title: payload.Title,
		URL:   payload.URL,
	}
	if payload.Description != nil {
		sanitized := s.sanitizer.Sanitize(*payload.Description)
		update.Description = &sanitized
	}

	updated, err := s.resources.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResourceResponse{}, ErrResourceNotFound
		}
		return dto.ResourceResponse{}, err
	}

	s.logger.Info().Uint("resource_id", id).Msg("resource updated")

	return dto.NewResourceResponse(updated), nil
}

func (s *resourceService) Delete(ctx context.Context, id uint) error {
	if err := s.resources.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}

	s.logger.Info().Uint("resource_id", id).Msg("resource deleted")

	return nil
}

func (s *resourceService) ListByWeek(ctx context.Context, cohortID uint, weekNumber int) ([]dto.ResourceResponse, error) {
	resources, err := s.resources.ListByWeek(ctx, cohortID, weekNumber)
	if err != nil {
		return nil, err
	}

	return dto.NewResourceResponseSlice(resources), nil
}

func (s *resourceService) ListByType(ctx context.Context, cohortID uint, resourceType string) ([]dto.ResourceResponse, error) {
	resources, err := s.resources.ListByType(ctx, cohortID, resourceType)
	if err != nil {
		return nil, err
	}

	return dto.NewResourceResponseSlice(resources), nil
}

func (s *resourceService) ListByCohort(ctx context.Context, cohortID uint) ([]dto.ResourceResponse, error) {
	resources, err := s.resources.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	return dto.NewResourceResponseSlice(resources), nil
}

func (s *resourceService) ListCommunity(ctx context.Context, cohortID uint) ([]dto.ResourceResponse, error) {
	resources, err := s.resources.ListCommunity(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	return dto.NewResourceResponseSlice(resources), nil
}
