package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/models"
	"github.com/cohortly/cohort-api/internal/repository"
)

type fakeResourceRepo struct {
	resources map[uint]models.Resource
	nextID    uint
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: map[uint]models.Resource{}, nextID: 1}
}

func (f *fakeResourceRepo) Create(ctx context.Context, resource *models.Resource) error {
	resource.ID = f.nextID
	f.nextID++
	f.resources[resource.ID] = *resource
	return nil
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id uint) (models.Resource, error) {
	resource, ok := f.resources[id]
	if !ok {
		return models.Resource{}, gorm.ErrRecordNotFound
	}
	return resource, nil
}

func (f *fakeResourceRepo) Update(ctx context.Context, id uint, update repository.ResourceUpdate) (models.Resource, error) {
	resource, ok := f.resources[id]
	if !ok {
		return models.Resource{}, gorm.ErrRecordNotFound
	}
	if update.Title != nil {
		resource.Title = *update.Title
	}
	if update.URL != nil {
		resource.URL = *update.URL
	}
	if update.Description != nil {
		resource.Description = *update.Description
	}
	f.resources[id] = resource
	return resource, nil
}

func (f *fakeResourceRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := f.resources[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeResourceRepo) ListByWeek(ctx context.Context, cohortID uint, weekNumber int) ([]models.Resource, error) {
	var results []models.Resource
	for _, resource := range f.resources {
		if resource.CohortID == cohortID && resource.WeekNumber != nil && *resource.WeekNumber == weekNumber {
			results = append(results, resource)
		}
	}
	return results, nil
}

func (f *fakeResourceRepo) ListByType(ctx context.Context, cohortID uint, resourceType string) ([]models.Resource, error) {
	var results []models.Resource
	for _, resource := range f.resources {
		if resource.CohortID == cohortID && resource.Type == resourceType {
			results = append(results, resource)
		}
	}
	return results, nil
}

func (f *fakeResourceRepo) ListByCohort(ctx context.Context, cohortID uint) ([]models.Resource, error) {
	var results []models.Resource
	for _, resource := range f.resources {
		if resource.CohortID == cohortID {
			results = append(results, resource)
		}
	}
	return results, nil
}

func (f *fakeResourceRepo) ListCommunity(ctx context.Context, cohortID uint) ([]models.Resource, error) {
	return f.ListByType(ctx, cohortID, models.ResourceTypeCommunity)
}

func newTestResourceService(repo repository.ResourceRepository) ResourceService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewResourceService(repo, validate, testLogger())
}

func TestResourceServiceCreateSanitizesDescription(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := newTestResourceService(repo)

	week := 2
	created, err := svc.Create(context.Background(), 9, dto.ResourceCreateRequest{
		Title:       "Week 2 recording",
		URL:         "https://zoom.us/rec/123",
		Type:        models.ResourceTypeRecording,
		WeekNumber:  &week,
		CohortID:    1,
		Description: "<script>alert(1)</script>watch before Friday",
	})
	require.NoError(t, err)
	require.Equal(t, uint(9), created.CreatedBy)
	require.Equal(t, "watch before Friday", created.Description)
	require.NotContains(t, created.Description, "<script>")
}

func TestResourceServiceCreateRejectsUnknownType(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := newTestResourceService(repo)

	_, err := svc.Create(context.Background(), 9, dto.ResourceCreateRequest{
		Title:    "Broken",
		URL:      "https://example.com",
		Type:     "torrent",
		CohortID: 1,
	})
	require.Error(t, err)
	require.Empty(t, repo.resources)
}

func TestResourceServiceUpdateEnumeratedFields(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := newTestResourceService(repo)

	created, err := svc.Create(context.Background(), 9, dto.ResourceCreateRequest{
		Title:    "Original",
		URL:      "https://example.com/old",
		Type:     models.ResourceTypeSlides,
		CohortID: 1,
	})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := svc.Update(context.Background(), created.ID, dto.ResourceUpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, "https://example.com/old", updated.URL)
}

func TestResourceServiceUpdateNotFound(t *testing.T) {
	svc := newTestResourceService(newFakeResourceRepo())

	title := "Renamed"
	_, err := svc.Update(context.Background(), 404, dto.ResourceUpdateRequest{Title: &title})
	require.ErrorIs(t, err, ErrResourceNotFound)
}

func TestResourceServiceDeleteNotFound(t *testing.T) {
	svc := newTestResourceService(newFakeResourceRepo())

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrResourceNotFound)
}
