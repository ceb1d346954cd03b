package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/models"
)

// ResourceUpdate enumerates the fields a caller may change on a resource.
// The column set is fixed here rather than derived from request keys.
type ResourceUpdate struct {
	Title       *string
	URL         *string
	Description *string
}

// ResourceRepository defines data operations for shared course resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id uint) (models.Resource, error)
	Update(ctx context.Context, id uint, update ResourceUpdate) (models.Resource, error)
	Delete(ctx context.Context, id uint) error
	ListByWeek(ctx context.Context, cohortID uint, weekNumber int) ([]models.Resource, error)
	ListByType(ctx context.Context, cohortID uint, resourceType string) ([]models.Resource, error)
	ListByCohort(ctx context.Context, cohortID uint) ([]models.Resource, error)
	ListCommunity(ctx context.Context, cohortID uint) ([]models.Resource, error)
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository instantiates the repository.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Resource{}).Preload("Creator")
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepository) GetByID(ctx context.Context, id uint) (models.Resource, error) {
	var resource models.Resource
	if err := r.baseQuery(ctx).First(&resource, id).Error; err != nil {
		return models.Resource{}, err
	}

	return resource, nil
}

func (r *resourceRepository) Update(ctx context.Context, id uint, update ResourceUpdate) (models.Resource, error) {
	columns := map[string]interface{}{}
	if update.Title != nil {
		columns["title"] = *update.Title
	}
	if update.URL != nil {
		columns["url"] = *update.URL
	}
	if update.Description != nil {
		columns["description"] = *update.Description
	}

	if len(columns) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Resource{}).
			Where("id = ?", id).
			Updates(columns)
		if result.Error != nil {
			return models.Resource{}, result.Error
		}
		if result.RowsAffected == 0 {
			return models.Resource{}, gorm.ErrRecordNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *resourceRepository) ListByWeek(ctx context.Context, cohortID uint, weekNumber int) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.baseQuery(ctx).
		Where("cohort_id = ? AND week_number = ?", cohortID, weekNumber).
		Order("type ASC").
		Order("created_at ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) ListByType(ctx context.Context, cohortID uint, resourceType string) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.baseQuery(ctx).
		Where("cohort_id = ? AND type = ?", cohortID, resourceType).
		Order("week_number IS NOT NULL").
		Order("week_number ASC").
		Order("created_at ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) ListByCohort(ctx context.Context, cohortID uint) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.baseQuery(ctx).
		Where("cohort_id = ?", cohortID).
		Order("week_number IS NOT NULL").
		Order("week_number ASC").
		Order("type ASC").
		Order("created_at ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) ListCommunity(ctx context.Context, cohortID uint) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.baseQuery(ctx).
		Where("cohort_id = ? AND type = ?", cohortID, models.ResourceTypeCommunity).
		Find(&resources).Error
	if err != nil {
		return nil, err
	}

	return resources, nil
}
