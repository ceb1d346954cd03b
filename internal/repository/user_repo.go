package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/models"
)

// UserRepository defines data operations for platform accounts and their
// cohort assignment.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByClerkID(ctx context.Context, clerkID string) (models.User, error)
	CohortStartDate(ctx context.Context, studentID uint) (time.Time, error)
	Create(ctx context.Context, user *models.User) error
	UpdateByClerkID(ctx context.Context, clerkID, email, name string) error
	DeleteByClerkID(ctx context.Context, clerkID string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates the repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) GetByClerkID(ctx context.Context, clerkID string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// CohortStartDate resolves the start date of the cohort the student belongs
// to. A student without a cohort assignment yields gorm.ErrRecordNotFound.
func (r *userRepository) CohortStartDate(ctx context.Context, studentID uint) (time.Time, error) {
	var cohort models.Cohort
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.cohort_id = cohorts.id").
		Where("users.id = ?", studentID).
		First(&cohort).Error
	if err != nil {
		return time.Time{}, err
	}

	return cohort.StartDate, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) UpdateByClerkID(ctx context.Context, clerkID, email, name string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("clerk_id = ?", clerkID).
		Updates(map[string]interface{}{"email": email, "name": name})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) DeleteByClerkID(ctx context.Context, clerkID string) error {
	result := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
