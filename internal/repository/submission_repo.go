package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/models"
)

// SubmissionRepository defines data operations for weekly project submissions.
type SubmissionRepository interface {
	// CreateForStudent resolves the student's cohort start date and inserts
	// the submission returned by build inside a single transaction. When
	// build fails the transaction rolls back and nothing is written.
	CreateForStudent(ctx context.Context, studentID uint, build func(cohortStart time.Time) (*models.Submission, error)) (models.Submission, error)
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Submission, error)
	ListByWeek(ctx context.Context, weekNumber int) ([]models.Submission, error)
	UpdateGrade(ctx context.Context, id uint, passed bool, graderID uint, gradedAt time.Time) (models.Submission, error)
	UpdateEngagement(ctx context.Context, id uint, engagement int) (models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateForStudent(ctx context.Context, studentID uint, build func(cohortStart time.Time) (*models.Submission, error)) (models.Submission, error) {
	var created models.Submission

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cohort models.Cohort
		if err := tx.
			Joins("JOIN users ON users.cohort_id = cohorts.id").
			Where("users.id = ?", studentID).
			First(&cohort).Error; err != nil {
			return err
		}

		submission, err := build(cohort.StartDate)
		if err != nil {
			return err
		}

		if err := tx.Create(submission).Error; err != nil {
			return err
		}

		return tx.Preload("Student").First(&created, submission.ID).Error
	})
	if err != nil {
		return models.Submission{}, err
	}

	return created, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Grader").
		First(&submission, id).Error
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Preload("Grader").
		Where("student_id = ?", studentID).
		Order("week_number ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListByWeek(ctx context.Context, weekNumber int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Grader").
		Where("week_number = ?", weekNumber).
		Order("submitted_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

// UpdateGrade writes the grading trio in a single statement so the outcome,
// grader and timestamp are never observable separately.
func (r *submissionRepository) UpdateGrade(ctx context.Context, id uint, passed bool, graderID uint, gradedAt time.Time) (models.Submission, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_passed": passed,
			"graded_by": graderID,
			"graded_at": gradedAt,
		})
	if result.Error != nil {
		return models.Submission{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Submission{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *submissionRepository) UpdateEngagement(ctx context.Context, id uint, engagement int) (models.Submission, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Update("social_engagement", engagement)
	if result.Error != nil {
		return models.Submission{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Submission{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}
