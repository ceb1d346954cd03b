package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/models"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Cohort{}, &models.User{}, &models.Submission{}, &models.Resource{}))
	return db
}

func seedCohortAndStudent(t *testing.T, db *gorm.DB, start time.Time) models.User {
	t.Helper()
	cohort := models.Cohort{Name: "Test Cohort", StartDate: start, EndDate: start.AddDate(0, 3, 0)}
	require.NoError(t, db.Create(&cohort).Error)

	student := models.User{
		ClerkID:  fmt.Sprintf("clerk_%s", t.Name()),
		Email:    fmt.Sprintf("%s@example.com", t.Name()),
		Name:     "Test Student",
		Role:     models.RoleStudent,
		CohortID: &cohort.ID,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func TestSubmissionRepositoryCreateForStudent(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewSubmissionRepository(db)

	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	student := seedCohortAndStudent(t, db, start)

	created, err := repo.CreateForStudent(context.Background(), student.ID, func(cohortStart time.Time) (*models.Submission, error) {
		require.True(t, cohortStart.Equal(start))
		return &models.Submission{
			StudentID:   student.ID,
			WeekNumber:  1,
			VideoURL:    "https://loom.com/demo",
			SubmittedAt: time.Now().UTC(),
		}, nil
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Test Student", created.Student.Name)
}

func TestSubmissionRepositoryCreateRollsBackOnBuildError(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewSubmissionRepository(db)

	student := seedCohortAndStudent(t, db, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	buildErr := errors.New("window closed")
	_, err := repo.CreateForStudent(context.Background(), student.ID, func(time.Time) (*models.Submission, error) {
		return nil, buildErr
	})
	require.ErrorIs(t, err, buildErr)

	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSubmissionRepositoryCreateStudentWithoutCohort(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewSubmissionRepository(db)

	orphan := models.User{ClerkID: "clerk_orphan", Email: "orphan@example.com", Name: "Orphan", Role: models.RoleStudent}
	require.NoError(t, db.Create(&orphan).Error)

	_, err := repo.CreateForStudent(context.Background(), orphan.ID, func(time.Time) (*models.Submission, error) {
		t.Fatal("build must not be called without a cohort")
		return nil, nil
	})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepositoryListByStudentOrdersByWeek(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewSubmissionRepository(db)

	student := seedCohortAndStudent(t, db, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	now := time.Now().UTC()
	for _, week := range []int{3, 1, 2} {
		require.NoError(t, db.Create(&models.Submission{StudentID: student.ID, WeekNumber: week, SubmittedAt: now}).Error)
	}

	submissions, err := repo.ListByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, submissions, 3)
	require.Equal(t, 1, submissions[0].WeekNumber)
	require.Equal(t, 2, submissions[1].WeekNumber)
	require.Equal(t, 3, submissions[2].WeekNumber)
}

func TestSubmissionRepositoryListByWeekOrdersBySubmittedAt(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewSubmissionRepository(db)

	student := seedCohortAndStudent(t, db, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	base := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	// Inserted newest first to prove ordering comes from the timestamp.
	offsets := []time.Duration{4 * time.Hour, 0, 2 * time.Hour}
	for _, offset := range offsets {
		require.NoError(t, db.Create(&models.Submission{StudentID: student.ID, WeekNumber: 2, SubmittedAt: base.Add(offset)}).Error)
	}

	submissions, err := repo.ListByWeek(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, submissions, 3)
	require.True(t, submissions[0].SubmittedAt.Before(submissions[1].SubmittedAt))
	require.True(t, submissions[1].SubmittedAt.Before(submissions[2].SubmittedAt))
	require.Equal(t, "Test Student", submissions[0].Student.Name)
}

func TestSubmissionRepositoryUpdateGradeWritesTrio(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewSubmissionRepository(db)

	student := seedCohortAndStudent(t, db, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	grader := models.User{ClerkID: "clerk_grader", Email: "grader@example.com", Name: "Grady Grader", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&grader).Error)

	submission := models.Submission{StudentID: student.ID, WeekNumber: 1, SubmittedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&submission).Error)

	gradedAt := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	updated, err := repo.UpdateGrade(context.Background(), submission.ID, true, grader.ID, gradedAt)
	require.NoError(t, err)
	require.NotNil(t, updated.IsPassed)
	require.True(t, *updated.IsPassed)
	require.NotNil(t, updated.GradedBy)
	require.Equal(t, grader.ID, *updated.GradedBy)
	require.NotNil(t, updated.GradedAt)
	require.NotNil(t, updated.Grader)
	require.Equal(t, "Grady Grader", updated.Grader.Name)

	_, err = repo.UpdateGrade(context.Background(), 9999, true, grader.ID, gradedAt)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepositoryUpdateEngagement(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewSubmissionRepository(db)

	student := seedCohortAndStudent(t, db, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	submission := models.Submission{StudentID: student.ID, WeekNumber: 1, SubmittedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&submission).Error)

	updated, err := repo.UpdateEngagement(context.Background(), submission.ID, 420)
	require.NoError(t, err)
	require.Equal(t, 420, updated.SocialEngagement)

	_, err = repo.UpdateEngagement(context.Background(), 9999, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
