package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/models"
	"github.com/cohortly/cohort-api/internal/repository"
	"github.com/cohortly/cohort-api/internal/utils"
)

// StudentDashboardService aggregates a student's submission history into a
// per-week progress view. Results are cached in Redis; cache failures fall
// back to the database and are never surfaced to the caller.
type StudentDashboardService interface {
	GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
}

type studentDashboardService struct {
	users       repository.UserRepository
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentDashboardService builds the dashboard aggregator.
func NewStudentDashboardService(users repository.UserRepository, submissions repository.SubmissionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentDashboardService {
	return &studentDashboardService{
		users:       users,
		submissions: submissions,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "student_dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *studentDashboardService) GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	cohortStart, err := s.users.CohortStartDate(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, ErrStudentNotFound
		}
		return dto.StudentDashboardResponse{}, err
	}

	submissions, err := s.submissions.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	response := s.buildResponse(studentID, cohortStart, submissions)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *studentDashboardService) buildResponse(studentID uint, cohortStart time.Time, submissions []models.Submission) dto.StudentDashboardResponse {
	response := dto.StudentDashboardResponse{
		StudentID:      studentID,
		CurrentWeek:    utils.WeekNumber(cohortStart, s.now().UTC()),
		WeeksSubmitted: make([]int, 0, len(submissions)),
	}

	seenWeeks := map[int]bool{}
	for _, submission := range submissions {
		response.TotalSubmissions++

		switch {
		case submission.IsPassed == nil:
			response.Pending++
		case *submission.IsPassed:
			response.Passed++
		default:
			response.Failed++
		}

		if !seenWeeks[submission.WeekNumber] {
			seenWeeks[submission.WeekNumber] = true
			response.WeeksSubmitted = append(response.WeeksSubmitted, submission.WeekNumber)
		}

		if response.LastSubmittedAt == nil || submission.SubmittedAt.After(*response.LastSubmittedAt) {
			submittedAt := submission.SubmittedAt
			response.LastSubmittedAt = &submittedAt
		}
	}

	return response
}
