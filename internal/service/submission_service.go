package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/models"
	"github.com/cohortly/cohort-api/internal/observability"
	"github.com/cohortly/cohort-api/internal/repository"
	"github.com/cohortly/cohort-api/internal/utils"
)

// ErrStudentNotFound indicates the student does not exist or has no cohort assignment.
var ErrStudentNotFound = errors.New("student not found")

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// WindowClosedError reports a submission attempt outside the accepted window.
// It carries the attempted week and the week that was current at the time of
// the attempt so callers can produce a precise message.
type WindowClosedError struct {
	Attempted   int
	CurrentWeek int
}

func (e *WindowClosedError) Error() string {
	return fmt.Sprintf("submission window for week %d is closed (accepted weeks: %v)", e.Attempted, e.AcceptedWeeks())
}

// AcceptedWeeks lists the week numbers that were open at the time of the
// attempt. Week one has no previous week, so only itself is open.
func (e *WindowClosedError) AcceptedWeeks() []int {
	if e.CurrentWeek <= 1 {
		return []int{1}
	}

	return []int{e.CurrentWeek - 1, e.CurrentWeek}
}

// SubmissionService orchestrates the weekly project submission workflow:
// window-validated creation, listing, grading and engagement updates.
type SubmissionService interface {
	Create(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.SubmissionResponse, error)
	ListByWeek(ctx context.Context, weekNumber int) ([]dto.SubmissionResponse, error)
	Grade(ctx context.Context, submissionID, graderID uint, passed bool) (dto.SubmissionResponse, error)
	UpdateEngagement(ctx context.Context, submissionID uint, engagement int) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	events      EventPublisher
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(repo repository.SubmissionRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: repo,
		validator:   validate,
		events:      events,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		tracer:      otel.Tracer("github.com/cohortly/cohort-api/internal/service/submission"),
		now:         time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submittedAt := s.now().UTC()

	created, err := s.submissions.CreateForStudent(ctx, studentID, func(cohortStart time.Time) (*models.Submission, error) {
		currentWeek := utils.WeekNumber(cohortStart, submittedAt)
		if !utils.IsValidSubmissionWindow(payload.WeekNumber, cohortStart, submittedAt) {
			return nil, &WindowClosedError{Attempted: payload.WeekNumber, CurrentWeek: currentWeek}
		}

		// Late means the nominal week has already passed; recorded for
		// observability only, never persisted.
		late := currentWeek > payload.WeekNumber
		observability.SubmissionsCreated().WithLabelValues(fmt.Sprintf("%t", late)).Inc()
		s.logger.Info().
			Uint("student_id", studentID).
			Int("week_number", payload.WeekNumber).
			Int("current_week", currentWeek).
			Bool("late", late).
			Msg("accepting project submission")

		return &models.Submission{
			StudentID:   studentID,
			WeekNumber:  payload.WeekNumber,
			VideoURL:    payload.VideoURL,
			GithubURL:   payload.GithubURL,
			SocialURL:   payload.SocialURL,
			DocumentURL: payload.DocumentURL,
			SubmittedAt: submittedAt,
		}, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrStudentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	s.publish(ctx, "submission.created", created)

	return dto.NewSubmissionResponse(created), nil
}

func (s *submissionService) ListByStudent(ctx context.Context, studentID uint) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) ListByWeek(ctx context.Context, weekNumber int) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.ListByWeek(ctx, weekNumber)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

// Grade records a pass/fail outcome together with the grader identity and a
// timestamp. Re-grading overwrites the previous outcome, last writer wins.
func (s *submissionService) Grade(ctx context.Context, submissionID, graderID uint, passed bool) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submission.grade")
	span.SetAttributes(
		attribute.Int64("submission.id", int64(submissionID)),
		attribute.Int64("grader.id", int64(graderID)),
		attribute.Bool("submission.passed", passed),
	)
	defer span.End()

	updated, err := s.submissions.UpdateGrade(ctx, submissionID, passed, graderID, s.now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_update_failed")
		return dto.SubmissionResponse{}, err
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	observability.SubmissionsGraded().WithLabelValues(outcome).Inc()

	s.logger.Info().
		Uint("submission_id", submissionID).
		Uint("grader_id", graderID).
		Str("outcome", outcome).
		Msg("submission graded")

	s.publish(ctx, "submission.graded", updated)

	return dto.NewSubmissionResponse(updated), nil
}

func (s *submissionService) UpdateEngagement(ctx context.Context, submissionID uint, engagement int) (dto.SubmissionResponse, error) {
	updated, err := s.submissions.UpdateEngagement(ctx, submissionID, engagement)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", submissionID).
		Int("engagement", engagement).
		Msg("social engagement updated")

	return dto.NewSubmissionResponse(updated), nil
}

func (s *submissionService) publish(ctx context.Context, event string, submission models.Submission) {
	if s.events == nil {
		return
	}

	if err := s.events.Publish(ctx, event, dto.NewSubmissionResponse(submission)); err != nil {
		s.logger.Warn().Err(err).Str("event", event).Msg("failed to publish submission event")
	}
}
