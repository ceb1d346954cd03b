package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/middleware"
	"github.com/cohortly/cohort-api/internal/service"
	"github.com/cohortly/cohort-api/internal/utils"
)

// SubmissionHandler manages the weekly project submission endpoints.
type SubmissionHandler struct {
	service   service.SubmissionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, validator *validator.Validate, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/my-submissions", h.mySubmissions)
	router.Get("/week/:weekNumber", middleware.RequireAdmin(), h.byWeek)
	router.Patch("/:id/grade", middleware.RequireAdmin(), h.grade)
	router.Patch("/:id/engagement", middleware.RequireAdmin(), h.engagement)
}

func (h *SubmissionHandler) create(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing student identity")
	}

	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Create(c.UserContext(), studentID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().
		Uint("student_id", studentID).
		Int("week_number", payload.WeekNumber).
		Msg("project submission created")

	return utils.SendCreated(c, "submission created", submission)
}

func (h *SubmissionHandler) mySubmissions(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	if studentID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing student identity")
	}

	submissions, err := h.service.ListByStudent(c.UserContext(), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) byWeek(c *fiber.Ctx) error {
	weekNumber, err := parseIntParam(c, "weekNumber")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submissions, err := h.service.ListByWeek(c.UserContext(), weekNumber)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) grade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	graderID := userIDFromContext(c)
	if graderID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing grader identity")
	}

	var payload dto.SubmissionGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	submission, err := h.service.Grade(c.UserContext(), id, graderID, *payload.Passed)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission graded", submission)
}

func (h *SubmissionHandler) engagement(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubmissionEngagementRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return h.handleError(c, err)
	}

	submission, err := h.service.UpdateEngagement(c.UserContext(), id, *payload.Engagement)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "engagement updated", submission)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	var windowErr *service.WindowClosedError
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.As(err, &windowErr):
		message := fmt.Sprintf("submission window for week %d is closed, accepted weeks: %v", windowErr.Attempted, windowErr.AcceptedWeeks())
		return utils.SendError(c, fiber.StatusUnprocessableEntity, message)
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
