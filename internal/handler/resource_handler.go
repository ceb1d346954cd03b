package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/middleware"
	"github.com/cohortly/cohort-api/internal/service"
	"github.com/cohortly/cohort-api/internal/utils"
)

// ResourceHandler manages the shared resource library endpoints.
type ResourceHandler struct {
	service   service.ResourceService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResourceHandler builds a resource handler instance.
func NewResourceHandler(service service.ResourceService, validator *validator.Validate, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "resource_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ResourceHandler) Register(router fiber.Router) {
	router.Post("", middleware.RequireAdmin(), h.create)
	router.Put("/:id", middleware.RequireAdmin(), h.update)
	router.Delete("/:id", middleware.RequireAdmin(), h.delete)
	router.Get("/week/:weekNumber", h.byWeek)
	router.Get("/type/:type", h.byType)
	router.Get("/cohort", h.byCohort)
	router.Get("/community", h.community)
}

func (h *ResourceHandler) create(c *fiber.Ctx) error {
	adminID := userIDFromContext(c)
	if adminID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing admin identity")
	}

	var payload dto.ResourceCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	resource, err := h.service.Create(c.UserContext(), adminID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "resource created", resource)
}

func (h *ResourceHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ResourceUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	resource, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "resource updated", resource)
}

func (h *ResourceHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendNoContent(c)
}

func (h *ResourceHandler) byWeek(c *fiber.Ctx) error {
	weekNumber, err := parseIntParam(c, "weekNumber")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	cohortID, err := h.cohortFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resources, err := h.service.ListByWeek(c.UserContext(), cohortID, weekNumber)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "resources retrieved", resources)
}

func (h *ResourceHandler) byType(c *fiber.Ctx) error {
	cohortID, err := h.cohortFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resources, err := h.service.ListByType(c.UserContext(), cohortID, c.Params("type"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "resources retrieved", resources)
}

func (h *ResourceHandler) byCohort(c *fiber.Ctx) error {
	cohortID, err := h.cohortFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resources, err := h.service.ListByCohort(c.UserContext(), cohortID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "resources retrieved", resources)
}

func (h *ResourceHandler) community(c *fiber.Ctx) error {
	cohortID, err := h.cohortFromRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	resources, err := h.service.ListCommunity(c.UserContext(), cohortID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "resources retrieved", resources)
}

// cohortFromRequest resolves the cohort scope, preferring the authenticated
// user's cohort and falling back to an explicit query parameter.
func (h *ResourceHandler) cohortFromRequest(c *fiber.Ctx) (uint, error) {
	if v := c.Locals("cohort_id"); v != nil {
		if id, ok := v.(uint); ok && id != 0 {
			return id, nil
		}
	}

	cohortID, err := parseQueryUint(c, "cohort_id")
	if err != nil {
		return 0, err
	}
	if cohortID == nil || *cohortID == 0 {
		return 0, errors.New("missing cohort_id")
	}

	return *cohortID, nil
}

func (h *ResourceHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "resource not found")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
