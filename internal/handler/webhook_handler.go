package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/service"
	"github.com/cohortly/cohort-api/internal/utils"
)

// WebhookHandler receives identity-provider events. Cryptographic signature
// verification happens upstream; when a shared secret is configured the
// handler only checks header equality.
type WebhookHandler struct {
	service service.WebhookService
	secret  string
	logger  zerolog.Logger
}

// NewWebhookHandler builds a webhook handler instance.
func NewWebhookHandler(service service.WebhookService, secret string, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		secret:  secret,
		logger:  logger.With().Str("component", "webhook_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *WebhookHandler) Register(router fiber.Router) {
	router.Post("/clerk", h.clerk)
}

func (h *WebhookHandler) clerk(c *fiber.Ctx) error {
	if h.secret != "" {
		provided := c.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid webhook secret")
		}
	}

	var event dto.ClerkWebhookEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event payload")
	}

	if err := h.service.HandleClerkEvent(c.UserContext(), event); err != nil {
		if errors.Is(err, service.ErrUnknownWebhookEvent) {
			// Acknowledge unhandled event types so the provider stops retrying.
			requestLogger(h.logger, c).Debug().Str("event_type", event.Type).Msg("ignoring webhook event")
			return utils.SendSuccess(c, "event ignored", nil)
		}
		requestLogger(h.logger, c).Error().Err(err).Str("event_type", event.Type).Msg("webhook processing failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to process event")
	}

	return utils.SendSuccess(c, "event processed", nil)
}
