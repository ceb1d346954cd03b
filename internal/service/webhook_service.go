package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cohortly/cohort-api/internal/dto"
	"github.com/cohortly/cohort-api/internal/models"
	"github.com/cohortly/cohort-api/internal/repository"
)

// ErrUnknownWebhookEvent indicates an event type this service does not handle.
var ErrUnknownWebhookEvent = errors.New("unknown webhook event type")

// WebhookService ingests identity-provider user lifecycle events and mirrors
// them into the local users table. New accounts default to the student role.
type WebhookService interface {
	HandleClerkEvent(ctx context.Context, event dto.ClerkWebhookEvent) error
}

type webhookService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewWebhookService constructs a WebhookService instance.
func NewWebhookService(users repository.UserRepository, logger zerolog.Logger) WebhookService {
	return &webhookService{
		users:  users,
		logger: logger.With().Str("component", "webhook_service").Logger(),
	}
}

func (s *webhookService) HandleClerkEvent(ctx context.Context, event dto.ClerkWebhookEvent) error {
	switch event.Type {
	case "user.created":
		return s.createUser(ctx, event.Data)
	case "user.updated":
		return s.updateUser(ctx, event.Data)
	case "user.deleted":
		return s.deleteUser(ctx, event.Data)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownWebhookEvent, event.Type)
	}
}

func (s *webhookService) createUser(ctx context.Context, data dto.ClerkUserData) error {
	user := models.User{
		ClerkID: data.ID,
		Email:   data.PrimaryEmail(),
		Name:    displayName(data),
		Role:    models.RoleStudent,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return err
	}

	s.logger.Info().
		Str("clerk_id", data.ID).
		Str("email", user.Email).
		Msg("user created from webhook")

	return nil
}

func (s *webhookService) updateUser(ctx context.Context, data dto.ClerkUserData) error {
	err := s.users.UpdateByClerkID(ctx, data.ID, data.PrimaryEmail(), displayName(data))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The account may predate webhook wiring; ingest it instead.
			return s.createUser(ctx, data)
		}
		return err
	}

	s.logger.Info().Str("clerk_id", data.ID).Msg("user updated from webhook")

	return nil
}

func (s *webhookService) deleteUser(ctx context.Context, data dto.ClerkUserData) error {
	err := s.users.DeleteByClerkID(ctx, data.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Str("clerk_id", data.ID).Msg("delete webhook for unknown user")
			return nil
		}
		return err
	}

	s.logger.Info().Str("clerk_id", data.ID).Msg("user deleted from webhook")

	return nil
}

func displayName(data dto.ClerkUserData) string {
	return strings.TrimSpace(strings.TrimSpace(data.FirstName) + " " + strings.TrimSpace(data.LastName))
}
