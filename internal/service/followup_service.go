package service

import (
	"context"
	"log/slog"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
	"github.com/Raymond9734/smallbiz-crm/internal/repository"
)

// FollowupService handles followup business logic
type FollowupService interface {
	Create(ctx context.Context, input models.FollowupInput) (*models.Followup, error)
	ListPending(ctx context.Context) ([]*models.Followup, error)
	// Complete moves a followup to completed. Completing an already
	// completed followup returns it unchanged.
	Complete(ctx context.Context, id int64) (*models.Followup, error)
}

type followupService struct {
	followupRepo repository.FollowupRepository
	logger       *slog.Logger
}

// NewFollowupService creates a new followup service
func NewFollowupService(
	followupRepo repository.FollowupRepository,
	logger *slog.Logger,
) FollowupService {
	return &followupService{
		followupRepo: followupRepo,
		logger:       logger,
	}
}

// Create schedules a pending followup for an existing customer
func (s *followupService) Create(ctx context.Context, input models.FollowupInput) (*models.Followup, error) {
	followup := &models.Followup{
		CustomerID: input.CustomerID,
		DueDate:    models.Date{Time: input.DueDate},
		Message:    input.Message,
		Status:     models.FollowupStatusPending,
	}

	if err := s.followupRepo.Create(ctx, followup); err != nil {
		s.logger.Error("failed to create followup",
			slog.Int64("customer_id", input.CustomerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("followup created",
		slog.Int64("followup_id", followup.ID),
		slog.Int64("customer_id", followup.CustomerID),
	)

	return followup, nil
}

// ListPending retrieves pending followups, earliest due date first
func (s *followupService) ListPending(ctx context.Context) ([]*models.Followup, error) {
	return s.followupRepo.ListPending(ctx)
}

// Complete marks a followup as completed
func (s *followupService) Complete(ctx context.Context, id int64) (*models.Followup, error) {
	followup, changed, err := s.followupRepo.MarkCompleted(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		s.logger.Info("followup completed",
			slog.Int64("followup_id", id),
		)
	} else {
		s.logger.Debug("followup already completed",
			slog.Int64("followup_id", id),
		)
	}

	return followup, nil
}
