package services

import (
	"context"

	"emptycup/internal/models"
	"emptycup/internal/repositories"

	"go.uber.org/zap"
)

// DefaultSession is used when a caller does not identify its session.
const DefaultSession = "default_session"

// InteractionService handles shortlisting and reporting designers.
type InteractionService struct {
	repo      repositories.InteractionRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewInteractionService creates a new InteractionService. publisher may be nil.
func NewInteractionService(repo repositories.InteractionRepository, publisher EventPublisher, logger *zap.Logger) *InteractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ToggleShortlist flips the shortlist state for the designer and session and
// returns whether the designer is now shortlisted.
func (s *InteractionService) ToggleShortlist(ctx context.Context, designerID uint, session string) (bool, error) {
	return s.repo.ToggleShortlist(ctx, designerID, sessionOrDefault(session))
}

// ReportDesigner records a complaint. The reason must be non-empty.
func (s *InteractionService) ReportDesigner(ctx context.Context, designerID uint, reason, description, session string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	report := &models.Report{
		DesignerID:  designerID,
		Reason:      reason,
		Description: description,
		UserSession: sessionOrDefault(session),
	}
	if err := s.repo.AddReport(ctx, report); err != nil {
		return err
	}

	if s.publisher != nil {
		err := s.publisher.PublishEvent(EventDesignerReported, map[string]interface{}{
			"designer_id": designerID,
			"report_id":   report.ID,
			"reason":      reason,
		})
		if err != nil {
			s.logger.Warn("Failed to publish report event", zap.Uint("designer_id", designerID), zap.Error(err))
		}
	}
	return nil
}

func sessionOrDefault(session string) string {
	if session == "" {
		return DefaultSession
	}
	return session
}
