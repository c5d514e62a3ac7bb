package repositories

import (
	"context"

	"emptycup/internal/models"
)

// InteractionRepository defines the interface for shortlist and report data access.
type InteractionRepository interface {
	ToggleShortlist(ctx context.Context, designerID uint, session string) (bool, error)
	AddReport(ctx context.Context, report *models.Report) error
}
