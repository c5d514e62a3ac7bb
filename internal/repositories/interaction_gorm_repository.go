package repositories

import (
	"context"
	"errors"
	"fmt"

	"emptycup/internal/models"

	"gorm.io/gorm"
)

// GORMInteractionRepository is a GORM implementation of InteractionRepository.
type GORMInteractionRepository struct {
	db *gorm.DB
}

// NewGORMInteractionRepository creates a new instance of GORMInteractionRepository.
func NewGORMInteractionRepository(db *gorm.DB) *GORMInteractionRepository {
	return &GORMInteractionRepository{
		db: db,
	}
}

// ToggleShortlist flips the shortlist state of a designer for one session and
// returns the new state.
//
// The delete runs first so a single statement decides the "off" branch. When
// a concurrent toggle wins the insert race, the unique index rejects ours and
// the pair is reported as shortlisted.
func (r *GORMInteractionRepository) ToggleShortlist(ctx context.Context, designerID uint, session string) (bool, error) {
	db := r.db.WithContext(ctx)

	res := db.Where("designer_id = ? AND user_session = ?", designerID, session).Delete(&models.Shortlist{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove shortlist for designer %d: %w", designerID, res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	shortlist := models.Shortlist{DesignerID: designerID, UserSession: session}
	if err := db.Create(&shortlist).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("failed to shortlist designer %d: %w", designerID, err)
	}
	return true, nil
}

// AddReport stores a report about a designer.
func (r *GORMInteractionRepository) AddReport(ctx context.Context, report *models.Report) error {
	report.ID = 0
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to add report for designer %d: %w", report.DesignerID, err)
	}
	return nil
}
