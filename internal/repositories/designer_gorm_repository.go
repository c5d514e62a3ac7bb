package repositories

import (
	"context"
	"errors"
	"fmt"

	"emptycup/internal/models"

	"gorm.io/gorm"
)

// GORMDesignerRepository is a GORM implementation of DesignerRepository.
type GORMDesignerRepository struct {
	db *gorm.DB
}

// NewGORMDesignerRepository creates a new instance of GORMDesignerRepository.
func NewGORMDesignerRepository(db *gorm.DB) *GORMDesignerRepository {
	return &GORMDesignerRepository{
		db: db,
	}
}

// GetAll retrieves all designers, most experienced first.
func (r *GORMDesignerRepository) GetAll(ctx context.Context) ([]models.Designer, error) {
	var designers []models.Designer
	if err := r.db.WithContext(ctx).Order("experience DESC").Order("id").Find(&designers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all designers: %w", err)
	}
	return designers, nil
}

// GetByID retrieves a single designer by its ID.
func (r *GORMDesignerRepository) GetByID(ctx context.Context, id uint) (*models.Designer, error) {
	var designer models.Designer
	if err := r.db.WithContext(ctx).First(&designer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("designer with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get designer by ID %d: %w", id, err)
	}
	return &designer, nil
}

// Create inserts a designer and fills in its ID. The record is expected to be
// validated already.
func (r *GORMDesignerRepository) Create(ctx context.Context, designer *models.Designer) error {
	designer.ID = 0
	if err := r.db.WithContext(ctx).Create(designer).Error; err != nil {
		return fmt.Errorf("failed to create designer: %w", err)
	}
	return nil
}

// Delete removes a designer together with its shortlists and reports. Either
// every row goes or none does.
func (r *GORMDesignerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var designer models.Designer
		if err := tx.Select("id").First(&designer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("designer with ID %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to look up designer %d: %w", id, err)
		}
		if err := tx.Where("designer_id = ?", id).Delete(&models.Shortlist{}).Error; err != nil {
			return fmt.Errorf("failed to delete shortlists of designer %d: %w", id, err)
		}
		if err := tx.Where("designer_id = ?", id).Delete(&models.Report{}).Error; err != nil {
			return fmt.Errorf("failed to delete reports of designer %d: %w", id, err)
		}
		if err := tx.Delete(&models.Designer{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete designer %d: %w", id, err)
		}
		return nil
	})
}

// Count returns the number of stored designers.
func (r *GORMDesignerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Designer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count designers: %w", err)
	}
	return count, nil
}

// GetRecent returns up to limit designers, most recently inserted first.
func (r *GORMDesignerRepository) GetRecent(ctx context.Context, limit int) ([]models.Designer, error) {
	var designers []models.Designer
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&designers).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent designers: %w", err)
	}
	return designers, nil
}

// GetNewest returns all designers ordered by creation time, newest first.
func (r *GORMDesignerRepository) GetNewest(ctx context.Context) ([]models.Designer, error) {
	var designers []models.Designer
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&designers).Error; err != nil {
		return nil, fmt.Errorf("failed to get designers by creation time: %w", err)
	}
	return designers, nil
}
