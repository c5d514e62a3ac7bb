package services

import (
	"context"
	"errors"
	"fmt"

	"emptycup/internal/models"
	"emptycup/internal/repositories"
	"emptycup/internal/validation"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// RecentDesignersLimit is how many designers the dashboard shows.
const RecentDesignersLimit = 5

// DesignerService handles business logic related to designers.
type DesignerService struct {
	repo      repositories.DesignerRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewDesignerService creates a new DesignerService. publisher may be nil.
func NewDesignerService(repo repositories.DesignerRepository, publisher EventPublisher, logger *zap.Logger) *DesignerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DesignerService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Dashboard summarises the directory for the admin home page.
type Dashboard struct {
	DesignerCount int64
	Recent        []models.Designer
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Added  int
	Failed int
	Errors []string
}

// SampleErrors returns at most n error messages.
func (r ImportResult) SampleErrors(n int) []string {
	if len(r.Errors) <= n {
		return r.Errors
	}
	return r.Errors[:n]
}

// GetAllDesigners retrieves all designers, most experienced first.
func (s *DesignerService) GetAllDesigners(ctx context.Context) ([]models.Designer, error) {
	return s.repo.GetAll(ctx)
}

// GetDesignersByNewest retrieves all designers, newest first.
func (s *DesignerService) GetDesignersByNewest(ctx context.Context) ([]models.Designer, error) {
	return s.repo.GetNewest(ctx)
}

// GetDesignerByID retrieves a single designer.
func (s *DesignerService) GetDesignerByID(ctx context.Context, id uint) (*models.Designer, error) {
	return s.repo.GetByID(ctx, id)
}

// Dashboard returns the designer count and the most recently added designers.
func (s *DesignerService) Dashboard(ctx context.Context) (*Dashboard, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.GetRecent(ctx, RecentDesignersLimit)
	if err != nil {
		return nil, err
	}
	return &Dashboard{DesignerCount: count, Recent: recent}, nil
}

// CreateDesigner validates a decoded designer record and stores it. Invalid
// records yield a *ValidationError and nothing is written.
func (s *DesignerService) CreateDesigner(ctx context.Context, record map[string]interface{}) (*models.Designer, error) {
	if errs := validation.Designer(record); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	designer, err := DesignerFromRecord(record)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, designer); err != nil {
		return nil, err
	}

	s.publish(EventDesignerCreated, map[string]interface{}{
		"designer_id": designer.ID,
		"name":        designer.Name,
	})
	return designer, nil
}

// DeleteDesigner removes a designer and everything that references it.
func (s *DesignerService) DeleteDesigner(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventDesignerDeleted, map[string]interface{}{"designer_id": id})
	return nil
}

// ImportDesigners creates each entry independently. A failing entry is
// recorded and the rest are still processed.
func (s *DesignerService) ImportDesigners(ctx context.Context, entries []interface{}) ImportResult {
	var result ImportResult
	for i, entry := range entries {
		position := i + 1

		record, ok := entry.(map[string]interface{})
		if !ok {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Designer %d: entry must be a JSON object", position))
			continue
		}

		if _, err := s.CreateDesigner(ctx, record); err != nil {
			result.Failed++
			var verr *ValidationError
			if errors.As(err, &verr) {
				result.Errors = append(result.Errors, fmt.Sprintf("Designer %d: %s", position, verr.Error()))
				continue
			}
			name := "Unknown"
			if n, ok := record["name"]; ok {
				name = cast.ToString(n)
			}
			s.logger.Warn("Failed to import designer", zap.Int("position", position), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Designer %d (%s): %v", position, name, err))
			continue
		}
		result.Added++
	}

	s.logger.Info("Bulk designer import finished",
		zap.Int("added", result.Added),
		zap.Int("failed", result.Failed),
	)
	return result
}

func (s *DesignerService) publish(eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(eventType, payload); err != nil {
		s.logger.Warn("Failed to publish designer event", zap.String("event", eventType), zap.Error(err))
	}
}

// DesignerFromRecord converts a validated record into a Designer. Numbers may
// arrive as strings; array entries must already be strings.
func DesignerFromRecord(record map[string]interface{}) (*models.Designer, error) {
	rating, err := validation.ToFloat(record["rating"])
	if err != nil {
		return nil, fmt.Errorf("rating: %w", err)
	}
	projects, err := validation.ToInt(record["projects"])
	if err != nil {
		return nil, fmt.Errorf("projects: %w", err)
	}
	experience, err := validation.ToInt(record["experience"])
	if err != nil {
		return nil, fmt.Errorf("experience: %w", err)
	}
	specialties, err := toStrings(record["specialties"])
	if err != nil {
		return nil, fmt.Errorf("specialties: %w", err)
	}
	portfolio, err := toStrings(record["portfolio"])
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}

	designer := &models.Designer{
		Rating:      models.Rating(rating),
		Projects:    projects,
		Experience:  experience,
		Specialties: datatypes.JSONSlice[string](specialties),
		Portfolio:   datatypes.JSONSlice[string](portfolio),
	}
	text := map[string]*string{
		"name":        &designer.Name,
		"description": &designer.Description,
		"price_range": &designer.PriceRange,
		"phone1":      &designer.Phone1,
		"phone2":      &designer.Phone2,
		"location":    &designer.Location,
	}
	for field, target := range text {
		value, err := cast.ToStringE(record[field])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		*target = value
	}
	return designer, nil
}

// toStrings copies an array of strings. Any other element is an error rather
// than being blanked or reformatted.
func toStrings(v interface{}) ([]string, error) {
	switch items := v.(type) {
	case []string:
		return append([]string{}, items...), nil
	case []interface{}:
		out := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, not a string", i+1, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected an array of strings, got %T", v)
}
