package database

import (
	"context"
	"fmt"

	"emptycup/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Migrate creates the designers, shortlists and reports tables if they are
// missing.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&models.Designer{}, &models.Shortlist{}, &models.Report{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Seed inserts the sample designers when the designers table is empty and
// returns how many rows it wrote.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Designer{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count designers: %w", err)
		}
		if count > 0 {
			return nil
		}
		designers := SeedDesigners()
		if err := tx.Create(&designers).Error; err != nil {
			return fmt.Errorf("failed to insert seed designers: %w", err)
		}
		inserted = len(designers)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// Initialize prepares the schema and seed data. It logs failures and reports
// false instead of returning them.
func Initialize(ctx context.Context, db *gorm.DB, log *zap.Logger) bool {
	if err := Migrate(ctx, db); err != nil {
		log.Error("Database initialization failed", zap.Error(err))
		return false
	}
	n, err := Seed(ctx, db)
	if err != nil {
		log.Error("Database initialization failed", zap.Error(err))
		return false
	}
	if n > 0 {
		log.Info("Seeded sample designers", zap.Int("count", n))
	}
	return true
}

// SeedDesigners returns the fixed sample rows written into an empty store.
func SeedDesigners() []models.Designer {
	const (
		phone1 = "+91 - 984532853"
		phone2 = "+91 - 984532854"
		team   = "Passionate team of 4 designers working out of Bangalore with an experience of 4 years."
	)
	return []models.Designer{
		{
			Name:        "Epic Designs",
			Rating:      3.5,
			Description: team,
			Projects:    57,
			Experience:  8,
			PriceRange:  models.PriceStandard,
			Phone1:      phone1,
			Phone2:      phone2,
			Location:    "Bangalore",
			Specialties: datatypes.JSONSlice[string]{"Residential", "Commercial", "Modern"},
			Portfolio: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
			},
		},
		{
			Name:        "Studio - D3",
			Rating:      4.5,
			Description: team,
			Projects:    43,
			Experience:  6,
			PriceRange:  models.PricePremium,
			Phone1:      phone1,
			Phone2:      phone2,
			Location:    "Bangalore",
			Specialties: datatypes.JSONSlice[string]{"Luxury", "Residential", "Contemporary"},
			Portfolio: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1618221195710-dd6b41faaea8?w=400",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
			},
		},
		{
			Name:        "House of designs",
			Rating:      4.0,
			Description: "Creative studio specializing in modern and minimalist interior designs with 5 years of experience.",
			Projects:    32,
			Experience:  5,
			PriceRange:  models.PriceStandard,
			Phone1:      phone1,
			Phone2:      phone2,
			Location:    "Mumbai",
			Specialties: datatypes.JSONSlice[string]{"Minimalist", "Modern", "Residential"},
			Portfolio: datatypes.JSONSlice[string]{
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
			},
		},
	}
}
