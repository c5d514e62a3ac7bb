package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Price tiers accepted for Designer.PriceRange.
const (
	PriceBudget   = "$"
	PriceStandard = "$$"
	PricePremium  = "$$$"
)

// Rating is a designer score between 1.0 and 5.0.
type Rating float64

// GormDBDataType stores ratings as a fixed-point decimal on Postgres and a
// plain REAL on SQLite.
func (Rating) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "decimal(2,1)"
	}
	return "real"
}

// Designer represents an interior designer listed in the directory.
type Designer struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Name        string                      `json:"name" gorm:"type:varchar(255);not null"`
	Rating      Rating                      `json:"rating" gorm:"not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Projects    int                         `json:"projects" gorm:"not null"`
	Experience  int                         `json:"experience" gorm:"not null"`
	PriceRange  string                      `json:"price_range" gorm:"type:varchar(10);not null"`
	Phone1      string                      `json:"phone1" gorm:"type:varchar(20);not null"`
	Phone2      string                      `json:"phone2" gorm:"type:varchar(20);not null"`
	Location    string                      `json:"location" gorm:"type:varchar(100);not null"`
	Specialties datatypes.JSONSlice[string] `json:"specialties" gorm:"not null"`
	Portfolio   datatypes.JSONSlice[string] `json:"portfolio" gorm:"not null"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName returns the table name in the database.
func (Designer) TableName() string {
	return "designers"
}

// BeforeSave keeps the array columns as JSON arrays rather than null.
func (d *Designer) BeforeSave(tx *gorm.DB) error {
	if d.Specialties == nil {
		d.Specialties = datatypes.JSONSlice[string]{}
	}
	if d.Portfolio == nil {
		d.Portfolio = datatypes.JSONSlice[string]{}
	}
	return nil
}

// MarshalJSON adds the priceRange alias expected by the frontend.
func (d Designer) MarshalJSON() ([]byte, error) {
	type designer Designer
	specialties, portfolio := d.Specialties, d.Portfolio
	if specialties == nil {
		specialties = datatypes.JSONSlice[string]{}
	}
	if portfolio == nil {
		portfolio = datatypes.JSONSlice[string]{}
	}
	return json.Marshal(struct {
		designer
		Rating      float64                     `json:"rating"`
		PriceRangeA string                      `json:"priceRange"`
		Specialties datatypes.JSONSlice[string] `json:"specialties"`
		Portfolio   datatypes.JSONSlice[string] `json:"portfolio"`
	}{
		designer:    designer(d),
		Rating:      float64(d.Rating),
		PriceRangeA: d.PriceRange,
		Specialties: specialties,
		Portfolio:   portfolio,
	})
}
