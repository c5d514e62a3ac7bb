package models

import "time"

// Shortlist marks a designer as shortlisted by one caller session.
// A (designer, session) pair appears at most once.
type Shortlist struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DesignerID  uint      `json:"designer_id" gorm:"not null;uniqueIndex:idx_shortlists_designer_session"`
	UserSession string    `json:"user_session" gorm:"type:varchar(255);not null;uniqueIndex:idx_shortlists_designer_session"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the table name in the database.
func (Shortlist) TableName() string {
	return "shortlists"
}
