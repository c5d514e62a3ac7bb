package models

import "time"

// Report is an append-only complaint about a designer.
type Report struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DesignerID  uint      `json:"designer_id" gorm:"not null;index"`
	Reason      string    `json:"reason" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text"`
	UserSession string    `json:"user_session" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the table name in the database.
func (Report) TableName() string {
	return "reports"
}
