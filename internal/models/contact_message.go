package models

import (
	"time"
)

// ContactMessage represents a submission received through the contact form
type ContactMessage struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null;size:255" json:"name"`
	Email   string  `gorm:"not null;size:255" json:"email"`
	Company *string `gorm:"size:255" json:"company"`
	Message string  `gorm:"type:text;not null" json:"message"`

	// Read-only: the column default assigns it on insert
	CreatedAt time.Time `gorm:"<-:false;autoCreateTime:false" json:"created_at"`
}

// TableName returns the table name for ContactMessage
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// CompanyOrEmpty returns the company name, or "" when none was given
func (m *ContactMessage) CompanyOrEmpty() string {
	if m.Company == nil {
		return ""
	}
	return *m.Company
}
