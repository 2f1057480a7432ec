package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/connectomedia/contact-api/internal/models"
	"gorm.io/gorm"
)

// ContactRepository defines the interface for contact message data access
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uint) error
}

// contactRepository implements ContactRepository using GORM.
// The dialect behind db decides placeholder syntax and RETURNING support.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create inserts msg as a single statement and populates msg.ID.
// created_at is never written; the column default stamps it.
func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// List returns every stored message, most recent first
func (r *contactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	messages := make([]models.ContactMessage, 0)
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&messages)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", result.Error)
	}
	return messages, nil
}

// GetByID retrieves a contact message by its ID
func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	result := r.db.WithContext(ctx).Where("id = ?", id).Take(&msg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact message by ID: %w", result.Error)
	}
	return &msg, nil
}

// Delete removes a contact message. The HTTP API never calls it; it exists
// for maintenance tooling such as the dbcheck command.
func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ContactMessage{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
