// Package mocks holds testify mocks for the repository and service interfaces.
package mocks

import (
	"context"

	"github.com/connectomedia/contact-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository implements repository.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

// Create stores a contact message
func (m *MockContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// List retrieves all contact messages
func (m *MockContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactMessage), args.Error(1)
}

// GetByID retrieves a contact message by its ID
func (m *MockContactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactMessage), args.Error(1)
}

// Delete deletes a contact message by its ID
func (m *MockContactRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
