package services

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/connectomedia/contact-api/internal/errors"
	"github.com/connectomedia/contact-api/internal/models"
	"github.com/connectomedia/contact-api/internal/repository"
	"github.com/connectomedia/contact-api/internal/validator"
)

// Public messages returned by the contact operations
const (
	MsgMissingFields   = "Name, email, and message are required fields."
	MsgInvalidEmail    = "Please provide a valid email address."
	MsgSubmitSuccess   = "Thank you for your message! We will get back to you soon."
	MsgSubmitFailed    = "Something went wrong. Please try again later."
	MsgListFailed      = "Error fetching messages."
	MsgGetFailed       = "Error fetching message."
	MsgMessageNotFound = "Message not found."
)

// SubmitContactInput is a raw contact form submission
type SubmitContactInput struct {
	Name    string
	Email   string
	Company string
	Message string
}

// SubmitResult echoes the stored submission back to the client
type SubmitResult struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ContactService defines the contact form operations
type ContactService interface {
	// Submit validates and stores a submission
	Submit(ctx context.Context, input SubmitContactInput) (*SubmitResult, error)

	// ListAll returns every message, most recent first
	ListAll(ctx context.Context) ([]models.ContactMessage, error)

	// GetByID returns a single message
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
}

// contactService implements ContactService
type contactService struct {
	repo      repository.ContactRepository
	validator *validator.ContactValidator
	logger    *slog.Logger
}

// NewContactService creates a new ContactService instance.
// A nil logger falls back to slog.Default().
func NewContactService(repo repository.ContactRepository, logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactService{
		repo:      repo,
		validator: validator.NewContactValidator(),
		logger:    logger,
	}
}

// Submit trims and validates input before touching the repository, so a
// rejected submission has no side effect.
func (s *contactService) Submit(ctx context.Context, input SubmitContactInput) (*SubmitResult, error) {
	sub := validator.NewContactSubmission(input.Name, input.Email, input.Company, input.Message)

	if err := s.validator.Validate(sub); err != nil {
		if errors.Is(err, validator.ErrInvalidEmail) {
			return nil, apperrors.NewValidationError(err, MsgInvalidEmail)
		}
		return nil, apperrors.NewValidationError(err, MsgMissingFields)
	}

	msg := &models.ContactMessage{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	}
	if sub.Company != "" {
		company := sub.Company
		msg.Company = &company
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("failed to store contact message", slog.Any("error", err))
		return nil, apperrors.NewPersistenceError(err, MsgSubmitFailed)
	}

	s.logger.Info("contact message stored", slog.Uint64("id", uint64(msg.ID)))

	return &SubmitResult{
		ID:    msg.ID,
		Name:  msg.Name,
		Email: msg.Email,
	}, nil
}

func (s *contactService) ListAll(ctx context.Context) ([]models.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list contact messages", slog.Any("error", err))
		return nil, apperrors.NewPersistenceError(err, MsgListFailed)
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	return messages, nil
}

func (s *contactService) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(MsgMessageNotFound)
		}
		s.logger.Error("failed to get contact message",
			slog.Uint64("id", uint64(id)),
			slog.Any("error", err),
		)
		return nil, apperrors.NewPersistenceError(err, MsgGetFailed)
	}
	return msg, nil
}
