package handlers

import (
	"strconv"

	"github.com/connectomedia/contact-api/internal/api/response"
	"github.com/connectomedia/contact-api/internal/services"
	"github.com/labstack/echo/v4"
)

// Client-facing messages for malformed requests
const (
	MsgInvalidBody = "Invalid request body."
	MsgInvalidID   = "Invalid message ID."
)

// ContactHandler handles contact form HTTP requests
type ContactHandler struct {
	service services.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(service services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContactRequest represents the request body for a submission.
// Both JSON and urlencoded form bodies are accepted.
type SubmitContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Company string `json:"company" form:"company"`
	Message string `json:"message" form:"message"`
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c echo.Context) error {
	var req SubmitContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, MsgInvalidBody)
	}

	result, err := h.service.Submit(c.Request().Context(), services.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result, services.MsgSubmitSuccess)
}

// List handles GET /api/contact
func (h *ContactHandler) List(c echo.Context) error {
	messages, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, messages, len(messages))
}

// Get handles GET /api/contact/:id
func (h *ContactHandler) Get(c echo.Context) error {
	// 31 bits keeps ids inside the signed INT range of every supported engine
	id, err := strconv.ParseUint(c.Param("id"), 10, 31)
	if err != nil {
		return response.BadRequest(c, MsgInvalidID)
	}

	msg, err := h.service.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, msg)
}
