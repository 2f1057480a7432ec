package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatusHandler serves the root status payload
type StatusHandler struct {
	version  string
	database string
}

// NewStatusHandler creates a StatusHandler reporting version and the
// display name of the active database engine
func NewStatusHandler(version, database string) *StatusHandler {
	return &StatusHandler{version: version, database: database}
}

// StatusResponse is the body of GET /
type StatusResponse struct {
	Message  string `json:"message"`
	Version  string `json:"version"`
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Status handles GET /
func (h *StatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{
		Message:  "Connectomedia API Server",
		Version:  h.version,
		Status:   "running",
		Database: h.database,
	})
}
