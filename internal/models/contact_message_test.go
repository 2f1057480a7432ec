package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactMessage_TableName(t *testing.T) {
	assert.Equal(t, "contact_messages", ContactMessage{}.TableName())
}

func TestContactMessage_CompanyOrEmpty(t *testing.T) {
	company := "Acme"

	assert.Equal(t, "", (&ContactMessage{}).CompanyOrEmpty())
	assert.Equal(t, "Acme", (&ContactMessage{Company: &company}).CompanyOrEmpty())
}

func TestContactMessage_JSONShape(t *testing.T) {
	msg := ContactMessage{
		ID:        1,
		Name:      "Jane",
		Email:     "jane@example.com",
		Message:   "Hello",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1,"name":"Jane","email":"jane@example.com","company":null,"message":"Hello","created_at":"2024-01-02T03:04:05Z"}`, string(raw))
}
