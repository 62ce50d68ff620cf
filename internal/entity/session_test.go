package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"+1 (555) 123-4567", "whatsapp:+15551234567"},
		{"5511999999999", "whatsapp:+5511999999999"},
		{"+55 11 99999-9999", "whatsapp:+5511999999999"},
		{"whatsapp:+5511999999999", "whatsapp:+5511999999999"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizePhone(tt.raw), "raw %q", tt.raw)
	}
}

func TestStripGatewayPrefix(t *testing.T) {
	assert.Equal(t, "+5511999999999", StripGatewayPrefix("whatsapp:+5511999999999"))
	assert.Equal(t, "+5511999999999", StripGatewayPrefix("+5511999999999"))
}

func TestNewSessionStartsAwaitingCategory(t *testing.T) {
	s := NewSession("whatsapp:+5511999999999", "João", "São Paulo")

	assert.Equal(t, StageAwaitingCategory, s.Stage)
	assert.False(t, s.Interested)
	assert.False(t, s.Completed)
	assert.Empty(t, s.Category)
}

func TestLeadHelpers(t *testing.T) {
	sent := Lead{Status: LeadStatusSent}
	assert.True(t, sent.Sent())

	assert.True(t, (&Lead{Name: "", Phone: "123"}).Incomplete())
	assert.True(t, (&Lead{Name: "Ana", Phone: ""}).Incomplete())
	assert.False(t, (&Lead{Name: "Ana", Phone: "123"}).Incomplete())
}
