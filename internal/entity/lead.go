package entity

import (
	"context"
)

const (
	LeadStatusSent           = "Sent"
	LeadStatusIncompleteData = "Error - Incomplete data"
)

// Lead representa uma linha da planilha de leads.
// A identidade do lead é a própria linha (os dados começam na linha 2).
type Lead struct {
	Row        int    `json:"row"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Status     string `json:"status"` // "", "Sent", "Error: ..."
	LastSentAt string `json:"last_sent_at,omitempty"`
}

// Sent indica se o lead já recebeu a mensagem inicial.
func (l *Lead) Sent() bool {
	return l.Status == LeadStatusSent
}

// Incomplete indica se faltam dados obrigatórios para o envio.
func (l *Lead) Incomplete() bool {
	return l.Name == "" || l.Phone == ""
}

type LeadSourceInterface interface {
	FetchLeads(ctx context.Context) ([]Lead, error)
	UpdateStatus(ctx context.Context, row int, status string) error
	UpdateSentAt(ctx context.Context, row int, sentAt string) error
}
