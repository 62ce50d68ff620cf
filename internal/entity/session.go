package entity

import (
	"context"
	"errors"
	"strings"
)

// Stage é o estágio da conversa de um lead.
type Stage string

const (
	StageAwaitingCategory   Stage = "awaiting_category"
	StageConfirmingInterest Stage = "confirming_interest"
	StageAwaitingMessage    Stage = "awaiting_message"
	StageFinished           Stage = "finished"
)

var ErrSessionNotFound = errors.New("sessão não encontrada")

// Session guarda o estado da conversa de um telefone.
// A chave é sempre o telefone normalizado (whatsapp:+digitos).
type Session struct {
	Phone      string `json:"phone"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Stage      Stage  `json:"stage"`
	Category   string `json:"category,omitempty"`
	Interested bool   `json:"interested"`
	Message    string `json:"message,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	Completed  bool   `json:"completed"`
}

// NewSession cria uma sessão no estágio inicial.
func NewSession(phone, name, city string) *Session {
	return &Session{
		Phone:      phone,
		Name:       name,
		City:       city,
		Stage:      StageAwaitingCategory,
		Interested: false,
	}
}

// EscalationPayload resume um lead interessado para o time comercial.
type EscalationPayload struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// SessionStoreInterface é a única fonte de verdade da máquina de estados.
// Save sobrescreve incondicionalmente qualquer sessão anterior do telefone.
type SessionStoreInterface interface {
	Get(ctx context.Context, phone string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, phone string) error
	All(ctx context.Context) (map[string]*Session, error)
	Count(ctx context.Context) (int, error)
}

// NormalizePhone converte qualquer formato de telefone para o
// endereçamento do gateway: whatsapp:+<apenas dígitos>.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "whatsapp:+" + digits.String()
}

// StripGatewayPrefix devolve o telefone sem o esquema do gateway.
func StripGatewayPrefix(phone string) string {
	return strings.TrimPrefix(phone, "whatsapp:")
}
