package usecase

import (
	"context"
	"log"

	"github.com/allycar/outreach/internal/conversation"
	"github.com/allycar/outreach/internal/entity"
	"github.com/allycar/outreach/internal/infra/integration/twilio"
	"github.com/allycar/outreach/internal/infra/queue"
)

// EscalationNotifierInterface avisa o canal comercial sobre um lead
// interessado. A notificação nunca desfaz a transição da sessão e
// nunca chega na resposta vista pelo lead.
type EscalationNotifierInterface interface {
	Notify(ctx context.Context, payload entity.EscalationPayload) error
}

type EmailService interface {
	SendEscalationCopy(to string, payload entity.EscalationPayload) error
}

// DirectNotifier manda o resumo direto pelo gateway (e a cópia por
// email, quando configurada). É usado síncrono quando não há fila e
// como sink do worker quando há.
type DirectNotifier struct {
	Gateway            MessageGateway
	CommercialWhatsApp string
	Email              EmailService // opcional
	SalesEmail         string
}

func NewDirectNotifier(gateway MessageGateway, commercialWhatsApp string) *DirectNotifier {
	return &DirectNotifier{
		Gateway:            gateway,
		CommercialWhatsApp: commercialWhatsApp,
	}
}

func (n *DirectNotifier) Notify(_ context.Context, payload entity.EscalationPayload) error {
	_, err := n.Gateway.SendMessage(twilio.SendMessageInput{
		To:   "whatsapp:" + n.CommercialWhatsApp,
		Body: conversation.EscalationSummary(payload),
	})
	if err != nil {
		return err
	}

	// A cópia por email é melhor esforço: falha não invalida a escalação.
	if n.Email != nil && n.SalesEmail != "" {
		if err := n.Email.SendEscalationCopy(n.SalesEmail, payload); err != nil {
			log.Printf("⚠️ Email: Falha ao enviar cópia da escalação: %v", err)
		}
	}

	return nil
}

// QueueNotifier publica a escalação no RabbitMQ; o worker consome e
// usa o DirectNotifier como sink. Mantém o webhook fora de I/O lento.
type QueueNotifier struct {
	Producer queue.EscalationProducerInterface
}

func NewQueueNotifier(producer queue.EscalationProducerInterface) *QueueNotifier {
	return &QueueNotifier{Producer: producer}
}

func (n *QueueNotifier) Notify(ctx context.Context, payload entity.EscalationPayload) error {
	return n.Producer.PublishEscalation(ctx, payload)
}
