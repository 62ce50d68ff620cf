package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/allycar/outreach/internal/entity"
)

// EscalationSink é quem efetivamente avisa o comercial (WhatsApp + email).
type EscalationSink interface {
	Notify(ctx context.Context, payload entity.EscalationPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Sink    EscalationSink
}

func NewWorker(ch *amqp.Channel, sink EscalationSink) *Worker {
	return &Worker{
		Channel: ch,
		Sink:    sink,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload entity.EscalationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Escalando lead: %s (%s)", payload.Name, payload.Phone)

			// Falha de notificação não é retentada automaticamente: vai
			// para a DLQ e o lead segue com a sessão completada.
			if err := w.Sink.Notify(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao notificar comercial: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Comercial notificado sobre %s", payload.Name)
				d.Ack(false)
			}
		}
	}()

	log.Printf("⚙️ [WORKER] Aguardando escalações na fila %s", queueName)
	<-forever
}
