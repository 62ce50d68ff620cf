package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/allycar/outreach/internal/conversation"
	"github.com/allycar/outreach/internal/entity"
	"github.com/allycar/outreach/internal/infra/integration/twilio"
)

// MessageGateway envia um texto e devolve o identificador da mensagem.
type MessageGateway interface {
	SendMessage(input twilio.SendMessageInput) (string, error)
}

// BusinessHoursGate decide se o contato ativo é permitido agora.
type BusinessHoursGate interface {
	IsOpen(country string) bool
}

// RunReport é o resumo de uma rodada de disparo.
type RunReport struct {
	RunID   string `json:"run_id"`
	Sent    int    `json:"sent"`
	Errors  int    `json:"errors"`
	Skipped int    `json:"skipped"`
	Total   int    `json:"total"`
}

// RunOutreachUseCase percorre a planilha em ordem e dispara a mensagem
// inicial para cada lead elegível, registrando a sessão da conversa.
// Só cria sessões; quem lê e muta sessões existentes é o webhook.
type RunOutreachUseCase struct {
	Leads   entity.LeadSourceInterface
	Gate    BusinessHoursGate
	Gateway MessageGateway
	Store   entity.SessionStoreInterface
	Pacer   *Pacer
	Now     func() time.Time
}

func NewRunOutreachUseCase(
	leads entity.LeadSourceInterface,
	gate BusinessHoursGate,
	gateway MessageGateway,
	store entity.SessionStoreInterface,
	pacer *Pacer,
) *RunOutreachUseCase {
	return &RunOutreachUseCase{
		Leads:   leads,
		Gate:    gate,
		Gateway: gateway,
		Store:   store,
		Pacer:   pacer,
		Now:     time.Now,
	}
}

func (uc *RunOutreachUseCase) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString()}

	log.Printf("🚀 [%s] Iniciando processamento de leads...", report.RunID)

	leads, err := uc.Leads.FetchLeads(ctx)
	if err != nil {
		return nil, NewTechnicalError("LEAD_SOURCE_UNAVAILABLE", fmt.Sprintf("erro ao buscar leads: %v", err))
	}
	report.Total = len(leads)

	for _, lead := range leads {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if lead.Sent() {
			log.Printf("⏭️ Pulando %s - já enviado", lead.Name)
			report.Skipped++
			continue
		}

		if !uc.Gate.IsOpen(lead.Country) {
			log.Printf("⏰ Pulando %s - fora do horário comercial de %s", lead.Name, lead.Country)
			report.Skipped++
			continue
		}

		if lead.Incomplete() {
			log.Printf("⚠️ Pulando linha %d - dados incompletos", lead.Row)
			if err := uc.Leads.UpdateStatus(ctx, lead.Row, entity.LeadStatusIncompleteData); err != nil {
				log.Printf("⚠️ Erro ao marcar linha %d: %v", lead.Row, err)
			}
			report.Errors++
			continue
		}

		// Espaçamento entre envios (limites do gateway).
		if err := uc.Pacer.Wait(ctx); err != nil {
			return report, err
		}

		phone := entity.NormalizePhone(lead.Phone)
		log.Printf("📤 Enviando mensagem para %s (%s)...", lead.Name, phone)

		sid, err := uc.SendInitialOffer(ctx, phone, lead.Name, lead.City)
		if err != nil {
			if updateErr := uc.Leads.UpdateStatus(ctx, lead.Row, "Error: "+truncate(err.Error(), 50)); updateErr != nil {
				log.Printf("⚠️ Erro ao gravar status da linha %d: %v", lead.Row, updateErr)
			}
			report.Errors++
			continue
		}

		if err := uc.Leads.UpdateStatus(ctx, lead.Row, entity.LeadStatusSent); err != nil {
			log.Printf("⚠️ Erro ao gravar status da linha %d: %v", lead.Row, err)
		}
		if err := uc.Leads.UpdateSentAt(ctx, lead.Row, uc.Now().Format("2006-01-02 15:04:05")); err != nil {
			log.Printf("⚠️ Erro ao gravar data da linha %d: %v", lead.Row, err)
		}

		log.Printf("✅ Enviado para %s (%s)", lead.Name, sid)
		report.Sent++
	}

	log.Printf("📊 [%s] Relatório final: %d enviados, %d erros, %d pulados, %d no total",
		report.RunID, report.Sent, report.Errors, report.Skipped, report.Total)

	return report, nil
}

// SendInitialOffer envia a mensagem inicial com as opções e registra a
// sessão da conversa no estágio inicial. Usado pelo lote e pelo /test/send.
func (uc *RunOutreachUseCase) SendInitialOffer(ctx context.Context, phone, name, city string) (string, error) {
	sid, err := uc.Gateway.SendMessage(twilio.SendMessageInput{
		To:   phone,
		Body: conversation.InitialOffer(name, city),
	})
	if err != nil {
		return "", err
	}

	if err := uc.Store.Save(ctx, entity.NewSession(phone, name, city)); err != nil {
		// A mensagem já saiu; sem sessão as respostas não serão entendidas.
		log.Printf("⚠️ Erro ao registrar sessão de %s: %v", phone, err)
	}

	return sid, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
