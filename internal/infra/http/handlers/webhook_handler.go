package handlers

import (
	"encoding/xml"
	"errors"
	"log"
	"net/http"

	"github.com/allycar/outreach/internal/conversation"
	"github.com/allycar/outreach/internal/entity"
	"github.com/allycar/outreach/internal/infra/http/middleware"
	"github.com/allycar/outreach/internal/infra/store"
	"github.com/allycar/outreach/internal/usecase"
)

// WebhookHandler recebe as respostas dos leads via Twilio e responde
// com TwiML na mesma requisição. O gateway sempre espera um documento
// de resposta válido, mesmo para payloads malformados.
type WebhookHandler struct {
	Store    entity.SessionStoreInterface
	Notifier usecase.EscalationNotifierInterface
	Locks    *store.KeyLock
}

func NewWebhookHandler(
	sessionStore entity.SessionStoreInterface,
	notifier usecase.EscalationNotifierInterface,
	locks *store.KeyLock,
) *WebhookHandler {
	return &WebhookHandler{
		Store:    sessionStore,
		Notifier: notifier,
		Locks:    locks,
	}
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("⚠️ Webhook: Form inválido: %v", err)
		respondTwiML(w, conversation.ReplyNoSession)
		return
	}

	input := conversation.Input{
		Phone:         r.FormValue("From"),
		Body:          r.FormValue("Body"),
		ButtonPayload: r.FormValue("ButtonPayload"),
		Timestamp:     r.FormValue("MessageTimestamp"),
	}

	if input.Phone == "" {
		log.Println("⚠️ Webhook: Mensagem sem campo From")
		respondTwiML(w, conversation.ReplyNoSession)
		return
	}

	log.Printf("📥 Mensagem recebida de %s: %s", input.Phone, input.Text())

	ctx := r.Context()

	// Mensagens do mesmo telefone são serializadas; telefones distintos
	// seguem em paralelo. Nenhum I/O de rede acontece sob o lock.
	h.Locks.Lock(input.Phone)

	session, err := h.Store.Get(ctx, input.Phone)
	if err != nil && !errors.Is(err, entity.ErrSessionNotFound) {
		h.Locks.Unlock(input.Phone)
		log.Printf("❌ Webhook: Erro ao ler sessão de %s: %v", input.Phone, err)
		respondTwiML(w, conversation.ReplyNoSession)
		return
	}

	outcome := conversation.Transition(session, input)

	switch {
	case outcome.Purge:
		if err := h.Store.Delete(ctx, input.Phone); err != nil {
			log.Printf("❌ Webhook: Erro ao remover sessão de %s: %v", input.Phone, err)
		}
	case outcome.Session != nil:
		if err := h.Store.Save(ctx, outcome.Session); err != nil {
			log.Printf("❌ Webhook: Erro ao gravar sessão de %s: %v", input.Phone, err)
		}
	}

	h.Locks.Unlock(input.Phone)

	middleware.RecordWebhookReply(stageLabel(outcome))
	if count, err := h.Store.Count(ctx); err == nil {
		middleware.SetActiveSessions(count)
	}

	// A escalação acontece depois do commit da sessão e fora do lock.
	// Falha aqui é registrada e contada, nunca vira erro para o lead.
	if outcome.Escalation != nil {
		if err := h.Notifier.Notify(ctx, *outcome.Escalation); err != nil {
			log.Printf("❌ Erro ao notificar comercial: %v", err)
			middleware.RecordEscalationFailure()
		} else {
			middleware.RecordEscalation()
		}
	}

	respondTwiML(w, outcome.Reply)
}

func stageLabel(outcome conversation.Outcome) string {
	if outcome.Session == nil {
		return "none"
	}
	return string(outcome.Session.Stage)
}

func respondTwiML(w http.ResponseWriter, reply string) {
	w.Header().Set("Content-Type", "application/xml")

	body, err := xml.Marshal(twimlResponse{Message: reply})
	if err != nil {
		// Nunca deixa o gateway sem resposta.
		w.Write([]byte(xml.Header + "<Response></Response>"))
		return
	}

	w.Write([]byte(xml.Header))
	w.Write(body)
}
