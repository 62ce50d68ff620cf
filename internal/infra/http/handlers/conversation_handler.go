package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/allycar/outreach/internal/entity"
	"github.com/allycar/outreach/internal/infra/http/middleware"
	"github.com/allycar/outreach/internal/usecase"
)

// ConversationHandler cobre o registro manual de sessões, a listagem
// de debug e o envio de teste.
type ConversationHandler struct {
	Store    entity.SessionStoreInterface
	Outreach *usecase.RunOutreachUseCase
}

func NewConversationHandler(
	sessionStore entity.SessionStoreInterface,
	outreach *usecase.RunOutreachUseCase,
) *ConversationHandler {
	return &ConversationHandler{
		Store:    sessionStore,
		Outreach: outreach,
	}
}

type RegisterConversationRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleRegister cria (ou sobrescreve, sem merge) a sessão do telefone
// no estágio inicial.
func (h *ConversationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Message: "invalid JSON"})
		return
	}

	if errs := usecase.ValidateRegistrationInput(req.Phone, req.Name); len(errs) > 0 {
		respondJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Message: errs[0].Error()})
		return
	}

	phone := entity.NormalizePhone(req.Phone)
	session := entity.NewSession(phone, req.Name, req.City)

	if err := h.Store.Save(r.Context(), session); err != nil {
		log.Printf("❌ Erro ao registrar conversa: %v", err)
		respondJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Message: err.Error()})
		return
	}

	log.Printf("✅ Conversa registrada: %s (%s)", req.Name, phone)

	if count, err := h.Store.Count(r.Context()); err == nil {
		middleware.SetActiveSessions(count)
	}

	respondJSON(w, http.StatusOK, StatusResponse{Status: "success", Message: "Conversation registered"})
}

type ConversationsResponse struct {
	ActiveConversations int                        `json:"active_conversations"`
	Conversations       map[string]*entity.Session `json:"conversations"`
}

// HandleList expõe as sessões ativas para debug.
func (h *ConversationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Store.All(r.Context())
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Message: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, ConversationsResponse{
		ActiveConversations: len(sessions),
		Conversations:       sessions,
	})
}

type TestSendResponse struct {
	Status     string `json:"status"`
	MessageSID string `json:"message_sid,omitempty"`
	Message    string `json:"message,omitempty"`
}

// HandleTestSend dispara a mensagem inicial para um único telefone,
// fora do lote. Útil para validar credenciais e template.
func (h *ConversationHandler) HandleTestSend(w http.ResponseWriter, r *http.Request) {
	var req RegisterConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusInternalServerError, TestSendResponse{Status: "error", Message: "invalid JSON"})
		return
	}

	if errs := usecase.ValidateRegistrationInput(req.Phone, req.Name); len(errs) > 0 {
		respondJSON(w, http.StatusInternalServerError, TestSendResponse{Status: "error", Message: errs[0].Error()})
		return
	}

	phone := entity.NormalizePhone(req.Phone)
	sid, err := h.Outreach.SendInitialOffer(r.Context(), phone, req.Name, req.City)
	if err != nil {
		middleware.RecordMessageSent("error")
		respondJSON(w, http.StatusInternalServerError, TestSendResponse{Status: "error", Message: err.Error()})
		return
	}

	middleware.RecordMessageSent("success")
	respondJSON(w, http.StatusOK, TestSendResponse{Status: "success", MessageSID: sid})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
