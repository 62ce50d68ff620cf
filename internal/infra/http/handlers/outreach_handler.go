package handlers

import (
	"log"
	"net/http"

	"github.com/allycar/outreach/internal/usecase"
)

// OutreachHandler dispara o processamento da planilha sob demanda e
// devolve o relatório da rodada na própria resposta.
type OutreachHandler struct {
	Outreach *usecase.RunOutreachUseCase
}

func NewOutreachHandler(outreach *usecase.RunOutreachUseCase) *OutreachHandler {
	return &OutreachHandler{Outreach: outreach}
}

type TriggerResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message,omitempty"`
	Report  *usecase.RunReport `json:"report,omitempty"`
}

func (h *OutreachHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	report, err := h.Outreach.Run(r.Context())
	if err != nil {
		log.Printf("❌ Disparo manual falhou: %v", err)
		respondJSON(w, http.StatusInternalServerError, TriggerResponse{Status: "error", Message: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, TriggerResponse{Status: "success", Message: "Envio concluído!", Report: report})
}
