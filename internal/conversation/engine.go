package conversation

import (
	"strings"

	"github.com/allycar/outreach/internal/entity"
)

// Input é uma mensagem recebida pelo webhook, já extraída do form.
// ButtonPayload, quando presente, substitui o texto livre: a escolha
// estruturada de botão tem precedência sobre o Body digitado.
type Input struct {
	Phone         string
	Body          string
	ButtonPayload string
	Timestamp     string
}

// Text devolve o texto efetivo da mensagem.
func (in Input) Text() string {
	if in.ButtonPayload != "" {
		return strings.TrimSpace(in.ButtonPayload)
	}
	return strings.TrimSpace(in.Body)
}

// Outcome é o resultado puro de uma transição: o novo estado da sessão,
// a resposta síncrona e os efeitos a executar depois do commit no store.
type Outcome struct {
	Reply      string
	Session    *entity.Session // nil quando não há sessão a gravar
	Purge      bool            // remove a sessão do store (saída por desinteresse)
	Escalation *entity.EscalationPayload
}

var affirmativeTokens = map[string]bool{
	"SIM": true, "S": true, "YES": true, "Y": true, "✅": true,
}

var negativeTokens = map[string]bool{
	"NÃO": true, "NAO": true, "N": true, "NO": true, "❌": true,
}

// Transition calcula a próxima sessão e a resposta para uma mensagem.
// É uma função pura: não toca no store nem dispara notificações; quem
// chama aplica o Outcome (gravar/remover sessão, notificar comercial).
func Transition(current *entity.Session, in Input) Outcome {
	if current == nil {
		return Outcome{Reply: ReplyNoSession}
	}

	// Trabalha sobre uma cópia para nunca mutar o estado do chamador.
	session := *current
	text := in.Text()

	switch session.Stage {
	case entity.StageAwaitingCategory:
		return awaitingCategory(session, text)

	case entity.StageConfirmingInterest:
		return confirmingInterest(session, text)

	case entity.StageAwaitingMessage:
		return awaitingMessage(session, text, in.Timestamp)

	case entity.StageFinished:
		// Não há transição para fora de Finished.
		return Outcome{Reply: ReplyAlreadyFinished, Session: &session}

	default:
		return Outcome{Reply: ReplyCategoryRetry, Session: &session}
	}
}

func awaitingCategory(session entity.Session, text string) Outcome {
	category, ok := ResolveCategory(text)
	if !ok {
		// Entrada não resolvida: reapresenta as opções sem mudar nada.
		return Outcome{Reply: ReplyCategoryRetry, Session: &session}
	}

	if category == CategoryConsultant {
		session.Interested = true
		session.Category = CategoryConsultantRequest
		session.Stage = entity.StageAwaitingMessage
		return Outcome{Reply: ReplyConsultantChosen, Session: &session}
	}

	session.Category = category
	session.Stage = entity.StageConfirmingInterest
	return Outcome{Reply: ReplyCategoryChosen(category), Session: &session}
}

func confirmingInterest(session entity.Session, text string) Outcome {
	normalized := strings.ToUpper(text)

	switch {
	case affirmativeTokens[normalized]:
		session.Interested = true
		session.Stage = entity.StageAwaitingMessage
		return Outcome{Reply: ReplyAskDetails, Session: &session}

	case negativeTokens[normalized]:
		session.Interested = false
		session.Stage = entity.StageFinished
		return Outcome{Reply: ReplyNotInterested, Session: &session, Purge: true}

	default:
		return Outcome{Reply: ReplyYesNoRetry, Session: &session}
	}
}

func awaitingMessage(session entity.Session, text, timestamp string) Outcome {
	session.Message = text
	session.Timestamp = timestamp
	session.Stage = entity.StageFinished
	session.Completed = true

	category := session.Category
	if category == "" {
		category = "Não especificado"
	}

	return Outcome{
		Reply:   ReplyThanks,
		Session: &session,
		Escalation: &entity.EscalationPayload{
			Name:      session.Name,
			Phone:     entity.StripGatewayPrefix(session.Phone),
			City:      session.City,
			Category:  category,
			Message:   text,
			Timestamp: timestamp,
		},
	}
}
