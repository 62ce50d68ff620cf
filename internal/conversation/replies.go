package conversation

import (
	"fmt"

	"github.com/allycar/outreach/internal/entity"
)

// Textos fixos da conversa, reproduzidos em português como o time
// comercial aprovou. Não há localização além deste conjunto.

const ReplyNoSession = `Olá! Para iniciar, aguarde o envio da nossa oferta ou digite 'INICIAR'`

const ReplyConsultantChosen = `Perfeito! 👏

Um consultor entrará em contato em breve.

Por favor, nos conte um pouco sobre o que você procura (modelo, valor, prazo, etc):`

const ReplyCategoryRetry = `Desculpe, não entendi sua resposta. 😅

Por favor, escolha uma opção:

1️⃣ - Carros Econômicos
2️⃣ - SUVs
3️⃣ - Carros de Luxo
4️⃣ - Utilitários
5️⃣ - Falar com consultor`

const ReplyAskDetails = `Excelente! 🎉

Por favor, nos conte um pouco sobre o que você procura:
- Modelo preferido
- Valor que pretende investir
- Prazo desejado
- Qualquer outra informação relevante`

const ReplyNotInterested = `Tudo bem! Entendo. 😊

Caso mude de ideia, estamos sempre à disposição.

Tenha um ótimo dia! 🚗✨`

const ReplyYesNoRetry = `Por favor, responda com:

✅ SIM - Quero mais informações
❌ NÃO - Não tenho interesse agora`

const ReplyThanks = `Obrigado! Recebemos sua mensagem. 📝

Um de nossos consultores entrará em contato em breve!

Tempo médio de resposta: 1-2 horas (horário comercial)

Tenha um ótimo dia! 🚗✨`

const ReplyAlreadyFinished = `Sua solicitação já está com nosso time. 😊

Um consultor entrará em contato em breve!`

// ReplyCategoryChosen confirma a categoria e pergunta sim/não.
func ReplyCategoryChosen(category string) string {
	return fmt.Sprintf(`Ótima escolha! %s 🚗

Temos várias opções disponíveis.

Deseja receber mais informações e falar com nosso consultor?

Digite:
✅ SIM - Quero mais informações
❌ NÃO - Não tenho interesse agora`, category)
}

// InitialOffer é a mensagem de abertura enviada pelo disparo em lote.
func InitialOffer(name, city string) string {
	return fmt.Sprintf(`Olá *%s*! 👋

Sou da *Allycar* e temos ofertas especiais de veículos em %s! 🚗

✨ *Qual categoria te interessa?*

1️⃣ - Carros Econômicos
2️⃣ - SUVs
3️⃣ - Carros de Luxo
4️⃣ - Utilitários
5️⃣ - Falar com consultor

*Responda com o número da opção!*`, name, city)
}

// EscalationSummary formata o resumo enviado ao WhatsApp comercial.
func EscalationSummary(p entity.EscalationPayload) string {
	return fmt.Sprintf(`🚨 *NOVO LEAD INTERESSADO!*

👤 Nome: %s
📱 Telefone: %s
🏙️ Cidade: %s
🚗 Interesse: %s
⏰ Horário: %s

💬 Mensagem do cliente:
"%s"

👉 Entre em contato agora!`, p.Name, p.Phone, p.City, p.Category, p.Timestamp, p.Message)
}
