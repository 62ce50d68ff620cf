package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/allycar/outreach/internal/entity"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

var escalationTemplate = template.Must(template.New("escalation").Parse(`Novo lead interessado!

Nome: {{.Name}}
Telefone: {{.Phone}}
Cidade: {{.City}}
Interesse: {{.Category}}
Horário: {{.Timestamp}}

Mensagem do cliente:
"{{.Message}}"

Entre em contato agora!
`))

// SendEscalationCopy manda a cópia da escalação para a caixa do time
// comercial. É um canal secundário: o WhatsApp comercial é o principal.
func (s *EmailSender) SendEscalationCopy(to string, payload entity.EscalationPayload) error {
	data := EscalationEmailData{
		Name:      payload.Name,
		Phone:     payload.Phone,
		City:      payload.City,
		Category:  payload.Category,
		Message:   payload.Message,
		Timestamp: payload.Timestamp,
	}

	var body bytes.Buffer
	if err := escalationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@allycar.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("🚨 Novo lead interessado: %s (%s)", payload.Name, payload.Category))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
