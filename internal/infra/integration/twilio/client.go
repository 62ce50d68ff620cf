package twilio

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	accountSID string
	authToken  string
	fromNumber string
	baseURL    string
	httpClient *http.Client
}

func NewClient(accountSID, authToken, fromNumber string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		baseURL:    "https://api.twilio.com/2010-04-01",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured indica se as credenciais mínimas estão presentes.
func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != "" && c.fromNumber != ""
}

// SendMessage envia um texto e devolve o SID da mensagem criada.
func (c *Client) SendMessage(input SendMessageInput) (string, error) {
	if !c.Configured() {
		log.Println("⚠️ Twilio: ACCOUNT_SID, AUTH_TOKEN ou WHATSAPP_NUMBER não configurados")
		return "", fmt.Errorf("twilio não configurado")
	}

	form := url.Values{}
	form.Set("From", c.fromNumber)
	form.Set("To", input.To)
	form.Set("Body", input.Body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("erro ao criar requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Twilio: Erro ao enviar mensagem: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr ErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			log.Printf("❌ Twilio: API retornou %d: %s (code %d)", resp.StatusCode, apiErr.Message, apiErr.Code)
			return "", fmt.Errorf("twilio: %s (code %d)", apiErr.Message, apiErr.Code)
		}
		log.Printf("❌ Twilio: API retornou status %d: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("twilio api error: %d", resp.StatusCode)
	}

	var result MessageResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("❌ Twilio: Erro ao parsear resposta: %v", err)
		return "", err
	}

	if result.ErrorCode != nil {
		log.Printf("❌ Twilio: Erro na mensagem: %s (code %d)", result.ErrorMessage, *result.ErrorCode)
		return "", fmt.Errorf("twilio: %s", result.ErrorMessage)
	}

	log.Printf("✅ Twilio: Mensagem enviada para %s (%s)", input.To, result.SID)
	return result.SID, nil
}
