package twilio

// SendMessageInput é um envio de texto pelo canal WhatsApp do Twilio.
type SendMessageInput struct {
	To   string // Ex: "whatsapp:+5511999999999"
	Body string
}

type MessageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}
