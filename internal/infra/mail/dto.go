package mail

type EscalationEmailData struct {
	Name      string
	Phone     string
	City      string
	Category  string
	Message   string
	Timestamp string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}
