package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/allycar/outreach/internal/businesshours"
)

// Config é lida uma única vez na subida do processo. Credenciais
// ausentes são fatais: o processo não deve servir tráfego sem elas.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	TwilioAccountSID     string `envconfig:"TWILIO_ACCOUNT_SID" required:"true"`
	TwilioAuthToken      string `envconfig:"TWILIO_AUTH_TOKEN" required:"true"`
	TwilioWhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER" required:"true"`

	// WhatsApp do time comercial que recebe os leads escalados.
	CommercialWhatsApp string `envconfig:"COMMERCIAL_WHATSAPP" required:"true"`

	SpreadsheetID         string `envconfig:"SPREADSHEET_ID" required:"true"`
	SheetRange            string `envconfig:"SHEET_RANGE" default:"Sheet1!A2:F"`
	GoogleCredentialsJSON string `envconfig:"GOOGLE_CREDENTIALS_JSON" required:"true"`

	BusinessHoursFile string `envconfig:"BUSINESS_HOURS_FILE" default:"businesshours.yaml"`
	DefaultCountry    string `envconfig:"DEFAULT_COUNTRY" default:"Brazil"`

	// Espaçamento entre envios do disparo em lote (limites do gateway).
	SendInterval time.Duration `envconfig:"SEND_INTERVAL" default:"2s"`

	// Intervalo do disparo agendado; zero desliga o agendador.
	OutreachInterval time.Duration `envconfig:"OUTREACH_INTERVAL" default:"0"`

	// Opcionais: fila de escalação, store durável e cópia por email.
	AMQPURL     string `envconfig:"AMQP_URL"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	MailHost    string `envconfig:"MAIL_HOST"`
	MailPort    int    `envconfig:"MAIL_PORT" default:"587"`
	MailUser    string `envconfig:"MAIL_USER"`
	MailPass    string `envconfig:"MAIL_PASS"`
	SalesEmail  string `envconfig:"SALES_EMAIL"`
}

// Load processa as variáveis de ambiente (chame godotenv.Load antes).
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return &cfg, nil
}

// MailConfigured indica se a cópia de escalação por email está ativa.
func (c *Config) MailConfigured() bool {
	return c.MailHost != "" && c.SalesEmail != ""
}

// LoadBusinessHours carrega a tabela de horários por país de um YAML.
// Arquivo ausente não é erro: vale a tabela embutida.
func LoadBusinessHours(path string) (map[string]businesshours.CountryHours, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return businesshours.DefaultTable(), nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return businesshours.DefaultTable(), nil
		}
		return nil, fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	var table map[string]businesshours.CountryHours
	if err := v.UnmarshalKey("countries", &table); err != nil {
		return nil, fmt.Errorf("tabela de horários inválida em %s: %w", path, err)
	}

	if len(table) == 0 {
		return businesshours.DefaultTable(), nil
	}

	return table, nil
}
