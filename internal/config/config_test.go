package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBusinessHoursMissingFileUsesDefaults(t *testing.T) {
	table, err := LoadBusinessHours(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Contains(t, table, "Brazil")
	assert.Equal(t, 9, table["Brazil"].Start)
	assert.Equal(t, 18, table["Brazil"].End)
	assert.Equal(t, "America/Sao_Paulo", table["Brazil"].Timezone)
	assert.Contains(t, table, "Portugal")
	assert.Contains(t, table, "USA")
}

func TestLoadBusinessHoursFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "businesshours.yaml")
	content := `countries:
  Spain:
    start: 10
    end: 20
    timezone: Europe/Madrid
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadBusinessHours(path)
	require.NoError(t, err)

	require.Contains(t, table, "Spain")
	assert.Equal(t, 10, table["Spain"].Start)
	assert.Equal(t, 20, table["Spain"].End)
	assert.Equal(t, "Europe/Madrid", table["Spain"].Timezone)
}

func TestLoadBusinessHoursEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "businesshours.yaml")
	require.NoError(t, os.WriteFile(path, []byte("countries: {}\n"), 0o644))

	table, err := LoadBusinessHours(path)
	require.NoError(t, err)
	assert.Contains(t, table, "Brazil")
}

func TestLoadRequiresCredentials(t *testing.T) {
	// Ambiente limpo: credenciais obrigatórias ausentes.
	for _, key := range []string{
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_WHATSAPP_NUMBER",
		"COMMERCIAL_WHATSAPP", "SPREADSHEET_ID", "GOOGLE_CREDENTIALS_JSON",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadWithFullEnvironment(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_WHATSAPP_NUMBER", "whatsapp:+14155238886")
	t.Setenv("COMMERCIAL_WHATSAPP", "+5511999999999")
	t.Setenv("SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_CREDENTIALS_JSON", "{}")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Sheet1!A2:F", cfg.SheetRange)
	assert.Equal(t, "Brazil", cfg.DefaultCountry)
	assert.Equal(t, "2s", cfg.SendInterval.String())
	assert.False(t, cfg.MailConfigured())
}
