package businesshours

import (
	"fmt"
	"time"
)

// CountryHours é a janela de contato de um país: hora de início
// (inclusiva) e fim (exclusiva) no relógio local do fuso IANA.
type CountryHours struct {
	Start    int    `mapstructure:"start"`
	End      int    `mapstructure:"end"`
	Timezone string `mapstructure:"timezone"`
}

type countryWindow struct {
	start    int
	end      int
	location *time.Location
}

// Gate decide se o contato ativo é permitido agora para um país.
// Todos os fusos são resolvidos na construção: fuso inválido é erro
// de configuração, nunca de runtime.
type Gate struct {
	windows        map[string]countryWindow
	defaultCountry string
	now            func() time.Time
}

// NewGate valida a tabela e resolve os fusos. defaultCountry é usado
// para qualquer país fora da tabela e precisa estar nela.
func NewGate(table map[string]CountryHours, defaultCountry string, now func() time.Time) (*Gate, error) {
	if now == nil {
		now = time.Now
	}

	if _, ok := table[defaultCountry]; !ok {
		return nil, fmt.Errorf("país padrão %q não está na tabela de horários", defaultCountry)
	}

	windows := make(map[string]countryWindow, len(table))
	for country, hours := range table {
		if hours.Start < 0 || hours.Start > 23 || hours.End < 0 || hours.End > 24 {
			return nil, fmt.Errorf("horário inválido para %s: %d-%d", country, hours.Start, hours.End)
		}

		location, err := time.LoadLocation(hours.Timezone)
		if err != nil {
			return nil, fmt.Errorf("fuso horário inválido para %s (%s): %w", country, hours.Timezone, err)
		}

		windows[country] = countryWindow{start: hours.Start, end: hours.End, location: location}
	}

	return &Gate{windows: windows, defaultCountry: defaultCountry, now: now}, nil
}

// IsOpen retorna true sse a hora local do país satisfaz start <= hora < end.
// País desconhecido usa a configuração do país padrão.
func (g *Gate) IsOpen(country string) bool {
	window, ok := g.windows[country]
	if !ok {
		window = g.windows[g.defaultCountry]
	}

	hour := g.now().In(window.location).Hour()
	return window.start <= hour && hour < window.end
}

// DefaultTable é a tabela embutida usada quando não há arquivo de
// configuração de horários.
func DefaultTable() map[string]CountryHours {
	return map[string]CountryHours{
		"Brazil":   {Start: 9, End: 18, Timezone: "America/Sao_Paulo"},
		"Portugal": {Start: 9, End: 18, Timezone: "Europe/Lisbon"},
		"USA":      {Start: 9, End: 22, Timezone: "America/New_York"},
	}
}
