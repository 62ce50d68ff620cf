package businesshours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 24, hour, minute, 0, 0, time.UTC)
	}
}

func testTable() map[string]CountryHours {
	return map[string]CountryHours{
		"Testland": {Start: 9, End: 18, Timezone: "UTC"},
	}
}

func TestIsOpenBoundaries(t *testing.T) {
	tests := []struct {
		hour   int
		minute int
		open   bool
	}{
		{8, 59, false},
		{9, 0, true}, // início é inclusivo
		{12, 30, true},
		{17, 59, true},
		{18, 0, false}, // fim é exclusivo
		{23, 0, false},
	}

	for _, tt := range tests {
		gate, err := NewGate(testTable(), "Testland", fixedClock(tt.hour, tt.minute))
		require.NoError(t, err)
		assert.Equal(t, tt.open, gate.IsOpen("Testland"), "%02d:%02d", tt.hour, tt.minute)
	}
}

func TestIsOpenUnknownCountryUsesDefault(t *testing.T) {
	gate, err := NewGate(testTable(), "Testland", fixedClock(10, 0))
	require.NoError(t, err)

	assert.True(t, gate.IsOpen("Atlantis"))

	gate, err = NewGate(testTable(), "Testland", fixedClock(20, 0))
	require.NoError(t, err)

	assert.False(t, gate.IsOpen("Atlantis"))
}

func TestIsOpenConvertsToLocalTime(t *testing.T) {
	table := map[string]CountryHours{
		"Brazil": {Start: 9, End: 18, Timezone: "America/Sao_Paulo"},
	}

	// 11:00 UTC = 08:00 em São Paulo (UTC-3): ainda fechado.
	gate, err := NewGate(table, "Brazil", fixedClock(11, 0))
	require.NoError(t, err)
	assert.False(t, gate.IsOpen("Brazil"))

	// 13:00 UTC = 10:00 em São Paulo: aberto.
	gate, err = NewGate(table, "Brazil", fixedClock(13, 0))
	require.NoError(t, err)
	assert.True(t, gate.IsOpen("Brazil"))
}

func TestDefaultTableResolves(t *testing.T) {
	gate, err := NewGate(DefaultTable(), "Brazil", nil)
	require.NoError(t, err)
	assert.NotNil(t, gate)
}

func TestNewGateRejectsUnknownTimezone(t *testing.T) {
	table := map[string]CountryHours{
		"Broken": {Start: 9, End: 18, Timezone: "Mars/Olympus_Mons"},
	}

	_, err := NewGate(table, "Broken", nil)
	assert.Error(t, err)
}

func TestNewGateRejectsMissingDefaultCountry(t *testing.T) {
	_, err := NewGate(testTable(), "Nowhere", nil)
	assert.Error(t, err)
}

func TestNewGateRejectsInvalidHours(t *testing.T) {
	table := map[string]CountryHours{
		"Testland": {Start: -1, End: 18, Timezone: "UTC"},
	}

	_, err := NewGate(table, "Testland", nil)
	assert.Error(t, err)
}
