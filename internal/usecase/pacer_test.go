package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerSpacesCalls(t *testing.T) {
	pacer := NewPacer(30*time.Millisecond, 1)
	ctx := context.Background()

	require.NoError(t, pacer.Wait(ctx)) // burst inicial

	start := time.Now()
	require.NoError(t, pacer.Wait(ctx))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
}

func TestPacerZeroIntervalNeverBlocks(t *testing.T) {
	pacer := NewPacer(0, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, pacer.Wait(ctx))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestPacerRespectsContextCancellation(t *testing.T) {
	pacer := NewPacer(time.Hour, 1)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, pacer.Wait(ctx)) // consome o burst

	cancel()
	err := pacer.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateRegistrationInput(t *testing.T) {
	assert.Empty(t, ValidateRegistrationInput("+5511999999999", "João"))

	errs := ValidateRegistrationInput("", "João")
	require.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)

	errs = ValidateRegistrationInput("123", "João")
	require.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)

	errs = ValidateRegistrationInput("+5511999999999", " ")
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}
