package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastNDays(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	dates := LastNDays(14, now)

	require.Len(t, dates, 14)
	assert.Equal(t, "2025-03-02", dates[0].Format(time.DateOnly))
	assert.Equal(t, "2025-03-15", dates[13].Format(time.DateOnly))
}

func TestParseDate(t *testing.T) {
	t.Run("Data válida", func(t *testing.T) {
		date, err := ParseDate("2025-03-15")
		require.NoError(t, err)
		assert.Equal(t, 2025, date.Year())
	})

	t.Run("Data inválida retorna erro", func(t *testing.T) {
		_, err := ParseDate("15/03/2025")
		assert.Error(t, err)
	})

	t.Run("Data vazia retorna zero value", func(t *testing.T) {
		date, err := ParseDate("")
		require.NoError(t, err)
		assert.True(t, date.IsZero())
	})
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 1.22, RoundWithTwoDecimalPlace(1.21875))
	assert.Equal(t, 2.0, RoundWithTwoDecimalPlace(1.999))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}
