package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"token-pulse-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTokens(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := []models.Token{
		{ID: "new-0", Symbol: "DOGE", Name: "Doge Coin", Status: models.CategoryNew, Price: 10, PriceChange24h: -2.5,
			Volume24h: 5000, MarketCap: 90000, Liquidity: 1200.5, Holders: 42, CreatedAt: created},
		{ID: "new-1", Symbol: "PEPE", Name: "Pepe, the frog", Status: models.CategoryNew, Price: 3, CreatedAt: created},
	}

	var buf bytes.Buffer
	err := NewCsvTokenWriter().WriteTokens(&buf, tokens, map[string]float64{"new-0": 9.5})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"new-0", "DOGE", "Doge Coin", "new", "10", "9.5",
		"-2.5", "5000", "90000", "1200.5", "42", "2025-03-01T12:00:00Z",
	}, records[1])

	// no live entry falls back to the catalog price
	assert.Equal(t, "Pepe, the frog", records[2][2])
	assert.Equal(t, "3", records[2][5])
}

func TestWriteTokensEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCsvTokenWriter().WriteTokens(&buf, nil, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteTokensPropagatesWriterError(t *testing.T) {
	tokens := []models.Token{{ID: "new-0"}}

	err := NewCsvTokenWriter().WriteTokens(failingWriter{}, tokens, nil)
	assert.Error(t, err)
}
