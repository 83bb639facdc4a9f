package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"token-pulse-go/internal/models"
)

var csvHeader = []string{
	"id", "symbol", "name", "status", "price", "live_price",
	"change_24h", "volume_24h", "market_cap", "liquidity", "holders", "created_at",
}

// CsvTokenWriter streams token columns as CSV. It never touches the filesystem.
type CsvTokenWriter struct{}

func NewCsvTokenWriter() *CsvTokenWriter {
	return &CsvTokenWriter{}
}

func (r *CsvTokenWriter) WriteTokens(w io.Writer, tokens []models.Token, prices map[string]float64) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range tokens {
		live, ok := prices[t.ID]
		if !ok {
			live = t.Price
		}

		record := []string{
			t.ID,
			t.Symbol,
			t.Name,
			string(t.Status),
			formatFloat(t.Price),
			formatFloat(live),
			formatFloat(t.PriceChange24h),
			formatFloat(t.Volume24h),
			formatFloat(t.MarketCap),
			formatFloat(t.Liquidity),
			strconv.Itoa(t.Holders),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", t.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
