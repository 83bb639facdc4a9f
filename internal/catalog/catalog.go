// Package catalog generates the mock token batches shown in the dashboard columns.
package catalog

import (
	"fmt"
	"math/rand/v2"
	"time"

	"token-pulse-go/internal/models"
)

type template struct {
	Symbol string
	Name   string
}

var templates = []template{
	{Symbol: "SPIRIT", Name: "Spirit Token"},
	{Symbol: "PAINT", Name: "Paint Dry"},
	{Symbol: "ALPHA", Name: "Alphabet Coin"},
	{Symbol: "A858", Name: "A858 Cutt"},
	{Symbol: "MEXC", Name: "MEXC Token"},
	{Symbol: "GOOGLE", Name: "Google Token"},
	{Symbol: "COCA", Name: "CocaCola"},
	{Symbol: "ZKTELL", Name: "Zktell Protocol"},
	{Symbol: "888", Name: "888 Abundance"},
	{Symbol: "SON", Name: "SON Token"},
	{Symbol: "MEOW", Name: "Meow Cat"},
	{Symbol: "DOGE", Name: "Doge Coin"},
	{Symbol: "PEPE", Name: "Pepe"},
	{Symbol: "SHIB", Name: "Shiba Inu"},
	{Symbol: "CRYPTO", Name: "Crypto Token"},
}

var timeAgoOptions = []string{"4s", "6s", "12s", "2m", "20s", "4m", "1m", "52s", "2s"}

// Upper bounds (exclusive) of the uniform draws.
const (
	MaxPrice           = 1000
	MaxPriceChange     = 100
	MaxVolume24h       = 10_000_000
	MaxMarketCap       = 100_000_000
	MaxLiquidity       = 5_000_000
	MaxHolders         = 10_000
	MaxFDV             = 1000
	MaxTxCount         = 200
	MaxBondingProgress = 100
	MaxAge             = 24 * time.Hour
)

type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// Generate is a shorthand for a time-seeded generator.
func Generate(count int, status models.Category) []models.Token {
	return NewGenerator(nil, nil).Generate(count, status)
}

// Generate returns exactly count tokens with ids "<status>-<index>".
// Ids are unique within one call only.
func (g *Generator) Generate(count int, status models.Category) []models.Token {
	if count < 0 {
		count = 0
	}

	now := g.now()
	tokens := make([]models.Token, 0, count)
	for i := range count {
		tpl := templates[i%len(templates)]
		symbol, name := tpl.Symbol, tpl.Name
		if i >= len(templates) {
			symbol = fmt.Sprintf("%s%d", tpl.Symbol, i)
			name = fmt.Sprintf("%s %d", tpl.Name, i)
		}

		timeAgo := timeAgoOptions[g.rng.IntN(len(timeAgoOptions))]
		fdv := g.rng.Float64() * MaxFDV
		txCount := g.rng.IntN(MaxTxCount)
		bonding := g.rng.IntN(MaxBondingProgress)

		tokens = append(tokens, models.Token{
			ID:              fmt.Sprintf("%s-%d", status, i),
			Symbol:          symbol,
			Name:            name,
			Price:           g.rng.Float64() * MaxPrice,
			PriceChange24h:  (g.rng.Float64() - 0.5) * 2 * MaxPriceChange,
			Volume24h:       g.rng.Float64() * MaxVolume24h,
			MarketCap:       g.rng.Float64() * MaxMarketCap,
			Liquidity:       g.rng.Float64() * MaxLiquidity,
			Holders:         g.rng.IntN(MaxHolders),
			CreatedAt:       now.Add(-time.Duration(g.rng.Int64N(int64(MaxAge)))),
			Status:          status,
			TimeAgo:         &timeAgo,
			FDV:             &fdv,
			TxCount:         &txCount,
			BondingProgress: &bonding,
		})
	}

	return tokens
}
