// Package view computes the visible, ordered subset of a token column from
// the search query, the sort selection, the range filters and live prices.
package view

import (
	"cmp"
	"slices"
	"strings"

	"token-pulse-go/internal/models"
)

type Query struct {
	Search        string               `json:"search"`
	SortField     models.SortField     `json:"sortField"`
	SortDirection models.SortDirection `json:"sortDirection"`
	Filters       models.Filters       `json:"filters"`
}

// Derive filters and sorts tokens. The result is never nil, so an empty
// slice means "nothing matches". Sorting by price uses prices, falling back
// to the catalog price. Exact ties keep their input order.
func Derive(tokens []models.Token, query Query, prices map[string]float64) []models.Token {
	keep := matchers(query)

	visible := make([]models.Token, 0, len(tokens))
	for _, token := range tokens {
		if matchesAll(token, keep) {
			visible = append(visible, token)
		}
	}

	key := sortKey(query.SortField, prices)
	if key == nil {
		return visible
	}

	desc := query.SortDirection != models.Asc
	slices.SortStableFunc(visible, func(a, b models.Token) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			return -c
		}
		return c
	})

	return visible
}

func matchesAll(token models.Token, keep []func(models.Token) bool) bool {
	for _, ok := range keep {
		if !ok(token) {
			return false
		}
	}
	return true
}

func matchers(query Query) []func(models.Token) bool {
	var keep []func(models.Token) bool

	if search := searchPredicate(query.Search); search != nil {
		keep = append(keep, search)
	}

	filters := []func(models.Token) bool{
		predicate(models.FilterMarketCap, query.Filters.MarketCap, func(t models.Token) float64 { return t.MarketCap }),
		predicate(models.FilterVolume, query.Filters.Volume, func(t models.Token) float64 { return t.Volume24h }),
		predicate(models.FilterHolders, query.Filters.Holders, func(t models.Token) float64 { return float64(t.Holders) }),
	}
	for _, f := range filters {
		if f != nil {
			keep = append(keep, f)
		}
	}

	return keep
}

func searchPredicate(raw string) func(models.Token) bool {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return nil
	}
	return func(token models.Token) bool {
		return strings.Contains(strings.ToLower(token.Symbol), q) ||
			strings.Contains(strings.ToLower(token.Name), q) ||
			strings.Contains(strings.ToLower(token.ID), q)
	}
}

func sortKey(field models.SortField, prices map[string]float64) func(models.Token) float64 {
	switch field {
	case models.SortByPrice:
		return func(t models.Token) float64 {
			if p, ok := prices[t.ID]; ok {
				return p
			}
			return t.Price
		}
	case models.SortByPriceChange24h:
		return func(t models.Token) float64 { return t.PriceChange24h }
	case models.SortByVolume24h:
		return func(t models.Token) float64 { return t.Volume24h }
	case models.SortByMarketCap:
		return func(t models.Token) float64 { return t.MarketCap }
	case models.SortByLiquidity:
		return func(t models.Token) float64 { return t.Liquidity }
	case models.SortByHolders:
		return func(t models.Token) float64 { return float64(t.Holders) }
	default:
		return nil
	}
}
