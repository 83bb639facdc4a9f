package view

import (
	"testing"

	"token-pulse-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSelectSortField(t *testing.T) {
	state := NewQueryState()
	assert.Equal(t, models.SortByVolume24h, state.SortField)
	assert.Equal(t, models.Desc, state.SortDirection)

	// same field flips
	state.SelectSortField(models.SortByVolume24h)
	assert.Equal(t, models.Asc, state.SortDirection)

	// new field resets to descending
	state.SelectSortField(models.SortByPrice)
	assert.Equal(t, models.SortByPrice, state.SortField)
	assert.Equal(t, models.Desc, state.SortDirection)

	state.SelectSortField(models.SortByPrice)
	state.SelectSortField(models.SortByPrice)
	assert.Equal(t, models.Desc, state.SortDirection)

	state.ToggleSortDirection()
	assert.Equal(t, models.Asc, state.SortDirection)
}

func TestSetFilter(t *testing.T) {
	state := NewQueryState()

	assert.NoError(t, state.SetFilter(models.FilterVolume, "10k-50k"))
	assert.NoError(t, state.SetFilter(models.FilterHolders, "1k-5k"))
	assert.Equal(t, 2, state.ActiveFilterCount())

	assert.ErrorIs(t, state.SetFilter(models.FilterMarketCap, "huge"), ErrUnknownBucket)
	assert.Equal(t, models.BucketAll, state.Filters.MarketCap)

	assert.NoError(t, state.SetFilter(models.FilterVolume, ""))
	assert.Equal(t, models.BucketAll, state.Filters.Volume)
	assert.Equal(t, 1, state.ActiveFilterCount())

	state.ResetFilters()
	assert.Equal(t, models.DefaultFilters(), state.Filters)
	assert.Equal(t, 0, state.ActiveFilterCount())
}

func TestQueryCarriesState(t *testing.T) {
	state := NewQueryState()
	state.SelectSortField(models.SortByHolders)
	_ = state.SetFilter(models.FilterMarketCap, "over-10m")

	query := state.Query("pepe")

	assert.Equal(t, Query{
		Search:        "pepe",
		SortField:     models.SortByHolders,
		SortDirection: models.Desc,
		Filters:       models.Filters{MarketCap: "over-10m", Volume: "all", Holders: "all"},
	}, query)
}
