package dashboard

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"token-pulse-go/internal/catalog"
	marketengine "token-pulse-go/internal/market-engine"
	"token-pulse-go/internal/models"
	"token-pulse-go/internal/pricefeed"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDashboard(t *testing.T, opts ...Option) *Dashboard {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine := marketengine.New(
		marketengine.WithLogger(logger),
		marketengine.WithFlagWindow(time.Hour),
		marketengine.WithSimulator(pricefeed.NewSimulator(rand.New(rand.NewPCG(2, 4)))),
	)
	t.Cleanup(engine.Stop)

	base := []Option{
		WithLogger(logger),
		WithGenerator(catalog.NewGenerator(rand.New(rand.NewPCG(6, 6)), nil)),
	}
	return New(engine, append(base, opts...)...)
}

func loaded(t *testing.T, opts ...Option) *Dashboard {
	t.Helper()
	d := newTestDashboard(t, opts...)
	require.NoError(t, d.Load(context.Background()))
	return d
}

func TestNotLoadedIsDistinctFromEmpty(t *testing.T) {
	d := newTestDashboard(t)

	assert.False(t, d.Loaded())

	_, err := d.Board()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = d.Column(models.CategoryNew)
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, d.StartEngine(0), ErrNotLoaded)

	require.NoError(t, d.Load(context.Background()))
	d.SetSearchQuery("no-such-token")

	column, err := d.Column(models.CategoryNew)
	require.NoError(t, err)
	assert.NotNil(t, column.Tokens)
	assert.Empty(t, column.Tokens)
	assert.Equal(t, 0, column.Count)
}

func TestLoadPopulatesColumnsAndEngine(t *testing.T) {
	d := loaded(t, WithTokensPerCategory(20))

	board, err := d.Board()
	require.NoError(t, err)
	require.Len(t, board.Columns, 3)

	titles := []string{"New Pairs", "Final Stretch", "Migrated"}
	for i, column := range board.Columns {
		assert.Equal(t, models.Categories[i], column.Category)
		assert.Equal(t, titles[i], column.Title)
		assert.Equal(t, 20, column.Count)
		for _, token := range column.Tokens {
			assert.Equal(t, column.Category, token.Status)
			assert.Equal(t, token.Price, token.LivePrice)
		}
	}

	assert.Equal(t, 60, d.Engine().Tracked())
}

func TestLoadHonoursDelayAndContext(t *testing.T) {
	d := newTestDashboard(t, WithLoadDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Load(ctx), context.DeadlineExceeded)
	assert.False(t, d.Loaded())
}

func TestSearchIsSharedAcrossColumns(t *testing.T) {
	d := loaded(t)
	d.SetSearchQuery("DOGE")
	assert.Equal(t, "DOGE", d.SearchQuery())

	board, err := d.Board()
	require.NoError(t, err)

	for _, column := range board.Columns {
		require.Len(t, column.Tokens, 1)
		assert.Equal(t, "DOGE", column.Tokens[0].Symbol)
	}
}

func TestSortIntents(t *testing.T) {
	d := loaded(t)

	state, err := d.SetSortField(models.CategoryNew, models.SortByHolders)
	require.NoError(t, err)
	assert.Equal(t, models.SortByHolders, state.SortField)
	assert.Equal(t, models.Desc, state.SortDirection)

	state, err = d.SetSortField(models.CategoryNew, models.SortByHolders)
	require.NoError(t, err)
	assert.Equal(t, models.Asc, state.SortDirection)

	state, err = d.ToggleSortDirection(models.CategoryNew)
	require.NoError(t, err)
	assert.Equal(t, models.Desc, state.SortDirection)

	column, err := d.Column(models.CategoryNew)
	require.NoError(t, err)
	for i := 1; i < len(column.Tokens); i++ {
		assert.GreaterOrEqual(t, column.Tokens[i-1].Holders, column.Tokens[i].Holders)
	}

	// other columns keep the default
	other, err := d.Column(models.CategoryMigrated)
	require.NoError(t, err)
	assert.Equal(t, models.SortByVolume24h, other.Query.SortField)

	_, err = d.SetSortField(models.CategoryNew, "fdv")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
	_, err = d.SetSortField("hot", models.SortByPrice)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestFilterIntents(t *testing.T) {
	d := loaded(t, WithTokensPerCategory(60))

	state, err := d.SetFilter(models.CategoryTrending, models.FilterHolders, "over-5k")
	require.NoError(t, err)
	assert.Equal(t, "over-5k", state.Filters.Holders)

	column, err := d.Column(models.CategoryTrending)
	require.NoError(t, err)
	assert.Equal(t, 1, column.ActiveFilters)
	assert.Less(t, column.Count, 60)
	for _, token := range column.Tokens {
		assert.GreaterOrEqual(t, token.Holders, 5000)
	}

	_, err = d.SetFilter(models.CategoryTrending, models.FilterVolume, "tiny")
	assert.Error(t, err)

	state, err = d.ResetFilters(models.CategoryTrending)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFilters(), state.Filters)
}

func TestRegenerateResetsLiveState(t *testing.T) {
	d := loaded(t)
	engine := d.Engine()
	engine.Tick()

	fresh, err := d.Regenerate(models.CategoryNew, 5)
	require.NoError(t, err)
	require.Len(t, fresh, 5)

	snapshot := engine.Snapshot()
	assert.Equal(t, 35, engine.Tracked())
	for _, token := range fresh {
		assert.Equal(t, token.Price, snapshot.Prices[token.ID])
		assert.NotContains(t, snapshot.Changes, token.ID)
	}
	assert.NotContains(t, snapshot.Prices, "new-5")

	_, err = d.Regenerate("hot", 5)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestStartEngineDoesNotRetrackReplacedTokens(t *testing.T) {
	d := loaded(t)
	engine := d.Engine()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			assert.NoError(t, d.StartEngine(time.Hour))
		}
	}()

	for range 50 {
		_, err := d.Regenerate(models.CategoryNew, 5)
		require.NoError(t, err)
	}
	wg.Wait()

	require.NoError(t, d.StartEngine(time.Hour))
	assert.Equal(t, 35, engine.Tracked())
	snapshot := engine.Snapshot()
	for i := 5; i < DefaultTokensPerCategory; i++ {
		assert.NotContains(t, snapshot.Prices, fmt.Sprintf("new-%d", i))
	}
}

func TestEngineIntents(t *testing.T) {
	d := loaded(t)

	require.NoError(t, d.StartEngine(20*time.Millisecond))
	assert.Eventually(t, func() bool {
		return d.Snapshot().Sequence >= 2
	}, 2*time.Second, 5*time.Millisecond)

	board, err := d.Board()
	require.NoError(t, err)
	assert.True(t, board.Running)

	d.StopEngine()
	d.StopEngine()
	assert.False(t, d.Engine().Running())
}

func TestTokenDetail(t *testing.T) {
	d := loaded(t)

	detail, err := d.Token("migrated-3")
	require.NoError(t, err)
	assert.Equal(t, "migrated-3", detail.ID)
	assert.Equal(t, models.CategoryMigrated, detail.Status)
	assert.Equal(t, detail.Price, detail.LivePrice)
	assert.NotEmpty(t, detail.DisplayPrice)
	assert.Equal(t, "$", detail.DisplayMarketCap[:1])

	_, err = d.Token("migrated-99")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestVisibleTokensUsesLivePrices(t *testing.T) {
	d := loaded(t)
	_, err := d.SetSortField(models.CategoryNew, models.SortByPrice)
	require.NoError(t, err)
	d.Engine().Tick()

	tokens, snapshot, err := d.VisibleTokens(models.CategoryNew)
	require.NoError(t, err)
	require.Len(t, tokens, DefaultTokensPerCategory)

	for i := 1; i < len(tokens); i++ {
		assert.GreaterOrEqual(t, snapshot.Prices[tokens[i-1].ID], snapshot.Prices[tokens[i].ID])
	}
}
