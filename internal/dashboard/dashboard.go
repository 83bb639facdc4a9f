// Package dashboard holds the page-level state of the token discovery
// dashboard: the three category columns, the shared search query, the
// per-column sort/filter selection and the live price engine.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"token-pulse-go/internal/catalog"
	marketengine "token-pulse-go/internal/market-engine"
	"token-pulse-go/internal/models"
	"token-pulse-go/internal/utils"
	"token-pulse-go/internal/view"

	"github.com/sirupsen/logrus"
)

const DefaultTokensPerCategory = 15

var (
	ErrNotLoaded       = errors.New("catalog not loaded")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSortKey  = errors.New("unknown sort field")
	ErrTokenNotFound   = errors.New("token not found")
)

type TokenView struct {
	models.Token
	LivePrice float64          `json:"livePrice"`
	Change    models.Direction `json:"change,omitempty"`
}

type Column struct {
	Category      models.Category `json:"category"`
	Title         string          `json:"title"`
	Query         view.QueryState `json:"query"`
	ActiveFilters int             `json:"activeFilters"`
	Count         int             `json:"count"`
	Tokens        []TokenView     `json:"tokens"`
}

type Board struct {
	Search   string   `json:"search"`
	Sequence uint64   `json:"sequence"`
	Running  bool     `json:"running"`
	Columns  []Column `json:"columns"`
}

// TokenDetail backs the token detail dialog.
type TokenDetail struct {
	TokenView
	LiquidityRatio   float64 `json:"liquidityRatio"`
	DisplayPrice     string  `json:"displayPrice"`
	DisplayChange    string  `json:"displayChange"`
	DisplayMarketCap string  `json:"displayMarketCap"`
	DisplayVolume    string  `json:"displayVolume"`
	DisplayLiquidity string  `json:"displayLiquidity"`
}

type Option func(*Dashboard)

func WithGenerator(g *catalog.Generator) Option {
	return func(d *Dashboard) { d.generator = g }
}

func WithTokensPerCategory(n int) Option {
	return func(d *Dashboard) {
		if n >= 0 {
			d.tokensPerCategory = n
		}
	}
}

func WithLoadDelay(delay time.Duration) Option {
	return func(d *Dashboard) { d.loadDelay = delay }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Dashboard) { d.logger = l }
}

type Dashboard struct {
	mu     sync.RWMutex
	engine *marketengine.MarketEngine

	generator         *catalog.Generator
	tokensPerCategory int
	loadDelay         time.Duration
	logger            logrus.FieldLogger

	loaded bool
	search string
	tokens map[models.Category][]models.Token
	states map[models.Category]*view.QueryState
}

func New(engine *marketengine.MarketEngine, opts ...Option) *Dashboard {
	d := &Dashboard{
		engine:            engine,
		tokensPerCategory: DefaultTokensPerCategory,
		tokens:            make(map[models.Category][]models.Token),
		states:            make(map[models.Category]*view.QueryState),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.generator == nil {
		d.generator = catalog.NewGenerator(nil, nil)
	}
	if d.logger == nil {
		d.logger = logrus.StandardLogger()
	}

	for _, category := range models.Categories {
		state := view.NewQueryState()
		d.states[category] = &state
	}

	return d
}

func (d *Dashboard) Engine() *marketengine.MarketEngine { return d.engine }

// Load generates every category after the simulated load delay and tracks
// the new tokens. Loading again replaces all batches and their live prices.
func (d *Dashboard) Load(ctx context.Context) error {
	if d.loadDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.loadDelay):
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, category := range models.Categories {
		d.replaceLocked(category, d.tokensPerCategory)
	}
	d.loaded = true

	d.logger.WithField("per_category", d.tokensPerCategory).Info("[Dashboard] Catalog loaded")
	return nil
}

func (d *Dashboard) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.loaded
}

// Regenerate replaces one category. Live entries of the previous batch are
// dropped first because ids restart at "<category>-0".
func (d *Dashboard) Regenerate(category models.Category, count int) ([]models.Token, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if count <= 0 {
		count = d.tokensPerCategory
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return nil, ErrNotLoaded
	}

	fresh := d.replaceLocked(category, count)
	d.logger.WithFields(logrus.Fields{"category": category, "count": count}).Info("[Dashboard] Category regenerated")
	return fresh, nil
}

func (d *Dashboard) replaceLocked(category models.Category, count int) []models.Token {
	stale := d.tokens[category]
	staleIDs := make([]string, 0, len(stale))
	for _, t := range stale {
		staleIDs = append(staleIDs, t.ID)
	}
	d.engine.Untrack(staleIDs...)

	fresh := d.generator.Generate(count, category)
	d.tokens[category] = fresh
	d.engine.Track(fresh)
	return fresh
}

func (d *Dashboard) SetSearchQuery(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.search = query
}

func (d *Dashboard) SearchQuery() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.search
}

func (d *Dashboard) withState(category models.Category, apply func(*view.QueryState) error) (view.QueryState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state, ok := d.states[category]
	if !ok {
		return view.QueryState{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err := apply(state); err != nil {
		return *state, err
	}
	return *state, nil
}

// SetSortField selects field for a column; selecting the active field
// flips its direction.
func (d *Dashboard) SetSortField(category models.Category, field models.SortField) (view.QueryState, error) {
	return d.withState(category, func(s *view.QueryState) error {
		if !field.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownSortKey, field)
		}
		s.SelectSortField(field)
		return nil
	})
}

func (d *Dashboard) ToggleSortDirection(category models.Category) (view.QueryState, error) {
	return d.withState(category, func(s *view.QueryState) error {
		s.ToggleSortDirection()
		return nil
	})
}

func (d *Dashboard) SetFilter(category models.Category, dimension models.FilterDimension, bucket string) (view.QueryState, error) {
	return d.withState(category, func(s *view.QueryState) error {
		return s.SetFilter(dimension, bucket)
	})
}

func (d *Dashboard) ResetFilters(category models.Category) (view.QueryState, error) {
	return d.withState(category, func(s *view.QueryState) error {
		s.ResetFilters()
		return nil
	})
}

// StartEngine starts (or restarts) the price schedule over every loaded
// token. A non-positive interval uses the engine default. Load and
// Regenerate keep the engine's tracked set current, so nothing is tracked
// here.
func (d *Dashboard) StartEngine(interval time.Duration) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return ErrNotLoaded
	}

	d.engine.Start(context.Background(), nil, interval)
	return nil
}

func (d *Dashboard) StopEngine() {
	d.engine.Stop()
}

func (d *Dashboard) Snapshot() marketengine.Snapshot {
	return d.engine.Snapshot()
}

// Column derives the visible list of one category.
func (d *Dashboard) Column(category models.Category) (Column, error) {
	if !category.Valid() {
		return Column{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return Column{}, ErrNotLoaded
	}
	return d.columnLocked(category, d.engine.Snapshot()), nil
}

// Board derives all columns from one engine snapshot.
func (d *Dashboard) Board() (Board, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return Board{}, ErrNotLoaded
	}

	snapshot := d.engine.Snapshot()
	board := Board{
		Search:   d.search,
		Sequence: snapshot.Sequence,
		Running:  d.engine.Running(),
		Columns:  make([]Column, 0, len(models.Categories)),
	}
	for _, category := range models.Categories {
		board.Columns = append(board.Columns, d.columnLocked(category, snapshot))
	}
	return board, nil
}

// VisibleTokens returns the derived list of a column without live decoration.
func (d *Dashboard) VisibleTokens(category models.Category) ([]models.Token, marketengine.Snapshot, error) {
	if !category.Valid() {
		return nil, marketengine.Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return nil, marketengine.Snapshot{}, ErrNotLoaded
	}

	snapshot := d.engine.Snapshot()
	state := d.states[category]
	return view.Derive(d.tokens[category], state.Query(d.search), snapshot.Prices), snapshot, nil
}

func (d *Dashboard) columnLocked(category models.Category, snapshot marketengine.Snapshot) Column {
	state := *d.states[category]
	visible := view.Derive(d.tokens[category], state.Query(d.search), snapshot.Prices)

	tokens := make([]TokenView, 0, len(visible))
	for _, t := range visible {
		tokens = append(tokens, decorate(t, snapshot))
	}

	return Column{
		Category:      category,
		Title:         category.Title(),
		Query:         state,
		ActiveFilters: state.ActiveFilterCount(),
		Count:         len(tokens),
		Tokens:        tokens,
	}
}

func decorate(t models.Token, snapshot marketengine.Snapshot) TokenView {
	return TokenView{
		Token:     t,
		LivePrice: snapshot.Price(t.ID, t.Price),
		Change:    snapshot.Changes[t.ID],
	}
}

func (d *Dashboard) Token(id string) (TokenDetail, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return TokenDetail{}, ErrNotLoaded
	}

	for _, category := range models.Categories {
		for _, t := range d.tokens[category] {
			if t.ID != id {
				continue
			}
			tv := decorate(t, d.engine.Snapshot())
			return TokenDetail{
				TokenView:        tv,
				LiquidityRatio:   utils.LiquidityRatio(t.Liquidity, t.MarketCap),
				DisplayPrice:     utils.FormatPrice(tv.LivePrice),
				DisplayChange:    utils.FormatPercent(t.PriceChange24h),
				DisplayMarketCap: utils.FormatCompact(t.MarketCap),
				DisplayVolume:    utils.FormatCompact(t.Volume24h),
				DisplayLiquidity: utils.FormatCompact(t.Liquidity),
			}, nil
		}
	}

	return TokenDetail{}, fmt.Errorf("%w: %q", ErrTokenNotFound, id)
}
