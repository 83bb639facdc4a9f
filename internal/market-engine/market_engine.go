package marketengine

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"token-pulse-go/internal/models"
	"token-pulse-go/internal/pricefeed"

	"github.com/sirupsen/logrus"
)

const (
	DefaultUpdateInterval = 3000 * time.Millisecond
	DefaultFlagWindow     = 600 * time.Millisecond
)

// Snapshot is a copy of the live price state at one point in time.
type Snapshot struct {
	Sequence  uint64                      `json:"sequence"`
	UpdatedAt time.Time                   `json:"updatedAt"`
	Prices    map[string]float64          `json:"prices"`
	Changes   map[string]models.Direction `json:"changes"`
}

// Price returns the live price of id, falling back to baseline.
func (s Snapshot) Price(id string, baseline float64) float64 {
	if p, ok := s.Prices[id]; ok {
		return p
	}
	return baseline
}

type PriceUpdate struct {
	TokenID   string           `json:"tokenId"`
	Previous  float64          `json:"previous"`
	Price     float64          `json:"price"`
	Direction models.Direction `json:"direction,omitempty"`
}

// Tick describes one committed update of every tracked token.
type Tick struct {
	Sequence uint64        `json:"sequence"`
	At       time.Time     `json:"at"`
	Updates  []PriceUpdate `json:"updates"`
}

type TickSink interface {
	PublishTick(ctx context.Context, tick Tick) error
}

type Option func(*MarketEngine)

func WithUpdateInterval(d time.Duration) Option {
	return func(e *MarketEngine) {
		if d > 0 {
			e.interval = d
		}
	}
}

func WithFlagWindow(d time.Duration) Option {
	return func(e *MarketEngine) {
		if d > 0 {
			e.flagWindow = d
		}
	}
}

func WithSimulator(s *pricefeed.Simulator) Option {
	return func(e *MarketEngine) { e.simulator = s }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *MarketEngine) { e.logger = l }
}

func WithTickSink(sink TickSink) Option {
	return func(e *MarketEngine) { e.sink = sink }
}

type MarketEngine struct {
	mu         sync.RWMutex
	prices     map[string]float64
	changes    map[string]models.Direction
	sequence   uint64
	updatedAt  time.Time
	clearTimer *time.Timer
	clearGen   uint64

	interval   time.Duration
	active     time.Duration // interval of the running schedule, guarded by mu
	flagWindow time.Duration
	simulator  *pricefeed.Simulator
	logger     logrus.FieldLogger
	sink       TickSink

	// lifecycle of the recurring schedule
	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	subMu       sync.Mutex
	subscribers map[int]chan Snapshot
	nextSubID   int
}

func New(opts ...Option) *MarketEngine {
	engine := &MarketEngine{
		prices:      make(map[string]float64),
		changes:     make(map[string]models.Direction),
		interval:    DefaultUpdateInterval,
		flagWindow:  DefaultFlagWindow,
		subscribers: make(map[int]chan Snapshot),
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.simulator == nil {
		engine.simulator = pricefeed.NewSimulator(nil)
	}
	if engine.logger == nil {
		engine.logger = logrus.StandardLogger()
	}

	return engine
}

func (engine *MarketEngine) UpdateInterval() time.Duration { return engine.interval }

func (engine *MarketEngine) FlagWindow() time.Duration { return engine.flagWindow }

// Track adds tokens that are not tracked yet, seeded with their baseline price.
func (engine *MarketEngine) Track(tokens []models.Token) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	for _, token := range tokens {
		if _, exists := engine.prices[token.ID]; !exists {
			engine.prices[token.ID] = token.Price
		}
	}
}

func (engine *MarketEngine) Untrack(ids ...string) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	for _, id := range ids {
		delete(engine.prices, id)
		delete(engine.changes, id)
	}
}

// Reset drops every tracked token and pending flag.
func (engine *MarketEngine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	clear(engine.prices)
	clear(engine.changes)
	engine.cancelClearLocked()
}

func (engine *MarketEngine) Tracked() int {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	return len(engine.prices)
}

// Tick advances every tracked price in one step. Readers never observe a
// partially applied tick.
func (engine *MarketEngine) Tick() Tick {
	engine.mu.Lock()

	ids := slices.Sorted(maps.Keys(engine.prices))
	changes := make(map[string]models.Direction, len(ids))
	updates := make([]PriceUpdate, 0, len(ids))

	for _, id := range ids {
		current := engine.prices[id]
		next := engine.simulator.Next(current)
		engine.prices[id] = next

		direction := models.DirectionNone
		if next > current {
			direction = models.DirectionUp
		} else if next < current {
			direction = models.DirectionDown
		}
		if direction != models.DirectionNone {
			changes[id] = direction
		}

		updates = append(updates, PriceUpdate{
			TokenID:   id,
			Previous:  current,
			Price:     next,
			Direction: direction,
		})
	}

	engine.changes = changes
	engine.sequence++
	engine.updatedAt = time.Now()
	engine.scheduleClearLocked()

	tick := Tick{Sequence: engine.sequence, At: engine.updatedAt, Updates: updates}
	snapshot := engine.snapshotLocked()
	publishTimeout := engine.interval
	if engine.active > 0 {
		publishTimeout = engine.active
	}
	engine.mu.Unlock()

	engine.publish(snapshot)
	engine.forward(tick, publishTimeout)

	return tick
}

// scheduleClearLocked re-arms the single pending flag clear. Only the clear
// armed by the latest tick is allowed to apply.
func (engine *MarketEngine) scheduleClearLocked() {
	engine.cancelClearLocked()

	gen := engine.clearGen
	engine.clearTimer = time.AfterFunc(engine.flagWindow, func() {
		engine.clearFlags(gen)
	})
}

func (engine *MarketEngine) cancelClearLocked() {
	if engine.clearTimer != nil {
		engine.clearTimer.Stop()
		engine.clearTimer = nil
	}
	engine.clearGen++
}

func (engine *MarketEngine) clearFlags(gen uint64) {
	engine.mu.Lock()
	if gen != engine.clearGen {
		engine.mu.Unlock()
		return
	}

	engine.changes = make(map[string]models.Direction)
	engine.clearTimer = nil
	snapshot := engine.snapshotLocked()
	engine.mu.Unlock()

	engine.publish(snapshot)
}

func (engine *MarketEngine) Snapshot() Snapshot {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	return engine.snapshotLocked()
}

func (engine *MarketEngine) snapshotLocked() Snapshot {
	return Snapshot{
		Sequence:  engine.sequence,
		UpdatedAt: engine.updatedAt,
		Prices:    maps.Clone(engine.prices),
		Changes:   maps.Clone(engine.changes),
	}
}

// Start tracks tokens and runs Tick every interval until Stop or ctx is done.
// A non-positive interval uses the configured update interval. Starting a
// running engine restarts the schedule.
func (engine *MarketEngine) Start(ctx context.Context, tokens []models.Token, interval time.Duration) {
	engine.runMu.Lock()
	defer engine.runMu.Unlock()

	engine.stopLoopLocked()
	engine.Track(tokens)

	if interval <= 0 {
		interval = engine.interval
	}

	engine.mu.Lock()
	engine.active = interval
	engine.mu.Unlock()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done

	engine.logger.WithField("interval", interval).Info("[MarketEngine] Simulation started")

	go engine.run(loopCtx, interval, done)
}

func (engine *MarketEngine) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			engine.Tick()
		}
	}
}

// Stop cancels the recurring schedule and any pending flag clear. Once it
// returns no scheduled update fires. Calling it again is a no-op.
func (engine *MarketEngine) Stop() {
	engine.runMu.Lock()
	defer engine.runMu.Unlock()

	wasRunning := engine.stopLoopLocked()

	engine.mu.Lock()
	engine.cancelClearLocked()
	engine.active = 0
	engine.mu.Unlock()

	if wasRunning {
		engine.logger.Info("[MarketEngine] Simulation stopped")
	}
}

func (engine *MarketEngine) stopLoopLocked() bool {
	if engine.cancel == nil {
		return false
	}

	engine.cancel()
	<-engine.done
	engine.cancel = nil
	engine.done = nil
	return true
}

func (engine *MarketEngine) Running() bool {
	engine.runMu.Lock()
	defer engine.runMu.Unlock()

	if engine.done == nil {
		return false
	}
	select {
	case <-engine.done:
		return false
	default:
		return true
	}
}

// Subscribe registers a listener for snapshots published after every tick
// and flag clear. Slow listeners miss updates rather than block the engine.
func (engine *MarketEngine) Subscribe(buffer int) (<-chan Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}

	engine.subMu.Lock()
	id := engine.nextSubID
	engine.nextSubID++
	channel := make(chan Snapshot, buffer)
	engine.subscribers[id] = channel
	engine.subMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			engine.subMu.Lock()
			delete(engine.subscribers, id)
			engine.subMu.Unlock()
			close(channel)
		})
	}

	return channel, unsubscribe
}

func (engine *MarketEngine) publish(snapshot Snapshot) {
	engine.subMu.Lock()
	defer engine.subMu.Unlock()

	for _, channel := range engine.subscribers {
		select {
		case channel <- snapshot:
		default:
		}
	}
}

// forward hands tick to the sink within one schedule interval.
func (engine *MarketEngine) forward(tick Tick, timeout time.Duration) {
	if engine.sink == nil || len(tick.Updates) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := engine.sink.PublishTick(ctx, tick); err != nil {
		engine.logger.WithError(err).WithField("sequence", tick.Sequence).
			Warn("[MarketEngine] Tick publish failed")
	}
}
