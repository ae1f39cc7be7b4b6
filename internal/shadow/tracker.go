// Package shadow records hypothetical executions alongside real trading so
// their parity with real fills can be measured before the Confidence Gate
// admits a strategy to live execution.
package shadow

import (
	"context"
	"sync"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/execution"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/atlas-desktop/trading-governor/internal/regime"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Record is one hypothetical execution, append-only once stored.
type Record struct {
	DecisionTimestamp time.Time
	Intent            governance.TradeIntent
	AtDecision        execution.TickerInfo
	AtWindowEnd       execution.TickerInfo
	SimulatedFill     governance.TradeOutcome
	HypotheticalPnL   decimal.Decimal
	RegimeAtDecision  regime.Label
}

// Config tunes the observation window and sampling cadence.
type Config struct {
	ObservationWindow time.Duration
	SamplePeriod      time.Duration
}

// DefaultConfig returns the stated defaults: a 5 minute window sampled
// every second.
func DefaultConfig() Config {
	return Config{ObservationWindow: 5 * time.Minute, SamplePeriod: time.Second}
}

// Store persists shadow records durably so counts survive restarts.
type Store interface {
	SaveRecord(Record) error
	CountRecords() (int, error)
	CountDistinctDays() (int, error)
	CountByRegime(regime.Label) (int, error)
}

// Tracker drives the simulator for shadow intents and samples the market
// through the observation window before finalizing each record.
type Tracker struct {
	logger *zap.Logger
	config Config
	market execution.MarketDataSource
	sim    execution.Adapter
	store  Store

	mu      sync.Mutex
	records []Record
}

// NewTracker builds a shadow tracker. sim is the deterministic simulator
// used to produce the hypothetical fill.
func NewTracker(logger *zap.Logger, config Config, market execution.MarketDataSource, sim execution.Adapter, store Store) *Tracker {
	return &Tracker{
		logger: logger.Named("shadow"),
		config: config,
		market: market,
		sim:    sim,
		store:  store,
	}
}

// Mode reports this adapter's execution mode.
func (t *Tracker) Mode() execution.Mode { return execution.ModeShadow }

// Execute runs the simulator for intent, then launches a background
// sampler that finalizes the record once the observation window elapses.
// Execute itself never blocks on the window.
func (t *Tracker) Execute(ctx context.Context, intent governance.TradeIntent) (governance.TradeOutcome, error) {
	decisionTicker, _ := t.market.Ticker(ctx, intent.Symbol)

	outcome, err := t.sim.Execute(ctx, intent)
	if err != nil {
		return outcome, err
	}

	record := Record{
		DecisionTimestamp: intent.Timestamp,
		Intent:            intent,
		AtDecision:        decisionTicker,
		SimulatedFill:     outcome,
	}

	go t.finalize(record)

	return outcome, nil
}

// RecordRegime sets the regime at decision time on the in-memory record
// for intent. Records are added only when their observation window
// closes, so a call made before that finds no record and has no effect;
// the copy already persisted to the store is not updated.
func (t *Tracker) RecordRegime(intent governance.TradeIntent, label regime.Label) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.records {
		if t.records[i].Intent.ID() == intent.ID() {
			t.records[i].RegimeAtDecision = label
			return
		}
	}
}

func (t *Tracker) finalize(record Record) {
	ctx, cancel := context.WithTimeout(context.Background(), t.config.ObservationWindow+t.config.SamplePeriod)
	defer cancel()

	ticker := time.NewTicker(t.config.SamplePeriod)
	defer ticker.Stop()

	deadline := time.Now().Add(t.config.ObservationWindow)
	var last execution.TickerInfo
	for {
		select {
		case <-ctx.Done():
			record.AtWindowEnd = last
			t.commit(record)
			return
		case now := <-ticker.C:
			tick, ok := t.market.Ticker(ctx, record.Intent.Symbol)
			if ok {
				last = tick
			}
			if now.After(deadline) {
				record.AtWindowEnd = last
				t.commit(record)
				return
			}
		}
	}
}

func (t *Tracker) commit(record Record) {
	if !record.AtWindowEnd.Last.IsZero() && record.SimulatedFill.Success {
		if record.Intent.Side == governance.SideBuy {
			record.HypotheticalPnL = record.AtWindowEnd.Last.Sub(record.SimulatedFill.ExecutedPrice).Mul(record.SimulatedFill.ExecutedQty)
		} else {
			record.HypotheticalPnL = record.SimulatedFill.ExecutedPrice.Sub(record.AtWindowEnd.Last).Mul(record.SimulatedFill.ExecutedQty)
		}
	}

	t.mu.Lock()
	t.records = append(t.records, record)
	t.mu.Unlock()

	if t.store != nil {
		if err := t.store.SaveRecord(record); err != nil {
			t.logger.Error("failed to persist shadow record", zap.Error(err))
		}
	}
}

// ParitySummary reports aggregate slippage and fill-rate statistics over
// every shadow record observed so far. It carries no latency statistics.
type ParitySummary struct {
	TotalRecords   int
	FilledCount    int
	FillRate       decimal.Decimal
	AvgSlippage    decimal.Decimal
}

// Summary computes the current parity snapshot.
func (t *Tracker) Summary() ParitySummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := ParitySummary{TotalRecords: len(t.records)}
	if len(t.records) == 0 {
		return summary
	}

	totalSlippage := decimal.Zero
	for _, r := range t.records {
		if r.SimulatedFill.Success {
			summary.FilledCount++
			totalSlippage = totalSlippage.Add(r.SimulatedFill.Slippage)
		}
	}
	summary.FillRate = decimal.NewFromInt(int64(summary.FilledCount)).Div(decimal.NewFromInt(int64(summary.TotalRecords)))
	if summary.FilledCount > 0 {
		summary.AvgSlippage = totalSlippage.Div(decimal.NewFromInt(int64(summary.FilledCount)))
	}
	return summary
}
