package execution

import (
	"context"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ConfidenceEnforcer hard-blocks real execution until accumulated shadow
// evidence clears every threshold. Defined here rather than imported to
// avoid a cycle with the package that implements it.
type ConfidenceEnforcer interface {
	Enforce(strategyID string) error
}

// EventWriter records governance decisions. The concrete type is the
// append-only event log.
type EventWriter interface {
	Append(eventType string, strategyID, reason string, blockingLayer governance.Layer, metadata map[string]any)
}

// PoolUpdater applies realized P&L back to capital after a terminal
// outcome and reports the pool's resulting drawdown percentage so the
// caller can journal it.
type PoolUpdater interface {
	UpdateEquity(strategyID string, pnl decimal.Decimal) decimal.Decimal
}

// RiskRecorder books a realized trade outcome against the daily risk
// ceilings (trade count, realized loss). Defined here rather than imported
// to avoid a cycle with the package that implements it.
type RiskRecorder interface {
	RecordTrade(strategyID string, pnl decimal.Decimal)
}

// ActivityRecorder marks a calendar date as an active trading day.
type ActivityRecorder interface {
	RecordActivity(at time.Time)
}

// ModeResolver picks the execution mode for an intent. Most deployments
// return a fixed mode; per-strategy overrides are possible for staged
// rollouts.
type ModeResolver func(intent governance.TradeIntent) Mode

// Manager is the single funnel through which every order leaves the
// system. No adapter method is reachable by any path except Execute.
type Manager struct {
	logger     *zap.Logger
	chain      *governance.Chain
	adapters   map[Mode]Adapter
	resolveMode ModeResolver
	confidence ConfidenceEnforcer
	events     EventWriter
	pool       PoolUpdater
	risk       RiskRecorder
	activity   ActivityRecorder
	deadline   time.Duration
}

// Config wires a Manager's collaborators.
type Config struct {
	Logger     *zap.Logger
	Chain      *governance.Chain
	Adapters   map[Mode]Adapter
	ResolveMode ModeResolver
	Confidence ConfidenceEnforcer
	Events     EventWriter
	Pool       PoolUpdater
	Risk       RiskRecorder
	Activity   ActivityRecorder
	Deadline   time.Duration
}

// NewManager builds an Execution Manager. Adapters must be registered for
// every mode the resolver can return; an unregistered mode is a
// programmer error surfaced as an IntegrityViolation outcome rather than
// a panic.
func NewManager(cfg Config) *Manager {
	deadline := cfg.Deadline
	if deadline <= 0 {
		deadline = 30 * time.Second
	}
	return &Manager{
		logger:      cfg.Logger.Named("execution-manager"),
		chain:       cfg.Chain,
		adapters:    cfg.Adapters,
		resolveMode: cfg.ResolveMode,
		confidence:  cfg.Confidence,
		events:      cfg.Events,
		pool:        cfg.Pool,
		risk:        cfg.Risk,
		activity:    cfg.Activity,
		deadline:    deadline,
	}
}

// Execute is the sole entry point for a trade intent. It runs the gate
// chain, dispatches to the resolved adapter, and journals the outcome.
func (m *Manager) Execute(ctx context.Context, intent governance.TradeIntent) governance.TradeOutcome {
	verdict := m.chain.Run(intent)
	if !verdict.Allowed {
		m.writeEvent(eventTradeBlocked, intent, verdict.Reason, verdict.Layer, verdict.Metadata)
		return governance.Blocked(categoryFor(verdict.Layer), verdict.Reason)
	}

	mode := m.resolveMode(intent)
	adapter, ok := m.adapters[mode]
	if !ok || mode == ModeUninitialized {
		m.writeEvent(eventRiskCheck, intent, "invariant-violated: no adapter for resolved mode", "", nil)
		return governance.Blocked(governance.FailureIntegrityViolation, "no adapter registered for resolved execution mode")
	}

	if mode == ModeReal && m.confidence != nil {
		if err := m.confidence.Enforce(intent.StrategyID); err != nil {
			m.writeEvent(eventConfidenceGateBlocked, intent, err.Error(), "", nil)
			return governance.Blocked(governance.FailureConfidenceGate, err.Error())
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, m.deadline)
	defer cancel()

	outcome, err := adapter.Execute(callCtx, intent)
	if err != nil {
		category := governance.FailureAdapterPermanent
		if callCtx.Err() == context.DeadlineExceeded {
			category = governance.FailureTimeout
		}
		outcome = governance.Blocked(category, err.Error())
	}

	if outcome.Success {
		m.writeEvent(eventTradeExecuted, intent, "", "", map[string]any{
			"orderId":  outcome.OrderID,
			"price":    outcome.ExecutedPrice.String(),
			"quantity": outcome.ExecutedQty.String(),
			"mode":     mode.String(),
		})

		pnl := outcome.ExecutedQty.Mul(outcome.ExecutedPrice).Sub(outcome.Fees)
		if intent.Side == governance.SideBuy {
			pnl = pnl.Neg()
		}
		if m.pool != nil {
			drawdown := m.pool.UpdateEquity(intent.StrategyID, pnl)
			m.writeEvent(eventCapitalUpdate, intent, "", "", map[string]any{
				"pnl":      pnl.String(),
				"drawdown": drawdown.String(),
			})
		}
		if m.risk != nil {
			m.risk.RecordTrade(intent.StrategyID, pnl)
		}
		if mode != ModeReal && m.activity != nil {
			m.activity.RecordActivity(intent.Timestamp)
		}
	} else {
		m.writeEvent(eventTradeBlocked, intent, outcome.Error, "", map[string]any{
			"failureCategory": string(outcome.FailureCategory),
		})
	}

	return outcome
}

const (
	eventTradeBlocked          = "TradeBlocked"
	eventTradeExecuted         = "TradeExecuted"
	eventRiskCheck             = "RiskCheck"
	eventConfidenceGateBlocked = "ConfidenceGateBlocked"
	eventCapitalUpdate         = "CapitalUpdate"
)

func (m *Manager) writeEvent(eventType string, intent governance.TradeIntent, reason string, layer governance.Layer, metadata map[string]any) {
	if m.events == nil {
		return
	}
	m.events.Append(eventType, intent.StrategyID, reason, layer, metadata)
}

func categoryFor(layer governance.Layer) governance.FailureCategory {
	switch layer {
	case governance.LayerCapital:
		return governance.FailureCapitalDenied
	case governance.LayerRegime:
		return governance.FailureRegimeDenied
	case governance.LayerPermission:
		return governance.FailurePermissionDenied
	case governance.LayerRisk:
		return governance.FailureRiskDenied
	default:
		return governance.FailureIntegrityViolation
	}
}
