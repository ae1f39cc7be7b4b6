// Package governance implements the gate chain that decides whether a
// trade intent may reach an execution adapter.
package governance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side is the direction of a trade intent.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// TradeIntent is produced by a strategy and is immutable once emitted.
type TradeIntent struct {
	id             string
	StrategyID     string
	Symbol         string
	Side           Side
	BaseQuantity   decimal.Decimal
	LimitPrice     decimal.Decimal // zero value means "no limit"
	EstimatedValue decimal.Decimal // quote currency
	Timestamp      time.Time

	// RegimeDependent marks strategies whose gate evaluation must pass
	// through the RegimeGate. Arbitrage strategies that are not sensitive
	// to regime leave this false.
	RegimeDependent bool
}

// NewTradeIntent constructs an immutable trade intent.
// NewTradeIntent builds an intent for submission to the governance chain.
// SignalGenerated events, if a strategy emits them, belong to the caller
// upstream of this constructor; nothing in this pipeline generates signals.
func NewTradeIntent(strategyID, symbol string, side Side, baseQty, limitPrice, estimatedValue decimal.Decimal, regimeDependent bool) TradeIntent {
	return TradeIntent{
		id:              uuid.NewString(),
		StrategyID:      strategyID,
		Symbol:          symbol,
		Side:            side,
		BaseQuantity:    baseQty,
		LimitPrice:      limitPrice,
		EstimatedValue:  estimatedValue,
		Timestamp:       time.Now().UTC(),
		RegimeDependent: regimeDependent,
	}
}

// ID returns the intent's generated identifier.
func (t TradeIntent) ID() string { return t.id }

// FailureCategory closes the set of ways an order can fail to execute.
type FailureCategory string

const (
	FailureNone               FailureCategory = ""
	FailureCapitalDenied      FailureCategory = "CapitalDenied"
	FailureRegimeDenied       FailureCategory = "RegimeDenied"
	FailurePermissionDenied   FailureCategory = "PermissionDenied"
	FailureRiskDenied         FailureCategory = "RiskDenied"
	FailureDailyLimit         FailureCategory = "DailyLimit"
	FailureDrawdownLimit      FailureCategory = "DrawdownLimit"
	FailurePositionSize       FailureCategory = "PositionSize"
	FailureVolatility         FailureCategory = "Volatility"
	FailureInsufficientBal    FailureCategory = "InsufficientBalance"
	FailureNoMarketData       FailureCategory = "NoMarketData"
	FailureTimeout            FailureCategory = "Timeout"
	FailureConfidenceGate     FailureCategory = "ConfidenceGate"
	FailureAdapterTransient   FailureCategory = "AdapterTransient"
	FailureAdapterPermanent   FailureCategory = "AdapterPermanent"
	FailureIntegrityViolation FailureCategory = "IntegrityViolation"
)

// TradeOutcome is produced by an execution adapter. Its shape is identical
// whether the adapter is real or simulated.
type TradeOutcome struct {
	Success         bool
	OrderID         string
	ExecutedPrice   decimal.Decimal
	ExecutedQty     decimal.Decimal
	Fees            decimal.Decimal
	Slippage        decimal.Decimal
	Partial         bool
	Error           string
	FailureCategory FailureCategory
}

// Blocked builds a failure outcome carrying a category, used by gates and
// the execution manager when an intent never reaches an adapter.
func Blocked(category FailureCategory, reason string) TradeOutcome {
	return TradeOutcome{
		Success:         false,
		Error:           reason,
		FailureCategory: category,
	}
}
