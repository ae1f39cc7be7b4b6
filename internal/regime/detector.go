// Package regime classifies market state and exposes a verdict the
// RegimeGate consumes. Only the verdict shape is contractual, so this
// package keeps a trend/volatility classifier internally and narrows its
// public surface to the {regime, confidence, symbol, timestamp} verdict.
package regime

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Label is the closed verdict enum the RegimeGate consumes.
type Label string

const (
	Favorable   Label = "Favorable"
	Unfavorable Label = "Unfavorable"
	Unknown     Label = "Unknown"
)

// Verdict is the classification of a symbol's market state at a point in
// time.
type Verdict struct {
	Regime     Label
	Confidence float64 // 0..1
	Symbol     string
	Timestamp  time.Time
}

// internalState carries the detector's richer working state; only
// Label/Confidence cross the package boundary via Verdict.
type internalState struct {
	primary    string
	confidence float64
	trend      float64
	volatility float64
	startedAt  time.Time
}

// Config configures the detector.
type Config struct {
	WindowSize       int
	VolatilityWindow int
	VolThreshold     float64
	TrendThreshold   float64
	ConfidenceFloor  float64 // below this the detector reports Unknown
}

// DefaultConfig returns reasonable defaults for the trend/volatility
// classifier.
func DefaultConfig() Config {
	return Config{
		WindowSize:       100,
		VolatilityWindow: 20,
		VolThreshold:     0.25,
		TrendThreshold:   0.3,
		ConfidenceFloor:  0.3,
	}
}

// Detector tracks per-symbol return series and classifies regime.
type Detector struct {
	logger *zap.Logger
	config Config

	mu      sync.RWMutex
	returns map[string][]float64
	current map[string]*internalState
}

// NewDetector creates a regime detector.
func NewDetector(logger *zap.Logger, config Config) *Detector {
	return &Detector{
		logger:  logger.Named("regime"),
		config:  config,
		returns: make(map[string][]float64),
		current: make(map[string]*internalState),
	}
}

// AddReturn feeds a new return observation for symbol and recomputes its
// regime.
func (d *Detector) AddReturn(symbol string, ret float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	series := append(d.returns[symbol], ret)
	maxLen := d.config.WindowSize * 2
	if len(series) > maxLen {
		series = series[len(series)-d.config.WindowSize:]
	}
	d.returns[symbol] = series

	d.updateRegime(symbol)
}

func (d *Detector) updateRegime(symbol string) {
	series := d.returns[symbol]
	if len(series) < d.config.VolatilityWindow {
		return
	}

	window := series
	if len(window) > d.config.WindowSize {
		window = window[len(window)-d.config.WindowSize:]
	}

	trend := trendOf(window)
	vol := stdDev(window) * math.Sqrt(252)

	label := "neutral"
	confidence := 0.5
	switch {
	case trend > d.config.TrendThreshold && vol <= d.config.VolThreshold:
		label = "bull"
		confidence = 0.5 + math.Min(0.5, trend/2)
	case trend < -d.config.TrendThreshold && vol <= d.config.VolThreshold:
		label = "bear"
		confidence = 0.5 + math.Min(0.5, math.Abs(trend)/2)
	case vol > d.config.VolThreshold:
		label = "high_vol"
		confidence = 0.5 + math.Min(0.5, vol/2)
	default:
		confidence = 0.5
	}

	prev := d.current[symbol]
	started := time.Now().UTC()
	if prev != nil && prev.primary == label {
		started = prev.startedAt
	}

	d.current[symbol] = &internalState{
		primary:    label,
		confidence: confidence,
		trend:      trend,
		volatility: vol,
		startedAt:  started,
	}
}

// CurrentRegime returns the current verdict for symbol. Symbols with
// insufficient data report Unknown with zero confidence.
func (d *Detector) CurrentRegime(symbol string) Verdict {
	d.mu.RLock()
	defer d.mu.RUnlock()

	state := d.current[symbol]
	if state == nil {
		return Verdict{Regime: Unknown, Symbol: symbol, Timestamp: time.Now().UTC()}
	}

	regime := Unfavorable
	switch {
	case state.confidence < d.config.ConfidenceFloor:
		regime = Unknown
	case state.primary == "bull" || (state.primary == "neutral" && state.trend >= 0):
		regime = Favorable
	default:
		regime = Unfavorable
	}

	return Verdict{
		Regime:     regime,
		Confidence: state.confidence,
		Symbol:     symbol,
		Timestamp:  time.Now().UTC(),
	}
}

func trendOf(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range returns {
		sum += r
	}
	sd := stdDev(returns)
	if sd == 0 {
		return 0
	}
	t := sum / (sd * math.Sqrt(float64(len(returns))))
	if t > 1 {
		t = 1
	} else if t < -1 {
		t = -1
	}
	return t
}

func stdDev(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	return math.Sqrt(variance)
}
