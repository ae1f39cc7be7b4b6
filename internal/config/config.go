// Package config loads the governance core's configuration from
// environment variables (prefixed GOVERNOR_) with an optional config
// file, following the same viper-driven pattern used throughout the
// pack for env-var-first services.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the governance core's full runtime configuration.
type Config struct {
	SystemMode SystemModeConfig `mapstructure:"system_mode"`
	Capital    CapitalConfig    `mapstructure:"capital"`
	Confidence ConfidenceConfig `mapstructure:"confidence"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Venue      VenueConfig      `mapstructure:"venue"`
	Risk       RiskConfig       `mapstructure:"risk"`
	Storage    StorageConfig    `mapstructure:"storage"`
	API        APIConfig        `mapstructure:"api"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SystemModeConfig controls the Mode Controller's starting state.
type SystemModeConfig struct {
	Default string `mapstructure:"default"` // "ObserveOnly" or "Aggressive"
}

// CapitalConfig sets up the initial pools and allocator decay.
type CapitalConfig struct {
	InitialDirectionalEquity string `mapstructure:"initial_directional_equity"`
	InitialArbitrageEquity   string `mapstructure:"initial_arbitrage_equity"`
	MaxDrawdownPct           string `mapstructure:"max_drawdown_pct"`
	ProbationDecayRate       string `mapstructure:"probation_decay_rate"`
	ProbationDecayPeriods    int    `mapstructure:"probation_decay_periods"`
	ArbMinAllocation         string `mapstructure:"arb_min_allocation"`
	ArbMinPoolFloor          string `mapstructure:"arb_min_pool_floor"`
	AggressiveMaxMultiplier  string `mapstructure:"aggressive_max_multiplier"`
}

// ConfidenceConfig sets the Confidence Gate's admission thresholds.
type ConfidenceConfig struct {
	MinShadowTrades      int     `mapstructure:"min_shadow_trades"`
	MinActiveTradingDays int     `mapstructure:"min_active_trading_days"`
	MinConfidenceScore   float64 `mapstructure:"min_confidence_score"`
	MinRegimeCoverage    int     `mapstructure:"min_regime_coverage"`
}

// SimulationConfig tunes the Simulated Execution Adapter's fill model.
type SimulationConfig struct {
	FixedLatency         time.Duration `mapstructure:"fixed_latency"`
	MakerFeeRate         string        `mapstructure:"maker_fee_rate"`
	TakerFeeRate         string        `mapstructure:"taker_fee_rate"`
	MaxLiquidityFraction string        `mapstructure:"max_liquidity_fraction"`
	SlippageModel        string        `mapstructure:"slippage_model"`
	SlippageBaseBps      string        `mapstructure:"slippage_base_bps"`
	SlippageSizeExponent float64       `mapstructure:"slippage_size_exponent"`
}

// VenueConfig holds venue credentials. Like every other key, they are read
// from the environment or from the config file if one is given.
type VenueConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	BaseURL   string `mapstructure:"base_url"`
}

// RiskConfig sets the Risk Governor's daily ceilings.
type RiskConfig struct {
	MaxDailyTrades     int    `mapstructure:"max_daily_trades"`
	MaxDailyLossPct    string `mapstructure:"max_daily_loss_pct"`
	MaxPositionSizePct string `mapstructure:"max_position_size_pct"`
	MaxVolatility      string `mapstructure:"max_volatility"`
}

// StorageConfig locates the sqlite-backed durable stores.
type StorageConfig struct {
	EventLogPath string `mapstructure:"event_log_path"`
	SnapshotPath string `mapstructure:"snapshot_path"`
	ShadowPath   string `mapstructure:"shadow_path"`
}

// APIConfig configures the operator read-only HTTP server.
type APIConfig struct {
	ListenAddr     string   `mapstructure:"listen_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig controls the zap logger's verbosity and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables (prefixed
// GOVERNOR_, nested fields joined with underscores) with optional
// overrides from a config file at path. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GOVERNOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("system_mode.default", "ObserveOnly")

	v.SetDefault("capital.initial_directional_equity", "100000")
	v.SetDefault("capital.initial_arbitrage_equity", "20000")
	v.SetDefault("capital.max_drawdown_pct", "20")
	v.SetDefault("capital.probation_decay_rate", "0.5")
	v.SetDefault("capital.probation_decay_periods", 2)
	v.SetDefault("capital.arb_min_allocation", "50")
	v.SetDefault("capital.arb_min_pool_floor", "100")
	v.SetDefault("capital.aggressive_max_multiplier", "1.5")

	v.SetDefault("confidence.min_shadow_trades", 500)
	v.SetDefault("confidence.min_active_trading_days", 100)
	v.SetDefault("confidence.min_confidence_score", 90.0)
	v.SetDefault("confidence.min_regime_coverage", 20)

	v.SetDefault("simulation.fixed_latency", "50ms")
	v.SetDefault("simulation.maker_fee_rate", "0.0002")
	v.SetDefault("simulation.taker_fee_rate", "0.0007")
	v.SetDefault("simulation.max_liquidity_fraction", "0.1")
	v.SetDefault("simulation.slippage_model", "Linear")
	v.SetDefault("simulation.slippage_base_bps", "2")
	v.SetDefault("simulation.slippage_size_exponent", 1.5)

	v.SetDefault("risk.max_daily_trades", 50)
	v.SetDefault("risk.max_daily_loss_pct", "0.05")
	v.SetDefault("risk.max_position_size_pct", "0.1")
	v.SetDefault("risk.max_volatility", "0.25")

	v.SetDefault("storage.event_log_path", "data/events.db")
	v.SetDefault("storage.snapshot_path", "data/snapshots.db")
	v.SetDefault("storage.shadow_path", "data/shadow.db")

	v.SetDefault("api.listen_addr", ":8090")
	v.SetDefault("api.allowed_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks required fields and value ranges before the
// governance core starts.
func (c *Config) Validate() error {
	switch c.SystemMode.Default {
	case "ObserveOnly", "Aggressive":
	default:
		return fmt.Errorf("system_mode.default must be ObserveOnly or Aggressive, got %q", c.SystemMode.Default)
	}
	if c.Confidence.MinShadowTrades <= 0 {
		return fmt.Errorf("confidence.min_shadow_trades must be > 0")
	}
	if c.Risk.MaxDailyTrades <= 0 {
		return fmt.Errorf("risk.max_daily_trades must be > 0")
	}
	if c.Storage.EventLogPath == "" {
		return fmt.Errorf("storage.event_log_path is required")
	}
	return nil
}
