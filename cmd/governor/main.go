// Package main is the governance core's entry point: it wires every
// module into a running process, or runs a one-shot CLI utility against
// the durable stores.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/alert"
	"github.com/atlas-desktop/trading-governor/internal/api"
	"github.com/atlas-desktop/trading-governor/internal/arbitrage"
	"github.com/atlas-desktop/trading-governor/internal/capital"
	"github.com/atlas-desktop/trading-governor/internal/config"
	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/atlas-desktop/trading-governor/internal/execution"
	"github.com/atlas-desktop/trading-governor/internal/execution/adapters"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/atlas-desktop/trading-governor/internal/health"
	"github.com/atlas-desktop/trading-governor/internal/marketdata"
	"github.com/atlas-desktop/trading-governor/internal/mode"
	"github.com/atlas-desktop/trading-governor/internal/regime"
	"github.com/atlas-desktop/trading-governor/internal/risk"
	"github.com/atlas-desktop/trading-governor/internal/runtime"
	"github.com/atlas-desktop/trading-governor/internal/scheduler"
	"github.com/atlas-desktop/trading-governor/internal/shadow"
	"github.com/atlas-desktop/trading-governor/internal/snapshot"
	"github.com/atlas-desktop/trading-governor/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (optional; GOVERNOR_ env vars always apply)")
	logLevelFlag := flag.String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: governor <start-shadow|start-simulation|replay-range|snapshot-day> [flags]")
		os.Exit(1)
	}
	command, commandArgs := args[0], args[1:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logLevel := cfg.Logging.Level
	if *logLevelFlag != "" {
		logLevel = *logLevelFlag
	}
	logger := setupLogger(logLevel)
	defer logger.Sync()

	var runErr error
	switch command {
	case "start-shadow":
		runErr = serve(logger, cfg, execution.ModeShadow)
	case "start-simulation":
		runErr = serve(logger, cfg, execution.ModeSimulation)
	case "replay-range":
		runErr = replayRange(logger, cfg, commandArgs)
	case "snapshot-day":
		runErr = snapshotDay(logger, cfg, commandArgs)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(1)
	}

	if runErr != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(runErr))
		os.Exit(1)
	}
}

// pipeline holds every wired collaborator a running process needs to stop
// cleanly on shutdown.
type pipeline struct {
	logger    *zap.Logger
	eventDB   *storage.DB
	snapDB    *storage.DB
	shadowDB  *storage.DB
	scheduler *scheduler.Scheduler
	apiServer *api.Server
}

func serve(logger *zap.Logger, cfg *config.Config, defaultMode execution.Mode) error {
	p, err := buildPipeline(logger, cfg, defaultMode)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.scheduler.Start()

	go func() {
		if err := p.apiServer.Start(); err != nil {
			logger.Error("operator API stopped", zap.Error(err))
		}
	}()

	logger.Info("governance core started",
		zap.String("mode", defaultMode.String()),
		zap.String("listenAddr", cfg.API.ListenAddr),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received")
	cancel()

	p.scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := p.apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during API shutdown", zap.Error(err))
	}

	for _, db := range []*storage.DB{p.eventDB, p.snapDB, p.shadowDB} {
		if db != nil {
			if err := db.Close(); err != nil {
				logger.Error("error closing database", zap.Error(err))
			}
		}
	}

	logger.Info("governance core stopped")
	return nil
}

// buildPipeline wires every governance module together: pools and
// accounts, the four-gate chain, the execution manager and its adapters,
// the arbitrage executor, health monitoring, alerting, and the operator
// API. defaultMode fixes which non-real execution adapter the manager
// dispatches to; the real venue adapter is never registered here, since a
// live venue integration is out of scope.
func buildPipeline(logger *zap.Logger, cfg *config.Config, defaultMode execution.Mode) (*pipeline, error) {
	eventDB, err := storage.Open(cfg.Storage.EventLogPath)
	if err != nil {
		return nil, fmt.Errorf("open event log database: %w", err)
	}
	snapDB, err := storage.Open(cfg.Storage.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	shadowDB, err := storage.Open(cfg.Storage.ShadowPath)
	if err != nil {
		return nil, fmt.Errorf("open shadow database: %w", err)
	}

	eventStore, err := eventlog.NewSQLiteStore(eventDB)
	if err != nil {
		return nil, fmt.Errorf("migrate event log: %w", err)
	}
	snapStore, err := snapshot.NewSQLiteStore(snapDB)
	if err != nil {
		return nil, fmt.Errorf("migrate snapshot store: %w", err)
	}
	shadowStore, err := shadow.NewSQLiteStore(shadowDB)
	if err != nil {
		return nil, fmt.Errorf("migrate shadow store: %w", err)
	}

	eventLog := eventlog.NewLog(eventStore)
	eventWriter := eventlog.NewWriter(eventLog)

	registry := prometheus.NewRegistry()
	alertManager := alert.NewManager(logger, registry)

	directionalEquity, err := decimal.NewFromString(cfg.Capital.InitialDirectionalEquity)
	if err != nil {
		return nil, fmt.Errorf("parse initial directional equity: %w", err)
	}
	arbitrageEquity, err := decimal.NewFromString(cfg.Capital.InitialArbitrageEquity)
	if err != nil {
		return nil, fmt.Errorf("parse initial arbitrage equity: %w", err)
	}
	maxDrawdownPct, err := decimal.NewFromString(cfg.Capital.MaxDrawdownPct)
	if err != nil {
		return nil, fmt.Errorf("parse max drawdown pct: %w", err)
	}

	pools := map[capital.Kind]*capital.Pool{
		capital.KindDirectional: capital.NewPool(capital.KindDirectional, directionalEquity, maxDrawdownPct),
		capital.KindArbitrage:   capital.NewPool(capital.KindArbitrage, arbitrageEquity, maxDrawdownPct),
	}
	accounts := capital.NewAccountManager()
	strategyRegistry := capital.NewStrategyRegistry()
	poolUpdater := capital.NewPoolUpdater(accounts, pools)

	allocatorConfig, err := allocatorConfigFrom(cfg.Capital)
	if err != nil {
		return nil, err
	}
	allocator := capital.NewAllocator(logger, allocatorConfig, pools, accounts, strategyRegistry)
	_ = allocator // allocation is driven by strategy onboarding, exercised by its own tests

	regimeDetector := regime.NewDetector(logger, regime.DefaultConfig())

	healthThresholds := health.DefaultThresholds()
	healthMonitor := health.NewMonitor(logger, healthThresholds, alertManager, time.Now().UTC())

	modeController := mode.NewController(logger, healthMonitor.RunStartupChecks)
	modeController.OnChange(func(from, to mode.Mode) {
		eventLog.Append(eventlog.Event{
			EventType: eventlog.SystemModeChange,
			Reason:    "mode transition",
			Metadata:  map[string]any{"from": string(from), "to": string(to)},
		})
	})

	capitalGate := governance.NewCapitalGate(accounts)
	regimeGate := governance.NewRegimeGate(regimeDetector).WithJournal(eventWriter)
	permissionGate := governance.NewPermissionGate(modeController, accounts, func() bool {
		return defaultMode == execution.ModeReal
	})

	riskConfig, err := riskConfigFrom(cfg.Risk)
	if err != nil {
		return nil, err
	}
	equityLookup := func(strategyID string) decimal.Decimal {
		acc := accounts.Get(strategyID)
		if acc == nil {
			return decimal.Zero
		}
		return acc.Allocated
	}
	volatilityLookup := func(symbol string) decimal.Decimal {
		verdict := regimeDetector.CurrentRegime(symbol)
		return decimal.NewFromFloat(1 - verdict.Confidence)
	}
	riskGovernor := risk.NewGovernor(logger, riskConfig, volatilityLookup, equityLookup)

	chain := governance.NewChain(capitalGate, regimeGate, permissionGate, riskGovernor)

	feed := marketdata.NewFeed()

	simConfig, err := simulatedConfigFrom(cfg.Simulation)
	if err != nil {
		return nil, err
	}
	simulated := adapters.NewSimulated(simConfig, feed, adapters.RealClock())

	shadowConfig := shadow.DefaultConfig()
	shadowTracker := shadow.NewTracker(logger, shadowConfig, feed, simulated, shadowStore)

	activityTracker := runtime.NewTracker()

	execAdapters := map[execution.Mode]execution.Adapter{
		execution.ModeSimulation: simulated,
		execution.ModeShadow:     shadowTracker,
	}

	confidenceThresholds, err := confidenceThresholdsFrom(cfg.Confidence)
	if err != nil {
		return nil, err
	}
	confidenceGate := shadow.NewConfidenceGate(confidenceThresholds, shadowStore, shadowTracker)

	manager := execution.NewManager(execution.Config{
		Logger:   logger,
		Chain:    chain,
		Adapters: execAdapters,
		ResolveMode: func(governance.TradeIntent) execution.Mode {
			return defaultMode
		},
		Confidence: confidenceGate,
		Events:     eventWriter,
		Pool:       poolUpdater,
		Risk:       riskRecorder{governor: riskGovernor, equity: equityLookup},
		Activity:   activityTracker,
	})

	arbitrageExecutor := arbitrage.NewExecutor(logger, arbitrage.DefaultConfig(), manager.Execute, eventWriter, alertManager)
	_ = arbitrageExecutor // dispatched by strategy-facing callers exercising the same Execute funnel

	riskStateFn := func() string {
		return "Nominal"
	}
	tradingAllowedFn := func() bool {
		return modeController.Current() == mode.Aggressive
	}

	apiServer := api.NewServer(logger, api.Config{
		ListenAddr:     cfg.API.ListenAddr,
		AllowedOrigins: cfg.API.AllowedOrigins,
	}, api.Deps{
		Events:         eventLog,
		Snapshots:      snapStore,
		Health:         healthMonitor,
		Controller:     modeController,
		ShadowTracker:  shadowTracker,
		ConfidenceGate: confidenceGate,
		RiskState:      riskStateFn,
		TradingAllowed: tradingAllowedFn,
	})
	alertManager.AddSink(apiServer.Hub())
	apiServer.Router().Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	sched := scheduler.New(logger)
	if err := sched.AddJob("0 */1 * * * *", heartbeatJob{monitor: healthMonitor}); err != nil {
		return nil, fmt.Errorf("register heartbeat job: %w", err)
	}
	if err := sched.AddJob("0 0 0 * * *", rolloverJob{
		logger:    logger,
		events:    eventLog,
		snapshots: snapStore,
		pools:     pools,
		runtime:   activityTracker,
		mode:      modeController,
	}); err != nil {
		return nil, fmt.Errorf("register snapshot rollover job: %w", err)
	}

	if err := healthMonitor.RunStartupChecks(); err != nil {
		logger.Warn("startup health checks failed; starting in observe-only", zap.Error(err))
	}

	return &pipeline{
		logger:    logger,
		eventDB:   eventDB,
		snapDB:    snapDB,
		shadowDB:  shadowDB,
		scheduler: sched,
		apiServer: apiServer,
	}, nil
}

// riskRecorder adapts risk.Governor.RecordTrade to execution.RiskRecorder,
// resolving the equity the daily loss ceiling is measured against.
type riskRecorder struct {
	governor *risk.Governor
	equity   func(strategyID string) decimal.Decimal
}

func (r riskRecorder) RecordTrade(strategyID string, pnl decimal.Decimal) {
	r.governor.RecordTrade(strategyID, pnl, r.equity(strategyID))
}

// heartbeatJob adapts health.Monitor.Heartbeat to scheduler.Job.
type heartbeatJob struct {
	monitor *health.Monitor
}

func (j heartbeatJob) Name() string { return j.monitor.Name() }
func (j heartbeatJob) Run() error   { return j.monitor.Heartbeat() }

// rolloverJob folds the prior UTC day's events into a sealed Daily
// snapshot at midnight.
type rolloverJob struct {
	logger    *zap.Logger
	events    *eventlog.Log
	snapshots snapshot.Store
	pools     map[capital.Kind]*capital.Pool
	runtime   *runtime.Tracker
	mode      *mode.Controller
}

func (j rolloverJob) Name() string { return "snapshot-rollover" }

func (j rolloverJob) Run() error {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	poolEquity := map[string]decimal.Decimal{}
	poolDrawdown := map[string]decimal.Decimal{}
	for kind, pool := range j.pools {
		state := pool.State()
		poolEquity[string(kind)] = state.TotalEquity
		poolDrawdown[string(kind)] = state.CurrentDrawdownPct
	}

	daily := snapshot.Generate(
		yesterday,
		j.events.GetAll(),
		snapshot.PoolMetrics{Equity: poolEquity, Drawdown: poolDrawdown},
		snapshot.StrategyMetrics{PnL: map[string]decimal.Decimal{}, Drawdowns: map[string]decimal.Decimal{}},
		map[string]decimal.Decimal{},
		j.mode.Current(),
		"Nominal",
		sumEquity(poolEquity),
	)

	if err := j.snapshots.Save(daily); err != nil {
		j.logger.Error("failed to save daily snapshot", zap.String("date", daily.Date), zap.Error(err))
		return err
	}
	j.logger.Info("daily snapshot sealed", zap.String("date", daily.Date))
	return nil
}

func sumEquity(byPool map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range byPool {
		total = total.Add(v)
	}
	return total
}

// replayRange reconstructs a date range purely from the durable event log
// and prints the result as JSON, without starting any server.
func replayRange(logger *zap.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("replay-range", flag.ContinueOnError)
	start := fs.String("start", "", "Start date (YYYY-MM-DD)")
	end := fs.String("end", "", "End date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *start == "" || *end == "" {
		return fmt.Errorf("--start and --end are required")
	}
	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("parse --start: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", *end)
	if err != nil {
		return fmt.Errorf("parse --end: %w", err)
	}

	eventDB, err := storage.Open(cfg.Storage.EventLogPath)
	if err != nil {
		return fmt.Errorf("open event log database: %w", err)
	}
	defer eventDB.Close()
	eventStore, err := eventlog.NewSQLiteStore(eventDB)
	if err != nil {
		return fmt.Errorf("migrate event log: %w", err)
	}
	events, err := eventStore.LoadAll()
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	snapDB, err := storage.Open(cfg.Storage.SnapshotPath)
	if err != nil {
		return fmt.Errorf("open snapshot database: %w", err)
	}
	defer snapDB.Close()
	snapStore, err := snapshot.NewSQLiteStore(snapDB)
	if err != nil {
		return fmt.Errorf("migrate snapshot store: %w", err)
	}
	dailies, err := snapStore.Range(*start, *end)
	if err != nil {
		return fmt.Errorf("load snapshot range: %w", err)
	}
	bySnapshot := make(map[string]snapshot.Daily, len(dailies))
	for _, d := range dailies {
		bySnapshot[d.Date] = d
	}

	results := snapshot.ReplayRange(startDate, endDate, events, bySnapshot)
	return printJSON(results)
}

// snapshotDay regenerates a single day's Daily snapshot purely from the
// durable event log (trade counts, blocking reasons, regime distribution)
// and seals it. Capital/pool figures are zero-filled, since a standalone
// CLI run has no live pool state to read; the scheduled rollover job is
// the path that captures those.
func snapshotDay(logger *zap.Logger, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("snapshot-day", flag.ContinueOnError)
	date := fs.String("date", "", "Date to snapshot (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *date == "" {
		return fmt.Errorf("--date is required")
	}
	day, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return fmt.Errorf("parse --date: %w", err)
	}

	eventDB, err := storage.Open(cfg.Storage.EventLogPath)
	if err != nil {
		return fmt.Errorf("open event log database: %w", err)
	}
	defer eventDB.Close()
	eventStore, err := eventlog.NewSQLiteStore(eventDB)
	if err != nil {
		return fmt.Errorf("migrate event log: %w", err)
	}
	events, err := eventStore.LoadAll()
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	snapDB, err := storage.Open(cfg.Storage.SnapshotPath)
	if err != nil {
		return fmt.Errorf("open snapshot database: %w", err)
	}
	defer snapDB.Close()
	snapStore, err := snapshot.NewSQLiteStore(snapDB)
	if err != nil {
		return fmt.Errorf("migrate snapshot store: %w", err)
	}

	daily := snapshot.Generate(
		day,
		events,
		snapshot.PoolMetrics{Equity: map[string]decimal.Decimal{}, Drawdown: map[string]decimal.Decimal{}},
		snapshot.StrategyMetrics{PnL: map[string]decimal.Decimal{}, Drawdowns: map[string]decimal.Decimal{}},
		map[string]decimal.Decimal{},
		mode.ObserveOnly,
		"Nominal",
		decimal.Zero,
	)

	if err := snapStore.Save(daily); err != nil {
		return fmt.Errorf("save daily snapshot: %w", err)
	}
	logger.Info("daily snapshot sealed", zap.String("date", daily.Date))
	return printJSON(daily)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func allocatorConfigFrom(cfg config.CapitalConfig) (capital.AllocatorConfig, error) {
	decayRate, err := decimal.NewFromString(cfg.ProbationDecayRate)
	if err != nil {
		return capital.AllocatorConfig{}, fmt.Errorf("parse probation decay rate: %w", err)
	}
	arbMinAlloc, err := decimal.NewFromString(cfg.ArbMinAllocation)
	if err != nil {
		return capital.AllocatorConfig{}, fmt.Errorf("parse arb min allocation: %w", err)
	}
	arbMinFloor, err := decimal.NewFromString(cfg.ArbMinPoolFloor)
	if err != nil {
		return capital.AllocatorConfig{}, fmt.Errorf("parse arb min pool floor: %w", err)
	}
	aggressiveMax, err := decimal.NewFromString(cfg.AggressiveMaxMultiplier)
	if err != nil {
		return capital.AllocatorConfig{}, fmt.Errorf("parse aggressive max multiplier: %w", err)
	}
	return capital.AllocatorConfig{
		ProbationDecayRate:      decayRate,
		ProbationDecayPeriods:   cfg.ProbationDecayPeriods,
		ArbMinAllocation:        arbMinAlloc,
		ArbMinPoolFloor:         arbMinFloor,
		AggressiveMaxMultiplier: aggressiveMax,
	}, nil
}

func riskConfigFrom(cfg config.RiskConfig) (risk.Config, error) {
	maxDailyLoss, err := decimal.NewFromString(cfg.MaxDailyLossPct)
	if err != nil {
		return risk.Config{}, fmt.Errorf("parse max daily loss pct: %w", err)
	}
	maxPositionSize, err := decimal.NewFromString(cfg.MaxPositionSizePct)
	if err != nil {
		return risk.Config{}, fmt.Errorf("parse max position size pct: %w", err)
	}
	maxVolatility, err := decimal.NewFromString(cfg.MaxVolatility)
	if err != nil {
		return risk.Config{}, fmt.Errorf("parse max volatility: %w", err)
	}
	return risk.Config{
		MaxDailyTrades:     cfg.MaxDailyTrades,
		MaxDailyLossPct:    maxDailyLoss,
		MaxPositionSizePct: maxPositionSize,
		MaxVolatility:      maxVolatility,
	}, nil
}

func simulatedConfigFrom(cfg config.SimulationConfig) (adapters.SimulatedConfig, error) {
	makerFee, err := decimal.NewFromString(cfg.MakerFeeRate)
	if err != nil {
		return adapters.SimulatedConfig{}, fmt.Errorf("parse maker fee rate: %w", err)
	}
	takerFee, err := decimal.NewFromString(cfg.TakerFeeRate)
	if err != nil {
		return adapters.SimulatedConfig{}, fmt.Errorf("parse taker fee rate: %w", err)
	}
	maxLiquidity, err := decimal.NewFromString(cfg.MaxLiquidityFraction)
	if err != nil {
		return adapters.SimulatedConfig{}, fmt.Errorf("parse max liquidity fraction: %w", err)
	}
	slippageBase, err := decimal.NewFromString(cfg.SlippageBaseBps)
	if err != nil {
		return adapters.SimulatedConfig{}, fmt.Errorf("parse slippage base bps: %w", err)
	}
	model := adapters.SlippageLinear
	if cfg.SlippageModel == string(adapters.SlippageSquareRoot) {
		model = adapters.SlippageSquareRoot
	}
	return adapters.SimulatedConfig{
		FixedLatency:         cfg.FixedLatency,
		MakerFeeRate:         makerFee,
		TakerFeeRate:         takerFee,
		MaxLiquidityFraction: maxLiquidity,
		SlippageModel:        model,
		SlippageBaseBps:      slippageBase,
		SlippageSizeExponent: cfg.SlippageSizeExponent,
	}, nil
}

func confidenceThresholdsFrom(cfg config.ConfidenceConfig) (shadow.ConfidenceThresholds, error) {
	return shadow.ConfidenceThresholds{
		MinShadowTrades:      cfg.MinShadowTrades,
		MinActiveTradingDays: cfg.MinActiveTradingDays,
		MinConfidenceScore:   cfg.MinConfidenceScore,
		MinRegimeCoverage:    cfg.MinRegimeCoverage,
	}, nil
}

func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
