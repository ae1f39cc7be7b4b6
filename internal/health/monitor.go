// Package health computes the governor's own operational health signal:
// rolling error rate, market-data freshness, event-log write freshness,
// and execution-queue status. Nothing here touches capital or adapters;
// it only observes timestamps and counters other packages report in.
package health

import (
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// QueueStatus is the execution queue's coarse operational state.
type QueueStatus string

const (
	QueueRunning QueueStatus = "Running"
	QueueStalled QueueStatus = "Stalled"
)

// Thresholds tunes what counts as healthy.
type Thresholds struct {
	ErrorRateWindow     time.Duration
	MaxErrorsPerWindow  int
	MarketDataMaxAge    time.Duration
	EventLogWriteMaxAge time.Duration
}

// DefaultThresholds returns the governor's standard health thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ErrorRateWindow:     5 * time.Minute,
		MaxErrorsPerWindow:  10,
		MarketDataMaxAge:    5 * time.Minute,
		EventLogWriteMaxAge: 10 * time.Minute,
	}
}

// Alerter escalates CRITICAL conditions the monitor detects on its own,
// such as a lost heartbeat or a failed startup check.
type Alerter interface {
	Critical(trigger, message string, metadata map[string]any)
}

// Snapshot is the monitor's point-in-time report.
type Snapshot struct {
	Healthy            bool
	ErrorsInWindow      int
	MarketDataAge       time.Duration
	EventLogWriteAge    time.Duration
	QueueStatus         QueueStatus
	Uptime              time.Duration
	CPUPercent          float64
	MemoryPercent       float64
	Reasons             []string
}

// Monitor tracks the rolling signals that make up system health.
type Monitor struct {
	logger     *zap.Logger
	thresholds Thresholds
	alerts     Alerter
	startedAt  time.Time

	mu               sync.Mutex
	errorTimestamps  []time.Time
	lastMarketData   time.Time
	lastEventWrite   time.Time
	queueStatus      QueueStatus
	lastHeartbeat    time.Time
}

// NewMonitor builds a health monitor. startedAt should be the process
// start time, used for uptime reporting.
func NewMonitor(logger *zap.Logger, thresholds Thresholds, alerts Alerter, startedAt time.Time) *Monitor {
	return &Monitor{
		logger:     logger.Named("health"),
		thresholds: thresholds,
		alerts:     alerts,
		startedAt:  startedAt,
		queueStatus: QueueRunning,
	}
}

// RecordError registers an execution or adapter error at now for the
// rolling error-rate window.
func (m *Monitor) RecordError(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorTimestamps = append(m.errorTimestamps, at)
}

// RecordMarketData registers the most recent successful market data read.
func (m *Monitor) RecordMarketData(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if at.After(m.lastMarketData) {
		m.lastMarketData = at
	}
}

// RecordEventWrite registers the most recent successful event log write.
func (m *Monitor) RecordEventWrite(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if at.After(m.lastEventWrite) {
		m.lastEventWrite = at
	}
}

// SetQueueStatus records the execution queue's current operational state.
func (m *Monitor) SetQueueStatus(status QueueStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueStatus = status
}

func (m *Monitor) pruneErrorsLocked(now time.Time) int {
	cutoff := now.Add(-m.thresholds.ErrorRateWindow)
	kept := m.errorTimestamps[:0]
	for _, ts := range m.errorTimestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	m.errorTimestamps = kept
	return len(kept)
}

// Check evaluates all health signals at now and returns a snapshot. It
// reports but does not alert; Heartbeat is what escalates.
func (m *Monitor) Check(now time.Time) Snapshot {
	m.mu.Lock()
	errCount := m.pruneErrorsLocked(now)
	marketAge := now.Sub(m.lastMarketData)
	if m.lastMarketData.IsZero() {
		marketAge = 0
	}
	eventAge := now.Sub(m.lastEventWrite)
	if m.lastEventWrite.IsZero() {
		eventAge = 0
	}
	queueStatus := m.queueStatus
	m.mu.Unlock()

	var reasons []string
	healthy := true

	if errCount > m.thresholds.MaxErrorsPerWindow {
		healthy = false
		reasons = append(reasons, "error rate exceeds threshold")
	}
	if !m.lastMarketData.IsZero() && marketAge > m.thresholds.MarketDataMaxAge {
		healthy = false
		reasons = append(reasons, "market data stale")
	}
	if !m.lastEventWrite.IsZero() && eventAge > m.thresholds.EventLogWriteMaxAge {
		healthy = false
		reasons = append(reasons, "event log writes stale")
	}
	if queueStatus == QueueStalled {
		healthy = false
		reasons = append(reasons, "execution queue stalled")
	}

	cpuPercent, memPercent := m.systemStats()

	return Snapshot{
		Healthy:          healthy,
		ErrorsInWindow:   errCount,
		MarketDataAge:    marketAge,
		EventLogWriteAge: eventAge,
		QueueStatus:      queueStatus,
		Uptime:           now.Sub(m.startedAt),
		CPUPercent:       cpuPercent,
		MemoryPercent:    memPercent,
		Reasons:          reasons,
	}
}

// systemStats reads instantaneous CPU and memory usage. CPU sampling is
// capped short so the heartbeat job never blocks noticeably.
func (m *Monitor) systemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		m.logger.Warn("failed to read cpu percent", zap.Error(err))
		cpuPercent = []float64{0}
	}
	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		m.logger.Warn("failed to read memory stats", zap.Error(err))
		return cpuAvg, 0
	}
	return cpuAvg, memStat.UsedPercent
}

// Heartbeat is run periodically by the scheduler. It checks health and
// escalates loss-of-heartbeat style conditions to the alert manager; it
// never blocks on adapters or capital state.
func (m *Monitor) Heartbeat() error {
	now := time.Now().UTC()

	m.mu.Lock()
	m.lastHeartbeat = now
	m.mu.Unlock()

	snapshot := m.Check(now)
	if !snapshot.Healthy {
		m.logger.Warn("health check unhealthy", zap.Strings("reasons", snapshot.Reasons))
		if m.alerts != nil {
			m.alerts.Critical("heartbeat-loss", "health check failed", map[string]any{
				"reasons": snapshot.Reasons,
			})
		}
	}
	return nil
}

// Name identifies this job to the scheduler.
func (m *Monitor) Name() string { return "health-heartbeat" }

// RunStartupChecks runs the checks a mode.Controller transition requires
// before allowing Aggressive mode: the monitor must currently report
// healthy.
func (m *Monitor) RunStartupChecks() error {
	snapshot := m.Check(time.Now().UTC())
	if !snapshot.Healthy {
		if m.alerts != nil {
			m.alerts.Critical("startup-check-failure", "health check failed during mode transition", map[string]any{
				"reasons": snapshot.Reasons,
			})
		}
		return &StartupCheckError{Reasons: snapshot.Reasons}
	}
	return nil
}

// StartupCheckError reports why a startup check failed.
type StartupCheckError struct {
	Reasons []string
}

func (e *StartupCheckError) Error() string {
	if len(e.Reasons) == 0 {
		return "startup check failed"
	}
	msg := "startup check failed:"
	for _, r := range e.Reasons {
		msg += " " + r + ";"
	}
	return msg
}
