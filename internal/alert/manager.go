// Package alert implements the closed set of CRITICAL triggers. Normal
// gate denials are events, never alerts; only conditions that threaten
// capital integrity or system availability escalate here.
package alert

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Trigger is the closed enum of conditions that may raise a CRITICAL
// alert. Any other "interesting" condition belongs in the event log, not
// here.
type Trigger string

const (
	TriggerShutdown              Trigger = "shutdown"
	TriggerFailSafe              Trigger = "fail-safe"
	TriggerStartupCheckFailure   Trigger = "startup-check-failure"
	TriggerHeartbeatLoss         Trigger = "heartbeat-loss"
	TriggerCapitalIntegrity      Trigger = "capital-integrity-violation"
	TriggerArbitrageNeutralization Trigger = "arbitrage-neutralization-failure"
)

var closedTriggers = map[Trigger]bool{
	TriggerShutdown:                true,
	TriggerFailSafe:                true,
	TriggerStartupCheckFailure:     true,
	TriggerHeartbeatLoss:           true,
	TriggerCapitalIntegrity:        true,
	TriggerArbitrageNeutralization: true,
}

// Alert is one raised CRITICAL condition.
type Alert struct {
	Trigger   Trigger
	Message   string
	Metadata  map[string]any
	Timestamp time.Time
}

// Sink receives every raised alert, used to fan out to the operator API
// and websocket stream.
type Sink interface {
	OnAlert(Alert)
}

// Manager raises CRITICAL alerts for the closed trigger set and exposes a
// Prometheus counter per trigger.
type Manager struct {
	logger  *zap.Logger
	sinks   []Sink
	counter *prometheus.CounterVec
}

// NewManager registers the alert counter against registry.
func NewManager(logger *zap.Logger, registry prometheus.Registerer) *Manager {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "governor",
		Name:      "critical_alerts_total",
		Help:      "Count of CRITICAL alerts raised, by trigger.",
	}, []string{"trigger"})

	if registry != nil {
		registry.MustRegister(counter)
	}

	return &Manager{logger: logger.Named("alert"), counter: counter}
}

// AddSink registers a fan-out target for raised alerts.
func (m *Manager) AddSink(sink Sink) {
	m.sinks = append(m.sinks, sink)
}

// Critical raises an alert for trigger. An unrecognized trigger is
// normalized to fail-safe rather than silently dropped.
func (m *Manager) Critical(trigger string, message string, metadata map[string]any) {
	t := Trigger(trigger)
	if !closedTriggers[t] {
		m.logger.Error("unrecognized alert trigger normalized to fail-safe", zap.String("trigger", trigger))
		t = TriggerFailSafe
	}

	alert := Alert{Trigger: t, Message: message, Metadata: metadata, Timestamp: time.Now().UTC()}

	m.counter.WithLabelValues(string(t)).Inc()
	m.logger.Error("CRITICAL alert raised", zap.String("trigger", string(t)), zap.String("message", message))

	for _, sink := range m.sinks {
		sink.OnAlert(alert)
	}
}
