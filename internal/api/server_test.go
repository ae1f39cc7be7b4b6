package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/api"
	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/atlas-desktop/trading-governor/internal/governance"
	"github.com/atlas-desktop/trading-governor/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestServer(t *testing.T) (*httptest.Server, *eventlog.Log) {
	t.Helper()
	logger := zap.NewNop()

	log := eventlog.NewLog(nil)
	monitor := health.NewMonitor(logger, health.DefaultThresholds(), nil, time.Now().UTC())

	server := api.NewServer(logger, api.Config{AllowedOrigins: []string{"*"}}, api.Deps{
		Events: log,
		Health: monitor,
	})

	return httptest.NewServer(server.Router()), log
}

func TestHealthEndpointReportsHealthyWithNoActivity(t *testing.T) {
	ts, _ := setupTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, true, result["healthy"])
}

func TestStatusEndpointReportsEmptyModeWithoutController(t *testing.T) {
	ts, _ := setupTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "", result["mode"])
}

func TestEventsEndpointFiltersByType(t *testing.T) {
	ts, log := setupTestServer(t)
	defer ts.Close()

	log.Append(eventlog.Event{EventType: eventlog.TradeExecuted, StrategyID: "alpha"})
	log.Append(eventlog.Event{EventType: eventlog.TradeBlocked, StrategyID: "alpha", BlockingLayer: governance.LayerRisk})

	resp, err := http.Get(ts.URL + "/events?type=TradeBlocked")
	require.NoError(t, err)
	defer resp.Body.Close()

	var result struct {
		Events []eventlog.Event `json:"events"`
		Count  int              `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, 1, result.Count)
	assert.Equal(t, eventlog.TradeBlocked, result.Events[0].EventType)
}

func TestSnapshotsEndpointUnavailableWithoutSnapshotStore(t *testing.T) {
	ts, _ := setupTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/snapshots")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestValidationStatusUnavailableWithoutConfidenceGate(t *testing.T) {
	ts, _ := setupTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/validation-status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
