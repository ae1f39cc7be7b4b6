package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/atlas-desktop/trading-governor/internal/eventlog"
	"github.com/atlas-desktop/trading-governor/internal/health"
	"github.com/atlas-desktop/trading-governor/internal/mode"
	"github.com/atlas-desktop/trading-governor/internal/shadow"
	"github.com/atlas-desktop/trading-governor/internal/snapshot"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Deps are the read-only collaborators the operator API queries. It
// never holds a reference to a venue adapter or the execution manager.
type Deps struct {
	Events         *eventlog.Log
	Snapshots      snapshot.Store
	Health         *health.Monitor
	Controller     *mode.Controller
	ShadowTracker  *shadow.Tracker
	ConfidenceGate *shadow.ConfidenceGate
	RiskState      func() string
	TradingAllowed func() bool
}

// Config configures the HTTP listener.
type Config struct {
	ListenAddr     string
	AllowedOrigins []string
}

// Server is the operator read-only HTTP and WebSocket API. Every
// handler here is side-effect-free and never reaches an adapter.
type Server struct {
	logger     *zap.Logger
	config     Config
	deps       Deps
	router     *mux.Router
	httpServer *http.Server
	upgrader   websocket.Upgrader
	hub        *Hub
}

// NewServer builds the operator API server and wires its routes.
func NewServer(logger *zap.Logger, config Config, deps Deps) *Server {
	s := &Server{
		logger: logger.Named("api"),
		config: config,
		deps:   deps,
		router: mux.NewRouter(),
		hub:    NewHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.setupRoutes()
	if deps.Events != nil {
		deps.Events.AddSink(s.hub)
	}
	return s
}

// Hub exposes the push hub so callers can also register it as an
// alert.Sink.
func (s *Server) Hub() *Hub { return s.hub }

// Router exposes the underlying mux router for tests.
func (s *Server) Router() *mux.Router { return s.router }

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/events", s.handleEvents).Methods("GET")
	s.router.HandleFunc("/snapshots", s.handleSnapshots).Methods("GET")
	s.router.HandleFunc("/replay", s.handleReplay).Methods("GET")
	s.router.HandleFunc("/parity-summary", s.handleParitySummary).Methods("GET")
	s.router.HandleFunc("/validation-status", s.handleValidationStatus).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// Start runs the HTTP server until it errors or is stopped.
func (s *Server) Start() error {
	handler := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"*"},
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go s.hub.Run()

	s.logger.Info("starting operator API", zap.String("addr", s.config.ListenAddr))
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleHealth reports the System Health Monitor's current signal.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health == nil {
		writeError(w, http.StatusServiceUnavailable, "health monitor not configured")
		return
	}
	snap := s.deps.Health.Check(time.Now().UTC())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"healthy":          snap.Healthy,
		"uptimeSeconds":    snap.Uptime.Seconds(),
		"errorsInWindow":   snap.ErrorsInWindow,
		"marketDataAgeSec": snap.MarketDataAge.Seconds(),
		"eventLogAgeSec":   snap.EventLogWriteAge.Seconds(),
		"queueStatus":      snap.QueueStatus,
		"cpuPercent":       snap.CPUPercent,
		"memoryPercent":    snap.MemoryPercent,
		"reasons":          snap.Reasons,
	})
}

// handleStatus reports system mode, risk state, and whether real
// execution is currently permitted.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var currentMode mode.Mode
	if s.deps.Controller != nil {
		currentMode = s.deps.Controller.Current()
	}
	riskState := ""
	if s.deps.RiskState != nil {
		riskState = s.deps.RiskState()
	}
	tradingAllowed := false
	if s.deps.TradingAllowed != nil {
		tradingAllowed = s.deps.TradingAllowed()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mode":           currentMode,
		"riskState":      riskState,
		"tradingAllowed": tradingAllowed,
	})
}

// handleEvents filters the event log by type/strategy/account/time
// range, with an optional result limit.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.deps.Events == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"events": []eventlog.Event{}})
		return
	}
	q := r.URL.Query()
	filter := eventlog.Filter{
		Type:       eventlog.Type(q.Get("type")),
		StrategyID: q.Get("strategy"),
		AccountID:  q.Get("account"),
	}
	if from := q.Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = t
		}
	}
	if to := q.Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = t
		}
	}

	events := s.deps.Events.Filter(filter)

	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 && limit < len(events) {
			events = events[len(events)-limit:]
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events, "count": len(events)})
}

// handleSnapshots returns a single day's snapshot (?date=) or a range
// (?startDate=&endDate=).
func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.deps.Snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot store not configured")
		return
	}
	q := r.URL.Query()

	if date := q.Get("date"); date != "" {
		daily, ok, err := s.deps.Snapshots.ByDate(date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "no snapshot for date")
			return
		}
		writeJSON(w, http.StatusOK, daily)
		return
	}

	start, end := q.Get("startDate"), q.Get("endDate")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "require date, or startDate and endDate")
		return
	}
	dailies, err := s.deps.Snapshots.Range(start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"snapshots": dailies, "count": len(dailies)})
}

// handleReplay reconstructs one day (?date=) or a range
// (?startDate=&endDate=) from the event log, validating against any
// stored snapshot.
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	if s.deps.Events == nil {
		writeError(w, http.StatusServiceUnavailable, "event log not configured")
		return
	}
	q := r.URL.Query()
	allEvents := s.deps.Events.GetAll()

	if dateStr := q.Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		var snap *snapshot.Daily
		if s.deps.Snapshots != nil {
			if daily, ok, _ := s.deps.Snapshots.ByDate(dateStr); ok {
				snap = &daily
			}
		}
		writeJSON(w, http.StatusOK, snapshot.ReplayDay(date, allEvents, snap))
		return
	}

	startStr, endStr := q.Get("startDate"), q.Get("endDate")
	if startStr == "" || endStr == "" {
		writeError(w, http.StatusBadRequest, "require date, or startDate and endDate")
		return
	}
	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	snapshots := map[string]snapshot.Daily{}
	if s.deps.Snapshots != nil {
		dailies, err := s.deps.Snapshots.Range(startStr, endStr)
		if err == nil {
			for _, d := range dailies {
				snapshots[d.Date] = d
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": snapshot.ReplayRange(start, end, allEvents, snapshots)})
}

// handleParitySummary reports the shadow tracker's aggregate fill-rate
// and slippage parity against simulated fills.
func (s *Server) handleParitySummary(w http.ResponseWriter, r *http.Request) {
	if s.deps.ShadowTracker == nil {
		writeError(w, http.StatusServiceUnavailable, "shadow tracker not configured")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.ShadowTracker.Summary())
}

// handleValidationStatus reports whether a strategy meets the
// Confidence Gate's thresholds for promotion to live execution.
func (s *Server) handleValidationStatus(w http.ResponseWriter, r *http.Request) {
	if s.deps.ConfidenceGate == nil {
		writeError(w, http.StatusServiceUnavailable, "confidence gate not configured")
		return
	}
	strategyID := r.URL.Query().Get("strategy")
	if strategyID == "" {
		writeError(w, http.StatusBadRequest, "strategy query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.ConfidenceGate.Check(strategyID))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(uuid.New().String(), s.hub, conn)
	s.hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}
