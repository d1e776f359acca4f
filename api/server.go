package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finboard/cache"
	"finboard/database"
	"finboard/helpers"
	"finboard/importer"
	"finboard/realtime"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Store is the persistence used by the HTTP handlers
type Store interface {
	ListCompanies(search string) ([]database.Company, error)
	GetCompany(id string) (*database.Company, error)
	CreateCompany(company *database.Company) error
	UpdateCompany(company *database.Company) error
	DeleteCompany(id string) error
	GetCoverage() ([]database.CompanyCoverage, error)

	ListQuarters(companyID string) ([]database.FinancialIndicator, error)
	GetQuarter(id string) (*database.FinancialIndicator, error)
	CreateQuarter(record *database.FinancialIndicator) error
	UpdateQuarter(record *database.FinancialIndicator) error
	DeleteQuarter(id string) error

	ListDefinitions() ([]database.IndicatorDefinition, error)
	GetDefinition(id string) (*database.IndicatorDefinition, error)
	CreateDefinition(def *database.IndicatorDefinition) error
	UpdateDefinition(def *database.IndicatorDefinition) error
	DeleteDefinition(id string) error
}

// Importer runs the external import of one company
type Importer interface {
	Import(ctx context.Context, companyID string) importer.Result
}

// EventPublisher notifies connected clients of data changes
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{})
}

// StatusStore remembers the last import outcome of a company
type StatusStore interface {
	Last(ctx context.Context, companyID string) (*cache.ImportStatus, error)
	Forget(ctx context.Context, companyID string) error
}

// Server handles HTTP API requests
type Server struct {
	repo      Store
	importer  Importer
	events    EventPublisher
	status    StatusStore
	broker    *realtime.Broker
	formatter *helpers.Formatter
	validate  *validator.Validate
	http      *http.Server
}

// NewServer creates a new API server instance.
// events and status may be nil; formatter defaults to BRL in pt-BR.
func NewServer(repo Store, imp Importer, events EventPublisher, status StatusStore, broker *realtime.Broker, formatter *helpers.Formatter) *Server {
	if formatter == nil {
		formatter = helpers.DefaultFormatter()
	}
	return &Server{
		repo:      repo,
		importer:  imp,
		events:    events,
		status:    status,
		broker:    broker,
		formatter: formatter,
		validate:  newValidator(),
	}
}

// Handler builds the routed handler with middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Realtime
	if s.broker != nil {
		mux.Handle("GET /api/events", s.broker) // SSE Endpoint
		mux.HandleFunc("GET /api/ws", s.broker.ServeWS)
	}

	// Companies
	mux.HandleFunc("GET /api/companies", s.handleListCompanies)
	mux.HandleFunc("POST /api/companies", s.handleCreateCompany)
	mux.HandleFunc("GET /api/companies/coverage", s.handleGetCoverage)
	mux.HandleFunc("GET /api/companies/{id}", s.handleGetCompany)
	mux.HandleFunc("PUT /api/companies/{id}", s.handleUpdateCompany)
	mux.HandleFunc("DELETE /api/companies/{id}", s.handleDeleteCompany)

	// Quarterly records
	mux.HandleFunc("GET /api/companies/{id}/quarters", s.handleListQuarters)
	mux.HandleFunc("POST /api/companies/{id}/quarters", s.handleCreateQuarter)
	mux.HandleFunc("PUT /api/quarters/{id}", s.handleUpdateQuarter)
	mux.HandleFunc("DELETE /api/quarters/{id}", s.handleDeleteQuarter)

	// External import
	mux.HandleFunc("POST /api/companies/{id}/import", s.handleImport)
	mux.HandleFunc("GET /api/companies/{id}/import", s.handleLastImport)

	// Dashboard
	mux.HandleFunc("GET /api/companies/{id}/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/companies/{id}/series/{field}", s.handleSeries)

	// Indicator definitions
	mux.HandleFunc("GET /api/indicators", s.handleListDefinitions)
	mux.HandleFunc("POST /api/indicators", s.handleCreateDefinition)
	mux.HandleFunc("PUT /api/indicators/{id}", s.handleUpdateDefinition)
	mux.HandleFunc("DELETE /api/indicators/{id}", s.handleDeleteDefinition)
	mux.HandleFunc("GET /api/indicators/{id}/sql", s.handleDefinitionSQL)
	mux.HandleFunc("GET /api/metrics/catalog", s.handleMetricCatalog)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Add middleware
	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server on the specified port and blocks until it stops
func (s *Server) Start(port int) error {
	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	s.http = &http.Server{
		Addr:              serverAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", serverAddr).Msg("🚀 API Server starting")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// publish sends an event to connected clients when a publisher is configured
func (s *Server) publish(r *http.Request, event string, payload interface{}) {
	if s.events != nil {
		s.events.Publish(r.Context(), event, payload)
	}
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		observeRequest(r, rec.status, elapsed)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}

// Handlers are distributed across multiple files:
// - handlers_companies.go: Companies CRUD and coverage
// - handlers_quarters.go: Quarterly records CRUD and external import
// - dashboard_handlers.go: Comparison cards and chart series
// - handlers_indicators.go: Indicator definitions and metric catalog
// - handlers_config.go: Health check
