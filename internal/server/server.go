// Package server exposes the recommendation engine and the catalog over
// HTTP. Request parsing and input validation live here; the engine assumes
// validated numeric inputs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"plan-advisor/internal/catalog"
	"plan-advisor/internal/engine"
	"plan-advisor/pkg/api"
	"plan-advisor/pkg/plan"
)

// Config holds server settings.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxRequestSize: 1 << 20, // 1MB
		CORSOrigins:    []string{"*"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config  Config
	configs *ConfigStore
	catalog *catalog.Manager
	logger  zerolog.Logger
	version string
	httpSrv *http.Server
	started time.Time
}

// New creates a server over a catalog and a config store.
func New(cfg Config, configs *ConfigStore, manager *catalog.Manager, logger zerolog.Logger, version string) *Server {
	return &Server{
		config:  cfg,
		configs: configs,
		catalog: manager,
		logger:  logger,
		version: version,
		started: time.Now(),
	}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/carriers", s.handleCarriers)
		r.Get("/packages", s.handlePackages)
		r.Post("/recommend", s.handleRecommend)
		r.Post("/recommend/batch", s.handleBatchRecommend)
		r.Get("/config", s.handleGetConfig)
		r.Put("/config", s.handleUpdateConfig)
		r.Post("/validate", s.handleValidate)
	})

	return r
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Int("port", s.config.Port).Str("version", s.version).Msg("starting plan-advisor API server")
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.logger.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HEALTH ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "plan-advisor",
		"version": s.version,
		"uptime":  time.Since(s.started).String(),
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.catalog.All(ctx); err != nil {
		s.jsonError(w, http.StatusServiceUnavailable, "catalog not ready")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"service": "plan-advisor",
		"version": s.version,
	})
}

// =============================================================================
// CATALOG ENDPOINTS
// =============================================================================

func (s *Server) handleCarriers(w http.ResponseWriter, _ *http.Request) {
	carriers := s.catalog.Carriers()
	s.jsonResponse(w, http.StatusOK, api.CarriersResponse{
		Success: true,
		Data:    carriers,
		Count:   len(carriers),
	})
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	packages, err := s.loadPackages(r.Context(), r.URL.Query().Get("carrier"))
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, api.PackagesResponse{
		Success: true,
		Data:    packages,
		Count:   len(packages),
	})
}

func (s *Server) loadPackages(ctx context.Context, carrier string) ([]plan.Product, error) {
	if carrier != "" {
		return s.catalog.ByCarrier(ctx, carrier)
	}
	return s.catalog.All(ctx)
}

// =============================================================================
// RECOMMENDATION ENDPOINTS
// =============================================================================

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req api.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	needs, budget, err := validateRecommendRequest(req)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	packages, err := s.loadPackages(r.Context(), req.Carrier)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}

	eng := engine.New(s.configs.Snapshot())
	recommendations := eng.Recommend(needs, budget, packages)

	resp := api.RecommendResponse{
		Success:   true,
		Data:      recommendations,
		Count:     len(recommendations),
		RequestID: uuid.NewString(),
	}
	if len(recommendations) == 0 {
		diagnosis := eng.AnalyzeNoMatch(needs, budget, packages)
		resp.Analysis = &diagnosis
		resp.Message = "没有找到符合需求的套餐"
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleBatchRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req api.BatchRecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Requests == nil {
		s.jsonError(w, http.StatusBadRequest, "missing required field: requests")
		return
	}

	// One catalog snapshot and config snapshot for the whole batch.
	packages, err := s.catalog.All(r.Context())
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	eng := engine.New(s.configs.Snapshot())

	results := make([]api.BatchRecommendResult, 0, len(req.Requests))
	for _, single := range req.Requests {
		needs, budget, err := validateRecommendRequest(single)
		if err != nil {
			results = append(results, api.BatchRecommendResult{Success: false, Error: err.Error()})
			continue
		}
		recommendations := eng.Recommend(needs, budget, packages)
		results = append(results, api.BatchRecommendResult{
			Success: true,
			Data:    recommendations,
			Count:   len(recommendations),
		})
	}

	s.jsonResponse(w, http.StatusOK, api.BatchRecommendResponse{
		Success:   true,
		Results:   results,
		RequestID: uuid.NewString(),
	})
}

// validateRecommendRequest enforces the caller-input contract the engine
// relies on: needs present with non-negative values, budget present and
// non-negative.
func validateRecommendRequest(req api.RecommendRequest) (plan.NeedSet, decimal.Decimal, error) {
	if req.UserNeeds == nil {
		return nil, decimal.Zero, errors.New("missing required field: user_needs")
	}
	if req.UserBudget == nil {
		return nil, decimal.Zero, errors.New("missing required field: user_budget")
	}
	if *req.UserBudget < 0 {
		return nil, decimal.Zero, errors.New("user_budget must be non-negative")
	}

	needs := make(plan.NeedSet, len(req.UserNeeds))
	for key, value := range req.UserNeeds {
		if value < 0 {
			return nil, decimal.Zero, fmt.Errorf("user_needs.%s must be non-negative", key)
		}
		needs[key] = value
	}
	return needs, decimal.NewFromFloat(*req.UserBudget), nil
}

// =============================================================================
// CONFIG ENDPOINTS
// =============================================================================

func (s *Server) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, api.ConfigResponse{
		Success: true,
		Data:    s.configs.Snapshot(),
	})
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var patch engine.ConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	updated, err := s.configs.Update(patch)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, api.ConfigResponse{
		Success: true,
		Data:    updated,
		Message: "配置更新成功",
	})
}

// =============================================================================
// VALIDATE ENDPOINT
// =============================================================================

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req api.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Packages == nil {
		s.jsonError(w, http.StatusBadRequest, "missing required field: packages")
		return
	}

	validationErrors := catalog.Validate(req.Packages)
	s.jsonResponse(w, http.StatusOK, api.ValidateResponse{
		Success: true,
		Valid:   len(validationErrors) == 0,
		Errors:  validationErrors,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("encoding response")
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, api.ErrorResponse{Success: false, Error: message})
}
