// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redstonehub/laurel/internal/adapters/store"
	service "github.com/redstonehub/laurel/internal/app"
	"github.com/redstonehub/laurel/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	HofDependencies
	WbcDependencies
	AdminDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	hofHandler    *HofHandler
	wbcHandler    *WbcHandler
	adminHandler  *AdminHandler

	secret []byte
	logger logger.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithAdminSecret sets the HS256 secret admin bearer tokens are signed
// with. An empty secret leaves the admin routes open.
func WithAdminSecret(secret string) Option {
	return func(s *Server) {
		s.secret = []byte(secret)
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps),
		hofHandler:    NewHofHandler(deps),
		wbcHandler:    NewWbcHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	s.adminHandler = NewAdminHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestID(MetricsMiddleware(h, endpoint)))
	}
	admin := func(pattern, endpoint string, h http.HandlerFunc) {
		route(pattern, endpoint, RequireAdmin(s.secret, h))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /hof", "hof", s.hofHandler.HandleListing)
	route("GET /hof/months", "hof_months", s.hofHandler.HandleMonths)
	route("GET /hof/people/{key}", "hof_person", s.hofHandler.HandlePerson)
	route("GET /wbc/months", "wbc_months", s.wbcHandler.HandleMonths)
	route("GET /wbc/entry", "wbc_entry", s.wbcHandler.HandleEntry)

	// Literal program segments keep these routes more specific than
	// the {id} routes below.
	for _, kind := range []string{"hof", "wbc"} {
		admin("GET /admin/"+kind+"/filters", "admin_filters", s.adminHandler.HandleGetFilters)
		admin("PUT /admin/"+kind+"/filters", "admin_filters", s.adminHandler.HandlePutFilters)
		admin("GET /admin/"+kind+"/entries", "admin_entries", s.adminHandler.HandleEntries)
		admin("GET /admin/"+kind+"/profile", "admin_profile", s.adminHandler.HandleProfile)
	}

	admin("POST /admin/hof", "admin_hof_create", s.adminHandler.HandleCreateHof)
	admin("PUT /admin/hof/{id}", "admin_hof_update", s.adminHandler.HandleUpdateHof)
	admin("PATCH /admin/hof/{id}/placement", "admin_hof_placement", s.adminHandler.HandlePlacement)
	admin("DELETE /admin/hof/{id}", "admin_hof_delete", s.adminHandler.HandleDeleteHof)

	admin("POST /admin/wbc", "admin_wbc_create", s.adminHandler.HandleCreateWbc)
	admin("PUT /admin/wbc/{id}", "admin_wbc_update", s.adminHandler.HandleUpdateWbc)
	admin("DELETE /admin/wbc/{id}", "admin_wbc_delete", s.adminHandler.HandleDeleteWbc)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure translates a workflow error into a status code. Store
// failures surface the store's own message.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRecordNotFound), errors.Is(err, service.ErrPersonNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, store.ErrTransport):
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: "store_error", Message: store.Message(err)})
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
