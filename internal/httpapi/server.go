// Package httpapi exposes the dashboard over a JSON REST API, serving the
// same snapshots as the console client.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"stocksight/internal/dashboard"
	"stocksight/internal/domain"
)

// Server serves the dashboard HTTP API.
type Server struct {
	svc *dashboard.Service
	log *slog.Logger
}

// NewServer creates a new dashboard HTTP server over the given service.
func NewServer(svc *dashboard.Service, log *slog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sectors", s.handleSectors)
	mux.HandleFunc("GET /api/stocks", s.handleStocks)
	mux.HandleFunc("GET /api/dashboard/{ticker}", s.handleDashboard)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// SectorsResponse lists the catalog's distinct sectors.
type SectorsResponse struct {
	Sectors []string `json:"sectors"`
}

// StocksResponse lists catalog records, optionally filtered by sector.
type StocksResponse struct {
	Sector string               `json:"sector,omitempty"`
	Stocks []domain.StockRecord `json:"stocks"`
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	sectors := s.svc.Sectors()
	if sectors == nil {
		sectors = []string{}
	}
	writeJSON(w, SectorsResponse{Sectors: sectors})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")
	stocks := s.svc.Stocks(sector)
	if stocks == nil {
		stocks = []domain.StockRecord{}
	}
	writeJSON(w, StocksResponse{Sector: sector, Stocks: stocks})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(r.PathValue("ticker"))

	snap, err := s.svc.Render(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownTicker) {
			writeError(w, http.StatusNotFound, "unknown ticker: "+ticker)
			return
		}
		s.log.Error("rendering dashboard", "ticker", ticker, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render dashboard")
		return
	}

	writeJSON(w, snap)
}
