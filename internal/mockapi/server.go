package mockapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
)

const defaultLimit = 30

// Options tune the mock server's behaviour
type Options struct {
	Latency   time.Duration // delay added to every search
	FailEvery int           // every Nth search answers 500; 0 disables
}

// Server answers listing API requests from a Catalog
type Server struct {
	catalog  *Catalog
	opts     Options
	searches atomic.Int64
}

// NewServer creates a server for catalog
func NewServer(catalog *Catalog, opts Options) *Server {
	return &Server{catalog: catalog, opts: opts}
}

// Router returns the HTTP routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/products/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", s.handleProduct).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Route %s not found", r.URL.Path))
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	n := s.searches.Add(1)

	if s.opts.Latency > 0 {
		select {
		case <-time.After(s.opts.Latency):
		case <-r.Context().Done():
			return
		}
	}

	if s.opts.FailEvery > 0 && n%int64(s.opts.FailEvery) == 0 {
		slog.Info("Injecting search failure", "request", n)
		writeError(w, http.StatusInternalServerError, "Catalogue temporarily unavailable")
		return
	}

	query := r.URL.Query()
	limit, err := intParam(query.Get("limit"), defaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	skip, err := intParam(query.Get("skip"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skip")
		return
	}

	page := s.catalog.Search(query.Get("q"), limit, skip)
	slog.Debug("Search served", "q", query.Get("q"), "limit", limit, "skip", skip, "total", page.Total)
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	p, ok := s.catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Product with id '%d' not found", id))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid value %q", raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
