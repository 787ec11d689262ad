package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/lexico-labs/lexico-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and cache connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backend is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.cache != nil {
		if err := s.cache.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleIssueToken godoc
// @Summary      Issue admin token
// @Description  Exchange the configured admin key for a short-lived bearer token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.TokenRequest  true  "Admin key"
// @Success      200      {object}  domain.TokenResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid admin key"
// @Router       /auth/token [post]
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AdminKey == "" {
		writeError(w, http.StatusBadRequest, "admin_key is required")
		return
	}

	resp, err := s.authService.IssueToken(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid admin key")
			return
		}
		writeError(w, http.StatusInternalServerError, "token issuance failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search endpoints

// handleSearch godoc
// @Summary      Search glossary
// @Description  Run an adaptive glossary search. The query is classified and routed to the best retrieval strategy automatically.
// @Tags         Search
// @Produce      json
// @Param        q                        query     string  true   "Search query"
// @Param        page                     query     int     false  "Page number (1-based)"
// @Param        limit                    query     int     false  "Results per page (max 100)"
// @Param        category                 query     string  false  "Filter by category name"
// @Param        sort                     query     string  false  "Sort mode: relevance, name, popularity, recent"
// @Param        include_long_definition  query     bool    false  "Include full definitions in results"
// @Success      200  {object}  domain.SearchResult
// @Failure      400  {object}  ErrorResponse  "Invalid parameters"
// @Failure      500  {object}  ErrorResponse  "Search failed"
// @Router       /search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	opts, err := parseSearchOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.searchService.Search(r.Context(), query, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseSearchOptions reads pagination and filter parameters.
// Out-of-range page and limit values are clamped by the service;
// only unparseable values are rejected here.
func parseSearchOptions(r *http.Request) (domain.SearchOptions, error) {
	opts := domain.DefaultSearchOptions()
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New("page must be an integer")
		}
		opts.Page = page
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New("limit must be an integer")
		}
		opts.Limit = limit
	}

	opts.Category = strings.TrimSpace(q.Get("category"))

	if v := q.Get("sort"); v != "" {
		sort := domain.SortMode(v)
		if !sort.Valid() {
			return opts, errors.New("sort must be one of: relevance, name, popularity, recent")
		}
		opts.Sort = sort
	}

	if v := q.Get("include_long_definition"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("include_long_definition must be a boolean")
		}
		opts.IncludeLongDefinition = include
	}

	return opts, nil
}

// Term endpoints

// handleGetTerm godoc
// @Summary      Get term
// @Description  Get a glossary term by ID. Viewing a term bumps its popularity counter.
// @Tags         Terms
// @Produce      json
// @Param        id   path      string  true  "Term ID"
// @Success      200  {object}  domain.Term
// @Failure      404  {object}  ErrorResponse  "Term not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /terms/{id} [get]
func (s *Server) handleGetTerm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "term id is required")
		return
	}

	term, err := s.termService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "term not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get term")
		return
	}

	writeJSON(w, http.StatusOK, term)
}

// handleGetTermByName godoc
// @Summary      Get term by name
// @Description  Get a glossary term by its exact name (case-insensitive). Viewing a term bumps its popularity counter.
// @Tags         Terms
// @Produce      json
// @Param        name  path      string  true  "Term name"
// @Success      200  {object}  domain.Term
// @Failure      404  {object}  ErrorResponse  "Term not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /terms/by-name/{name} [get]
func (s *Server) handleGetTermByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "term name is required")
		return
	}

	term, err := s.termService.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "term not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get term")
		return
	}

	writeJSON(w, http.StatusOK, term)
}

// handleListCategories godoc
// @Summary      List categories
// @Description  List all glossary categories ordered by name
// @Tags         Terms
// @Produce      json
// @Success      200  {array}   domain.Category
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /categories [get]
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.termService.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// Admin endpoints

// warmRequest is the body for the cache warm endpoint
type warmRequest struct {
	Queries []string `json:"queries"`
}

// warmResponse reports how many queries were warmed
type warmResponse struct {
	Warmed int `json:"warmed"`
	Total  int `json:"total"`
}

// handleWarm godoc
// @Summary      Warm search cache
// @Description  Run the search pipeline for a list of queries to populate the cache
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      warmRequest  true  "Queries to warm"
// @Success      200      {object}  warmResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /admin/warm [post]
func (s *Server) handleWarm(w http.ResponseWriter, r *http.Request) {
	var req warmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "queries is required")
		return
	}

	warmed := s.searchService.Warm(r.Context(), req.Queries)
	writeJSON(w, http.StatusOK, warmResponse{Warmed: warmed, Total: len(req.Queries)})
}

// handleImport godoc
// @Summary      Import glossary export
// @Description  Upload a CSV or xlsx export of the glossary. Rows unchanged since the last import are skipped. Excel uploads are selected by Content-Type; everything else is read as CSV.
// @Tags         Admin
// @Accept       text/csv
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ImportSummary
// @Failure      400  {object}  ErrorResponse  "Invalid source file"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      409  {object}  ErrorResponse  "Import already running"
// @Router       /admin/import [post]
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var summary *domain.ImportSummary
	var err error
	if isExcelContentType(r.Header.Get("Content-Type")) {
		summary, err = s.ingestService.ImportExcel(r.Context(), r.Body)
	} else {
		summary, err = s.ingestService.ImportCSV(r.Context(), r.Body)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrImportInProgress):
			writeError(w, http.StatusConflict, "an import is already running")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid source file")
		default:
			writeError(w, http.StatusInternalServerError, "import failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// isExcelContentType reports whether an upload declares an xlsx body
func isExcelContentType(contentType string) bool {
	return strings.Contains(contentType, "spreadsheetml") ||
		strings.Contains(contentType, "ms-excel")
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
