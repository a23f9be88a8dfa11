// Package mcphttp serves the small admin HTTP surface used in SSE mode:
// a health probe and a tool listing.
package mcphttp

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lighteternal/chembl-mcp-server/internal/usecase"
)

// Handlers holds dependencies for the admin HTTP handlers.
type Handlers struct {
	registry *usecase.Registry
	baseURL  string
	logger   *slog.Logger
}

// NewHandlers creates the admin handler set. baseURL is reported by the
// health endpoint for diagnostics.
func NewHandlers(registry *usecase.Registry, baseURL string, logger *slog.Logger) *Handlers {
	return &Handlers{
		registry: registry,
		baseURL:  baseURL,
		logger:   logger.With("component", "mcphttp_handler"),
	}
}

// RegisterAdminRoutes sets up the admin endpoints on mux.
func (h *Handlers) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /tools", h.handleTools)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{
		"status":   "ok",
		"upstream": h.baseURL,
		"tools":    len(h.registry.Operations()),
	})
}

func (h *Handlers) handleTools(w http.ResponseWriter, r *http.Request) {
	ops := h.registry.Operations()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Tool.Name)
	}
	h.writeJSON(w, map[string]any{"tools": names})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode admin response", slog.Any("error", err))
	}
}
