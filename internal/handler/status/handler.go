package status

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/curryhouse/menubot/backend/internal/model/status"
	"github.com/curryhouse/menubot/backend/pkg/utils"
)

const listLimit = 1000

// Handler serves the ancillary health-check CRUD pair.
type Handler struct {
	store status.Store
}

// New creates the status handler.
func New(store status.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the status routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/status", h.handleCreate)
	r.Get("/status", h.handleList)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ClientName string `json:"client_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.ClientName) == "" {
		utils.RespondError(w, http.StatusBadRequest, "client_name is required")
		return
	}

	check := status.Check{
		ID:         uuid.NewString(),
		ClientName: payload.ClientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := h.store.Insert(r.Context(), check); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to record status check")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, check)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	checks, err := h.store.List(r.Context(), listLimit)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to list status checks")
		return
	}

	if checks == nil {
		checks = []status.Check{}
	}
	utils.RespondJSON(w, http.StatusOK, checks)
}
