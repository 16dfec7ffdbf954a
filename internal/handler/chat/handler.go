package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	chatService "github.com/curryhouse/menubot/backend/internal/service/chat"
	"github.com/curryhouse/menubot/backend/pkg/utils"
)

// logUnavailableWarning is surfaced to the caller when the reply was produced
// but the conversation log write failed.
const logUnavailableWarning = "conversation log unavailable, this turn was not persisted"

// Handler serves the chat and menu endpoints.
type Handler struct {
	chatSvc  *chatService.Service
	menuText string
}

// New creates the chat handler.
func New(chatSvc *chatService.Service, menuText string) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		menuText: menuText,
	}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/menu", h.handleMenu)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string    `json:"session_id"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Warning   string    `json:"warning,omitempty"`
}

// handleChat runs one chat turn. Failures map to distinct status codes so
// callers can tell a missing credential from an upstream outage.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.Exchange(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrMessageRequired):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, chatService.ErrModelUnavailable):
			utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, chatService.ErrUpstream):
			utils.RespondError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response := chatResponse{
		SessionID: result.SessionID,
		Response:  result.Response,
		Timestamp: result.Timestamp,
	}
	if !result.Persisted {
		response.Warning = logUnavailableWarning
	}

	utils.RespondJSON(w, http.StatusOK, response)
}

// handleMenu returns the active menu text.
func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"menu": h.menuText})
}
