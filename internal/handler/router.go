package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/curryhouse/menubot/backend/internal/config"
	chatHandler "github.com/curryhouse/menubot/backend/internal/handler/chat"
	statusHandler "github.com/curryhouse/menubot/backend/internal/handler/status"
	statusModel "github.com/curryhouse/menubot/backend/internal/model/status"
	chatService "github.com/curryhouse/menubot/backend/internal/service/chat"
	"github.com/curryhouse/menubot/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, statusStore statusModel.Store, menuText string, corsCfg config.CORSConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/", handleRoot)

		chatHandler.New(chatSvc, menuText).RegisterRoutes(api)
		statusHandler.New(statusStore).RegisterRoutes(api)
	})

	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Curry Pizza House API!",
	})
}
