package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/curryhouse/menubot/backend/internal/config"
	"github.com/curryhouse/menubot/backend/internal/handler"
	"github.com/curryhouse/menubot/backend/internal/menu"
	chatModel "github.com/curryhouse/menubot/backend/internal/model/chat"
	statusModel "github.com/curryhouse/menubot/backend/internal/model/status"
	"github.com/curryhouse/menubot/backend/internal/service/ai"
	chatService "github.com/curryhouse/menubot/backend/internal/service/chat"
	mongostore "github.com/curryhouse/menubot/backend/internal/storage/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	menuText, err := menu.Load(cfg.MenuFile)
	if err != nil {
		log.Fatalf("failed to load menu: %v", err)
	}
	systemPrompt := menu.SystemPrompt(menuText)

	// Conversation log and status store: MongoDB when configured,
	// in-memory otherwise.
	var turnLog chatModel.TurnLog
	var statusStore statusModel.Store
	if cfg.Mongo.Enabled() {
		store, err := mongostore.NewStore(ctx, cfg.Mongo)
		if err != nil {
			log.Fatalf("failed to connect to MongoDB: %v", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Close(closeCtx); err != nil {
				log.Printf("warning: failed to close mongo client: %v", err)
			}
		}()
		turnLog = store
		statusStore = store
		log.Printf("[store] using MongoDB, db=%s", cfg.Mongo.Database)
	} else {
		turnLog = chatModel.NewMemoryLog()
		statusStore = statusModel.NewMemoryStore()
		log.Println("[store] MONGO_URL not set, using in-memory stores")
	}

	// Chat model: optional at startup, required per chat request.
	var responder chatService.Responder
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI, systemPrompt)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality, chat requests will be rejected")
		} else {
			responder = aiService
			log.Printf("[ai] chat model initialized, model=%s", cfg.AI.Model)
		}
	} else {
		log.Println("[ai] OPENAI_API_KEY not set, chat requests will be rejected")
	}

	chatSvc := chatService.NewService(responder, turnLog, cfg.Session)
	router := handler.NewRouter(chatSvc, statusStore, menuText, cfg.CORS)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Menubot backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
