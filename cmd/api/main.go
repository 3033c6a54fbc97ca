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

	"github.com/zr-chat/relay/internal/config"
	"github.com/zr-chat/relay/internal/handler"
	"github.com/zr-chat/relay/internal/hub"
	"github.com/zr-chat/relay/internal/service/auth"
	"github.com/zr-chat/relay/internal/service/storage"
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

	store, err := storage.NewStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("failed to initialize upload store: %v", err)
	}
	log.Printf("file uploads stored in %s", store.Dir())

	authSvc := auth.NewService(cfg.Auth.JWTSecret)

	chatHub := hub.New(hub.NewRegistry(), hub.NewPresence(), hub.NewLedger(), hub.NewHistory())

	router := handler.NewRouter(chatHub, authSvc, store, handler.Options{
		AllowedOrigin: cfg.Chat.AllowedOrigin,
		HistoryLimit:  cfg.Chat.HistoryLimit,
		MaxUploadSize: cfg.Upload.MaxSize,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("chat relay listening on %s", serverCfg.Addr)
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
