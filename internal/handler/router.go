package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authHandler "github.com/zr-chat/relay/internal/handler/auth"
	chatHandler "github.com/zr-chat/relay/internal/handler/chat"
	uploadHandler "github.com/zr-chat/relay/internal/handler/upload"
	wsHandler "github.com/zr-chat/relay/internal/handler/ws"
	"github.com/zr-chat/relay/internal/hub"
	middlewarePkg "github.com/zr-chat/relay/internal/middleware"
	authService "github.com/zr-chat/relay/internal/service/auth"
	"github.com/zr-chat/relay/internal/service/storage"
)

// Options carries the route-level tunables out of config.
type Options struct {
	AllowedOrigin string
	HistoryLimit  int
	MaxUploadSize int64
}

// NewRouter wires HTTP routes to core services.
func NewRouter(h *hub.Hub, authSvc *authService.Service, store *storage.Store, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(opts.AllowedOrigin))

	accounts := authHandler.New(authSvc)
	reads := chatHandler.New(h, opts.HistoryLimit)
	uploads := uploadHandler.New(store, opts.MaxUploadSize)
	socket := wsHandler.New(h)

	r.Route("/api", func(api chi.Router) {
		accounts.RegisterRoutes(api)
		api.Get("/health", reads.Health)

		api.Group(func(protected chi.Router) {
			protected.Use(middlewarePkg.RequireAuth(authSvc))
			reads.RegisterRoutes(protected)
			uploads.RegisterRoutes(protected)
		})
	})

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir()))))

	socket.RegisterRoutes(r)

	return r
}
