package gateway

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pairchat/services"
)

// NewRouter wires the HTTP routes to the core services. CORS is open to all
// origins: the original frontend is served from a different host.
func NewRouter(accounts services.IAccountService, messages services.IMessageService, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := NewHandler(accounts, messages, log)

	r.Route("/api", func(api chi.Router) {
		api.Post("/register", h.handleRegister)
		api.Post("/login", h.handleLogin)
		api.Get("/users", h.handleListUsers)
		api.Post("/messages", h.handleSendMessage)
		api.Get("/messages", h.handleGetMessages)
	})

	return r
}
