package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medchat/internal/auth"
	"medchat/internal/chat"
	"medchat/internal/handlers"
	"medchat/internal/handlers/api"
	"medchat/internal/middleware"
)

// Deps are the services the routes are served from.
type Deps struct {
	Chat     *chat.Service
	Auth     *auth.Service
	Recorder api.Recorder
	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
	// DB is pinged by /readyz. Nil when no database is configured.
	DB handlers.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(d Deps) {
	pageHandler := handlers.NewPageHandler(s.Cfg)
	probeHandler := handlers.NewProbeHandler(d.DB)
	classifyHandler := api.NewClassifyHandler(d.Chat.Responder(), d.Recorder)
	authHandler := api.NewAuthHandler(d.Auth, s.Cfg.ExposeOTP, s.Logger)
	messageHandler := api.NewMessageHandler(d.Chat, s.Logger)

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Pages
	s.App.Get("/login", pageHandler.Login)
	s.App.Get("/", middleware.RequireUser, pageHandler.Chat)

	// Public API
	s.App.Post("/api/classify", classifyHandler.Classify)
	s.App.Get("/api/keywords", classifyHandler.Keywords)
	s.App.Get("/api/locations", api.Locations)
	s.App.Get("/api/symptoms", messageHandler.Symptoms)

	// Login steps
	s.App.Post("/api/auth/otp", authHandler.RequestOTP)
	s.App.Post("/api/auth/verify", authHandler.Verify)
	s.App.Post("/api/auth/profile", authHandler.Profile)
	s.App.Post("/api/auth/logout", authHandler.Logout)
	s.App.Get("/api/auth/me", middleware.RequireUserAPI, authHandler.Me)

	// Chat
	s.App.Get("/api/messages", middleware.RequireUserAPI, messageHandler.List)
	s.App.Post("/api/messages", middleware.RequireUserAPI, messageHandler.Send)
	s.App.Delete("/api/messages", middleware.RequireUserAPI, messageHandler.Clear)
	s.App.Post("/api/messages/audio", middleware.RequireUserAPI, messageHandler.SendAudio)
	s.App.Post("/api/symptoms", middleware.RequireUserAPI, messageHandler.SubmitSymptoms)
}
