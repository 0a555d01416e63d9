package handlers

import (
	"github.com/gofiber/fiber/v3"

	"medchat/internal/config"
	"medchat/internal/locations"
	"medchat/internal/middleware"
	"medchat/internal/symptoms"
)

// PageHandler renders the HTML pages.
type PageHandler struct {
	cfg *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Chat renders the chat page for the logged-in user.
func (h *PageHandler) Chat(c fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	return c.Render("chat", MergeBranding(fiber.Map{
		"Title":    "Chat",
		"User":     user,
		"Symptoms": symptoms.Categories(),
	}, h.cfg))
}

// Login renders the login page. Logged-in users go straight to the chat.
func (h *PageHandler) Login(c fiber.Ctx) error {
	if _, ok := middleware.SessionUser(c); ok {
		return c.Redirect().To("/")
	}
	return c.Render("login", MergeBranding(fiber.Map{
		"Title":     "Login",
		"Locations": locations.All(),
	}, h.cfg))
}
