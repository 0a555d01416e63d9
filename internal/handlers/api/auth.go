package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"medchat/internal/auth"
	"medchat/internal/locations"
	"medchat/internal/middleware"
	"medchat/internal/models"
)

// AuthHandler handles the simulated phone login.
type AuthHandler struct {
	auth      *auth.Service
	exposeOTP bool
	logger    *zap.Logger
}

// NewAuthHandler creates a new auth handler. When exposeOTP is set the issued
// code is echoed in the response.
func NewAuthHandler(svc *auth.Service, exposeOTP bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, exposeOTP: exposeOTP, logger: logger}
}

// RequestOTP issues a code for the posted phone number.
func (h *AuthHandler) RequestOTP(c fiber.Ctx) error {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	phone, code, err := h.auth.RequestOTP(c.Context(), body.Phone)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPhone) {
			return jsonError(c, fiber.StatusBadRequest, "Please enter a valid phone number")
		}
		h.logger.Error("failed to issue otp", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to send code")
	}

	resp := models.OTPResponse{
		Phone:     phone,
		ExpiresIn: int(h.auth.TTL().Seconds()),
	}
	if h.exposeOTP {
		resp.Code = code
	}
	return jsonSuccess(c, resp)
}

// Verify checks the posted code and marks the phone as verified.
func (h *AuthHandler) Verify(c fiber.Ctx) error {
	var body struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	phone, err := h.auth.VerifyOTP(c.Context(), body.Phone, body.Code)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidPhone):
		return jsonError(c, fiber.StatusBadRequest, "Please enter a valid phone number")
	case errors.Is(err, auth.ErrInvalidCode):
		return jsonError(c, fiber.StatusBadRequest, "Please enter a valid 6-digit OTP")
	case errors.Is(err, auth.ErrNoPendingCode):
		return jsonError(c, fiber.StatusBadRequest, "Code expired, please request a new one")
	case errors.Is(err, auth.ErrCodeMismatch):
		return jsonError(c, fiber.StatusUnauthorized, "Incorrect code")
	default:
		h.logger.Error("failed to verify otp", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to verify code")
	}

	if err := middleware.SetVerifiedPhone(c, phone); err != nil {
		return err
	}
	return jsonSuccess(c, fiber.Map{"phone": phone})
}

// Profile completes the login with the optional name and location.
func (h *AuthHandler) Profile(c fiber.Ctx) error {
	phone := middleware.VerifiedPhone(c)
	if phone == "" {
		return jsonError(c, fiber.StatusUnauthorized, "verify your phone number first")
	}

	var body struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Location != "" && !locations.Valid(body.Location) {
		return jsonError(c, fiber.StatusBadRequest, "unknown location")
	}

	user, err := h.auth.NewUser(phone, body.Name, body.Location)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Name is too long")
	}
	if err := middleware.SetUser(c, user); err != nil {
		return err
	}

	h.logger.Info("user logged in", zap.String("user", user.ID.String()))
	return jsonSuccess(c, user)
}

// Logout ends the session.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if err := middleware.Logout(c); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to log out")
	}
	return jsonSuccess(c, nil)
}

// Me returns the logged-in user.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}
	return jsonSuccess(c, user)
}

// Locations searches the district directory.
func Locations(c fiber.Ctx) error {
	return jsonSuccess(c, locations.Search(c.Query("q")))
}
