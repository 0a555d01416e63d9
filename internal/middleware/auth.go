package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"medchat/internal/models"
)

// Session keys
const (
	keyUserID        = "user_id"
	keyPhone         = "phone"
	keyName          = "name"
	keyLocation      = "location"
	keyCreatedAt     = "created_at"
	keyVerifiedPhone = "verified_phone"
)

// SetUser stores the logged-in user in the session.
func SetUser(c fiber.Ctx, u *models.User) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	sess.Set(keyUserID, u.ID.String())
	sess.Set(keyPhone, u.Phone)
	sess.Set(keyName, u.Name)
	sess.Set(keyLocation, u.Location)
	sess.Set(keyCreatedAt, u.CreatedAt.UTC().Format(time.RFC3339))
	sess.Delete(keyVerifiedPhone)
	return nil
}

// SessionUser loads the logged-in user from the session.
func SessionUser(c fiber.Ctx) (*models.User, bool) {
	sess := session.FromContext(c)
	if sess == nil {
		return nil, false
	}

	idStr, _ := sess.Get(keyUserID).(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, false
	}

	u := &models.User{ID: id}
	u.Phone, _ = sess.Get(keyPhone).(string)
	u.Name, _ = sess.Get(keyName).(string)
	u.Location, _ = sess.Get(keyLocation).(string)
	if ts, ok := sess.Get(keyCreatedAt).(string); ok {
		u.CreatedAt, _ = time.Parse(time.RFC3339, ts)
	}
	return u, true
}

// SetVerifiedPhone records that phone passed the code check. The profile step
// requires it.
func SetVerifiedPhone(c fiber.Ctx, phone string) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	sess.Set(keyVerifiedPhone, phone)
	return nil
}

// VerifiedPhone returns the phone that passed the code check, if any.
func VerifiedPhone(c fiber.Ctx) string {
	sess := session.FromContext(c)
	if sess == nil {
		return ""
	}
	phone, _ := sess.Get(keyVerifiedPhone).(string)
	return phone
}

// Logout destroys the session.
func Logout(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}
	return sess.Destroy()
}

// CurrentUser returns the user loaded by RequireUser or RequireUserAPI.
func CurrentUser(c fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals("user").(*models.User)
	return u, ok
}

// RequireUser ensures the user is logged in, redirecting to /login if not.
func RequireUser(c fiber.Ctx) error {
	u, ok := SessionUser(c)
	if !ok {
		return c.Redirect().To("/login")
	}
	c.Locals("user", u)
	return c.Next()
}

// RequireUserAPI ensures the user is logged in, answering 401 JSON if not.
func RequireUserAPI(c fiber.Ctx) error {
	u, ok := SessionUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "login required",
		})
	}
	c.Locals("user", u)
	return c.Next()
}
