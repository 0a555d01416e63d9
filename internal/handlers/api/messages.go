package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"medchat/internal/chat"
	"medchat/internal/middleware"
	"medchat/internal/models"
	"medchat/internal/symptoms"
)

// MessageHandler handles the logged-in user's chat.
type MessageHandler struct {
	chat   *chat.Service
	logger *zap.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc *chat.Service, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{chat: svc, logger: logger}
}

// List returns the conversation.
func (h *MessageHandler) List(c fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}

	history, err := h.chat.History(c.Context(), user.ID.String())
	if err != nil {
		h.logger.Error("failed to load history", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to load messages")
	}
	return jsonSuccess(c, history)
}

// Send posts a text message and returns the appended messages.
func (h *MessageHandler) Send(c fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	return h.send(c, user.ID.String(), body.Text)
}

// SendAudio posts a voice message reference.
func (h *MessageHandler) SendAudio(c fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}

	var body struct {
		AudioURL string `json:"audio_url"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	added, err := h.chat.SendAudio(c.Context(), user.ID.String(), body.AudioURL)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyAudio) {
			return jsonError(c, fiber.StatusBadRequest, "audio_url is required")
		}
		h.logger.Error("failed to store audio message", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to send message")
	}
	return jsonSuccess(c, models.ChatReply{Messages: added})
}

// Clear empties the conversation.
func (h *MessageHandler) Clear(c fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}

	if err := h.chat.Clear(c.Context(), user.ID.String()); err != nil {
		h.logger.Error("failed to clear history", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to clear messages")
	}
	return jsonSuccess(c, nil)
}

// Symptoms returns the symptom catalog.
func (h *MessageHandler) Symptoms(c fiber.Ctx) error {
	return jsonSuccess(c, symptoms.Categories())
}

// SubmitSymptoms turns the selected symptom ids into a chat message.
func (h *MessageHandler) SubmitSymptoms(c fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}

	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	sentence, err := symptoms.Sentence(body.IDs)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return h.send(c, user.ID.String(), sentence)
}

func (h *MessageHandler) send(c fiber.Ctx, userID, text string) error {
	added, resp, err := h.chat.Send(c.Context(), userID, text)
	switch {
	case err == nil:
	case errors.Is(err, chat.ErrEmptyMessage):
		return jsonError(c, fiber.StatusBadRequest, "Message is empty")
	case errors.Is(err, chat.ErrMessageTooLong):
		return jsonError(c, fiber.StatusBadRequest, "Message is too long")
	default:
		h.logger.Error("failed to send message", zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to send message")
	}
	return jsonSuccess(c, models.ChatReply{Messages: added, Response: &resp})
}
