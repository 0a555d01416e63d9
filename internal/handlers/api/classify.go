package api

import (
	"github.com/gofiber/fiber/v3"

	"medchat/internal/models"
	"medchat/internal/responder"
	"medchat/internal/validation"
)

// Recorder receives one event per classified message.
type Recorder interface {
	RecordReply(trigger, outcome string)
}

// ClassifyHandler exposes the responder without chat history.
type ClassifyHandler struct {
	responder *responder.Responder
	recorder  Recorder
}

// NewClassifyHandler creates a new classify handler. recorder may be nil.
func NewClassifyHandler(r *responder.Responder, recorder Recorder) *ClassifyHandler {
	return &ClassifyHandler{responder: r, recorder: recorder}
}

// Classify returns the structured reply for a single message.
func (h *ClassifyHandler) Classify(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind().Body(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if valid, msg := validation.ValidateMessage(body.Text); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	resp := h.responder.Classify(body.Text)
	if h.recorder != nil {
		h.recorder.RecordReply(resp.Trigger, string(resp.Outcome))
	}
	return jsonSuccess(c, resp)
}

// Keywords lists the keywords in match order and the emergency phrases.
func (h *ClassifyHandler) Keywords(c fiber.Ctx) error {
	return jsonSuccess(c, models.KeywordsResponse{
		Keywords:         h.responder.Keywords(),
		EmergencyPhrases: h.responder.EmergencyPhrases(),
	})
}
