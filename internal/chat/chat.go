// Package chat keeps per-user conversation history and routes user messages
// through the responder.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medchat/internal/models"
	"medchat/internal/responder"
	"medchat/internal/store"
	"medchat/internal/validation"
)

const (
	Greeting   = "Hello! I'm your medical assistant. How can I help you today?"
	AudioReply = "I received your voice message. Could you please describe your symptoms in text so I can provide better assistance?"
	AudioLabel = "Audio message"

	keyPrefix = "chat:"
	stripes   = 64
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is too long")
	ErrEmptyAudio     = errors.New("audio url is empty")
)

// Recorder receives one event per classified message.
type Recorder interface {
	RecordReply(trigger, outcome string)
}

// Config holds chat service settings.
type Config struct {
	TTL        time.Duration
	MaxHistory int
}

// Service manages chat histories.
type Service struct {
	store     store.Storage
	responder *responder.Responder
	recorder  Recorder
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
	locks     [stripes]sync.Mutex
}

// NewService creates a chat service. recorder may be nil.
func NewService(s store.Storage, r *responder.Responder, recorder Recorder, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:     s,
		responder: r,
		recorder:  recorder,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Responder returns the responder used for replies.
func (s *Service) Responder() *responder.Responder {
	return s.responder
}

// History returns the conversation for userID. A user without a stored
// history gets a new one that starts with the greeting.
func (s *Service) History(ctx context.Context, userID string) ([]models.Message, error) {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	history, found, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := s.save(ctx, userID, history); err != nil {
			return nil, err
		}
	}
	return history, nil
}

// Send appends a user message and the bot reply. When the reply carries a
// disclaimer it is appended as a separate bot message. The appended messages
// are returned together with the structured response.
func (s *Service) Send(ctx context.Context, userID, text string) ([]models.Message, responder.Response, error) {
	if ok, msg := validation.ValidateMessage(text); !ok {
		if strings.TrimSpace(text) == "" {
			return nil, responder.Response{}, ErrEmptyMessage
		}
		return nil, responder.Response{}, fmt.Errorf("%w: %s", ErrMessageTooLong, msg)
	}
	text = strings.TrimSpace(text)

	resp := s.responder.Classify(text)

	added := []models.Message{
		s.message(text, models.SenderUser, models.TypeText),
	}
	reply := s.message(resp.Text, models.SenderBot, models.TypeText)
	reply.Urgency = string(resp.Urgency)
	reply.Suggestions = responder.FollowUpQuestions(resp)
	added = append(added, reply)
	if resp.Disclaimer != "" {
		added = append(added, s.message(resp.Disclaimer, models.SenderBot, models.TypeText))
	}

	if err := s.append(ctx, userID, added); err != nil {
		return nil, responder.Response{}, err
	}

	if s.recorder != nil {
		s.recorder.RecordReply(resp.Trigger, string(resp.Outcome))
	}
	s.logger.Debug("message classified",
		zap.String("user", userID),
		zap.String("outcome", string(resp.Outcome)),
		zap.String("trigger", resp.Trigger))

	return added, resp, nil
}

// SendAudio appends a voice message and the canned request for a typed
// description. Audio is not transcribed.
func (s *Service) SendAudio(ctx context.Context, userID, audioURL string) ([]models.Message, error) {
	if strings.TrimSpace(audioURL) == "" {
		return nil, ErrEmptyAudio
	}

	msg := s.message(AudioLabel, models.SenderUser, models.TypeAudio)
	msg.AudioURL = audioURL
	added := []models.Message{
		msg,
		s.message(AudioReply, models.SenderBot, models.TypeText),
	}

	if err := s.append(ctx, userID, added); err != nil {
		return nil, err
	}
	return added, nil
}

// Clear empties the history. The greeting is not re-added until the stored
// history expires.
func (s *Service) Clear(ctx context.Context, userID string) error {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	return s.save(ctx, userID, []models.Message{})
}

func (s *Service) append(ctx context.Context, userID string, added []models.Message) error {
	mu := s.lock(userID)
	mu.Lock()
	defer mu.Unlock()

	history, _, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	history = append(history, added...)
	if max := s.cfg.MaxHistory; max > 0 && len(history) > max {
		history = history[len(history)-max:]
	}
	return s.save(ctx, userID, history)
}

func (s *Service) load(ctx context.Context, userID string) ([]models.Message, bool, error) {
	data, err := s.store.GetWithContext(ctx, keyPrefix+userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load history: %w", err)
	}
	if len(data) == 0 {
		return []models.Message{s.message(Greeting, models.SenderBot, models.TypeText)}, false, nil
	}

	var history []models.Message
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, false, fmt.Errorf("failed to decode history: %w", err)
	}
	if history == nil {
		history = []models.Message{}
	}
	return history, true, nil
}

func (s *Service) save(ctx context.Context, userID string, history []models.Message) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.store.SetWithContext(ctx, keyPrefix+userID, data, s.cfg.TTL); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (s *Service) message(text, sender, typ string) models.Message {
	return models.Message{
		ID:        uuid.New(),
		Text:      text,
		Sender:    sender,
		Type:      typ,
		Timestamp: s.now(),
	}
}

func (s *Service) lock(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%stripes]
}
