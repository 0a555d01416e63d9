// Package auth implements the simulated phone login: a one-time code is
// generated per request, delivered through a Sender, and verified against the
// secret kept in the store until it expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"

	"medchat/internal/models"
	"medchat/internal/store"
	"medchat/internal/validation"
)

const (
	issuer    = "MedChat"
	keyPrefix = "otp:"
)

var (
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidCode   = errors.New("invalid verification code")
	ErrNoPendingCode = errors.New("no pending verification code")
	ErrCodeMismatch  = errors.New("verification code does not match")
	ErrInvalidName   = errors.New("invalid name")
)

var validateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// Sender delivers a code to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender logs codes instead of delivering them.
type LogSender struct {
	Logger *zap.Logger
}

// Send writes the code to the log.
func (s LogSender) Send(_ context.Context, phone, code string) error {
	s.Logger.Info("one-time code issued", zap.String("phone", phone), zap.String("code", code))
	return nil
}

// Service issues and verifies login codes.
type Service struct {
	store  store.Storage
	sender Sender
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an auth service. Codes stay valid for ttl.
func NewService(s store.Storage, sender Sender, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		store:  s,
		sender: sender,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// TTL returns how long an issued code stays valid.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// RequestOTP issues a new code for phone, replacing any pending one. It
// returns the normalized phone and the code.
func (s *Service) RequestOTP(ctx context.Context, phone string) (string, string, error) {
	phone = validation.NormalizePhone(phone)
	if ok, msg := validation.ValidatePhone(phone); !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidPhone, msg)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: phone,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate secret: %w", err)
	}

	code, err := totp.GenerateCode(key.Secret(), s.now())
	if err != nil {
		return "", "", fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.store.SetWithContext(ctx, keyPrefix+phone, []byte(key.Secret()), s.ttl); err != nil {
		return "", "", fmt.Errorf("failed to store secret: %w", err)
	}

	if err := s.sender.Send(ctx, phone, code); err != nil {
		return "", "", fmt.Errorf("failed to send code: %w", err)
	}

	s.logger.Debug("otp requested", zap.String("phone", phone))
	return phone, code, nil
}

// VerifyOTP checks code against the pending secret for phone. A successful
// check consumes the secret. It returns the normalized phone.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	phone = validation.NormalizePhone(phone)
	if ok, msg := validation.ValidatePhone(phone); !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidPhone, msg)
	}
	if ok, msg := validation.ValidateOTP(code); !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidCode, msg)
	}

	secret, err := s.store.GetWithContext(ctx, keyPrefix+phone)
	if err != nil {
		return "", fmt.Errorf("failed to load secret: %w", err)
	}
	if len(secret) == 0 {
		return "", ErrNoPendingCode
	}

	valid, err := totp.ValidateCustom(code, string(secret), s.now(), validateOpts)
	if err != nil {
		return "", fmt.Errorf("failed to validate code: %w", err)
	}
	if !valid {
		return "", ErrCodeMismatch
	}

	if err := s.store.DeleteWithContext(ctx, keyPrefix+phone); err != nil {
		s.logger.Warn("failed to delete used secret", zap.String("phone", phone), zap.Error(err))
	}
	return phone, nil
}

// NewUser completes the profile step for a verified phone.
func (s *Service) NewUser(phone, name, location string) (*models.User, error) {
	if ok, msg := validation.ValidateName(name); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidName, msg)
	}
	return models.NewUser(phone, name, location), nil
}
