package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/compago/pkg/utils"
)

// DefaultPin is the static credential of the simulated wallet.
const DefaultPin = "1234"

// ErrInvalidPin is returned when the entered PIN does not match.
var ErrInvalidPin = errors.New("invalid pin")

// Strategy verifies a credential.
type Strategy interface {
	Verify(ctx context.Context, pin string) error
}

// HashStrategy compares PINs against a bcrypt hash so the plain PIN is not kept in memory.
type HashStrategy struct {
	hash string
}

// NewHashStrategy hashes pin with the given bcrypt cost.
func NewHashStrategy(pin string, cost int) (*HashStrategy, error) {
	if !utils.IsPin(pin) {
		return nil, fmt.Errorf("configured pin must be four digits")
	}
	hash, err := utils.HashPin(pin, cost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}
	return &HashStrategy{hash: hash}, nil
}

// NewHashStrategyFromHash uses an existing bcrypt hash.
func NewHashStrategyFromHash(hash string) *HashStrategy {
	return &HashStrategy{hash: hash}
}

// Verify returns ErrInvalidPin unless pin matches the hash.
func (s *HashStrategy) Verify(_ context.Context, pin string) error {
	if !utils.IsPin(pin) || !utils.CheckPinHash(pin, s.hash) {
		return ErrInvalidPin
	}
	return nil
}

// Service is the authentication gate in front of the wallet.
type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

// New creates a Service using strategy.
func New(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{strategy: strategy, logger: logger}
}

// NewWithPin creates a Service that accepts exactly pin.
func NewWithPin(pin string, cost int, logger *slog.Logger) (*Service, error) {
	strategy, err := NewHashStrategy(pin, cost)
	if err != nil {
		return nil, err
	}
	return New(strategy, logger), nil
}

// Authenticate checks the PIN. There is no lockout and no attempt tracking.
func (s *Service) Authenticate(ctx context.Context, pin string) error {
	log := s.logger.With("service", "auth.Authenticate")
	if err := s.strategy.Verify(ctx, pin); err != nil {
		log.Warn("❌ [ERROR] PIN rejected")
		return err
	}
	log.Info("✅ [SUCCESS] PIN accepted")
	return nil
}
