package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/devconnect/internal/auth/service"
	"github.com/aussiebroadwan/devconnect/pkg/cryptox"
)

var ErrMissingSecret = errors.New("AUTH_JWT_SECRET is required outside dev")

// InitTokenService builds the token service from the configured secret.
// In dev an empty secret is replaced by a random one, which invalidates
// every token on restart.
func InitTokenService(cfg Config, logger *slog.Logger) (*service.TokenService, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		if !cfg.IsDev() {
			return nil, ErrMissingSecret
		}

		generated, err := cryptox.GenerateSecret(cryptox.SecretSize256)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		secret = generated
		logger.Warn("AUTH_JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	tokens, err := service.NewTokenService([]byte(secret), cfg.Issuer, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	logger.Info("session tokens configured", "alg", tokens.Signer.Alg(), "ttl", cfg.SessionTTL.String())
	return tokens, nil
}
