package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/devconnect/pkg/jwtx"
)

// TokenService issues and verifies session tokens. It holds no state
// beyond the keys; tokens are never revoked server side.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration

	// Now is the issue-time clock. Defaults to time.Now.
	Now func() time.Time
}

// NewTokenService builds signer and verifier from the same HMAC secret.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwtx.NewVerifierHS256(secret, issuer)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return &TokenService{Signer: signer, Verifier: verifier, Issuer: issuer, TTL: ttl}, nil
}

// Issue signs a token for accountID expiring TTL from now.
func (s *TokenService) Issue(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("issue token: empty account id")
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(accountID, s.Issuer, s.TTL, now))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify returns the account id a token was issued for. Failures are one
// of ErrMalformedToken, ErrInvalidSignature or ErrExpired, wrapping the
// jwtx cause.
func (s *TokenService) Verify(token string) (string, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			return "", fmt.Errorf("%w: %w", ErrExpired, err)
		case errors.Is(err, jwtx.ErrInvalidSig):
			return "", fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		default:
			return "", fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
	}
	return claims.Subject, nil
}
