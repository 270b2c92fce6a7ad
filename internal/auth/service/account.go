package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/devconnect/internal/auth/domain"
	"github.com/aussiebroadwan/devconnect/internal/auth/store"
	"github.com/aussiebroadwan/devconnect/pkg/cryptox"
	"github.com/aussiebroadwan/devconnect/pkg/gravatar"
	"github.com/aussiebroadwan/devconnect/pkg/idx"
	"github.com/aussiebroadwan/devconnect/pkg/slogx"
)

// AccountService is the credential store: it owns account creation and
// password verification.
type AccountService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register validates the request, rejects a taken email and stores a new
// account with a bcrypt password hash and a gravatar avatar.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	req := registration{Name: strings.TrimSpace(name), Email: normalizeEmail(email), Password: password}
	if err := req.validate(); err != nil {
		return domain.Account{}, err
	}

	// Hash outside the write transaction.
	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	acct := domain.Account{
		ID:           idx.NewAt(now).String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Avatar:       gravatar.URL(req.Email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Accounts().GetAccountByEmail(ctx, req.Email); err == nil {
			return ErrDuplicateAccount
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("lookup account: %w", err)
		}

		if err := tx.Accounts().CreateAccount(ctx, acct); err != nil {
			// The unique index still guards writers outside this transaction.
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateAccount
			}
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	l.Info("account registered", slog.String("account_id", acct.ID))
	return acct, nil
}

// Verify checks login credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AccountService) Verify(ctx context.Context, email, password string) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	req := login{Email: normalizeEmail(email), Password: password}
	if err := req.validate(); err != nil {
		return domain.Account{}, err
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login for unknown email")
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := cryptox.VerifyPassword(req.Password, acct.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login password mismatch", slog.String("account_id", acct.ID))
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, fmt.Errorf("verify password: %w", err)
	}

	return acct, nil
}

// GetByID fetches an account by id.
func (s *AccountService) GetByID(ctx context.Context, id string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return acct, nil
}
