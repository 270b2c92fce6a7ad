package service

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/devconnect/internal/auth/store"
	"github.com/aussiebroadwan/devconnect/pkg/gravatar"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates account with hashed password and avatar", func(t *testing.T) {
		s := newAccountService(t)

		acct, err := s.Register(bg, "Ada Lovelace", "ada@example.com", "secret1")
		require.NoError(t, err)
		require.NotEmpty(t, acct.ID)
		require.Equal(t, "Ada Lovelace", acct.Name)
		require.Equal(t, "ada@example.com", acct.Email)
		require.Equal(t, gravatar.URL("ada@example.com"), acct.Avatar)
		require.NotEqual(t, "secret1", acct.PasswordHash)
		require.True(t, strings.HasPrefix(acct.PasswordHash, "$2a$10$"))
		require.False(t, acct.CreatedAt.IsZero())

		stored, err := s.GetByID(bg, acct.ID)
		require.NoError(t, err)
		require.Equal(t, acct.PasswordHash, stored.PasswordHash)
	})

	t.Run("normalises email", func(t *testing.T) {
		s := newAccountService(t)

		acct, err := s.Register(bg, "Ada", "  Ada@Example.COM ", "secret1")
		require.NoError(t, err)
		require.Equal(t, "ada@example.com", acct.Email)
	})

	t.Run("same password hashes differently per account", func(t *testing.T) {
		s := newAccountService(t)

		a, err := s.Register(bg, "A", "a@example.com", "secret1")
		require.NoError(t, err)
		b, err := s.Register(bg, "B", "b@example.com", "secret1")
		require.NoError(t, err)
		require.NotEqual(t, a.PasswordHash, b.PasswordHash)
	})

	t.Run("reports every invalid field together", func(t *testing.T) {
		s := newAccountService(t)

		_, err := s.Register(bg, "", "not-an-email", "12345")
		requireFields(t, err,
			FieldError{Field: "name", Message: MsgNameRequired},
			FieldError{Field: "email", Message: MsgEmailInvalid},
			FieldError{Field: "password", Message: MsgPasswordShort},
		)

		_, err = s.Store.Accounts().GetAccountByEmail(bg, "not-an-email")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty password reports length message", func(t *testing.T) {
		s := newAccountService(t)

		_, err := s.Register(bg, "Ada", "ada@example.com", "")
		requireFields(t, err, FieldError{Field: "password", Message: MsgPasswordShort})
	})

	t.Run("password beyond bcrypt limit is a field error", func(t *testing.T) {
		s := newAccountService(t)

		_, err := s.Register(bg, "Ada", "ada@example.com", strings.Repeat("a", 73))
		requireFields(t, err, FieldError{Field: "password", Message: MsgPasswordLong})

		_, err = s.Register(bg, "Ada", "ada@example.com", strings.Repeat("a", 72))
		require.NoError(t, err)
	})

	t.Run("six character password is accepted", func(t *testing.T) {
		s := newAccountService(t)

		_, err := s.Register(bg, "Ada", "ada@example.com", "123456")
		require.NoError(t, err)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		s := newAccountService(t)

		_, err := s.Register(bg, "Ada", "ada@example.com", "secret1")
		require.NoError(t, err)

		_, err = s.Register(bg, "Imposter", "ADA@example.com", "other-secret")
		require.ErrorIs(t, err, ErrDuplicateAccount)
	})

	t.Run("concurrent registrations create exactly one account", func(t *testing.T) {
		s := newAccountService(t)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			dupes     int
		)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Register(bg, "Racer", "race@example.com", "secret1")
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, ErrDuplicateAccount):
					dupes++
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, successes)
		require.Equal(t, 3, dupes)
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	s := newAccountService(t)
	registered, err := s.Register(bg, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	t.Run("correct credentials return the account", func(t *testing.T) {
		acct, err := s.Verify(bg, "Ada@Example.com", "secret1")
		require.NoError(t, err)
		require.Equal(t, registered.ID, acct.ID)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, errWrong := s.Verify(bg, "ada@example.com", "wrong-password")
		_, errUnknown := s.Verify(bg, "nobody@example.com", "secret1")

		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("overlong password is an invalid credential", func(t *testing.T) {
		_, err := s.Verify(bg, "ada@example.com", strings.Repeat("a", 73))
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("validation runs before lookup", func(t *testing.T) {
		_, err := s.Verify(bg, "nope", "")
		requireFields(t, err,
			FieldError{Field: "email", Message: MsgEmailInvalid},
			FieldError{Field: "password", Message: MsgPasswordEmpty},
		)
	})
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	s := newAccountService(t)

	_, err := s.GetByID(bg, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	require.ErrorIs(t, err, ErrNotFound)
}
