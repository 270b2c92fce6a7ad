package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/devconnect/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	return &AccountService{Store: newTestStore(t)}
}

func requireFields(t *testing.T, err error, want ...FieldError) {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, want, verr.Fields)
}

var bg = context.Background()
