package cli

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/devconnect/pkg/authsdk"
	"github.com/aussiebroadwan/devconnect/pkg/session"
)

// stubAPI accepts ada@example.com / secret1 and nothing else.
type stubAPI struct {
	mu    sync.Mutex
	token string

	// currentGate, when set, holds CurrentAccount until closed;
	// currentEntered is signalled on entry.
	currentGate    chan struct{}
	currentEntered chan struct{}
}

func (s *stubAPI) Login(ctx context.Context, email, password string) (string, error) {
	if email != "ada@example.com" || password != "secret1" {
		return "", &authsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Messages:   []authsdk.ErrorMessage{{Msg: "Invalid Credentials"}},
		}
	}
	return "tok-ada", nil
}

func (s *stubAPI) Register(ctx context.Context, name, email, password string) (string, error) {
	return "", &authsdk.APIError{
		StatusCode: http.StatusBadRequest,
		Messages:   []authsdk.ErrorMessage{{Msg: "User already exists"}},
	}
}

func (s *stubAPI) CurrentAccount(ctx context.Context) (*authsdk.Account, error) {
	if s.currentEntered != nil {
		s.currentEntered <- struct{}{}
	}
	if s.currentGate != nil {
		<-s.currentGate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "tok-ada" {
		return nil, &authsdk.APIError{
			StatusCode: http.StatusUnauthorized,
			Messages:   []authsdk.ErrorMessage{{Msg: "Unauthorized"}},
		}
	}
	return &authsdk.Account{ID: "acct-ada", Name: "Ada", Email: "ada@example.com", Avatar: "https://www.gravatar.com/avatar/x"}, nil
}

func (s *stubAPI) SetToken(token string) { s.mu.Lock(); s.token = token; s.mu.Unlock() }
func (s *stubAPI) ClearToken()           { s.SetToken("") }

func newTestApp(storage *session.MemoryStorage, input string) (*App, *bytes.Buffer) {
	return newTestAppWith(&stubAPI{}, storage, input)
}

func newTestAppWith(api *stubAPI, storage *session.MemoryStorage, input string) (*App, *bytes.Buffer) {
	slot := storage.Context()
	store := session.NewStore(api, slot, nil)
	out := &bytes.Buffer{}
	return newApp(store, session.NewCrossTabSync(store, slot), bufio.NewReader(strings.NewReader(input)), out, nil), out
}

func TestApp_OpenFollowsGuard(t *testing.T) {
	stubPassword(t, "secret1", nil)
	app, out := newTestApp(session.NewMemoryStorage(), "ada@example.com\n")
	ctx := context.Background()

	// Idle: protected routes render nothing until the session resolves.
	require.NoError(t, app.Open(ctx, "/dashboard"))
	require.Equal(t, "...\n", out.String())

	require.NoError(t, app.store.Bootstrap(ctx))
	out.Reset()
	require.NoError(t, app.Open(ctx, "/dashboard"))
	require.NoError(t, app.Open(ctx, "/"))
	require.NoError(t, app.Open(ctx, "/profile/42"))
	require.NoError(t, app.Open(ctx, "/nowhere"))
	require.Equal(t, "-> /login\n[landing]\n[profile 42]\n404 /nowhere\n", out.String())

	require.NoError(t, app.Login(ctx))
	out.Reset()
	require.NoError(t, app.Open(ctx, "/posts/7"))
	require.Equal(t, "[post 7]\n", out.String())
}

func TestApp_LoginFailureReportsServerMessages(t *testing.T) {
	stubPassword(t, "wrong", nil)
	app, out := newTestApp(session.NewMemoryStorage(), "ada@example.com\n")

	err := app.Login(context.Background())
	require.Error(t, err)
	require.Contains(t, out.String(), "error: Invalid Credentials")
	require.Equal(t, session.Unauthenticated, app.store.Snapshot().Status)
}

func TestApp_RegisterFailureReportsServerMessages(t *testing.T) {
	stubPassword(t, "secret1", nil)
	app, out := newTestApp(session.NewMemoryStorage(), "Ada\nada@example.com\n")

	require.Error(t, app.Register(context.Background()))
	require.Contains(t, out.String(), "error: User already exists")
}

func TestApp_WhoAmI(t *testing.T) {
	stubPassword(t, "secret1", nil)
	app, out := newTestApp(session.NewMemoryStorage(), "ada@example.com\n")
	ctx := context.Background()

	require.NoError(t, app.WhoAmI(ctx))
	require.Equal(t, "Not logged in.\n", out.String())

	require.NoError(t, app.Login(ctx))
	out.Reset()
	require.NoError(t, app.WhoAmI(ctx))
	require.Equal(t, "Ada <ada@example.com>\nhttps://www.gravatar.com/avatar/x\n", out.String())
}

func TestApp_RunSession(t *testing.T) {
	stubPassword(t, "secret1", nil)
	input := "login\nada@example.com\nopen /dashboard\nlogout\nopen /dashboard\nquit\n"
	app, out := newTestApp(session.NewMemoryStorage(), input)

	require.NoError(t, app.Run(context.Background()))

	got := out.String()
	require.Contains(t, got, "Welcome, Ada.")
	require.Contains(t, got, "[dashboard]")
	require.Contains(t, got, "devconnect [ada@example.com]> ")
	require.Contains(t, got, "Logged out.")
	require.Contains(t, got, "-> /login")
	require.Contains(t, got, "Bye!")
}

func TestApp_LogoutInOneProcessEndsTheOther(t *testing.T) {
	stubPassword(t, "secret1", nil)
	storage := session.NewMemoryStorage()
	ctx := context.Background()

	first, _ := newTestApp(storage, "ada@example.com\n")
	require.NoError(t, first.store.Bootstrap(ctx))
	require.NoError(t, first.Login(ctx))

	second, _ := newTestApp(storage, "")
	require.NoError(t, second.store.Bootstrap(ctx))
	require.True(t, second.isLoggedIn())
	require.NoError(t, second.sync.Start())
	t.Cleanup(second.sync.Stop)

	require.NoError(t, first.Logout(ctx))
	require.False(t, second.isLoggedIn())
}


func TestApp_LogoutElsewhereDuringStartupWins(t *testing.T) {
	stubPassword(t, "secret1", nil)
	storage := session.NewMemoryStorage()
	ctx := context.Background()

	first, _ := newTestApp(storage, "ada@example.com\n")
	require.NoError(t, first.Login(ctx))

	api := &stubAPI{currentGate: make(chan struct{}), currentEntered: make(chan struct{}, 1)}
	second, out := newTestAppWith(api, storage, "whoami\nquit\n")

	done := make(chan error, 1)
	go func() { done <- second.Run(ctx) }()

	<-api.currentEntered
	require.NoError(t, first.Logout(ctx))
	close(api.currentGate)

	require.NoError(t, <-done)
	require.False(t, second.isLoggedIn())
	require.Contains(t, out.String(), "Not logged in.")
}
