package session_test

import (
	"context"
	"net/http"
	"sync"

	"github.com/aussiebroadwan/devconnect/pkg/authsdk"
)

// fakeAPI mimics the auth server: one account, one valid password.
type fakeAPI struct {
	mu       sync.Mutex
	token    string
	accounts map[string]*authsdk.Account // token -> account
	password string

	currentCalls int

	// loginGate, when set, blocks Login until closed; loginEntered is
	// signalled once Login has been entered.
	loginGate    chan struct{}
	loginEntered chan struct{}

	// currentGate and currentEntered do the same for CurrentAccount.
	currentGate    chan struct{}
	currentEntered chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		accounts: map[string]*authsdk.Account{
			"tok-ada": {ID: "acct-ada", Name: "Ada", Email: "ada@example.com"},
		},
		password: "secret1",
	}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginEntered != nil {
		f.loginEntered <- struct{}{}
	}
	if f.loginGate != nil {
		<-f.loginGate
	}
	if email != "ada@example.com" || password != f.password {
		return "", &authsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Messages:   []authsdk.ErrorMessage{{Msg: "Invalid Credentials"}},
		}
	}
	return "tok-ada", nil
}

func (f *fakeAPI) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" {
		return "", &authsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Messages:   []authsdk.ErrorMessage{{Msg: "Name is required", Param: "name"}},
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts["tok-new"] = &authsdk.Account{ID: "acct-new", Name: name, Email: email}
	return "tok-new", nil
}

func (f *fakeAPI) CurrentAccount(ctx context.Context) (*authsdk.Account, error) {
	if f.currentEntered != nil {
		f.currentEntered <- struct{}{}
	}
	if f.currentGate != nil {
		<-f.currentGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentCalls++

	acct, ok := f.accounts[f.token]
	if !ok {
		return nil, &authsdk.APIError{
			StatusCode: http.StatusUnauthorized,
			Messages:   []authsdk.ErrorMessage{{Msg: "Unauthorized"}},
		}
	}
	return acct, nil
}

func (f *fakeAPI) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeAPI) ClearToken() { f.SetToken("") }

func (f *fakeAPI) attached() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentCalls
}
