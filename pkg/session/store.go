package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/aussiebroadwan/devconnect/pkg/authsdk"
)

// ErrSuperseded is returned by a call whose result was discarded because a
// Logout or a newer attempt happened while it was in flight.
var ErrSuperseded = errors.New("session: superseded by a newer transition")

// API is the part of the auth client the session drives. *authsdk.SDKClient
// satisfies it.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) (string, error)
	CurrentAccount(ctx context.Context) (*authsdk.Account, error)
	SetToken(token string)
	ClearToken()
}

// Store is the client session state container. It is the only writer of
// the token slot and of the token attached to the API client.
//
// Every transition that starts a request bumps a generation counter and
// remembers the value; a completion whose generation is no longer current
// is dropped, so a Logout always wins over a request still in flight.
type Store struct {
	api    API
	slot   Slot
	logger *slog.Logger

	mu    sync.Mutex
	state State
	gen   uint64
	seq   uint64 // bumped on every state change

	// pubMu orders deliveries; published is the seq last delivered.
	pubMu     sync.Mutex
	published uint64

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

// NewStore returns a Store in the Idle state. A nil logger uses slog.Default.
func NewStore(api API, slot Slot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:    api,
		slot:   slot,
		logger: logger,
		subs:   make(map[int]func(State)),
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe calls fn with new states until the returned function is called.
// fn runs on the goroutine that made the transition and always receives
// the state current at delivery, so the last state a subscriber sees
// matches Snapshot. Transitions that race may be coalesced into one call.
// fn must not call Bootstrap, LoginWith, RegisterWith or Logout itself.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Bootstrap restores a session from the slot. An empty slot ends in
// Unauthenticated without a request; a stored token that the server
// rejects is cleared.
func (s *Store) Bootstrap(ctx context.Context) error {
	token, err := s.slot.Load()
	if err != nil {
		s.logger.Warn("token slot unreadable", "err", err)
	}
	if token == "" {
		s.mu.Lock()
		s.gen++
		s.setState(State{Status: Unauthenticated})
		s.mu.Unlock()

		s.publish()
		return err
	}

	gen := s.begin(func() { s.api.SetToken(token) })

	acct, err := s.api.CurrentAccount(ctx)
	if err != nil {
		s.logger.Info("stored session rejected", "err", err)
		if !s.fail(gen, nil, true) {
			return ErrSuperseded
		}
		return err
	}

	if !s.succeed(gen, acct) {
		return ErrSuperseded
	}
	return nil
}

// LoginWith authenticates with credentials. On success the token is
// stored in the slot and the account resolved.
func (s *Store) LoginWith(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, func() (string, error) {
		return s.api.Login(ctx, email, password)
	})
}

// RegisterWith creates an account and signs it in.
func (s *Store) RegisterWith(ctx context.Context, name, email, password string) error {
	return s.authenticate(ctx, func() (string, error) {
		return s.api.Register(ctx, name, email, password)
	})
}

func (s *Store) authenticate(ctx context.Context, obtain func() (string, error)) error {
	gen := s.begin(nil)

	token, err := obtain()
	if err != nil {
		// A failed attempt ends any earlier session too.
		if !s.fail(gen, messagesOf(err), true) {
			return ErrSuperseded
		}
		return err
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return ErrSuperseded
	}
	if err := s.slot.Save(token); err != nil {
		s.logger.Warn("token not persisted", "err", err)
	}
	s.api.SetToken(token)
	s.mu.Unlock()

	acct, err := s.api.CurrentAccount(ctx)
	if err != nil {
		if !s.fail(gen, messagesOf(err), true) {
			return ErrSuperseded
		}
		return err
	}

	if !s.succeed(gen, acct) {
		return ErrSuperseded
	}
	return nil
}

// Logout clears the slot, detaches the token and ends in Unauthenticated.
// It is safe to call in any state and any number of times.
func (s *Store) Logout() {
	s.mu.Lock()
	s.gen++
	if err := s.slot.Clear(); err != nil {
		s.logger.Warn("token slot not cleared", "err", err)
	}
	s.api.ClearToken()

	if s.state.Status != Unauthenticated || s.state.Account != nil || len(s.state.Errors) > 0 {
		s.setState(State{Status: Unauthenticated})
	}
	s.mu.Unlock()

	s.publish()
}

// begin moves to Loading under a fresh generation. attach runs under the
// same lock so a concurrent Logout cannot slip between the two.
func (s *Store) begin(attach func()) uint64 {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if attach != nil {
		attach()
	}
	s.setState(State{Status: Loading})
	s.mu.Unlock()

	s.publish()
	return gen
}

func (s *Store) succeed(gen uint64, acct *authsdk.Account) bool {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	s.setState(State{Status: Authenticated, Account: acct})
	s.mu.Unlock()

	s.publish()
	return true
}

// fail ends the attempt in Unauthenticated, optionally dropping the token
// it had stored.
func (s *Store) fail(gen uint64, msgs []authsdk.ErrorMessage, dropToken bool) bool {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return false
	}
	if dropToken {
		if err := s.slot.Clear(); err != nil {
			s.logger.Warn("token slot not cleared", "err", err)
		}
		s.api.ClearToken()
	}
	s.setState(State{Status: Unauthenticated, Errors: msgs})
	s.mu.Unlock()

	s.publish()
	return true
}

// setState must be called with mu held.
func (s *Store) setState(st State) {
	s.state = st
	s.seq++
}

// publish delivers the current state unless it was already delivered.
func (s *Store) publish() {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	st, seq := s.state, s.seq
	s.mu.Unlock()
	if seq == s.published {
		return
	}
	s.published = seq

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

// messagesOf extracts the server's messages, or wraps a transport error.
func messagesOf(err error) []authsdk.ErrorMessage {
	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
		return slices.Clone(apiErr.Messages)
	}
	return []authsdk.ErrorMessage{{Msg: err.Error()}}
}
