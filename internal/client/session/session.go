package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/logging"
)

// Backend is the part of the API client the session needs.
// *api.Client implements it.
type Backend interface {
	LoginAccessToken(ctx context.Context, username, password string) (*models.Token, error)
	ReadUserMe(ctx context.Context) (*models.User, error)
	UpdateUserMe(ctx context.Context, in models.UserUpdateMe) (*models.User, error)
	UpdatePasswordMe(ctx context.Context, current, next string) (*models.Message, error)
	DeleteUserMe(ctx context.Context) (*models.Message, error)
	RegisterUser(ctx context.Context, in models.UserRegister) (*models.User, error)
}

// TokenStore is where the access token lives. *credentials.Store implements it.
type TokenStore interface {
	Get(ctx context.Context) (string, bool)
	Has(ctx context.Context) bool
	Set(ctx context.Context, token string, persistent bool)
	Clear(ctx context.Context)
}

// State is a snapshot of the session handed to observers.
type State struct {
	User          *models.User
	Authenticated bool
	Loading       bool
	Err           error
}

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = logging.Component(l, logging.ComponentSession) }
}

func WithPasswordPolicy(p PasswordPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// WithoutRestore skips the profile fetch New starts when a token is stored.
func WithoutRestore() Option {
	return func(s *Session) { s.restore = false }
}

type Session struct {
	backend Backend
	store   TokenStore
	log     logging.Logger
	policy  PasswordPolicy
	restore bool

	mu       sync.Mutex
	user     *models.User
	err      error
	inflight map[Op]bool

	observers map[int]func(State)
	nextObs   int

	wg sync.WaitGroup
}

// New builds a session. When the store already holds a token, the profile is
// fetched in the background; its failure is only logged.
func New(ctx context.Context, backend Backend, store TokenStore, opts ...Option) *Session {
	s := &Session{
		backend:   backend,
		store:     store,
		log:       logging.Component(nil, logging.ComponentSession),
		restore:   true,
		inflight:  make(map[Op]bool),
		observers: make(map[int]func(State)),
	}
	for _, o := range opts {
		o(s)
	}

	if s.restore && s.IsAuthenticated(ctx) {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if _, err := s.FetchProfile(ctx); err != nil {
				s.log.Warn(ctx, "profile restore failed", logging.FieldError, err)
			}
		}()
	}
	return s
}

// Wait blocks until the startup restore, if any, has finished.
func (s *Session) Wait() { s.wg.Wait() }

// IsAuthenticated reports whether a token is stored.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.store.Has(ctx)
}

// User returns a copy of the cached user, or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.user)
}

// Err returns the error of the last failed action, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Loading reports whether any action is running.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight) > 0
}

// ResetError clears the error slot.
func (s *Session) ResetError() {
	s.update(func() { s.err = nil })
}

func (s *Session) State(ctx context.Context) State {
	s.mu.Lock()
	st := s.snapshotLocked()
	s.mu.Unlock()
	st.Authenticated = s.IsAuthenticated(ctx)
	return st
}

// Subscribe registers fn to receive a State after every transition. fn runs
// on the goroutine that caused the change and must not block.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Session) snapshotLocked() State {
	return State{
		User:    copyUser(s.user),
		Loading: len(s.inflight) > 0,
		Err:     s.err,
	}
}

// update applies fn under the lock and then notifies observers.
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	s.unlockAndPublish()
}

// unlockAndPublish releases s.mu and hands the new state to observers.
func (s *Session) unlockAndPublish() {
	st := s.snapshotLocked()
	obs := make([]func(State), 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	s.mu.Unlock()

	if len(obs) == 0 {
		return
	}
	st.Authenticated = s.IsAuthenticated(context.Background())
	for _, o := range obs {
		o(st)
	}
}

// begin marks op as running, or returns ErrBusy if it already is. Actions
// other than fetch_profile reset the error slot.
func (s *Session) begin(op Op) error {
	s.mu.Lock()
	if s.inflight[op] {
		s.mu.Unlock()
		return ErrBusy
	}
	s.inflight[op] = true
	if op != OpFetchProfile {
		s.err = nil
	}
	s.unlockAndPublish()
	return nil
}

func (s *Session) finish(op Op, fn func()) {
	s.update(func() {
		delete(s.inflight, op)
		if fn != nil {
			fn()
		}
	})
}

func (s *Session) fail(ctx context.Context, op Op, err error) *ActionError {
	ae := newActionError(op, err)
	s.log.Warn(ctx, "action failed", logging.FieldOperation, string(op), logging.FieldError, err)
	s.finish(op, func() { s.err = ae })
	return ae
}

// Login exchanges credentials for a token, stores it in the durable tier when
// rememberMe is set and in the session tier otherwise, then loads the
// profile.
//
// A rejected login clears any stored token. If the token is issued but the
// profile fetch fails, the session stays authenticated without a user and the
// fetch error is returned.
func (s *Session) Login(ctx context.Context, username, password string, rememberMe bool) (*models.User, error) {
	if err := s.begin(OpLogin); err != nil {
		return nil, err
	}

	tok, err := s.backend.LoginAccessToken(ctx, username, password)
	if err != nil {
		s.store.Clear(ctx)
		s.update(func() { s.user = nil })
		return nil, s.fail(ctx, OpLogin, err)
	}
	if tok.AccessToken == "" {
		s.store.Clear(ctx)
		s.update(func() { s.user = nil })
		return nil, s.fail(ctx, OpLogin, errors.New("empty access token"))
	}

	s.store.Set(ctx, tok.AccessToken, rememberMe)
	s.log.Info(ctx, "logged in", "remember_me", rememberMe)

	u, err := s.fetchProfile(ctx)
	if err != nil {
		ae := newActionError(OpFetchProfile, err)
		s.finish(OpLogin, func() { s.err = ae })
		return nil, ae
	}
	s.finish(OpLogin, nil)
	return u, nil
}

// FetchProfile reloads the cached user. It returns nil, nil when no token is
// stored. A rejected token logs the session out before the error is
// returned; other failures keep the token.
func (s *Session) FetchProfile(ctx context.Context) (*models.User, error) {
	if !s.IsAuthenticated(ctx) {
		return nil, nil
	}
	if err := s.begin(OpFetchProfile); err != nil {
		return nil, err
	}

	u, err := s.fetchProfile(ctx)
	if errors.Is(err, errTokenReplaced) {
		s.finish(OpFetchProfile, nil)
		return s.User(), nil
	}
	if err != nil {
		ae := newActionError(OpFetchProfile, err)
		s.finish(OpFetchProfile, func() { s.err = ae })
		return nil, ae
	}
	s.finish(OpFetchProfile, nil)
	return u, nil
}

// errTokenReplaced reports a profile response for a token that was replaced
// or removed while the request was running.
var errTokenReplaced = errors.New("token replaced during profile fetch")

// fetchProfile does the work of FetchProfile without the in-flight guard.
// A response for a token that is no longer stored is discarded: nothing is
// cached and a 401 does not log the newer session out.
func (s *Session) fetchProfile(ctx context.Context) (*models.User, error) {
	sent, _ := s.store.Get(ctx)
	u, err := s.backend.ReadUserMe(ctx)
	if cur, _ := s.store.Get(ctx); cur != sent {
		s.log.Debug(ctx, "profile response for replaced token dropped", logging.FieldError, err)
		return nil, errTokenReplaced
	}
	if err != nil {
		s.log.Warn(ctx, "profile fetch failed", logging.FieldError, err)
		if errors.Is(err, api.ErrUnauthorized) {
			s.Logout(ctx)
		}
		return nil, err
	}

	s.update(func() { s.user = copyUser(u) })
	return copyUser(u), nil
}

// Logout drops the token from both tiers and forgets the user and error.
// It never fails and may be called any number of times.
func (s *Session) Logout(ctx context.Context) {
	s.store.Clear(ctx)
	s.update(func() {
		s.user = nil
		s.err = nil
	})
	s.log.Info(ctx, "logged out")
}

// Register creates an account. It does not log in.
func (s *Session) Register(ctx context.Context, in models.UserRegister) error {
	if err := s.begin(OpRegister); err != nil {
		return err
	}
	if _, err := s.backend.RegisterUser(ctx, in); err != nil {
		return s.fail(ctx, OpRegister, err)
	}
	s.finish(OpRegister, nil)
	return nil
}

// UpdateProfile applies a partial update and caches the returned user. It
// returns nil, nil without calling the backend when not authenticated.
func (s *Session) UpdateProfile(ctx context.Context, in models.UserUpdateMe) (*models.User, error) {
	if !s.IsAuthenticated(ctx) {
		return nil, nil
	}
	if err := s.begin(OpUpdateProfile); err != nil {
		return nil, err
	}

	u, err := s.backend.UpdateUserMe(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, OpUpdateProfile, err)
	}
	s.finish(OpUpdateProfile, func() { s.user = copyUser(u) })
	return copyUser(u), nil
}

// ChangePassword returns false, nil without calling the backend when not
// authenticated. On success the password policy decides whether the session
// is kept.
func (s *Session) ChangePassword(ctx context.Context, current, next string) (bool, error) {
	if !s.IsAuthenticated(ctx) {
		return false, nil
	}
	if err := s.begin(OpChangePassword); err != nil {
		return false, err
	}

	if _, err := s.backend.UpdatePasswordMe(ctx, current, next); err != nil {
		return false, s.fail(ctx, OpChangePassword, err)
	}
	s.finish(OpChangePassword, nil)

	if s.policy == LogoutAfterChange {
		s.Logout(ctx)
	}
	return true, nil
}

// DeleteAccount removes the account on the server and logs out.
func (s *Session) DeleteAccount(ctx context.Context) error {
	if !s.IsAuthenticated(ctx) {
		return nil
	}
	if err := s.begin(OpDeleteAccount); err != nil {
		return err
	}
	if _, err := s.backend.DeleteUserMe(ctx); err != nil {
		return s.fail(ctx, OpDeleteAccount, err)
	}
	s.finish(OpDeleteAccount, nil)
	s.Logout(ctx)
	return nil
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.FullName != nil {
		name := *u.FullName
		c.FullName = &name
	}
	return &c
}
