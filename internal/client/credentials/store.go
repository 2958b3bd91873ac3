package credentials

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
)

// Store holds the access token. The durable tier wins over the session tier
// on reads, and a write always leaves the token in exactly one tier.
//
// Storage failures are logged and otherwise ignored: a failed read reports
// no token, a failed write or delete leaves the tier as it was.
type Store struct {
	durable Tier
	session Tier
	log     logging.Logger
}

// NewStore builds a Store. A nil session tier gets a fresh MemoryTier.
func NewStore(durable, session Tier, log logging.Logger) *Store {
	if session == nil {
		session = NewMemoryTier()
	}
	if durable == nil {
		durable = NewMemoryTier()
	}
	return &Store{
		durable: durable,
		session: session,
		log:     logging.Component(log, logging.ComponentCredentials),
	}
}

// Get returns the stored token and whether one is present.
func (s *Store) Get(ctx context.Context) (string, bool) {
	for _, t := range []Tier{s.durable, s.session} {
		v, err := t.Get(ctx, common.AccessTokenKey)
		if err == nil && v != "" {
			return v, true
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			s.log.Warn(ctx, "token read failed", logging.FieldTier, t.Name(), logging.FieldError, err)
		}
	}
	return "", false
}

// Token is Get without the presence flag; it satisfies api.TokenSource.
func (s *Store) Token(ctx context.Context) string {
	v, _ := s.Get(ctx)
	return v
}

// Has reports whether a token is present.
func (s *Store) Has(ctx context.Context) bool {
	_, ok := s.Get(ctx)
	return ok
}

// Set stores token in the durable tier when persistent is true and in the
// session tier otherwise, removing it from the other tier.
func (s *Store) Set(ctx context.Context, token string, persistent bool) {
	target, other := s.session, s.durable
	if persistent {
		target, other = s.durable, s.session
	}
	if err := target.Set(ctx, common.AccessTokenKey, token); err != nil {
		s.log.Warn(ctx, "token write failed", logging.FieldTier, target.Name(), logging.FieldError, err)
	}
	s.remove(ctx, other)
}

// Clear removes the token from both tiers.
func (s *Store) Clear(ctx context.Context) {
	s.remove(ctx, s.durable)
	s.remove(ctx, s.session)
}

func (s *Store) remove(ctx context.Context, t Tier) {
	if err := t.Delete(ctx, common.AccessTokenKey); err != nil {
		s.log.Warn(ctx, "token delete failed", logging.FieldTier, t.Name(), logging.FieldError, err)
	}
}
