package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/fintrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fintrack/internal/client/storage"
	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenTier fails every operation.
type brokenTier struct{ err error }

func (b brokenTier) Name() string                                { return "broken" }
func (b brokenTier) Get(context.Context, string) (string, error) { return "", b.err }
func (b brokenTier) Set(context.Context, string, string) error   { return b.err }
func (b brokenTier) Delete(context.Context, string) error        { return b.err }

func newStore() (*Store, *MemoryTier, *MemoryTier) {
	durable, session := NewMemoryTier(), NewMemoryTier()
	return NewStore(durable, session, logging.Nop()), durable, session
}

func TestStore_EmptyHasNoToken(t *testing.T) {
	s, _, _ := newStore()
	v, ok := s.Get(context.Background())
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.False(t, s.Has(context.Background()))
}

func TestStore_SetPersistentWritesDurableOnly(t *testing.T) {
	ctx := context.Background()
	s, durable, session := newStore()
	require.NoError(t, session.Set(ctx, common.AccessTokenKey, "old"))

	s.Set(ctx, "tok", true)

	v, err := durable.Get(ctx, common.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
	_, err = session.Get(ctx, common.AccessTokenKey)
	assert.ErrorIs(t, err, ErrNotFound)

	got, ok := s.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", got)
}

func TestStore_SetSessionWritesSessionOnly(t *testing.T) {
	ctx := context.Background()
	s, durable, session := newStore()
	require.NoError(t, durable.Set(ctx, common.AccessTokenKey, "old"))

	s.Set(ctx, "tok", false)

	_, err := durable.Get(ctx, common.AccessTokenKey)
	assert.ErrorIs(t, err, ErrNotFound)
	v, err := session.Get(ctx, common.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
	assert.Equal(t, "tok", s.Token(ctx))
}

func TestStore_DurableWinsOverSession(t *testing.T) {
	ctx := context.Background()
	s, durable, session := newStore()
	require.NoError(t, durable.Set(ctx, common.AccessTokenKey, "durable"))
	require.NoError(t, session.Set(ctx, common.AccessTokenKey, "session"))

	assert.Equal(t, "durable", s.Token(ctx))
}

func TestStore_ClearRemovesBoth(t *testing.T) {
	ctx := context.Background()
	s, durable, session := newStore()
	require.NoError(t, durable.Set(ctx, common.AccessTokenKey, "a"))
	require.NoError(t, session.Set(ctx, common.AccessTokenKey, "b"))

	s.Clear(ctx)
	s.Clear(ctx)

	assert.False(t, s.Has(ctx))
}

func TestStore_FailingDurableTierIsIgnored(t *testing.T) {
	ctx := context.Background()
	session := NewMemoryTier()
	s := NewStore(brokenTier{err: errors.New("disk full")}, session, logging.Nop())

	s.Set(ctx, "tok", true)
	_, ok := s.Get(ctx)
	assert.False(t, ok, "failed durable write stores nothing")

	s.Set(ctx, "tok", false)
	assert.Equal(t, "tok", s.Token(ctx), "session tier still readable when durable read fails")

	assert.NotPanics(t, func() { s.Clear(ctx) })
	assert.False(t, s.Has(ctx))
}

func TestStore_WithMetadataTier(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, storage.MemoryDSN, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	durable := NewMetadataTier(metadata.NewSQLiteRepository(db))
	s := NewStore(durable, NewMemoryTier(), logging.Nop())

	s.Set(ctx, "persisted", true)

	// a second store over the same database sees the token
	again := NewStore(NewMetadataTier(metadata.NewSQLiteRepository(db)), NewMemoryTier(), logging.Nop())
	assert.Equal(t, "persisted", again.Token(ctx))

	again.Clear(ctx)
	assert.False(t, s.Has(ctx))
}
