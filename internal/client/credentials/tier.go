package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fintrack/internal/client/repositories/metadata"
	"github.com/zalando/go-keyring"
)

// ErrNotFound is returned by Tier.Get when the key holds no value.
var ErrNotFound = errors.New("credential not found")

// Tier is one storage location for string values.
type Tier interface {
	Name() string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key; removing a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryTier is the session tier.
type MemoryTier struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryTier() *MemoryTier {
	return &MemoryTier{values: make(map[string]string)}
}

func (m *MemoryTier) Name() string { return "session" }

func (m *MemoryTier) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryTier) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryTier) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// MetadataTier is a durable tier over the client database's metadata table.
type MetadataTier struct {
	repo metadata.Repository
}

func NewMetadataTier(repo metadata.Repository) *MetadataTier {
	return &MetadataTier{repo: repo}
}

func (t *MetadataTier) Name() string { return "sqlite" }

func (t *MetadataTier) Get(ctx context.Context, key string) (string, error) {
	v, err := t.repo.Get(ctx, key)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (t *MetadataTier) Set(ctx context.Context, key, value string) error {
	return t.repo.Set(ctx, key, []byte(value))
}

func (t *MetadataTier) Delete(ctx context.Context, key string) error {
	return t.repo.Delete(ctx, key)
}

// DefaultKeyringService is the keyring service name entries are filed under.
const DefaultKeyringService = "fintrack"

// KeyringTier is a durable tier backed by the OS keyring.
type KeyringTier struct {
	service string
}

func NewKeyringTier(service string) *KeyringTier {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringTier{service: service}
}

func (t *KeyringTier) Name() string { return "keyring" }

func (t *KeyringTier) Get(_ context.Context, key string) (string, error) {
	v, err := keyring.Get(t.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %s/%s: %w", t.service, key, err)
	}
	return v, nil
}

func (t *KeyringTier) Set(_ context.Context, key, value string) error {
	if err := keyring.Set(t.service, key, value); err != nil {
		return fmt.Errorf("keyring set %s/%s: %w", t.service, key, err)
	}
	return nil
}

func (t *KeyringTier) Delete(_ context.Context, key string) error {
	err := keyring.Delete(t.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s/%s: %w", t.service, key, err)
	}
	return nil
}
