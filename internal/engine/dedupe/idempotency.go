// internal/engine/dedupe/idempotency.go
package dedupe

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by KeyValueStore.Get when no value exists for
// the key.
var ErrNotFound = errors.New("key not found")

// KeyValueStore is the persistence capability injected into the key issuer.
// Implementations live in internal/common/database (Redis) and in this
// package (in-memory, for tests and degraded mode).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// KeyIssuer returns a stable idempotency token per logical scope so a
// retried write request is recognized as a repeat by the receiving system.
//
// The check-then-store sequence is not atomic: two concurrent first calls
// with the same scope key can each mint a token, with the second write
// winning. That race is tolerated for this single-user client workload and
// is not worth a lock.
type KeyIssuer struct {
	store KeyValueStore
}

func NewKeyIssuer(store KeyValueStore) *KeyIssuer {
	return &KeyIssuer{store: store}
}

// GetOrCreate returns the previously issued token for the scope, or mints
// and persists a fresh one. It never fails: when the store is unavailable
// it degrades to always minting, trading deduplication for availability.
func (k *KeyIssuer) GetOrCreate(ctx context.Context, scopeKey string) string {
	if k.store != nil {
		if token, err := k.store.Get(ctx, scopeKey); err == nil && token != "" {
			return token
		}
	}

	token := mintToken()
	if k.store != nil {
		// Best effort; a failed write just means the next call mints again.
		_ = k.store.Set(ctx, scopeKey, token)
	}
	return token
}

// Invalidate drops the stored token so the next call mints a fresh one,
// used when a draft is discarded.
func (k *KeyIssuer) Invalidate(ctx context.Context, scopeKey string) {
	if k.store != nil {
		_ = k.store.Remove(ctx, scopeKey)
	}
}

// mintToken prefers a crypto-random UUID and falls back to a time-seeded
// token if the system random source fails.
func mintToken() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
