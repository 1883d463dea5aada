// Package memory provides the degraded-mode account store used when the
// durable document store is unreachable.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"civicreport/internal/domain/entity"
)

// ephemeralKeyPrefix derives stable fallback ids from the provider subject,
// so repeated exchanges for the same external identity reuse one account
// within a process lifetime.
const ephemeralKeyPrefix = "civic-"

// FallbackStore is a process-local cache of ephemeral accounts. It is an
// explicitly owned, injectable component rather than a package-level
// singleton, so tests can construct and reset their own instance. Entries
// never expire and are lost on restart; they are never reconciled with the
// durable store.
type FallbackStore struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

// NewFallbackStore is the constructor for FallbackStore.
func NewFallbackStore() *FallbackStore {
	return &FallbackStore{
		accounts: make(map[string]*entity.Account),
	}
}

// GetOrCreate returns the cached ephemeral account for the claims' derived
// key, creating one if absent. Claims without a subject get a fresh
// time+random key on every call, so such identities are not stable across
// retries within degraded mode. Never errors.
func (s *FallbackStore) GetOrCreate(claims *entity.ExternalClaims) *entity.Account {
	key := deriveKey(claims)

	s.mu.Lock()
	defer s.mu.Unlock()

	if account, ok := s.accounts[key]; ok {
		return account
	}

	now := time.Now().UTC()
	account := &entity.Account{
		ID:         key,
		FullName:   claims.DisplayName(),
		Email:      claims.Email,
		ExternalID: claims.Subject,
		IsVerified: true,
		Ephemeral:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.accounts[key] = account

	return account
}

// Len reports the number of cached ephemeral accounts.
func (s *FallbackStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

// Reset drops every cached entry.
func (s *FallbackStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*entity.Account)
}

func deriveKey(claims *entity.ExternalClaims) string {
	if claims.Subject != "" {
		return ephemeralKeyPrefix + claims.Subject
	}

	return fmt.Sprintf("temp-%d-%s", time.Now().UnixNano(), uuid.NewString())
}
