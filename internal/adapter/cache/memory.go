// Package cache provides OfferCache implementations for raw source offers.
// Only the offers sources returned are stored; valuations are always recomputed.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
)

// DefaultTTL is how long cached offers stay fresh when no TTL is configured.
const DefaultTTL = 5 * time.Minute

type memoryEntry struct {
	offers    []domain.FlightOffer
	expiresAt time.Time
}

// Memory is a process-local OfferCache with per-entry expiry.
// Expired entries are dropped lazily on read and by Sweep.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   timeutil.Clock
}

// NewMemory creates an in-memory cache. A non-positive ttl uses DefaultTTL
// and a nil clock uses the system time.
func NewMemory(ttl time.Duration, clock timeutil.Clock) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns a copy of the cached offers for key.
func (m *Memory) Get(_ context.Context, key string) ([]domain.FlightOffer, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !m.clock.Now().Before(entry.expiresAt) {
		m.mu.Lock()
		if current, still := m.entries[key]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	return cloneOffers(entry.offers), true, nil
}

// Set stores a copy of offers under key.
func (m *Memory) Set(_ context.Context, key string, offers []domain.FlightOffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		offers:    cloneOffers(offers),
		expiresAt: m.clock.Now().Add(m.ttl),
	}
	return nil
}

// Sweep removes every expired entry and returns how many were removed.
func (m *Memory) Sweep() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cloneOffers(offers []domain.FlightOffer) []domain.FlightOffer {
	if offers == nil {
		return []domain.FlightOffer{}
	}
	out := make([]domain.FlightOffer, len(offers))
	copy(out, offers)
	return out
}

// Ensure Memory implements usecase.OfferCache at compile time.
var _ usecase.OfferCache = (*Memory)(nil)
