package cart

import (
	"context"
	"sync"
	"time"

	"github.com/ayoubseh/boutique-backend/pkg/logger"
)

// Registry hands out one Store per cart session and drops stores whose
// session has been idle past the configured TTL. Sessions are identified
// by the opaque id minted at the transport layer.
type Registry struct {
	mu      sync.Mutex
	stores  map[string]*registryEntry
	idleTTL time.Duration
	now     func() time.Time
}

type registryEntry struct {
	store      *Store
	lastAccess time.Time
}

// NewRegistry builds a registry that expires carts idle longer than idleTTL.
// A non-positive TTL disables expiry.
func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		stores:  make(map[string]*registryEntry),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Get returns the store for the session, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.stores[sessionID]
	if !ok {
		entry = &registryEntry{store: NewStore()}
		r.stores[sessionID] = entry
	}
	entry.lastAccess = r.now()
	return entry.store
}

// Peek returns the store without creating one or refreshing its idle clock.
func (r *Registry) Peek(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.stores[sessionID]
	if !ok {
		return nil, false
	}
	return entry.store, true
}

// Drop discards the session's cart entirely.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, sessionID)
}

// Len reports how many live carts the registry holds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// PruneIdle drops carts idle past the TTL and returns how many were removed.
func (r *Registry) PruneIdle() int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	pruned := 0
	for id, entry := range r.stores {
		if entry.lastAccess.Before(cutoff) {
			delete(r.stores, id)
			pruned++
		}
	}
	return pruned
}

// Sweep prunes idle carts on the given interval until ctx is cancelled.
func (r *Registry) Sweep(ctx context.Context, interval time.Duration, logg *logger.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := r.PruneIdle(); pruned > 0 && logg != nil {
				logg.Info(logg.WithField(ctx, "pruned_carts", pruned), "expired idle cart sessions")
			}
		}
	}
}
