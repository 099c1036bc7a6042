package store

import (
	"context"
	"sync"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/logger"
	"inkspace/internal/pkg/metrics"

	"github.com/rs/zerolog"
)

// TokenExpiry reports when a session token stops being accepted.
type TokenExpiry interface {
	ExpiresAt(token string) (time.Time, error)
}

// Registry holds one Store per session token. Stores of expired tokens are
// closed by Sweep.
type Registry struct {
	gw     Gateway
	bio    BioDrafter
	prefs  PreferencesStore
	expiry TokenExpiry
	opts   Options
	log    zerolog.Logger

	mu      sync.Mutex
	stores  map[string]*Store
	expires map[string]time.Time
}

// NewRegistry builds a registry. With a nil expiry stores live until Close.
func NewRegistry(gw Gateway, bio BioDrafter, prefs PreferencesStore, expiry TokenExpiry, opts Options) *Registry {
	return &Registry{
		gw:      gw,
		bio:     bio,
		prefs:   prefs,
		expiry:  expiry,
		opts:    opts,
		log:     logger.Component("registry"),
		stores:  make(map[string]*Store),
		expires: make(map[string]time.Time),
	}
}

// Open returns the session's store, creating and initializing it on first
// use. A store whose initialization failed is kept so the client can retry.
func (r *Registry) Open(ctx context.Context, token string, user *domain.User) (*Store, error) {
	r.mu.Lock()
	if s, ok := r.stores[token]; ok {
		r.mu.Unlock()
		return s, nil
	}
	s := New(user, r.gw, r.bio, r.prefs, r.opts)
	r.stores[token] = s
	if r.expiry != nil {
		// a token that no longer parses is swept on the next pass
		exp, _ := r.expiry.ExpiresAt(token)
		r.expires[token] = exp
	}
	metrics.ActiveSessions.Inc()
	r.mu.Unlock()

	if err := s.Initialize(ctx); err != nil {
		return s, err
	}
	s.StartNotificationPolling()
	return s, nil
}

func (r *Registry) Get(token string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[token]
	return s, ok
}

// Close ends the session's store. Unknown tokens are ignored.
func (r *Registry) Close(token string) {
	r.mu.Lock()
	s, ok := r.stores[token]
	delete(r.stores, token)
	delete(r.expires, token)
	r.mu.Unlock()

	if !ok {
		return
	}
	metrics.ActiveSessions.Dec()
	s.Close()
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	stores := r.stores
	r.stores = make(map[string]*Store)
	r.expires = make(map[string]time.Time)
	r.mu.Unlock()

	for _, s := range stores {
		metrics.ActiveSessions.Dec()
		s.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Sweep closes the stores whose token expired at or before now and returns
// how many it closed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	var expired []string
	for token, exp := range r.expires {
		if !now.Before(exp) {
			expired = append(expired, token)
		}
	}
	r.mu.Unlock()

	for _, token := range expired {
		r.Close(token)
	}
	return len(expired)
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.log.Debug().Int("sessions", n).Msg("closed expired sessions")
			}
		}
	}
}
