package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	defaultPollInterval  = 30 * time.Second
	defaultToastDuration = 3000 * time.Millisecond
)

type Options struct {
	PollInterval  time.Duration
	ToastDuration time.Duration
}

// Store is the state container of one signed-in session. Actions call the
// gateway without holding the lock and apply results to the cached state
// only after the call succeeded.
type Store struct {
	gw    Gateway
	bio   BioDrafter
	prefs PreferencesStore
	opts  Options
	log   zerolog.Logger

	// ctx lives as long as the session; background work is bound to it.
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      State
	toastSeq   int64
	toastTimer *time.Timer

	pollMu     sync.Mutex
	pollStop   context.CancelFunc
	pollDone   chan struct{}
	lastUnread int
}

func New(user *domain.User, gw Gateway, bio BioDrafter, prefs PreferencesStore, opts Options) *Store {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		gw:     gw,
		bio:    bio,
		prefs:  prefs,
		opts:   opts,
		log:    logger.Component("store").With().Str("user_id", user.ID).Logger(),
		ctx:    ctx,
		cancel: cancel,
		state: State{
			User:     user,
			ViewMode: defaultViewMode(user),
			Theme:    ThemeLight,
		},
	}
	s.loadPreferences()
	return s
}

func defaultViewMode(u *domain.User) ViewMode {
	if u != nil && u.Role.ActsAsArtist() {
		return ViewArtist
	}
	return ViewClient
}

// Initialize loads every collection. A failure of the initial fetch is fatal
// for the session view and is recorded in InitError.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.InitError = ""
	userID := s.state.User.ID
	s.mu.Unlock()

	data, err := s.gw.FetchInitialData(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("initial data fetch failed")
		s.mu.Lock()
		s.state.Loading = false
		s.state.InitError = "We couldn't load InkSpace. Please try again."
		s.mu.Unlock()
		return fmt.Errorf("initialize: %w", err)
	}

	notifications, err := s.gw.FetchNotifications(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Msg("notifications unavailable at startup")
	}
	conversations, err := s.gw.FetchConversations(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Msg("conversations unavailable at startup")
	}

	s.mu.Lock()
	s.state.Artists = data.Artists
	s.state.Shops = data.Shops
	s.state.Booths = data.Booths
	s.state.Bookings = data.Bookings
	s.state.ClientRequests = data.ClientRequests
	s.state.Availability = data.Availability
	s.state.VerificationRequests = data.VerificationRequests
	if notifications != nil {
		s.state.Notifications = notifications
	}
	if conversations != nil {
		s.state.Conversations = conversations
	}
	s.state.Loading = false
	unread := domain.CountUnread(s.state.Notifications)
	s.mu.Unlock()

	s.pollMu.Lock()
	s.lastUnread = unread
	s.pollMu.Unlock()
	return nil
}

// Retry re-runs a failed initialization and starts polling once it succeeds.
func (s *Store) Retry(ctx context.Context) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	s.StartNotificationPolling()
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// User returns the signed-in user.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User
}

// Close stops background work. The store must not be used afterwards.
func (s *Store) Close() {
	s.StopNotificationPolling()
	s.cancel()
	s.mu.Lock()
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.mu.Unlock()
}

// fail logs an action failure, shows it as a toast and returns it wrapped.
func (s *Store) fail(action string, err error, fallback string) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", action, err)
	}
	s.log.Error().Err(err).Str("action", action).Msg("action failed")
	s.ShowToast(ToastError, userMessage(err, fallback))
	return fmt.Errorf("%s: %w", action, err)
}

// update applies fn to the state under the lock.
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// read runs fn under the lock and returns its result.
func read[T any](s *Store, fn func(st *State) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

// lookup returns a copy of the element fn finds in the state.
func lookup[T any](s *Store, fn func(st *State) *T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if p := fn(&s.state); p != nil {
		return *p, true
	}
	return zero, false
}
