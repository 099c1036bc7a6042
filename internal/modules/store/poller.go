package store

import (
	"context"
	"fmt"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/metrics"
)

// StartNotificationPolling starts the session's notification poller. Calling
// it while a poller is running does nothing.
func (s *Store) StartNotificationPolling() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	if s.pollStop != nil {
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	s.pollStop = cancel
	s.pollDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.opts.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.pollOnce(ctx)
			}
		}
	}()
}

// StopNotificationPolling stops the poller and waits for it to exit. It is
// safe to call when no poller runs.
func (s *Store) StopNotificationPolling() {
	s.pollMu.Lock()
	stop, done := s.pollStop, s.pollDone
	s.pollStop, s.pollDone = nil, nil
	s.pollMu.Unlock()

	if stop == nil {
		return
	}
	stop()
	<-done
}

// Polling reports whether the poller is running.
func (s *Store) Polling() bool {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	return s.pollStop != nil
}

func (s *Store) pollOnce(ctx context.Context) {
	userID := s.User().ID
	list, err := s.gw.FetchNotifications(ctx, userID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		metrics.NotificationPolls.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Msg("notification poll failed")
		return
	}
	metrics.NotificationPolls.WithLabelValues("ok").Inc()

	unread := domain.CountUnread(list)
	s.update(func(st *State) { st.Notifications = list })

	s.pollMu.Lock()
	increased := unread > s.lastUnread
	s.lastUnread = unread
	s.pollMu.Unlock()

	if increased {
		s.ShowToast(ToastInfo, newNotificationsMessage(unread))
	}
}

func newNotificationsMessage(unread int) string {
	if unread == 1 {
		return "You have 1 unread notification."
	}
	return fmt.Sprintf("You have %d unread notifications.", unread)
}
