package store

import "time"

// ShowToast replaces the current toast. It dismisses itself after the
// configured duration unless replaced or dismissed first.
func (s *Store) ShowToast(kind ToastKind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.toastSeq++
	id := s.toastSeq
	s.state.Toast = &Toast{ID: id, Kind: kind, Message: message}

	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.toastTimer = time.AfterFunc(s.opts.ToastDuration, func() {
		s.dismissToast(id)
	})
}

// DismissToast hides the current toast.
func (s *Store) DismissToast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Toast = nil
	if s.toastTimer != nil {
		s.toastTimer.Stop()
		s.toastTimer = nil
	}
}

func (s *Store) dismissToast(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Toast != nil && s.state.Toast.ID == id {
		s.state.Toast = nil
	}
}

// OpenModal replaces the open modal.
func (s *Store) OpenModal(kind string, payload map[string]any) {
	s.update(func(st *State) {
		st.Modal = &Modal{Kind: kind, Payload: payload}
	})
}

func (s *Store) CloseModal() {
	s.update(func(st *State) { st.Modal = nil })
}

// SetViewMode switches between the artist and client views. Only accounts
// that act as both may switch to the artist view.
func (s *Store) SetViewMode(mode ViewMode) error {
	if mode != ViewArtist && mode != ViewClient {
		return ErrInvalidPreference
	}
	s.mu.Lock()
	u := s.state.User
	if mode == ViewArtist && !u.Role.ActsAsArtist() {
		s.mu.Unlock()
		return ErrForbidden
	}
	s.state.ViewMode = mode
	s.mu.Unlock()

	s.savePreferences()
	return nil
}

func (s *Store) SetTheme(theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidPreference
	}
	s.update(func(st *State) { st.Theme = theme })
	s.savePreferences()
	return nil
}
