package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Preferences is the part of the state that survives restarts.
type Preferences struct {
	ViewMode ViewMode `yaml:"view_mode"`
	Theme    Theme    `yaml:"theme"`
}

// FilePreferences keeps one YAML file per user.
type FilePreferences struct {
	dir string
}

func NewFilePreferences(dir string) *FilePreferences {
	return &FilePreferences{dir: dir}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

func (p *FilePreferences) path(userID string) string {
	return filepath.Join(p.dir, unsafeFileChars.ReplaceAllString(userID, "_")+".yaml")
}

// Load returns zero Preferences when the user has none saved.
func (p *FilePreferences) Load(userID string) (Preferences, error) {
	var prefs Preferences
	data, err := os.ReadFile(p.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("parse preferences: %w", err)
	}
	return prefs, nil
}

func (p *FilePreferences) Save(userID string, prefs Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	tmp := p.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return os.Rename(tmp, p.path(userID))
}

func (s *Store) loadPreferences() {
	if s.prefs == nil {
		return
	}
	prefs, err := s.prefs.Load(s.state.User.ID)
	if err != nil {
		s.log.Warn().Err(err).Msg("ignoring unreadable preferences")
		return
	}
	switch prefs.ViewMode {
	case ViewArtist:
		if s.state.User.Role.ActsAsArtist() {
			s.state.ViewMode = ViewArtist
		}
	case ViewClient:
		s.state.ViewMode = ViewClient
	}
	if prefs.Theme == ThemeLight || prefs.Theme == ThemeDark {
		s.state.Theme = prefs.Theme
	}
}

func (s *Store) savePreferences() {
	if s.prefs == nil {
		return
	}
	s.mu.Lock()
	userID := s.state.User.ID
	prefs := Preferences{ViewMode: s.state.ViewMode, Theme: s.state.Theme}
	s.mu.Unlock()

	if err := s.prefs.Save(userID, prefs); err != nil {
		s.log.Warn().Err(err).Msg("failed to save preferences")
	}
}
