package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"inkspace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePreferences_RoundTrip(t *testing.T) {
	prefs := NewFilePreferences(t.TempDir())

	got, err := prefs.Load("nobody")
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, got)

	require.NoError(t, prefs.Save("user/1", Preferences{ViewMode: ViewClient, Theme: ThemeDark}))
	got, err = prefs.Load("user/1")
	require.NoError(t, err)
	assert.Equal(t, Preferences{ViewMode: ViewClient, Theme: ThemeDark}, got)
}

func TestFilePreferences_WritesYAML(t *testing.T) {
	dir := t.TempDir()
	prefs := NewFilePreferences(dir)
	require.NoError(t, prefs.Save("artist-1", Preferences{ViewMode: ViewArtist, Theme: ThemeLight}))

	data, err := os.ReadFile(filepath.Join(dir, "artist-1.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "view_mode: artist")
	assert.Contains(t, string(data), "theme: light")
}

func TestStore_PersistsViewModeAndTheme(t *testing.T) {
	prefs := NewFilePreferences(t.TempDir())
	dual := artistUser()
	dual.Role = domain.RoleDual

	s := New(dual, new(MockGateway), nil, prefs, Options{ToastDuration: time.Hour})
	assert.Equal(t, ViewArtist, s.Snapshot().ViewMode)
	require.NoError(t, s.SetViewMode(ViewClient))
	require.NoError(t, s.SetTheme(ThemeDark))
	s.Close()

	again := New(dual, new(MockGateway), nil, prefs, Options{ToastDuration: time.Hour})
	defer again.Close()
	st := again.Snapshot()
	assert.Equal(t, ViewClient, st.ViewMode)
	assert.Equal(t, ThemeDark, st.Theme)
}

func TestStore_ClientCannotSwitchToArtistView(t *testing.T) {
	s := New(clientUser(), new(MockGateway), nil, nil, Options{ToastDuration: time.Hour})
	defer s.Close()

	assert.ErrorIs(t, s.SetViewMode(ViewArtist), ErrForbidden)
	assert.ErrorIs(t, s.SetTheme("sepia"), ErrInvalidPreference)
	assert.Equal(t, ViewClient, s.Snapshot().ViewMode)
}
