package store

import (
	"context"
	"errors"
	"strings"

	"inkspace/internal/domain"
	"inkspace/internal/modules/ai"
	"inkspace/internal/storage"
)

// UpdateArtistProfile saves the artist's editable profile.
func (s *Store) UpdateArtistProfile(ctx context.Context, a *domain.Artist) (*domain.Artist, error) {
	const action = "update artist profile"
	if a == nil || !canActAsArtist(s.User(), a.ID) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.UpdateArtistProfile(ctx, a)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't save your profile.")
	}
	s.applyArtist(updated)
	s.ShowToast(ToastSuccess, "Profile saved.")
	return updated, nil
}

// SetSubscriptionTier changes an artist's plan. Admins only.
func (s *Store) SetSubscriptionTier(ctx context.Context, artistID string, tier domain.SubscriptionTier) (*domain.Artist, error) {
	const action = "set subscription tier"
	if !isAdmin(s.User()) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.SetSubscriptionTier(ctx, artistID, tier)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't change the plan.")
	}
	s.applyArtist(updated)
	s.ShowToast(ToastSuccess, "Plan updated.")
	return updated, nil
}

func (s *Store) UploadPortfolioImage(ctx context.Context, artistID string, file storage.Upload, aiGenerated bool) (*domain.Artist, error) {
	const action = "upload portfolio image"
	if !canActAsArtist(s.User(), artistID) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.UploadPortfolioImage(ctx, artistID, file, aiGenerated)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't upload that image.")
	}
	s.applyArtist(updated)
	s.ShowToast(ToastSuccess, "Image added to your portfolio.")
	return updated, nil
}

func (s *Store) ReplacePortfolioImage(ctx context.Context, artistID, oldURL string, file storage.Upload) (*domain.Artist, error) {
	const action = "replace portfolio image"
	if !canActAsArtist(s.User(), artistID) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.ReplacePortfolioImage(ctx, artistID, oldURL, file)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't replace that image.")
	}
	s.applyArtist(updated)
	s.ShowToast(ToastSuccess, "Image replaced.")
	return updated, nil
}

func (s *Store) DeletePortfolioImage(ctx context.Context, artistID, url string) (*domain.Artist, error) {
	const action = "delete portfolio image"
	if !canActAsArtist(s.User(), artistID) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.DeletePortfolioImage(ctx, artistID, url)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't remove that image.")
	}
	s.applyArtist(updated)
	s.ShowToast(ToastSuccess, "Image removed.")
	return updated, nil
}

// GenerateBio asks the AI drafter for a bio. The draft is returned, not saved.
func (s *Store) GenerateBio(ctx context.Context, notes string) (string, error) {
	const action = "generate bio"
	u := s.User()
	if !u.Role.ActsAsArtist() || u.Artist == nil {
		return "", s.fail(action, ErrForbidden, "")
	}
	if s.bio == nil {
		return "", s.fail(action, ai.ErrNotConfigured, "")
	}
	draft, err := s.bio.DraftBio(ctx, ai.BioInput{
		Name:      u.Artist.Name,
		Specialty: u.Artist.Specialty,
		City:      u.Artist.City,
		Notes:     strings.TrimSpace(notes),
	})
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			return "", s.fail(action, err, "")
		}
		return "", s.fail(action, err, "We couldn't draft a bio right now.")
	}
	return draft, nil
}

// applyArtist stores an updated artist in the directory and, when it is the
// signed-in user's own profile, in the session user.
func (s *Store) applyArtist(a *domain.Artist) {
	s.update(func(st *State) {
		st.Artists = upsert(st.Artists, *a, artistKey)
		if st.User != nil && st.User.ID == a.ID && st.User.Artist != nil {
			u := *st.User
			cp := *a
			u.Artist = &cp
			st.User = &u
		}
	})
}
