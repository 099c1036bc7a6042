package gateway

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/metrics"
	"inkspace/internal/storage"
)

func (g *Gateway) GetProfile(ctx context.Context, id string) (u *domain.User, err error) {
	defer metrics.Observe("get_profile", time.Now(), &err)

	u, err = g.repos.Profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return u, nil
}

// CreateProfile stores the profile of a freshly registered identity. The
// user's ID must already be the identity's ID.
func (g *Gateway) CreateProfile(ctx context.Context, u *domain.User) (err error) {
	defer metrics.Observe("create_profile", time.Now(), &err)

	if err := u.Validate(); err != nil {
		return fmt.Errorf("create profile: %w", ErrInvalidInput)
	}
	if u.ID == "" {
		return fmt.Errorf("create profile: missing id: %w", ErrInvalidInput)
	}
	if err := g.repos.Profiles.Create(ctx, u); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// SetSubscriptionTier moves the artist to tier.
func (g *Gateway) SetSubscriptionTier(ctx context.Context, artistID string, tier domain.SubscriptionTier) (out *domain.Artist, err error) {
	defer metrics.Observe("set_subscription_tier", time.Now(), &err)

	if tier != domain.TierFree && tier != domain.TierPro {
		return nil, fmt.Errorf("set subscription tier: %q: %w", tier, ErrInvalidInput)
	}
	if _, err := g.repos.Profiles.GetArtist(ctx, artistID); err != nil {
		return nil, fmt.Errorf("set subscription tier: %w", err)
	}
	if err := g.repos.Profiles.SetSubscriptionTier(ctx, artistID, tier); err != nil {
		return nil, fmt.Errorf("set subscription tier: %w", err)
	}
	out, err = g.repos.Profiles.GetArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("set subscription tier: %w", err)
	}
	return out, nil
}

func (g *Gateway) DeleteProfile(ctx context.Context, id string) (err error) {
	defer metrics.Observe("delete_profile", time.Now(), &err)

	if err := g.repos.Profiles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// UpdateArtistProfile writes the artist's editable fields and returns the
// stored record. Portfolio, verification and tier in a are ignored.
func (g *Gateway) UpdateArtistProfile(ctx context.Context, a *domain.Artist) (out *domain.Artist, err error) {
	defer metrics.Observe("update_artist_profile", time.Now(), &err)

	if a == nil || a.ID == "" {
		return nil, fmt.Errorf("update artist profile: %w", ErrInvalidInput)
	}
	if err := g.repos.Profiles.UpdateArtist(ctx, a); err != nil {
		return nil, fmt.Errorf("update artist profile: %w", err)
	}
	out, err = g.repos.Profiles.GetArtist(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("update artist profile: %w", err)
	}
	return out, nil
}

// UploadPortfolioImage stores the file under the artist's prefix and appends
// it to the portfolio.
func (g *Gateway) UploadPortfolioImage(ctx context.Context, artistID string, file storage.Upload, aiGenerated bool) (out *domain.Artist, err error) {
	defer metrics.Observe("upload_portfolio_image", time.Now(), &err)

	artist, err := g.repos.Profiles.GetArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("upload portfolio image: %w", err)
	}
	obj, err := g.putObject(ctx, artistID, file)
	if err != nil {
		return nil, fmt.Errorf("upload portfolio image: %w", err)
	}

	artist.Portfolio = append(artist.Portfolio, domain.PortfolioImage{URL: obj.url, IsAIGenerated: aiGenerated})
	if err := g.repos.Profiles.SetPortfolio(ctx, artistID, artist.Portfolio); err != nil {
		g.discardObject(ctx, obj.key)
		return nil, fmt.Errorf("upload portfolio image: %w", err)
	}
	return artist, nil
}

// ReplacePortfolioImage uploads the new file, swaps it in for oldURL and then
// removes the old object. Failing to remove the old object does not fail the
// call.
func (g *Gateway) ReplacePortfolioImage(ctx context.Context, artistID, oldURL string, file storage.Upload) (out *domain.Artist, err error) {
	defer metrics.Observe("replace_portfolio_image", time.Now(), &err)

	artist, err := g.repos.Profiles.GetArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("replace portfolio image: %w", err)
	}
	if !hasImage(artist, oldURL) {
		return nil, fmt.Errorf("replace portfolio image: %w", ErrImageNotInPortfolio)
	}
	obj, err := g.putObject(ctx, artistID, file)
	if err != nil {
		return nil, fmt.Errorf("replace portfolio image: %w", err)
	}

	artist.ReplacePortfolioURL(oldURL, obj.url)
	if err := g.repos.Profiles.SetPortfolio(ctx, artistID, artist.Portfolio); err != nil {
		g.discardObject(ctx, obj.key)
		return nil, fmt.Errorf("replace portfolio image: %w", err)
	}
	if oldKey, ok := g.objects.KeyFromURL(oldURL); ok {
		g.discardObject(ctx, oldKey)
	}
	return artist, nil
}

func (g *Gateway) DeletePortfolioImage(ctx context.Context, artistID, url string) (out *domain.Artist, err error) {
	defer metrics.Observe("delete_portfolio_image", time.Now(), &err)

	artist, err := g.repos.Profiles.GetArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("delete portfolio image: %w", err)
	}
	kept := artist.Portfolio[:0]
	for _, img := range artist.Portfolio {
		if img.URL != url {
			kept = append(kept, img)
		}
	}
	if len(kept) == len(artist.Portfolio) {
		return nil, fmt.Errorf("delete portfolio image: %w", ErrImageNotInPortfolio)
	}
	artist.Portfolio = kept
	if err := g.repos.Profiles.SetPortfolio(ctx, artistID, artist.Portfolio); err != nil {
		return nil, fmt.Errorf("delete portfolio image: %w", err)
	}
	if key, ok := g.objects.KeyFromURL(url); ok {
		g.discardObject(ctx, key)
	}
	return artist, nil
}

func hasImage(a *domain.Artist, url string) bool {
	for _, img := range a.Portfolio {
		if img.URL == url {
			return true
		}
	}
	return false
}

type storedObject struct {
	url      string
	key      string
	mimeType string
}

// putObject validates and stores a file under "{ownerID}/{unixMillis}.{ext}".
func (g *Gateway) putObject(ctx context.Context, ownerID string, file storage.Upload) (storedObject, error) {
	mimeType, err := storage.Sniff(file)
	if err != nil {
		return storedObject{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	key := storage.ObjectKey(ownerID, file.Filename, mimeType, g.now())
	url, err := g.objects.Put(ctx, key, mimeType, bytes.NewReader(file.Data))
	if err != nil {
		return storedObject{}, fmt.Errorf("store object: %w", err)
	}
	return storedObject{url: url, key: key, mimeType: mimeType}, nil
}

func (g *Gateway) discardObject(ctx context.Context, key string) {
	if err := g.objects.Delete(ctx, key); err != nil {
		g.log.Warn().Err(err).Str("key", key).Msg("failed to delete object")
	}
}
