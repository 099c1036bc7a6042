package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/metrics"
	"inkspace/internal/repository"

	"github.com/google/uuid"
)

// CreateShop stores the shop and links it to its owner when the owner is a
// shop-owner account.
func (g *Gateway) CreateShop(ctx context.Context, s *domain.Shop) (out *domain.Shop, err error) {
	defer metrics.Observe("create_shop", time.Now(), &err)

	if s == nil || strings.TrimSpace(s.Name) == "" || s.OwnerID == "" {
		return nil, fmt.Errorf("create shop: %w", ErrInvalidInput)
	}
	s.Reviews = nil
	s.Rating = 0
	s.IsVerified = false

	err = g.inTx(ctx, func(r *repository.Set) error {
		owner, err := r.Profiles.GetByID(ctx, s.OwnerID)
		if err != nil {
			return fmt.Errorf("owner: %w", err)
		}
		if err := r.Shops.Create(ctx, s); err != nil {
			return err
		}
		if owner.Role == domain.RoleShopOwner {
			return r.Profiles.SetShopID(ctx, owner.ID, &s.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}
	return s, nil
}

func (g *Gateway) UpdateShop(ctx context.Context, s *domain.Shop) (out *domain.Shop, err error) {
	defer metrics.Observe("update_shop", time.Now(), &err)

	if s == nil || s.ID == "" || strings.TrimSpace(s.Name) == "" {
		return nil, fmt.Errorf("update shop: %w", ErrInvalidInput)
	}
	if err := g.repos.Shops.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update shop: %w", err)
	}
	out, err = g.repos.Shops.GetByID(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("update shop: %w", err)
	}
	return out, nil
}

// DeleteShop removes a shop with its booths and clears the owner's link. A
// shop that any booking references cannot be deleted.
func (g *Gateway) DeleteShop(ctx context.Context, id string) (err error) {
	defer metrics.Observe("delete_shop", time.Now(), &err)

	err = g.inTx(ctx, func(r *repository.Set) error {
		shop, err := r.Shops.GetByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := r.Bookings.CountByShop(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrShopHasBookings
		}
		if err := r.Booths.DeleteByShop(ctx, id); err != nil {
			return err
		}
		if err := r.Shops.Delete(ctx, id); err != nil {
			return err
		}
		owner, err := r.Profiles.GetByID(ctx, shop.OwnerID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if owner.Role == domain.RoleShopOwner {
			return r.Profiles.SetShopID(ctx, owner.ID, nil)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	return nil
}

// AddShopReview appends a review and recomputes the shop rating as the mean
// of all ratings.
func (g *Gateway) AddShopReview(ctx context.Context, shopID string, review domain.Review) (out *domain.Shop, err error) {
	defer metrics.Observe("add_shop_review", time.Now(), &err)

	if review.Rating < 1 || review.Rating > 5 {
		return nil, fmt.Errorf("add shop review: rating %d: %w", review.Rating, ErrInvalidInput)
	}
	review.ID = uuid.NewString()
	review.CreatedAt = g.now().UTC()

	err = g.inTx(ctx, func(r *repository.Set) error {
		shop, err := r.Shops.GetByID(ctx, shopID)
		if err != nil {
			return err
		}
		shop.Reviews = append(shop.Reviews, review)
		shop.Rating = domain.AverageRating(shop.Reviews)
		if err := r.Shops.SetReviews(ctx, shopID, shop.Reviews, shop.Rating); err != nil {
			return err
		}
		out = shop
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add shop review: %w", err)
	}
	return out, nil
}

func (g *Gateway) CreateBooth(ctx context.Context, b *domain.Booth) (out *domain.Booth, err error) {
	defer metrics.Observe("create_booth", time.Now(), &err)

	if err := validateBooth(b); err != nil {
		return nil, fmt.Errorf("create booth: %w", err)
	}
	if _, err := g.repos.Shops.GetByID(ctx, b.ShopID); err != nil {
		return nil, fmt.Errorf("create booth: shop: %w", err)
	}
	if err := g.repos.Booths.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booth: %w", err)
	}
	return b, nil
}

func (g *Gateway) UpdateBooth(ctx context.Context, b *domain.Booth) (out *domain.Booth, err error) {
	defer metrics.Observe("update_booth", time.Now(), &err)

	if b == nil || b.ID == "" || strings.TrimSpace(b.Name) == "" || b.DailyRate < 0 {
		return nil, fmt.Errorf("update booth: %w", ErrInvalidInput)
	}
	if err := g.repos.Booths.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booth: %w", err)
	}
	out, err = g.repos.Booths.GetByID(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("update booth: %w", err)
	}
	return out, nil
}

func (g *Gateway) DeleteBooth(ctx context.Context, id string) (err error) {
	defer metrics.Observe("delete_booth", time.Now(), &err)

	n, err := g.repos.Bookings.CountByBooth(ctx, id)
	if err != nil {
		return fmt.Errorf("delete booth: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("delete booth: %w", ErrBoothHasBookings)
	}
	if err := g.repos.Booths.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booth: %w", err)
	}
	return nil
}

func validateBooth(b *domain.Booth) error {
	if b == nil || b.ShopID == "" || strings.TrimSpace(b.Name) == "" || b.DailyRate < 0 {
		return ErrInvalidInput
	}
	return nil
}
