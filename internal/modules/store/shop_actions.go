package store

import (
	"context"
	"strings"
	"time"

	"inkspace/internal/domain"
)

// CreateShop creates a shop owned by the signed-in user.
func (s *Store) CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	const action = "create shop"
	if shop == nil {
		return nil, s.fail(action, ErrNotFound, "Please fill in the shop details.")
	}
	u := s.User()
	if u.Role != domain.RoleShopOwner && !isAdmin(u) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	if !isAdmin(u) || shop.OwnerID == "" {
		shop.OwnerID = u.ID
	}
	created, err := s.gw.CreateShop(ctx, shop)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't create your shop.")
	}
	s.update(func(st *State) {
		st.Shops = upsert(st.Shops, *created, shopKey)
		if st.User.ID == created.OwnerID && st.User.ShopOwner != nil {
			u := *st.User
			owner := *u.ShopOwner
			id := created.ID
			owner.ShopID = &id
			u.ShopOwner = &owner
			st.User = &u
		}
	})
	s.ShowToast(ToastSuccess, "Shop created.")
	return created, nil
}

func (s *Store) UpdateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	const action = "update shop"
	if shop == nil {
		return nil, s.fail(action, ErrNotFound, "")
	}
	cached, ok := lookup(s, func(st *State) *domain.Shop { return st.shop(shop.ID) })
	if !ok {
		return nil, s.fail(action, ErrNotFound, "We couldn't find that shop.")
	}
	if !canManageShop(s.User(), &cached) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.UpdateShop(ctx, shop)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't save the shop.")
	}
	s.update(func(st *State) { st.Shops = upsert(st.Shops, *updated, shopKey) })
	s.ShowToast(ToastSuccess, "Shop saved.")
	return updated, nil
}

// DeleteShop removes a shop together with its booths. Shops with bookings
// are kept.
func (s *Store) DeleteShop(ctx context.Context, id string) error {
	const action = "delete shop"
	cached, ok := lookup(s, func(st *State) *domain.Shop { return st.shop(id) })
	if !ok {
		return s.fail(action, ErrNotFound, "We couldn't find that shop.")
	}
	if !canManageShop(s.User(), &cached) {
		return s.fail(action, ErrForbidden, "")
	}
	if err := s.gw.DeleteShop(ctx, id); err != nil {
		return s.fail(action, err, "We couldn't delete the shop.")
	}
	s.update(func(st *State) {
		st.Shops = remove(st.Shops, id, shopKey)
		st.Booths = removeWhere(st.Booths, func(b domain.Booth) bool { return b.ShopID == id })
		if st.User.ShopOwner != nil && st.User.ShopOwner.ShopID != nil && *st.User.ShopOwner.ShopID == id {
			u := *st.User
			owner := *u.ShopOwner
			owner.ShopID = nil
			u.ShopOwner = &owner
			st.User = &u
		}
	})
	s.ShowToast(ToastSuccess, "Shop deleted.")
	return nil
}

// AddShopReview posts the signed-in user's review of a shop.
func (s *Store) AddShopReview(ctx context.Context, shopID string, rating int, text string) (*domain.Shop, error) {
	const action = "add shop review"
	u := s.User()
	review := domain.Review{
		AuthorID:   u.ID,
		AuthorName: u.DisplayName(),
		Rating:     rating,
		Text:       strings.TrimSpace(text),
		CreatedAt:  time.Now().UTC(),
	}
	updated, err := s.gw.AddShopReview(ctx, shopID, review)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't post your review.")
	}
	s.update(func(st *State) { st.Shops = upsert(st.Shops, *updated, shopKey) })
	s.ShowToast(ToastSuccess, "Review posted.")
	return updated, nil
}

func (s *Store) CreateBooth(ctx context.Context, booth *domain.Booth) (*domain.Booth, error) {
	const action = "create booth"
	if booth == nil {
		return nil, s.fail(action, ErrNotFound, "")
	}
	if err := s.checkShopAccess(booth.ShopID); err != nil {
		return nil, s.fail(action, err, "We couldn't find that shop.")
	}
	created, err := s.gw.CreateBooth(ctx, booth)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't add the booth.")
	}
	s.update(func(st *State) { st.Booths = upsert(st.Booths, *created, boothKey) })
	s.ShowToast(ToastSuccess, "Booth added.")
	return created, nil
}

func (s *Store) UpdateBooth(ctx context.Context, booth *domain.Booth) (*domain.Booth, error) {
	const action = "update booth"
	if booth == nil {
		return nil, s.fail(action, ErrNotFound, "")
	}
	cached, ok := lookup(s, func(st *State) *domain.Booth { return st.booth(booth.ID) })
	if !ok {
		return nil, s.fail(action, ErrNotFound, "We couldn't find that booth.")
	}
	if err := s.checkShopAccess(cached.ShopID); err != nil {
		return nil, s.fail(action, err, "We couldn't find that shop.")
	}
	booth.ShopID = cached.ShopID
	updated, err := s.gw.UpdateBooth(ctx, booth)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't save the booth.")
	}
	s.update(func(st *State) { st.Booths = upsert(st.Booths, *updated, boothKey) })
	s.ShowToast(ToastSuccess, "Booth saved.")
	return updated, nil
}

func (s *Store) DeleteBooth(ctx context.Context, id string) error {
	const action = "delete booth"
	cached, ok := lookup(s, func(st *State) *domain.Booth { return st.booth(id) })
	if !ok {
		return s.fail(action, ErrNotFound, "We couldn't find that booth.")
	}
	if err := s.checkShopAccess(cached.ShopID); err != nil {
		return s.fail(action, err, "We couldn't find that shop.")
	}
	if err := s.gw.DeleteBooth(ctx, id); err != nil {
		return s.fail(action, err, "We couldn't delete the booth.")
	}
	s.update(func(st *State) { st.Booths = remove(st.Booths, id, boothKey) })
	s.ShowToast(ToastSuccess, "Booth deleted.")
	return nil
}

func (s *Store) checkShopAccess(shopID string) error {
	shop, ok := lookup(s, func(st *State) *domain.Shop { return st.shop(shopID) })
	if !ok {
		return ErrNotFound
	}
	if !canManageShop(s.User(), &shop) {
		return ErrForbidden
	}
	return nil
}
