package store

import "inkspace/internal/domain"

func isAdmin(u *domain.User) bool {
	return u != nil && u.Role == domain.RoleAdmin
}

// canActAsArtist reports whether u may act on behalf of artistID.
func canActAsArtist(u *domain.User, artistID string) bool {
	if isAdmin(u) {
		return true
	}
	return u != nil && u.Role.ActsAsArtist() && u.ID == artistID
}

func canManageShop(u *domain.User, shop *domain.Shop) bool {
	if isAdmin(u) {
		return true
	}
	return u != nil && shop != nil && shop.OwnerID == u.ID
}

func isRequestParty(u *domain.User, req *domain.ClientBookingRequest) bool {
	if isAdmin(u) {
		return true
	}
	if u == nil || req == nil {
		return false
	}
	if req.ArtistID == u.ID {
		return true
	}
	return req.ClientID != nil && *req.ClientID == u.ID
}
