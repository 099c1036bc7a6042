package store

import (
	"context"

	"inkspace/internal/domain"
)

// RequestVerification asks an admin to verify the user's profile or shop.
func (s *Store) RequestVerification(ctx context.Context, itemID string, itemType domain.VerificationItemType) (*domain.VerificationRequest, error) {
	const action = "request verification"
	u := s.User()
	switch itemType {
	case domain.VerifyProfile:
		if !canActAsArtist(u, itemID) {
			return nil, s.fail(action, ErrForbidden, "")
		}
	case domain.VerifyShop:
		if err := s.checkShopAccess(itemID); err != nil {
			return nil, s.fail(action, err, "We couldn't find that shop.")
		}
	}
	req, err := s.gw.CreateVerificationRequest(ctx, itemID, itemType)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't submit the verification request.")
	}
	s.update(func(st *State) {
		st.VerificationRequests = upsert(st.VerificationRequests, *req, verificationKey)
	})
	s.ShowToast(ToastSuccess, "Verification requested.")
	return req, nil
}

func (s *Store) ApproveVerification(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	const action = "approve verification"
	if !isAdmin(s.User()) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	req, err := s.gw.ApproveVerification(ctx, id)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't approve the request.")
	}
	s.update(func(st *State) {
		st.VerificationRequests = upsert(st.VerificationRequests, *req, verificationKey)
		switch req.ItemType {
		case domain.VerifyProfile:
			if a := st.artist(req.ItemID); a != nil {
				a.IsVerified = true
			}
		case domain.VerifyShop:
			if sh := st.shop(req.ItemID); sh != nil {
				sh.IsVerified = true
			}
		}
	})
	s.ShowToast(ToastSuccess, "Verification approved.")
	return req, nil
}

func (s *Store) RejectVerification(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	const action = "reject verification"
	if !isAdmin(s.User()) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	req, err := s.gw.RejectVerification(ctx, id)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't reject the request.")
	}
	s.update(func(st *State) {
		st.VerificationRequests = upsert(st.VerificationRequests, *req, verificationKey)
	})
	s.ShowToast(ToastInfo, "Verification rejected.")
	return req, nil
}
