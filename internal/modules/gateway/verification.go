package gateway

import (
	"context"
	"fmt"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/metrics"
	"inkspace/internal/repository"
)

func (g *Gateway) CreateVerificationRequest(ctx context.Context, itemID string, itemType domain.VerificationItemType) (out *domain.VerificationRequest, err error) {
	defer metrics.Observe("create_verification_request", time.Now(), &err)

	if itemID == "" || !itemType.Valid() {
		return nil, fmt.Errorf("create verification request: %w", ErrInvalidInput)
	}
	switch itemType {
	case domain.VerifyProfile:
		_, err = g.repos.Profiles.GetByID(ctx, itemID)
	case domain.VerifyShop:
		_, err = g.repos.Shops.GetByID(ctx, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("create verification request: %w", err)
	}

	v := &domain.VerificationRequest{ItemID: itemID, ItemType: itemType}
	if err := g.repos.Verifications.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create verification request: %w", err)
	}
	out, err = g.repos.Verifications.GetByID(ctx, v.ID)
	if err != nil {
		return nil, fmt.Errorf("create verification request: %w", err)
	}
	return out, nil
}

// ApproveVerification approves a pending request and flags its target
// verified in the same transaction.
func (g *Gateway) ApproveVerification(ctx context.Context, id string) (out *domain.VerificationRequest, err error) {
	defer metrics.Observe("approve_verification", time.Now(), &err)

	err = g.inTx(ctx, func(r *repository.Set) error {
		v, err := r.Verifications.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if v.Status != domain.VerificationPending {
			return fmt.Errorf("request is %s: %w", v.Status, ErrInvalidTransition)
		}
		if err := r.Verifications.UpdateStatus(ctx, id, domain.VerificationApproved); err != nil {
			return err
		}
		switch v.ItemType {
		case domain.VerifyProfile:
			err = r.Profiles.SetVerified(ctx, v.ItemID, true)
		case domain.VerifyShop:
			err = r.Shops.SetVerified(ctx, v.ItemID, true)
		}
		if err != nil {
			return fmt.Errorf("flag %s %s: %w", v.ItemType, v.ItemID, err)
		}
		out, err = r.Verifications.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("approve verification: %w", err)
	}
	return out, nil
}

// RejectVerification rejects a pending request. The target is left as is.
func (g *Gateway) RejectVerification(ctx context.Context, id string) (out *domain.VerificationRequest, err error) {
	defer metrics.Observe("reject_verification", time.Now(), &err)

	v, err := g.repos.Verifications.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reject verification: %w", err)
	}
	if v.Status != domain.VerificationPending {
		return nil, fmt.Errorf("reject verification: request is %s: %w", v.Status, ErrInvalidTransition)
	}
	if err := g.repos.Verifications.UpdateStatus(ctx, id, domain.VerificationRejected); err != nil {
		return nil, fmt.Errorf("reject verification: %w", err)
	}
	v.Status = domain.VerificationRejected
	return v, nil
}
