package admin

import (
	"context"
	"fmt"
	"math"
	"time"

	"inkspace/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service struct {
	stats         StatsRepository
	verifications VerificationRepository
	now           func() time.Time
}

func NewService(stats StatsRepository, verifications VerificationRepository) *Service {
	return &Service{
		stats:         stats,
		verifications: verifications,
		now:           time.Now,
	}
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	c, err := s.stats.Counts(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}

	return &StatisticsResponse{
		TotalUsers:           int(c.Users),
		TotalArtists:         int(c.Artists),
		TotalClients:         int(c.Clients),
		TotalShopOwners:      int(c.ShopOwners),
		TotalShops:           int(c.Shops),
		VerifiedShops:        int(c.VerifiedShops),
		TotalBooths:          int(c.Booths),
		TotalBookings:        int(c.Bookings),
		BookingsThisMonth:    int(c.BookingsSince),
		TotalRequests:        int(c.ClientRequests),
		PendingRequests:      int(c.PendingRequests),
		PendingVerifications: int(c.PendingVerifications),
		PlatformRevenue:      math.Round(c.PlatformRevenue*100) / 100,
	}, nil
}

// -------------------- Verifications --------------------

// GetPendingVerifications pages through verification requests awaiting a
// decision, newest first.
func (s *Service) GetPendingVerifications(ctx context.Context, page, limit int) (*VerificationListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	list, total, err := s.verifications.ListByStatus(ctx, domain.VerificationPending, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("pending verifications: %w", err)
	}
	if list == nil {
		list = []domain.VerificationRequest{}
	}

	return &VerificationListResponse{
		Verifications: list,
		Total:         int(total),
		Page:          page,
		Limit:         limit,
	}, nil
}
