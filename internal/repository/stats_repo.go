package repository

import (
	"context"
	"time"

	"inkspace/internal/domain"

	"gorm.io/gorm"
)

// PlatformCounts is the admin dashboard snapshot.
type PlatformCounts struct {
	Users                int64
	Artists              int64
	Clients              int64
	ShopOwners           int64
	Shops                int64
	VerifiedShops        int64
	Booths               int64
	Bookings             int64
	BookingsSince        int64
	ClientRequests       int64
	PendingRequests      int64
	PendingVerifications int64
	PlatformRevenue      float64
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Counts fills PlatformCounts. BookingsSince counts booth bookings created
// at or after since; revenue sums platform fees of paid bookings and paid
// deposits.
func (r *StatsRepository) Counts(ctx context.Context, since time.Time) (*PlatformCounts, error) {
	db := r.db.WithContext(ctx)
	var out PlatformCounts

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&out.Users, db.Model(&profileRow{})},
		{&out.Artists, db.Model(&profileRow{}).Where("role IN ?", []string{string(domain.RoleArtist), string(domain.RoleDual)})},
		{&out.Clients, db.Model(&profileRow{}).Where("role = ?", string(domain.RoleClient))},
		{&out.ShopOwners, db.Model(&profileRow{}).Where("role = ?", string(domain.RoleShopOwner))},
		{&out.Shops, db.Model(&shopRow{})},
		{&out.VerifiedShops, db.Model(&shopRow{}).Where("is_verified = ?", true)},
		{&out.Booths, db.Model(&boothRow{})},
		{&out.Bookings, db.Model(&bookingRow{})},
		{&out.BookingsSince, db.Model(&bookingRow{}).Where("created_at >= ?", since)},
		{&out.ClientRequests, db.Model(&clientRequestRow{})},
		{&out.PendingRequests, db.Model(&clientRequestRow{}).Where("status = ?", string(domain.RequestPending))},
		{&out.PendingVerifications, db.Model(&verificationRow{}).Where("status = ?", string(domain.VerificationPending))},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var bookingFees, depositFees float64
	if err := db.Model(&bookingRow{}).
		Where("payment_status = ?", string(domain.PaymentPaid)).
		Select("COALESCE(SUM(platform_fee), 0)").
		Scan(&bookingFees).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&clientRequestRow{}).
		Where("payment_status = ?", string(domain.PaymentPaid)).
		Select("COALESCE(SUM(platform_fee), 0)").
		Scan(&depositFees).Error; err != nil {
		return nil, err
	}
	out.PlatformRevenue = bookingFees + depositFees

	return &out, nil
}
