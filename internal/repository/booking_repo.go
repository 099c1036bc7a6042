package repository

import (
	"context"
	"time"

	"inkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingRow struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ArtistID      string    `gorm:"column:artist_id;index"`
	BoothID       string    `gorm:"column:booth_id;index"`
	ShopID        string    `gorm:"column:shop_id;index"`
	StartDate     string    `gorm:"column:start_date"`
	EndDate       string    `gorm:"column:end_date"`
	PaymentStatus string    `gorm:"column:payment_status"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	PlatformFee   float64   `gorm:"column:platform_fee"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (bookingRow) TableName() string { return "bookings" }

func toDomainBooking(m bookingRow) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		ArtistID:      m.ArtistID,
		BoothID:       m.BoothID,
		ShopID:        m.ShopID,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		TotalAmount:   m.TotalAmount,
		PlatformFee:   m.PlatformFee,
		CreatedAt:     m.CreatedAt,
	}
}

func toBookingRow(b *domain.Booking) bookingRow {
	return bookingRow{
		ID:            b.ID,
		ArtistID:      b.ArtistID,
		BoothID:       b.BoothID,
		ShopID:        b.ShopID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmount,
		PlatformFee:   b.PlatformFee,
		CreatedAt:     b.CreatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = domain.PaymentUnpaid
	}
	m := toBookingRow(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingRow
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// MarkPaid flips an unpaid booking to paid. Reports false when the booking
// was already paid.
func (r *BookingRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&bookingRow{}).
		Where("id = ? AND payment_status = ?", id, string(domain.PaymentUnpaid)).
		Update("payment_status", string(domain.PaymentPaid))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingRepository) CountByShop(ctx context.Context, shopID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingRow{}).Where("shop_id = ?", shopID).Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountByBooth(ctx context.Context, boothID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingRow{}).Where("booth_id = ?", boothID).Count(&n).Error
	return n, err
}
