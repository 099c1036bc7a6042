package repository

import (
	"context"
	"time"

	"inkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRequestRepository struct {
	db *gorm.DB
}

func NewClientRequestRepository(db *gorm.DB) *ClientRequestRepository {
	return &ClientRequestRepository{db: db}
}

type clientRequestRow struct {
	ID                string    `gorm:"column:id;primaryKey"`
	ClientID          *string   `gorm:"column:client_id;index"`
	GuestName         string    `gorm:"column:guest_name"`
	GuestEmail        string    `gorm:"column:guest_email"`
	ArtistID          string    `gorm:"column:artist_id;index"`
	StartDate         string    `gorm:"column:start_date"`
	EndDate           string    `gorm:"column:end_date"`
	PreferredTime     string    `gorm:"column:preferred_time"`
	Message           string    `gorm:"column:message"`
	TattooSize        string    `gorm:"column:tattoo_size"`
	BodyPlacement     string    `gorm:"column:body_placement"`
	Budget            string    `gorm:"column:budget"`
	ReferenceImageURL string    `gorm:"column:reference_image_url"`
	Status            string    `gorm:"column:status"`
	PaymentStatus     string    `gorm:"column:payment_status"`
	DepositAmount     float64   `gorm:"column:deposit_amount"`
	PlatformFee       float64   `gorm:"column:platform_fee"`
	ReviewRating      *int      `gorm:"column:review_rating"`
	ReviewText        string    `gorm:"column:review_text"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (clientRequestRow) TableName() string { return "client_booking_requests" }

// clientRequestRecord is a request row joined with the display names of both
// parties. The names are read-only.
type clientRequestRecord struct {
	clientRequestRow `gorm:"embedded"`
	ClientName       string `gorm:"column:client_name"`
	ArtistName       string `gorm:"column:artist_name"`
}

func toDomainClientRequest(m clientRequestRecord) *domain.ClientBookingRequest {
	return &domain.ClientBookingRequest{
		ID:                m.ID,
		ClientID:          m.ClientID,
		GuestName:         m.GuestName,
		GuestEmail:        m.GuestEmail,
		ClientName:        m.ClientName,
		ArtistID:          m.ArtistID,
		ArtistName:        m.ArtistName,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		PreferredTime:     m.PreferredTime,
		Message:           m.Message,
		TattooSize:        m.TattooSize,
		Placement:         m.BodyPlacement,
		Budget:            m.Budget,
		ReferenceImageURL: m.ReferenceImageURL,
		Status:            domain.RequestStatus(m.Status),
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		DepositAmount:     m.DepositAmount,
		PlatformFee:       m.PlatformFee,
		ReviewRating:      m.ReviewRating,
		ReviewText:        m.ReviewText,
		CreatedAt:         m.CreatedAt,
	}
}

func toClientRequestRecord(req *domain.ClientBookingRequest) clientRequestRecord {
	return clientRequestRecord{
		clientRequestRow: clientRequestRow{
			ID:                req.ID,
			ClientID:          req.ClientID,
			GuestName:         req.GuestName,
			GuestEmail:        req.GuestEmail,
			ArtistID:          req.ArtistID,
			StartDate:         req.StartDate,
			EndDate:           req.EndDate,
			PreferredTime:     req.PreferredTime,
			Message:           req.Message,
			TattooSize:        req.TattooSize,
			BodyPlacement:     req.Placement,
			Budget:            req.Budget,
			ReferenceImageURL: req.ReferenceImageURL,
			Status:            string(req.Status),
			PaymentStatus:     string(req.PaymentStatus),
			DepositAmount:     req.DepositAmount,
			PlatformFee:       req.PlatformFee,
			ReviewRating:      req.ReviewRating,
			ReviewText:        req.ReviewText,
			CreatedAt:         req.CreatedAt,
		},
		ClientName: req.ClientName,
		ArtistName: req.ArtistName,
	}
}

func (r *ClientRequestRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("client_booking_requests AS r").
		Select("r.*, COALESCE(c.full_name, r.guest_name) AS client_name, COALESCE(a.full_name, '') AS artist_name").
		Joins("LEFT JOIN profiles c ON c.id = r.client_id").
		Joins("LEFT JOIN profiles a ON a.id = r.artist_id")
}

func (r *ClientRequestRepository) Create(ctx context.Context, req *domain.ClientBookingRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.RequestPending
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = domain.PaymentUnpaid
	}
	m := toClientRequestRecord(req).clientRequestRow
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	req.CreatedAt = m.CreatedAt
	return nil
}

func (r *ClientRequestRepository) GetByID(ctx context.Context, id string) (*domain.ClientBookingRequest, error) {
	var rows []clientRequestRecord
	if err := r.joined(ctx).Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toDomainClientRequest(rows[0]), nil
}

// List returns all requests with both parties' display names joined.
func (r *ClientRequestRepository) List(ctx context.Context) ([]domain.ClientBookingRequest, error) {
	var rows []clientRequestRecord
	if err := r.joined(ctx).Order("r.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ClientBookingRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainClientRequest(m))
	}
	return out, nil
}

func (r *ClientRequestRepository) update(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&clientRequestRow{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	return r.update(ctx, id, map[string]any{"status": string(status)})
}

func (r *ClientRequestRepository) Reschedule(ctx context.Context, id, startDate, endDate, preferredTime string) error {
	return r.update(ctx, id, map[string]any{
		"start_date":     startDate,
		"end_date":       endDate,
		"preferred_time": preferredTime,
		"status":         string(domain.RequestRescheduled),
	})
}

// MarkPaid records the deposit payment. platformFee is the card processing
// fee charged on top of the deposit.
func (r *ClientRequestRepository) MarkPaid(ctx context.Context, id string, platformFee float64) error {
	return r.update(ctx, id, map[string]any{
		"payment_status": string(domain.PaymentPaid),
		"platform_fee":   platformFee,
	})
}

// SetReview stores the client's review only when none exists yet. Reports
// false when a review was already present.
func (r *ClientRequestRepository) SetReview(ctx context.Context, id string, rating int, text string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&clientRequestRow{}).
		Where("id = ? AND review_rating IS NULL", id).
		Updates(map[string]any{"review_rating": rating, "review_text": text})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
