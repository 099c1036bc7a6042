package repository

import (
	"context"
	"time"

	"inkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

type verificationRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ItemID    string    `gorm:"column:item_id;index"`
	ItemType  string    `gorm:"column:item_type"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (verificationRow) TableName() string { return "verification_requests" }

type verificationRecord struct {
	verificationRow `gorm:"embedded"`
	ItemName        string `gorm:"column:item_name"`
}

func toDomainVerification(m verificationRecord) *domain.VerificationRequest {
	return &domain.VerificationRequest{
		ID:        m.ID,
		ItemID:    m.ItemID,
		ItemType:  domain.VerificationItemType(m.ItemType),
		ItemName:  m.ItemName,
		Status:    domain.VerificationStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func toVerificationRecord(v *domain.VerificationRequest) verificationRecord {
	return verificationRecord{
		verificationRow: verificationRow{
			ID:        v.ID,
			ItemID:    v.ItemID,
			ItemType:  string(v.ItemType),
			Status:    string(v.Status),
			CreatedAt: v.CreatedAt,
		},
		ItemName: v.ItemName,
	}
}

func (r *VerificationRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("verification_requests AS v").
		Select("v.*, COALESCE(p.full_name, s.name, '') AS item_name").
		Joins("LEFT JOIN profiles p ON v.item_type = 'profile' AND p.id = v.item_id").
		Joins("LEFT JOIN shops s ON v.item_type = 'shop' AND s.id = v.item_id")
}

func (r *VerificationRepository) Create(ctx context.Context, v *domain.VerificationRequest) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Status == "" {
		v.Status = domain.VerificationPending
	}
	m := toVerificationRecord(v).verificationRow
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	v.CreatedAt = m.CreatedAt
	return nil
}

func (r *VerificationRepository) GetByID(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	var rows []verificationRecord
	if err := r.joined(ctx).Where("v.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toDomainVerification(rows[0]), nil
}

// List returns all requests with the name of the profile or shop they target.
func (r *VerificationRepository) List(ctx context.Context) ([]domain.VerificationRequest, error) {
	var rows []verificationRecord
	if err := r.joined(ctx).Order("v.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.VerificationRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVerification(m))
	}
	return out, nil
}

// ListByStatus pages through requests in one status, newest first.
func (r *VerificationRepository) ListByStatus(ctx context.Context, status domain.VerificationStatus, limit, offset int) ([]domain.VerificationRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&verificationRow{}).Where("status = ?", string(status)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []verificationRecord
	if err := r.joined(ctx).
		Where("v.status = ?", string(status)).
		Order("v.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.VerificationRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVerification(m))
	}
	return out, total, nil
}

func (r *VerificationRepository) UpdateStatus(ctx context.Context, id string, status domain.VerificationStatus) error {
	res := r.db.WithContext(ctx).Model(&verificationRow{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
