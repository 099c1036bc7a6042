package repository

import (
	"context"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

type shopRow struct {
	ID             string         `gorm:"column:id;primaryKey"`
	Name           string         `gorm:"column:name"`
	Location       string         `gorm:"column:location"`
	Address        string         `gorm:"column:address"`
	Lat            float64        `gorm:"column:lat"`
	Lng            float64        `gorm:"column:lng"`
	Amenities      datatypes.JSON `gorm:"column:amenities"`
	Rating         float64        `gorm:"column:rating"`
	ImageURL       string         `gorm:"column:image_url"`
	Reviews        datatypes.JSON `gorm:"column:reviews"`
	PaymentMethods datatypes.JSON `gorm:"column:payment_methods"`
	IsVerified     bool           `gorm:"column:is_verified"`
	OwnerID        string         `gorm:"column:owner_id;index"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
}

func (shopRow) TableName() string { return "shops" }

func toDomainShop(m shopRow) *domain.Shop {
	return &domain.Shop{
		ID:             m.ID,
		Name:           m.Name,
		Location:       m.Location,
		Address:        m.Address,
		Lat:            m.Lat,
		Lng:            m.Lng,
		Amenities:      utils.StringsFromColumn(m.Amenities),
		Rating:         m.Rating,
		Image:          m.ImageURL,
		Reviews:        utils.FromJSONColumn[[]domain.Review](m.Reviews),
		PaymentMethods: utils.FromJSONColumn[*domain.PaymentMethods](m.PaymentMethods),
		IsVerified:     m.IsVerified,
		OwnerID:        m.OwnerID,
	}
}

func toShopRow(s *domain.Shop) shopRow {
	return shopRow{
		ID:             s.ID,
		Name:           s.Name,
		Location:       s.Location,
		Address:        s.Address,
		Lat:            s.Lat,
		Lng:            s.Lng,
		Amenities:      utils.ToJSONColumn(s.Amenities),
		Rating:         s.Rating,
		ImageURL:       s.Image,
		Reviews:        utils.ToJSONColumn(s.Reviews),
		PaymentMethods: utils.ToJSONColumn(s.PaymentMethods),
		IsVerified:     s.IsVerified,
		OwnerID:        s.OwnerID,
	}
}

func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m := toShopRow(s)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*s = *toDomainShop(m)
	return nil
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	var m shopRow
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainShop(m), nil
}

func (r *ShopRepository) List(ctx context.Context) ([]domain.Shop, error) {
	var rows []shopRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Shop, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainShop(m))
	}
	return out, nil
}

// Update writes the shop's editable fields. Reviews, rating, verification and
// ownership have dedicated writes.
func (r *ShopRepository) Update(ctx context.Context, s *domain.Shop) error {
	m := toShopRow(s)
	res := r.db.WithContext(ctx).Model(&shopRow{}).Where("id = ?", s.ID).Updates(map[string]any{
		"name":            m.Name,
		"location":        m.Location,
		"address":         m.Address,
		"lat":             m.Lat,
		"lng":             m.Lng,
		"amenities":       m.Amenities,
		"image_url":       m.ImageURL,
		"payment_methods": m.PaymentMethods,
		"updated_at":      time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetReviews stores the review list together with its recomputed rating.
func (r *ShopRepository) SetReviews(ctx context.Context, id string, reviews []domain.Review, rating float64) error {
	res := r.db.WithContext(ctx).Model(&shopRow{}).Where("id = ?", id).Updates(map[string]any{
		"reviews":    utils.ToJSONColumn(reviews),
		"rating":     rating,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShopRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	res := r.db.WithContext(ctx).Model(&shopRow{}).Where("id = ?", id).Update("is_verified", verified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShopRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&shopRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
