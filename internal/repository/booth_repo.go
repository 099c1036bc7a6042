package repository

import (
	"context"

	"inkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoothRepository struct {
	db *gorm.DB
}

func NewBoothRepository(db *gorm.DB) *BoothRepository {
	return &BoothRepository{db: db}
}

type boothRow struct {
	ID        string  `gorm:"column:id;primaryKey"`
	ShopID    string  `gorm:"column:shop_id;index"`
	Name      string  `gorm:"column:name"`
	DailyRate float64 `gorm:"column:daily_rate"`
}

func (boothRow) TableName() string { return "booths" }

func toDomainBooth(m boothRow) *domain.Booth {
	return &domain.Booth{ID: m.ID, ShopID: m.ShopID, Name: m.Name, DailyRate: m.DailyRate}
}

func toBoothRow(b *domain.Booth) boothRow {
	return boothRow{ID: b.ID, ShopID: b.ShopID, Name: b.Name, DailyRate: b.DailyRate}
}

func (r *BoothRepository) Create(ctx context.Context, b *domain.Booth) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m := toBoothRow(b)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *BoothRepository) GetByID(ctx context.Context, id string) (*domain.Booth, error) {
	var m boothRow
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooth(m), nil
}

func (r *BoothRepository) List(ctx context.Context) ([]domain.Booth, error) {
	var rows []boothRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booth, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooth(m))
	}
	return out, nil
}

func (r *BoothRepository) Update(ctx context.Context, b *domain.Booth) error {
	res := r.db.WithContext(ctx).Model(&boothRow{}).Where("id = ?", b.ID).Updates(map[string]any{
		"name":       b.Name,
		"daily_rate": b.DailyRate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BoothRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&boothRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BoothRepository) DeleteByShop(ctx context.Context, shopID string) error {
	return r.db.WithContext(ctx).Delete(&boothRow{}, "shop_id = ?", shopID).Error
}
