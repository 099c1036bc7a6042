package repository

import (
	"context"

	"inkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type availabilityRow struct {
	ID       string `gorm:"column:id;primaryKey"`
	ArtistID string `gorm:"column:artist_id;uniqueIndex:idx_availability_artist_date"`
	Date     string `gorm:"column:date;uniqueIndex:idx_availability_artist_date"`
	Status   string `gorm:"column:status"`
}

func (availabilityRow) TableName() string { return "artist_availability" }

func toDomainAvailability(m availabilityRow) *domain.ArtistAvailability {
	return &domain.ArtistAvailability{
		ID:       m.ID,
		ArtistID: m.ArtistID,
		Date:     m.Date,
		Status:   domain.AvailabilityStatus(m.Status),
	}
}

func toAvailabilityRow(a *domain.ArtistAvailability) availabilityRow {
	return availabilityRow{ID: a.ID, ArtistID: a.ArtistID, Date: a.Date, Status: string(a.Status)}
}

// Upsert sets the override for (artist, date), replacing any previous status.
func (r *AvailabilityRepository) Upsert(ctx context.Context, a *domain.ArtistAvailability) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m := toAvailabilityRow(a)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "artist_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&m).Error
	if err != nil {
		return err
	}

	var stored availabilityRow
	if err := r.db.WithContext(ctx).First(&stored, "artist_id = ? AND date = ?", a.ArtistID, a.Date).Error; err != nil {
		return notFound(err)
	}
	*a = *toDomainAvailability(stored)
	return nil
}

func (r *AvailabilityRepository) List(ctx context.Context) ([]domain.ArtistAvailability, error) {
	var rows []availabilityRow
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.ArtistAvailability, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAvailability(m))
	}
	return out, nil
}
