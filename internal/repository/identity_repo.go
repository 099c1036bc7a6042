package repository

import (
	"context"
	"strings"
	"time"

	"inkspace/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

type identityRow struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (identityRow) TableName() string { return "auth_identities" }

func (r *IdentityRepository) Create(ctx context.Context, id *domain.Identity) error {
	if id.ID == "" {
		id.ID = uuid.NewString()
	}
	m := identityRow{
		ID:           id.ID,
		Email:        strings.ToLower(strings.TrimSpace(id.Email)),
		PasswordHash: id.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	id.Email = m.Email
	id.CreatedAt = m.CreatedAt
	return nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var m identityRow
	err := r.db.WithContext(ctx).First(&m, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &domain.Identity{ID: m.ID, Email: m.Email, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}, nil
}

func (r *IdentityRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&identityRow{}, "id = ?", id).Error
}
