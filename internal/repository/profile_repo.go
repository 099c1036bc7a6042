package repository

import (
	"context"
	"strings"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileRow struct {
	ID               string         `gorm:"column:id;primaryKey"`
	Email            string         `gorm:"column:email;index"`
	Role             string         `gorm:"column:role;index"`
	FullName         string         `gorm:"column:full_name"`
	Specialty        string         `gorm:"column:specialty"`
	City             string         `gorm:"column:city"`
	Bio              string         `gorm:"column:bio"`
	AvatarURL        string         `gorm:"column:avatar_url"`
	Portfolio        datatypes.JSON `gorm:"column:portfolio"`
	IsVerified       bool           `gorm:"column:is_verified"`
	Socials          datatypes.JSON `gorm:"column:socials"`
	Services         datatypes.JSON `gorm:"column:services"`
	Hours            datatypes.JSON `gorm:"column:hours"`
	IntakeSettings   datatypes.JSON `gorm:"column:intake_settings"`
	SubscriptionTier string         `gorm:"column:subscription_tier"`
	ShopID           *string        `gorm:"column:shop_id"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

func (profileRow) TableName() string { return "profiles" }

func toDomainArtist(m profileRow) *domain.Artist {
	return &domain.Artist{
		ID:               m.ID,
		Name:             m.FullName,
		Specialty:        m.Specialty,
		City:             m.City,
		Bio:              m.Bio,
		AvatarURL:        m.AvatarURL,
		Portfolio:        utils.FromJSONColumn[[]domain.PortfolioImage](m.Portfolio),
		IsVerified:       m.IsVerified,
		Socials:          utils.FromJSONColumn[*domain.Socials](m.Socials),
		Services:         utils.FromJSONColumn[[]domain.Service](m.Services),
		Hours:            utils.FromJSONColumn[domain.WeeklyHours](m.Hours),
		IntakeSettings:   utils.FromJSONColumn[*domain.IntakeFormSettings](m.IntakeSettings),
		SubscriptionTier: domain.SubscriptionTier(m.SubscriptionTier),
	}
}

func applyArtist(m *profileRow, a *domain.Artist) {
	m.FullName = a.Name
	m.Specialty = a.Specialty
	m.City = a.City
	m.Bio = a.Bio
	m.AvatarURL = a.AvatarURL
	m.Portfolio = utils.ToJSONColumn(a.Portfolio)
	m.IsVerified = a.IsVerified
	m.Socials = utils.ToJSONColumn(a.Socials)
	m.Services = utils.ToJSONColumn(a.Services)
	m.Hours = utils.ToJSONColumn(a.Hours)
	m.IntakeSettings = utils.ToJSONColumn(a.IntakeSettings)
	m.SubscriptionTier = string(a.SubscriptionTier)
}

func toArtistRow(a *domain.Artist) profileRow {
	m := profileRow{ID: a.ID, Role: string(domain.RoleArtist)}
	applyArtist(&m, a)
	return m
}

// ProfileToUser adapts a profile row to the User variant its role selects.
// It is the single role-to-shape mapping shared by the backend and auth
// gateways.
func ProfileToUser(m profileRow) *domain.User {
	role := domain.UserRole(m.Role)
	u := &domain.User{ID: m.ID, Email: m.Email, Role: role, CreatedAt: m.CreatedAt}
	switch role {
	case domain.RoleArtist, domain.RoleDual:
		u.Artist = toDomainArtist(m)
	case domain.RoleShopOwner:
		u.ShopOwner = &domain.ShopOwnerProfile{Name: m.FullName, ShopID: m.ShopID}
	case domain.RoleAdmin:
		u.Admin = &domain.AdminProfile{Name: m.FullName}
	default:
		u.Role = domain.RoleClient
		u.Client = &domain.ClientProfile{Name: m.FullName, AvatarURL: m.AvatarURL}
	}
	return u
}

// UserToProfile is the inverse of ProfileToUser.
func UserToProfile(u *domain.User) profileRow {
	m := profileRow{
		ID:        u.ID,
		Email:     strings.TrimSpace(strings.ToLower(u.Email)),
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	switch {
	case u.Artist != nil:
		applyArtist(&m, u.Artist)
	case u.ShopOwner != nil:
		m.FullName = u.ShopOwner.Name
		m.ShopID = u.ShopOwner.ShopID
	case u.Admin != nil:
		m.FullName = u.Admin.Name
	case u.Client != nil:
		m.FullName = u.Client.Name
		m.AvatarURL = u.Client.AvatarURL
	}
	return m
}

func (r *ProfileRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Artist != nil {
		u.Artist.ID = u.ID
		if u.Artist.SubscriptionTier == "" {
			u.Artist.SubscriptionTier = domain.TierFree
		}
	}
	m := UserToProfile(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*u = *ProfileToUser(m)
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m, err := r.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return ProfileToUser(*m), nil
}

func (r *ProfileRepository) getRow(ctx context.Context, id string) (*profileRow, error) {
	var m profileRow
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *ProfileRepository) GetArtist(ctx context.Context, id string) (*domain.Artist, error) {
	m, err := r.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.UserRole(m.Role).ActsAsArtist() {
		return nil, ErrNotFound
	}
	return toDomainArtist(*m), nil
}

// ListArtists returns profiles acting as artists (artist and dual roles).
func (r *ProfileRepository) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	var rows []profileRow
	err := r.db.WithContext(ctx).
		Where("role IN ?", []string{string(domain.RoleArtist), string(domain.RoleDual)}).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Artist, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainArtist(m))
	}
	return out, nil
}

// DisplayName returns the profile's full name.
func (r *ProfileRepository) DisplayName(ctx context.Context, id string) (string, error) {
	m, err := r.getRow(ctx, id)
	if err != nil {
		return "", err
	}
	return m.FullName, nil
}

// UpdateArtist writes the fields an artist may edit. Portfolio, verification
// and tier have their own setters.
func (r *ProfileRepository) UpdateArtist(ctx context.Context, a *domain.Artist) error {
	m := toArtistRow(a)
	res := r.db.WithContext(ctx).Model(&profileRow{}).Where("id = ?", a.ID).Updates(map[string]any{
		"full_name":       m.FullName,
		"specialty":       m.Specialty,
		"city":            m.City,
		"bio":             m.Bio,
		"avatar_url":      m.AvatarURL,
		"socials":         m.Socials,
		"services":        m.Services,
		"hours":           m.Hours,
		"intake_settings": m.IntakeSettings,
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

func (r *ProfileRepository) SetPortfolio(ctx context.Context, id string, images []domain.PortfolioImage) error {
	return r.updateColumn(ctx, id, "portfolio", utils.ToJSONColumn(images))
}

func (r *ProfileRepository) SetSubscriptionTier(ctx context.Context, id string, tier domain.SubscriptionTier) error {
	return r.updateColumn(ctx, id, "subscription_tier", string(tier))
}

func (r *ProfileRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.updateColumn(ctx, id, "is_verified", verified)
}

// SetShopID links a shop owner to their shop; nil clears the link.
func (r *ProfileRepository) SetShopID(ctx context.Context, id string, shopID *string) error {
	return r.updateColumn(ctx, id, "shop_id", shopID)
}

func (r *ProfileRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&profileRow{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&profileRow{}, "id = ?", id).Error
}
