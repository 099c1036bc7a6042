package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/logger"
	"inkspace/internal/pkg/validator"
	"inkspace/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// DevAdminID is the user ID carried by sessions granted through the dev
// admin bypass.
const DevAdminID = "dev-admin"

// DevAdmin configures the development-only admin login. When Enabled, the
// reserved Username/Password pair signs in as admin without consulting the
// identity store.
type DevAdmin struct {
	Enabled  bool
	Username string
	Password string
}

// Service authenticates users and keeps track of their sessions.
type Service struct {
	identities IdentityRepository
	profiles   ProfileGateway
	tokens     tokenService
	cache      SessionCache
	devAdmin   DevAdmin
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewService(
	identities IdentityRepository,
	profiles ProfileGateway,
	tokens tokenService,
	cache SessionCache,
	devAdmin DevAdmin,
	sessionTTL time.Duration,
) *Service {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Service{
		identities: identities,
		profiles:   profiles,
		tokens:     tokens,
		cache:      cache,
		devAdmin:   devAdmin,
		sessionTTL: sessionTTL,
		log:        logger.Component("auth"),
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidCredentials
	}

	if s.isDevAdminLogin(req) {
		s.log.Warn().Msg("dev admin bypass used: admin session granted without identity check")
		return s.startSession(ctx, s.devAdminUser())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	identity, err := s.identities.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.profiles.GetProfile(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return s.startSession(ctx, user)
}

// Register creates the identity and then the profile. If the profile cannot
// be written the identity is deleted again.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistration, errs)
	}

	if _, err := s.identities.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	identity := &domain.Identity{ID: uuid.NewString(), Email: req.Email, PasswordHash: string(hash)}
	if err := s.identities.Create(ctx, identity); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create identity: %w", err)
	}

	user := newProfile(identity, req)
	if err := s.profiles.CreateProfile(ctx, user); err != nil {
		if delErr := s.identities.Delete(ctx, identity.ID); delErr != nil {
			s.log.Error().Err(delErr).AnErr("cause", err).Str("identity_id", identity.ID).
				Msg("identity left without profile")
			return nil, fmt.Errorf("%w: %w", ErrInconsistentAccount, errors.Join(err, delErr))
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return s.startSession(ctx, user)
}

func newProfile(identity *domain.Identity, req RegisterRequest) *domain.User {
	switch req.Role {
	case domain.RoleArtist, domain.RoleDual:
		artist := &domain.Artist{
			ID:               identity.ID,
			Name:             req.Name,
			City:             req.City,
			Specialty:        req.Specialty,
			SubscriptionTier: domain.TierFree,
		}
		if req.Role == domain.RoleDual {
			return domain.NewDualUser(identity.ID, identity.Email, artist)
		}
		return domain.NewArtistUser(identity.ID, identity.Email, artist)
	case domain.RoleShopOwner:
		return domain.NewShopOwnerUser(identity.ID, identity.Email, &domain.ShopOwnerProfile{Name: req.Name})
	default:
		return domain.NewClientUser(identity.ID, identity.Email, &domain.ClientProfile{Name: req.Name})
	}
}

// GetCurrentUser resolves a session token to its user, from the cache when
// possible.
func (s *Service) GetCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.cache.Load(ctx, token)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, ErrSessionRevoked):
		return nil, ErrUnauthorized
	case !errors.Is(err, ErrCacheMiss):
		s.log.Warn().Err(err).Msg("session cache unavailable")
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.UserID == DevAdminID {
		if !s.devAdmin.Enabled {
			return nil, ErrUnauthorized
		}
		user = s.devAdminUser()
	} else {
		user, err = s.profiles.GetProfile(ctx, claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		if err != nil {
			return nil, err
		}
	}

	if claims.ExpiresAt != nil {
		if err := s.cache.Store(ctx, token, user, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache session")
		}
	}
	return user, nil
}

// Logout ends the session. Logging out an unknown or expired token is a
// no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.cache.Revoke(ctx, token, time.Until(claims.ExpiresAt.Time))
}

func (s *Service) startSession(ctx context.Context, user *domain.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	if err := s.cache.Store(ctx, token, user, s.sessionTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache session")
	}
	return &Session{User: user, Token: token}, nil
}

func (s *Service) isDevAdminLogin(req LoginRequest) bool {
	return s.devAdmin.Enabled &&
		s.devAdmin.Username != "" &&
		req.Email == s.devAdmin.Username &&
		req.Password == s.devAdmin.Password
}

func (s *Service) devAdminUser() *domain.User {
	return domain.NewAdminUser(DevAdminID, "", &domain.AdminProfile{Name: "Admin"})
}
