package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/jwt"
	"inkspace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(ctx context.Context, id *domain.Identity) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProfileGateway struct {
	mock.Mock
}

func (m *MockProfileGateway) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileGateway) CreateProfile(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newTestService(identities *MockIdentityRepository, profiles *MockProfileGateway, bypass bool) *Service {
	return NewService(
		identities,
		profiles,
		jwt.New("test-secret", time.Hour),
		NewMemoryCache(),
		DevAdmin{Enabled: bypass, Username: "admin", Password: "admin"},
		time.Hour,
	)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_DevAdminBypass(t *testing.T) {
	identities := new(MockIdentityRepository)
	profiles := new(MockProfileGateway)
	svc := newTestService(identities, profiles, true)

	session, err := svc.Login(context.Background(), LoginRequest{Email: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, session.User.Role)
	assert.Equal(t, DevAdminID, session.User.ID)
	identities.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)

	// a fresh cache still resolves the token deterministically
	svc.cache = NewMemoryCache()
	user, err := svc.GetCurrentUser(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	profiles.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestLogin_DevAdminBypassDisabled(t *testing.T) {
	identities := new(MockIdentityRepository)
	identities.On("GetByEmail", mock.Anything, "admin").Return(nil, repository.ErrNotFound)
	svc := newTestService(identities, new(MockProfileGateway), false)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin", Password: "admin"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Password(t *testing.T) {
	identities := new(MockIdentityRepository)
	profiles := new(MockProfileGateway)
	svc := newTestService(identities, profiles, false)

	identity := &domain.Identity{ID: "u1", Email: "sam@ink.test", PasswordHash: hashed(t, "secret1")}
	identities.On("GetByEmail", mock.Anything, "sam@ink.test").Return(identity, nil)
	user := domain.NewClientUser("u1", "sam@ink.test", &domain.ClientProfile{Name: "Sam"})
	profiles.On("GetProfile", mock.Anything, "u1").Return(user, nil).Once()

	_, err := svc.Login(context.Background(), LoginRequest{Email: "sam@ink.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := svc.Login(context.Background(), LoginRequest{Email: "sam@ink.test", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user, session.User)
	assert.NotEmpty(t, session.Token)

	// served from the session cache
	current, err := svc.GetCurrentUser(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", current.ID)
	profiles.AssertExpectations(t)
}

func TestLogin_NormalizesEmail(t *testing.T) {
	identities := new(MockIdentityRepository)
	profiles := new(MockProfileGateway)
	svc := newTestService(identities, profiles, false)

	identity := &domain.Identity{ID: "u1", Email: "sam@ink.test", PasswordHash: hashed(t, "secret1")}
	identities.On("GetByEmail", mock.Anything, "sam@ink.test").Return(identity, nil).Once()
	user := domain.NewClientUser("u1", "sam@ink.test", &domain.ClientProfile{Name: "Sam"})
	profiles.On("GetProfile", mock.Anything, "u1").Return(user, nil).Once()

	session, err := svc.Login(context.Background(), LoginRequest{Email: "  Sam@Ink.TEST ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", session.User.ID)
	identities.AssertExpectations(t)
}

func TestRegister_CreatesIdentityThenProfile(t *testing.T) {
	identities := new(MockIdentityRepository)
	profiles := new(MockProfileGateway)
	svc := newTestService(identities, profiles, false)

	identities.On("GetByEmail", mock.Anything, "jane@ink.test").Return(nil, repository.ErrNotFound)
	identities.On("Create", mock.Anything, mock.AnythingOfType("*domain.Identity")).Return(nil)
	profiles.On("CreateProfile", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleArtist && u.Artist != nil && u.Artist.Name == "Jane Doe" && u.Artist.ID == u.ID
	})).Return(nil)

	session, err := svc.Register(context.Background(), RegisterRequest{
		Email: " Jane@Ink.test ", Password: "secret1", Name: "Jane Doe", Role: domain.RoleArtist, City: "Austin",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@ink.test", session.User.Email)
	assert.Equal(t, domain.TierFree, session.User.Artist.SubscriptionTier)
	identities.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(new(MockIdentityRepository), new(MockProfileGateway), false)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "not-an-email", Password: "secret1", Name: "Jane", Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	_, err = svc.Register(context.Background(), RegisterRequest{Email: "a@ink.test", Password: "secret1", Name: "Root", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	identities := new(MockIdentityRepository)
	identities.On("GetByEmail", mock.Anything, "sam@ink.test").Return(&domain.Identity{ID: "u1"}, nil)
	svc := newTestService(identities, new(MockProfileGateway), false)

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "sam@ink.test", Password: "secret1", Name: "Sam", Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_ProfileFailureCompensates(t *testing.T) {
	identities := new(MockIdentityRepository)
	profiles := new(MockProfileGateway)
	svc := newTestService(identities, profiles, false)

	identities.On("GetByEmail", mock.Anything, "sam@ink.test").Return(nil, repository.ErrNotFound)
	identities.On("Create", mock.Anything, mock.Anything).Return(nil)
	profiles.On("CreateProfile", mock.Anything, mock.Anything).Return(errors.New("db down"))
	identities.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "sam@ink.test", Password: "secret1", Name: "Sam", Role: domain.RoleClient})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInconsistentAccount)
	identities.AssertExpectations(t)
}

func TestRegister_CompensationFailure(t *testing.T) {
	identities := new(MockIdentityRepository)
	profiles := new(MockProfileGateway)
	svc := newTestService(identities, profiles, false)

	identities.On("GetByEmail", mock.Anything, "sam@ink.test").Return(nil, repository.ErrNotFound)
	identities.On("Create", mock.Anything, mock.Anything).Return(nil)
	profiles.On("CreateProfile", mock.Anything, mock.Anything).Return(errors.New("db down"))
	identities.On("Delete", mock.Anything, mock.Anything).Return(errors.New("still down"))

	_, err := svc.Register(context.Background(), RegisterRequest{Email: "sam@ink.test", Password: "secret1", Name: "Sam", Role: domain.RoleShopOwner})
	assert.ErrorIs(t, err, ErrInconsistentAccount)
}

func TestGetCurrentUser_LoadsProfileOnCacheMiss(t *testing.T) {
	profiles := new(MockProfileGateway)
	svc := newTestService(new(MockIdentityRepository), profiles, false)
	user := domain.NewShopOwnerUser("o1", "olga@ink.test", &domain.ShopOwnerProfile{Name: "Olga"})
	profiles.On("GetProfile", mock.Anything, "o1").Return(user, nil).Once()

	token, err := jwt.New("test-secret", time.Hour).GenerateToken("o1", "shop-owner")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := svc.GetCurrentUser(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleShopOwner, got.Role)
	}
	profiles.AssertExpectations(t)

	_, err = svc.GetCurrentUser(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetCurrentUser_DevAdminTokenRejectedWhenBypassOff(t *testing.T) {
	svc := newTestService(new(MockIdentityRepository), new(MockProfileGateway), false)
	token, err := jwt.New("test-secret", time.Hour).GenerateToken(DevAdminID, "admin")
	require.NoError(t, err)

	_, err = svc.GetCurrentUser(context.Background(), token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_RevokesSession(t *testing.T) {
	svc := newTestService(new(MockIdentityRepository), new(MockProfileGateway), true)
	session, err := svc.Login(context.Background(), LoginRequest{Email: "admin", Password: "admin"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))
	_, err = svc.GetCurrentUser(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.NoError(t, svc.Logout(context.Background(), "not-a-token"))
}
