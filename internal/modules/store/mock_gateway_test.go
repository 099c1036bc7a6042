package store

import (
	"context"

	"inkspace/internal/domain"
	"inkspace/internal/modules/ai"
	"inkspace/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func ret[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

func (m *MockGateway) FetchInitialData(ctx context.Context) (*domain.InitialData, error) {
	args := m.Called(ctx)
	return ret[*domain.InitialData](args, 0), args.Error(1)
}

func (m *MockGateway) UpdateArtistProfile(ctx context.Context, a *domain.Artist) (*domain.Artist, error) {
	args := m.Called(ctx, a)
	return ret[*domain.Artist](args, 0), args.Error(1)
}

func (m *MockGateway) UploadPortfolioImage(ctx context.Context, artistID string, file storage.Upload, aiGenerated bool) (*domain.Artist, error) {
	args := m.Called(ctx, artistID, file, aiGenerated)
	return ret[*domain.Artist](args, 0), args.Error(1)
}

func (m *MockGateway) ReplacePortfolioImage(ctx context.Context, artistID, oldURL string, file storage.Upload) (*domain.Artist, error) {
	args := m.Called(ctx, artistID, oldURL, file)
	return ret[*domain.Artist](args, 0), args.Error(1)
}

func (m *MockGateway) DeletePortfolioImage(ctx context.Context, artistID, url string) (*domain.Artist, error) {
	args := m.Called(ctx, artistID, url)
	return ret[*domain.Artist](args, 0), args.Error(1)
}

func (m *MockGateway) SetArtistAvailability(ctx context.Context, artistID, date string, status domain.AvailabilityStatus) (*domain.ArtistAvailability, error) {
	args := m.Called(ctx, artistID, date, status)
	return ret[*domain.ArtistAvailability](args, 0), args.Error(1)
}

func (m *MockGateway) CreateShop(ctx context.Context, s *domain.Shop) (*domain.Shop, error) {
	args := m.Called(ctx, s)
	return ret[*domain.Shop](args, 0), args.Error(1)
}

func (m *MockGateway) UpdateShop(ctx context.Context, s *domain.Shop) (*domain.Shop, error) {
	args := m.Called(ctx, s)
	return ret[*domain.Shop](args, 0), args.Error(1)
}

func (m *MockGateway) DeleteShop(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGateway) AddShopReview(ctx context.Context, shopID string, review domain.Review) (*domain.Shop, error) {
	args := m.Called(ctx, shopID, review)
	return ret[*domain.Shop](args, 0), args.Error(1)
}

func (m *MockGateway) CreateBooth(ctx context.Context, b *domain.Booth) (*domain.Booth, error) {
	args := m.Called(ctx, b)
	return ret[*domain.Booth](args, 0), args.Error(1)
}

func (m *MockGateway) UpdateBooth(ctx context.Context, b *domain.Booth) (*domain.Booth, error) {
	args := m.Called(ctx, b)
	return ret[*domain.Booth](args, 0), args.Error(1)
}

func (m *MockGateway) DeleteBooth(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGateway) CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	return ret[*domain.Booking](args, 0), args.Error(1)
}

func (m *MockGateway) MarkBookingPaid(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	return ret[*domain.Booking](args, 0), args.Error(1)
}

func (m *MockGateway) CreateClientBookingRequest(ctx context.Context, req *domain.ClientBookingRequest) (*domain.ClientBookingRequest, error) {
	args := m.Called(ctx, req)
	return ret[*domain.ClientBookingRequest](args, 0), args.Error(1)
}

func (m *MockGateway) GetClientBookingRequest(ctx context.Context, id string) (*domain.ClientBookingRequest, error) {
	args := m.Called(ctx, id)
	return ret[*domain.ClientBookingRequest](args, 0), args.Error(1)
}

func (m *MockGateway) UpdateClientBookingRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ClientBookingRequest, error) {
	args := m.Called(ctx, id, status)
	return ret[*domain.ClientBookingRequest](args, 0), args.Error(1)
}

func (m *MockGateway) RescheduleClientBookingRequest(ctx context.Context, id, startDate, endDate, preferredTime string) (*domain.ClientBookingRequest, error) {
	args := m.Called(ctx, id, startDate, endDate, preferredTime)
	return ret[*domain.ClientBookingRequest](args, 0), args.Error(1)
}

func (m *MockGateway) PayClientBookingRequest(ctx context.Context, id string, platformFee float64) (*domain.ClientBookingRequest, error) {
	args := m.Called(ctx, id, platformFee)
	return ret[*domain.ClientBookingRequest](args, 0), args.Error(1)
}

func (m *MockGateway) SubmitClientReview(ctx context.Context, id string, rating int, text string) (*domain.ClientBookingRequest, error) {
	args := m.Called(ctx, id, rating, text)
	return ret[*domain.ClientBookingRequest](args, 0), args.Error(1)
}

func (m *MockGateway) FetchNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return ret[[]domain.Notification](args, 0), args.Error(1)
}

func (m *MockGateway) MarkNotificationsAsRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockGateway) FetchConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	return ret[[]domain.Conversation](args, 0), args.Error(1)
}

func (m *MockGateway) SetSubscriptionTier(ctx context.Context, artistID string, tier domain.SubscriptionTier) (*domain.Artist, error) {
	args := m.Called(ctx, artistID, tier)
	return ret[*domain.Artist](args, 0), args.Error(1)
}

func (m *MockGateway) FindOrCreateConversation(ctx context.Context, a, b string) (*domain.Conversation, error) {
	args := m.Called(ctx, a, b)
	return ret[*domain.Conversation](args, 0), args.Error(1)
}

func (m *MockGateway) FetchMessages(ctx context.Context, conversationID, viewerID string) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, viewerID)
	return ret[[]domain.Message](args, 0), args.Error(1)
}

func (m *MockGateway) SendMessage(ctx context.Context, conversationID, senderID, content string, attachment *storage.Upload) (*domain.Message, error) {
	args := m.Called(ctx, conversationID, senderID, content, attachment)
	return ret[*domain.Message](args, 0), args.Error(1)
}

func (m *MockGateway) CreateVerificationRequest(ctx context.Context, itemID string, itemType domain.VerificationItemType) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, itemID, itemType)
	return ret[*domain.VerificationRequest](args, 0), args.Error(1)
}

func (m *MockGateway) ApproveVerification(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, id)
	return ret[*domain.VerificationRequest](args, 0), args.Error(1)
}

func (m *MockGateway) RejectVerification(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, id)
	return ret[*domain.VerificationRequest](args, 0), args.Error(1)
}

type MockBioDrafter struct {
	mock.Mock
}

func (m *MockBioDrafter) DraftBio(ctx context.Context, in ai.BioInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}
