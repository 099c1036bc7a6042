package store

import (
	"context"

	"inkspace/internal/domain"
	"inkspace/internal/modules/ai"
	"inkspace/internal/storage"
)

// Gateway is the backend surface the store drives.
type Gateway interface {
	FetchInitialData(ctx context.Context) (*domain.InitialData, error)

	UpdateArtistProfile(ctx context.Context, a *domain.Artist) (*domain.Artist, error)
	UploadPortfolioImage(ctx context.Context, artistID string, file storage.Upload, aiGenerated bool) (*domain.Artist, error)
	ReplacePortfolioImage(ctx context.Context, artistID, oldURL string, file storage.Upload) (*domain.Artist, error)
	DeletePortfolioImage(ctx context.Context, artistID, url string) (*domain.Artist, error)
	SetSubscriptionTier(ctx context.Context, artistID string, tier domain.SubscriptionTier) (*domain.Artist, error)
	SetArtistAvailability(ctx context.Context, artistID, date string, status domain.AvailabilityStatus) (*domain.ArtistAvailability, error)

	CreateShop(ctx context.Context, s *domain.Shop) (*domain.Shop, error)
	UpdateShop(ctx context.Context, s *domain.Shop) (*domain.Shop, error)
	DeleteShop(ctx context.Context, id string) error
	AddShopReview(ctx context.Context, shopID string, review domain.Review) (*domain.Shop, error)
	CreateBooth(ctx context.Context, b *domain.Booth) (*domain.Booth, error)
	UpdateBooth(ctx context.Context, b *domain.Booth) (*domain.Booth, error)
	DeleteBooth(ctx context.Context, id string) error

	CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	MarkBookingPaid(ctx context.Context, id string) (*domain.Booking, error)

	CreateClientBookingRequest(ctx context.Context, req *domain.ClientBookingRequest) (*domain.ClientBookingRequest, error)
	GetClientBookingRequest(ctx context.Context, id string) (*domain.ClientBookingRequest, error)
	UpdateClientBookingRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.ClientBookingRequest, error)
	RescheduleClientBookingRequest(ctx context.Context, id, startDate, endDate, preferredTime string) (*domain.ClientBookingRequest, error)
	PayClientBookingRequest(ctx context.Context, id string, platformFee float64) (*domain.ClientBookingRequest, error)
	SubmitClientReview(ctx context.Context, id string, rating int, text string) (*domain.ClientBookingRequest, error)

	FetchNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkNotificationsAsRead(ctx context.Context, userID string) error

	FetchConversations(ctx context.Context, userID string) ([]domain.Conversation, error)
	FindOrCreateConversation(ctx context.Context, a, b string) (*domain.Conversation, error)
	FetchMessages(ctx context.Context, conversationID, viewerID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, conversationID, senderID, content string, attachment *storage.Upload) (*domain.Message, error)

	CreateVerificationRequest(ctx context.Context, itemID string, itemType domain.VerificationItemType) (*domain.VerificationRequest, error)
	ApproveVerification(ctx context.Context, id string) (*domain.VerificationRequest, error)
	RejectVerification(ctx context.Context, id string) (*domain.VerificationRequest, error)
}

// BioDrafter writes a first draft of an artist bio.
type BioDrafter interface {
	DraftBio(ctx context.Context, in ai.BioInput) (string, error)
}

// PreferencesStore persists the per-user preferences that survive restarts.
type PreferencesStore interface {
	Load(userID string) (Preferences, error)
	Save(userID string, p Preferences) error
}
