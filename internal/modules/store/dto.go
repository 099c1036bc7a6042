package store

import "inkspace/internal/domain"

type BookBoothRequest struct {
	BoothID   string `json:"boothId" validate:"required"`
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
}

type RescheduleRequest struct {
	StartDate     string `json:"startDate" validate:"required,isodate"`
	EndDate       string `json:"endDate" validate:"omitempty,isodate"`
	PreferredTime string `json:"preferredTime"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"max=2000"`
}

type AvailabilityRequest struct {
	Date   string                    `json:"date" validate:"required,isodate"`
	Status domain.AvailabilityStatus `json:"status" validate:"required,oneof=available unavailable"`
}

type StartConversationRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"max=4000"`
}

type VerificationRequestBody struct {
	ItemID   string                      `json:"itemId" validate:"required"`
	ItemType domain.VerificationItemType `json:"itemType" validate:"required,oneof=profile shop"`
}

type ModalRequest struct {
	Kind    string         `json:"kind" validate:"required"`
	Payload map[string]any `json:"payload"`
}

type ViewModeRequest struct {
	Mode ViewMode `json:"mode" validate:"required,oneof=artist client"`
}

type ThemeRequest struct {
	Theme Theme `json:"theme" validate:"required,oneof=light dark"`
}

type BioDraftRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

type BioDraftResponse struct {
	Bio string `json:"bio"`
}

type PayDepositResponse struct {
	Request *domain.ClientBookingRequest `json:"request"`
	Charge  DepositCharge                `json:"charge"`
}

type TierRequest struct {
	Tier domain.SubscriptionTier `json:"tier" validate:"required,oneof=free pro"`
}
