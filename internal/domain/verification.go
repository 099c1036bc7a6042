package domain

import "time"

type VerificationItemType string

const (
	VerifyProfile VerificationItemType = "profile"
	VerifyShop    VerificationItemType = "shop"
)

func (t VerificationItemType) Valid() bool {
	return t == VerifyProfile || t == VerifyShop
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	return s == VerificationPending || s == VerificationApproved || s == VerificationRejected
}

type VerificationRequest struct {
	ID        string               `json:"id"`
	ItemID    string               `json:"itemId"`
	ItemType  VerificationItemType `json:"itemType"`
	ItemName  string               `json:"itemName,omitempty"`
	Status    VerificationStatus   `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// InitialData is everything the application loads at start-up.
type InitialData struct {
	Artists              []Artist               `json:"artists"`
	Shops                []Shop                 `json:"shops"`
	Booths               []Booth                `json:"booths"`
	Bookings             []Booking              `json:"bookings"`
	ClientRequests       []ClientBookingRequest `json:"clientBookingRequests"`
	Availability         []ArtistAvailability   `json:"artistAvailability"`
	VerificationRequests []VerificationRequest  `json:"verificationRequests"`
}
