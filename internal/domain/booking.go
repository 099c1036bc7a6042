package domain

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentUnpaid || p == PaymentPaid
}

// Booking is an artist renting a booth for a guest spot.
type Booking struct {
	ID            string        `json:"id"`
	ArtistID      string        `json:"artistId"`
	BoothID       string        `json:"boothId"`
	ShopID        string        `json:"shopId"`
	StartDate     string        `json:"startDate"`
	EndDate       string        `json:"endDate"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	TotalAmount   float64       `json:"totalAmount"`
	PlatformFee   float64       `json:"platformFee"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type RequestStatus string

const (
	RequestPending     RequestStatus = "pending"
	RequestApproved    RequestStatus = "approved"
	RequestDeclined    RequestStatus = "declined"
	RequestCompleted   RequestStatus = "completed"
	RequestRescheduled RequestStatus = "rescheduled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestDeclined, RequestCompleted, RequestRescheduled:
		return true
	}
	return false
}

// CanTransition reports whether a request may move from s to next.
// Rescheduled behaves like approved for completion.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	switch next {
	case RequestApproved, RequestDeclined:
		return s == RequestPending
	case RequestCompleted:
		return s == RequestApproved || s == RequestRescheduled
	case RequestRescheduled:
		return s == RequestPending || s == RequestApproved || s == RequestRescheduled
	}
	return false
}

// ClientBookingRequest is a client asking an artist for a tattoo session.
// Guests have no ClientID and leave contact details instead.
type ClientBookingRequest struct {
	ID                string        `json:"id"`
	ClientID          *string       `json:"clientId"`
	GuestName         string        `json:"guestName,omitempty"`
	GuestEmail        string        `json:"guestEmail,omitempty"`
	ClientName        string        `json:"clientName,omitempty"`
	ArtistID          string        `json:"artistId"`
	ArtistName        string        `json:"artistName,omitempty"`
	StartDate         string        `json:"startDate"`
	EndDate           string        `json:"endDate"`
	PreferredTime     string        `json:"preferredTime,omitempty"`
	Message           string        `json:"message"`
	TattooSize        string        `json:"tattooSize,omitempty"`
	Placement         string        `json:"bodyPlacement,omitempty"`
	Budget            string        `json:"budget,omitempty"`
	ReferenceImageURL string        `json:"referenceImageUrl,omitempty"`
	Status            RequestStatus `json:"status"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	DepositAmount     float64       `json:"depositAmount"`
	PlatformFee       float64       `json:"platformFee"`
	ReviewRating      *int          `json:"reviewRating,omitempty"`
	ReviewText        string        `json:"reviewText,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
}

type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "available"
	Unavailable AvailabilityStatus = "unavailable"
)

func (s AvailabilityStatus) Valid() bool {
	return s == Available || s == Unavailable
}

// ArtistAvailability is a per-date override of the artist's weekly hours.
type ArtistAvailability struct {
	ID       string             `json:"id"`
	ArtistID string             `json:"artistId"`
	Date     string             `json:"date"`
	Status   AvailabilityStatus `json:"status"`
}
