package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkspace/internal/domain"
	"inkspace/internal/modules/gateway"
)

// BookBooth rents a booth for the signed-in artist over the inclusive date
// range. The booth must be in the cached state.
func (s *Store) BookBooth(ctx context.Context, boothID, startDate, endDate string) (*domain.Booking, error) {
	const action = "book booth"
	u := s.User()
	if !u.Role.ActsAsArtist() {
		return nil, s.fail(action, ErrForbidden, "Only artists can book booths.")
	}
	booth, ok := lookup(s, func(st *State) *domain.Booth { return st.booth(boothID) })
	if !ok {
		return nil, s.fail(action, ErrNotFound, "That booth is no longer available.")
	}
	total, err := BoothBookingTotal(startDate, endDate, booth.DailyRate)
	if err != nil {
		return nil, s.fail(action, err, "Please pick valid dates.")
	}

	created, err := s.gw.CreateBooking(ctx, &domain.Booking{
		ArtistID:      u.ID,
		BoothID:       booth.ID,
		ShopID:        booth.ShopID,
		StartDate:     startDate,
		EndDate:       endDate,
		PaymentStatus: domain.PaymentUnpaid,
		TotalAmount:   total,
		PlatformFee:   PlatformFee(total),
	})
	if err != nil {
		return nil, s.fail(action, err, "We couldn't book this booth.")
	}
	s.update(func(st *State) { st.Bookings = upsert(st.Bookings, *created, bookingKey) })
	s.ShowToast(ToastSuccess, "Booth booked. Complete payment to confirm.")
	return created, nil
}

// PayBooking marks the artist's booth booking as paid.
func (s *Store) PayBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	const action = "pay booking"
	u := s.User()
	booking, ok := lookup(s, func(st *State) *domain.Booking { return st.booking(bookingID) })
	if !ok {
		return nil, s.fail(action, ErrNotFound, "We couldn't find that booking.")
	}
	if !canActAsArtist(u, booking.ArtistID) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	paid, err := s.gw.MarkBookingPaid(ctx, bookingID)
	if err != nil {
		return nil, s.fail(action, err, "Payment failed. Please try again.")
	}
	s.update(func(st *State) { st.Bookings = upsert(st.Bookings, *paid, bookingKey) })
	s.ShowToast(ToastSuccess, "Payment received.")
	return paid, nil
}

// RequestInput is what a client fills in when asking an artist for a session.
type RequestInput struct {
	ArtistID          string  `json:"artistId" validate:"required"`
	StartDate         string  `json:"startDate" validate:"required,isodate"`
	EndDate           string  `json:"endDate" validate:"omitempty,isodate"`
	PreferredTime     string  `json:"preferredTime"`
	Message           string  `json:"message" validate:"required"`
	TattooSize        string  `json:"tattooSize"`
	Placement         string  `json:"bodyPlacement"`
	Budget            string  `json:"budget"`
	ReferenceImageURL string  `json:"referenceImageUrl"`
	DepositAmount     float64 `json:"depositAmount" validate:"gte=0"`
	GuestName         string  `json:"guestName"`
	GuestEmail        string  `json:"guestEmail" validate:"omitempty,email"`
}

func (in RequestInput) toDomain() *domain.ClientBookingRequest {
	return &domain.ClientBookingRequest{
		ArtistID:          in.ArtistID,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		PreferredTime:     in.PreferredTime,
		Message:           in.Message,
		TattooSize:        in.TattooSize,
		Placement:         in.Placement,
		Budget:            in.Budget,
		ReferenceImageURL: in.ReferenceImageURL,
		DepositAmount:     in.DepositAmount,
		GuestName:         strings.TrimSpace(in.GuestName),
		GuestEmail:        strings.TrimSpace(in.GuestEmail),
	}
}

// checkIntake enforces the fields the artist marked as mandatory.
func checkIntake(settings *domain.IntakeFormSettings, in RequestInput) error {
	if settings == nil {
		return nil
	}
	missing := func(v string) bool { return strings.TrimSpace(v) == "" }
	switch {
	case settings.RequireSize && missing(in.TattooSize):
		return fmt.Errorf("tattoo size: %w", ErrMissingIntakeField)
	case settings.RequirePlacement && missing(in.Placement):
		return fmt.Errorf("body placement: %w", ErrMissingIntakeField)
	case settings.RequireBudget && missing(in.Budget):
		return fmt.Errorf("budget: %w", ErrMissingIntakeField)
	case settings.RequireReferenceImage && missing(in.ReferenceImageURL):
		return fmt.Errorf("reference image: %w", ErrMissingIntakeField)
	}
	return nil
}

// CreateClientRequest sends the signed-in user's request to an artist.
func (s *Store) CreateClientRequest(ctx context.Context, in RequestInput) (*domain.ClientBookingRequest, error) {
	const action = "create client request"
	u := s.User()
	if artist, ok := lookup(s, func(st *State) *domain.Artist { return st.artist(in.ArtistID) }); ok {
		if err := checkIntake(artist.IntakeSettings, in); err != nil {
			return nil, s.fail(action, err, "")
		}
	}

	req := in.toDomain()
	clientID := u.ID
	req.ClientID = &clientID
	req.GuestName, req.GuestEmail = "", ""

	created, err := s.gw.CreateClientBookingRequest(ctx, req)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't send your request.")
	}
	s.update(func(st *State) { st.ClientRequests = upsert(st.ClientRequests, *created, requestKey) })
	s.ShowToast(ToastSuccess, "Request sent to the artist.")
	return created, nil
}

// SubmitGuestRequest sends a request on behalf of someone without an account.
// There is no session, so no state is touched.
func SubmitGuestRequest(ctx context.Context, gw Gateway, intake *domain.IntakeFormSettings, in RequestInput) (*domain.ClientBookingRequest, error) {
	if err := checkIntake(intake, in); err != nil {
		return nil, err
	}
	created, err := gw.CreateClientBookingRequest(ctx, in.toDomain())
	if err != nil {
		return nil, fmt.Errorf("submit guest request: %w", err)
	}
	return created, nil
}

func (s *Store) ApproveRequest(ctx context.Context, id string) (*domain.ClientBookingRequest, error) {
	return s.changeRequestStatus(ctx, "approve request", id, domain.RequestApproved, "Request approved.")
}

func (s *Store) DeclineRequest(ctx context.Context, id string) (*domain.ClientBookingRequest, error) {
	return s.changeRequestStatus(ctx, "decline request", id, domain.RequestDeclined, "Request declined.")
}

func (s *Store) CompleteRequest(ctx context.Context, id string) (*domain.ClientBookingRequest, error) {
	return s.changeRequestStatus(ctx, "complete request", id, domain.RequestCompleted, "Appointment marked as completed.")
}

func (s *Store) changeRequestStatus(ctx context.Context, action, id string, status domain.RequestStatus, success string) (*domain.ClientBookingRequest, error) {
	u := s.User()
	req, err := s.requestByID(ctx, id)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't find that request.")
	}
	if !canActAsArtist(u, req.ArtistID) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.UpdateClientBookingRequestStatus(ctx, id, status)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't update the request.")
	}
	s.update(func(st *State) { st.ClientRequests = upsert(st.ClientRequests, *updated, requestKey) })
	s.ShowToast(ToastSuccess, success)
	return updated, nil
}

// RescheduleRequest moves the request to new dates. Either party may do it.
func (s *Store) RescheduleRequest(ctx context.Context, id, startDate, endDate, preferredTime string) (*domain.ClientBookingRequest, error) {
	const action = "reschedule request"
	u := s.User()
	req, err := s.requestByID(ctx, id)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't find that request.")
	}
	if !isRequestParty(u, &req) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	updated, err := s.gw.RescheduleClientBookingRequest(ctx, id, startDate, endDate, preferredTime)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't reschedule the request.")
	}
	s.update(func(st *State) { st.ClientRequests = upsert(st.ClientRequests, *updated, requestKey) })
	s.ShowToast(ToastSuccess, "Appointment rescheduled.")
	return updated, nil
}

// QuoteDeposit returns what paying the request's deposit would cost.
func (s *Store) QuoteDeposit(id string) (DepositCharge, error) {
	var charge DepositCharge
	req, ok := s.cachedRequest(id)
	if !ok {
		return charge, ErrNotFound
	}
	return ChargeDeposit(req.DepositAmount, s.artistTier(req.ArtistID)), nil
}

// PayDeposit charges the client for the request's deposit. The card fee is
// waived when the artist is on the pro tier.
func (s *Store) PayDeposit(ctx context.Context, id string) (*domain.ClientBookingRequest, DepositCharge, error) {
	const action = "pay deposit"
	var charge DepositCharge
	u := s.User()
	req, err := s.requestByID(ctx, id)
	if err != nil {
		return nil, charge, s.fail(action, err, "We couldn't find that request.")
	}
	if !isAdmin(u) && (req.ClientID == nil || *req.ClientID != u.ID) {
		return nil, charge, s.fail(action, ErrForbidden, "")
	}
	// the card fee is what the platform keeps from a deposit
	charge = ChargeDeposit(req.DepositAmount, s.artistTier(req.ArtistID))

	paid, err := s.gw.PayClientBookingRequest(ctx, id, charge.Fee)
	if err != nil {
		return nil, DepositCharge{}, s.fail(action, err, "Payment failed. Please try again.")
	}
	s.update(func(st *State) { st.ClientRequests = upsert(st.ClientRequests, *paid, requestKey) })
	s.ShowToast(ToastSuccess, fmt.Sprintf("Deposit of $%.2f paid.", charge.Total))
	return paid, charge, nil
}

// SubmitReview records the client's review of a completed appointment.
func (s *Store) SubmitReview(ctx context.Context, id string, rating int, text string) (*domain.ClientBookingRequest, error) {
	const action = "submit review"
	u := s.User()
	req, err := s.requestByID(ctx, id)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't find that appointment.")
	}
	if req.ClientID == nil || *req.ClientID != u.ID {
		return nil, s.fail(action, ErrForbidden, "")
	}
	reviewed, err := s.gw.SubmitClientReview(ctx, id, rating, text)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't save your review.")
	}
	s.update(func(st *State) { st.ClientRequests = upsert(st.ClientRequests, *reviewed, requestKey) })
	s.ShowToast(ToastSuccess, "Thanks for your review!")
	return reviewed, nil
}

// SetAvailability overrides the artist's weekly hours for one date.
func (s *Store) SetAvailability(ctx context.Context, artistID, date string, status domain.AvailabilityStatus) (*domain.ArtistAvailability, error) {
	const action = "set availability"
	if !canActAsArtist(s.User(), artistID) {
		return nil, s.fail(action, ErrForbidden, "")
	}
	saved, err := s.gw.SetArtistAvailability(ctx, artistID, date, status)
	if err != nil {
		return nil, s.fail(action, err, "We couldn't update your availability.")
	}
	s.update(func(st *State) { st.Availability = upsert(st.Availability, *saved, availabilityKey) })
	return saved, nil
}

func (s *Store) cachedRequest(id string) (domain.ClientBookingRequest, bool) {
	return lookup(s, func(st *State) *domain.ClientBookingRequest { return st.request(id) })
}

// requestByID returns the cached request, falling back to the gateway for
// requests created after the session loaded.
func (s *Store) requestByID(ctx context.Context, id string) (domain.ClientBookingRequest, error) {
	if req, ok := s.cachedRequest(id); ok {
		return req, nil
	}
	req, err := s.gw.GetClientBookingRequest(ctx, id)
	if errors.Is(err, gateway.ErrNotFound) {
		return domain.ClientBookingRequest{}, ErrNotFound
	}
	if err != nil {
		return domain.ClientBookingRequest{}, err
	}
	return *req, nil
}

func (s *Store) artistTier(artistID string) domain.SubscriptionTier {
	return read(s, func(st *State) domain.SubscriptionTier {
		if a := st.artist(artistID); a != nil {
			return a.SubscriptionTier
		}
		return domain.TierFree
	})
}
