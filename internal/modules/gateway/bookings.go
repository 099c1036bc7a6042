package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/metrics"
	"inkspace/internal/repository"
)

// CreateBooking stores a booth rental. Amounts are computed by the caller;
// the shop is taken from the booth.
func (g *Gateway) CreateBooking(ctx context.Context, b *domain.Booking) (out *domain.Booking, err error) {
	defer metrics.Observe("create_booking", time.Now(), &err)

	if b == nil || b.ArtistID == "" || b.BoothID == "" {
		return nil, fmt.Errorf("create booking: %w", ErrInvalidInput)
	}
	if err := validateRange(b.StartDate, b.EndDate); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if b.PaymentStatus != "" && !b.PaymentStatus.Valid() {
		return nil, fmt.Errorf("create booking: %w", ErrInvalidStatus)
	}
	booth, err := g.repos.Booths.GetByID(ctx, b.BoothID)
	if err != nil {
		return nil, fmt.Errorf("create booking: booth: %w", err)
	}
	if _, err := g.repos.Profiles.GetArtist(ctx, b.ArtistID); err != nil {
		return nil, fmt.Errorf("create booking: artist: %w", err)
	}
	b.ShopID = booth.ShopID
	if err := g.repos.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

// MarkBookingPaid moves an unpaid booking to paid.
func (g *Gateway) MarkBookingPaid(ctx context.Context, id string) (out *domain.Booking, err error) {
	defer metrics.Observe("mark_booking_paid", time.Now(), &err)

	ok, err := g.repos.Bookings.MarkPaid(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark booking paid: %w", err)
	}
	out, err = g.repos.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark booking paid: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("mark booking paid: %w", ErrAlreadyPaid)
	}
	return out, nil
}

// CreateClientBookingRequest stores the request and, for signed-in clients,
// opens (or reuses) the conversation with the artist and posts the request
// message into it. Everything is written in one transaction.
func (g *Gateway) CreateClientBookingRequest(ctx context.Context, req *domain.ClientBookingRequest) (out *domain.ClientBookingRequest, err error) {
	defer metrics.Observe("create_client_booking_request", time.Now(), &err)

	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("create client booking request: %w", err)
	}
	req.Status = domain.RequestPending
	req.PaymentStatus = domain.PaymentUnpaid
	req.ReviewRating = nil
	req.ReviewText = ""

	err = g.inTx(ctx, func(r *repository.Set) error {
		if _, err := r.Profiles.GetArtist(ctx, req.ArtistID); err != nil {
			return fmt.Errorf("artist: %w", err)
		}
		if err := r.ClientRequests.Create(ctx, req); err != nil {
			return err
		}
		if req.ClientID != nil {
			conv, err := findOrCreateConversation(ctx, r, *req.ClientID, req.ArtistID)
			if err != nil {
				return err
			}
			msg := &domain.Message{
				ConversationID: conv.ID,
				SenderID:       *req.ClientID,
				Content:        req.Message,
				CreatedAt:      g.now().UTC(),
			}
			if err := r.Chat.CreateMessage(ctx, msg); err != nil {
				return err
			}
		}
		out, err = r.ClientRequests.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create client booking request: %w", err)
	}
	return out, nil
}

func (g *Gateway) GetClientBookingRequest(ctx context.Context, id string) (out *domain.ClientBookingRequest, err error) {
	defer metrics.Observe("get_client_booking_request", time.Now(), &err)

	out, err = g.repos.ClientRequests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client booking request: %w", err)
	}
	return out, nil
}

// UpdateClientBookingRequestStatus moves the request to status and tells the
// client, in the same transaction, which artist changed it.
func (g *Gateway) UpdateClientBookingRequestStatus(ctx context.Context, id string, status domain.RequestStatus) (out *domain.ClientBookingRequest, err error) {
	defer metrics.Observe("update_client_booking_request_status", time.Now(), &err)

	if !status.Valid() || status == domain.RequestPending {
		return nil, fmt.Errorf("update client booking request status: %q: %w", status, ErrInvalidStatus)
	}
	err = g.inTx(ctx, func(r *repository.Set) error {
		req, err := r.ClientRequests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !req.Status.CanTransition(status) {
			return fmt.Errorf("%s -> %s: %w", req.Status, status, ErrInvalidTransition)
		}
		if err := r.ClientRequests.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		if err := g.notifyClient(ctx, r, req, status); err != nil {
			return err
		}
		out, err = r.ClientRequests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update client booking request status: %w", err)
	}
	return out, nil
}

// RescheduleClientBookingRequest rewrites the dates and marks the request
// rescheduled, notifying the client like any other status change.
func (g *Gateway) RescheduleClientBookingRequest(ctx context.Context, id, startDate, endDate, preferredTime string) (out *domain.ClientBookingRequest, err error) {
	defer metrics.Observe("reschedule_client_booking_request", time.Now(), &err)

	if err := validateRange(startDate, endDate); err != nil {
		return nil, fmt.Errorf("reschedule client booking request: %w", err)
	}
	err = g.inTx(ctx, func(r *repository.Set) error {
		req, err := r.ClientRequests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !req.Status.CanTransition(domain.RequestRescheduled) {
			return fmt.Errorf("%s -> %s: %w", req.Status, domain.RequestRescheduled, ErrInvalidTransition)
		}
		if err := r.ClientRequests.Reschedule(ctx, id, startDate, endDate, preferredTime); err != nil {
			return err
		}
		if err := g.notifyClient(ctx, r, req, domain.RequestRescheduled); err != nil {
			return err
		}
		out, err = r.ClientRequests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reschedule client booking request: %w", err)
	}
	return out, nil
}

// notifyClient writes the status-change notification. Guests have no
// account to notify.
func (g *Gateway) notifyClient(ctx context.Context, r *repository.Set, req *domain.ClientBookingRequest, status domain.RequestStatus) error {
	if req.ClientID == nil {
		return nil
	}
	artistName, err := r.Profiles.DisplayName(ctx, req.ArtistID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if artistName == "" {
		artistName = "Your artist"
	}
	return r.Notifications.Create(ctx, &domain.Notification{
		UserID:  *req.ClientID,
		Message: StatusMessage(artistName, status),
	})
}

// StatusMessage is the notification text sent when an artist changes a
// request's status.
func StatusMessage(artistName string, status domain.RequestStatus) string {
	return fmt.Sprintf("%s has %s your booking request.", artistName, status)
}

// PayClientBookingRequest records the deposit payment of an accepted request.
func (g *Gateway) PayClientBookingRequest(ctx context.Context, id string, platformFee float64) (out *domain.ClientBookingRequest, err error) {
	defer metrics.Observe("pay_client_booking_request", time.Now(), &err)

	if platformFee < 0 {
		return nil, fmt.Errorf("pay client booking request: %w", ErrInvalidInput)
	}
	err = g.inTx(ctx, func(r *repository.Set) error {
		req, err := r.ClientRequests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.PaymentStatus == domain.PaymentPaid {
			return ErrAlreadyPaid
		}
		if req.Status != domain.RequestApproved && req.Status != domain.RequestRescheduled {
			return fmt.Errorf("pay in status %s: %w", req.Status, ErrInvalidTransition)
		}
		if err := r.ClientRequests.MarkPaid(ctx, id, platformFee); err != nil {
			return err
		}
		out, err = r.ClientRequests.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("pay client booking request: %w", err)
	}
	return out, nil
}

// SubmitClientReview stores the client's single review of a completed
// request.
func (g *Gateway) SubmitClientReview(ctx context.Context, id string, rating int, text string) (out *domain.ClientBookingRequest, err error) {
	defer metrics.Observe("submit_client_review", time.Now(), &err)

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("submit client review: rating %d: %w", rating, ErrInvalidInput)
	}
	req, err := g.repos.ClientRequests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submit client review: %w", err)
	}
	if req.Status != domain.RequestCompleted {
		return nil, fmt.Errorf("submit client review: %w", ErrReviewNotAllowed)
	}
	ok, err := g.repos.ClientRequests.SetReview(ctx, id, rating, strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("submit client review: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("submit client review: %w", ErrReviewAlreadySubmitted)
	}
	out, err = g.repos.ClientRequests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submit client review: %w", err)
	}
	return out, nil
}

// SetArtistAvailability upserts the override for one date.
func (g *Gateway) SetArtistAvailability(ctx context.Context, artistID, date string, status domain.AvailabilityStatus) (out *domain.ArtistAvailability, err error) {
	defer metrics.Observe("set_artist_availability", time.Now(), &err)

	if artistID == "" {
		return nil, fmt.Errorf("set artist availability: %w", ErrInvalidInput)
	}
	if status != domain.Available && status != domain.Unavailable {
		return nil, fmt.Errorf("set artist availability: %q: %w", status, ErrInvalidStatus)
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("set artist availability: date %q: %w", date, ErrInvalidInput)
	}
	out = &domain.ArtistAvailability{ArtistID: artistID, Date: date, Status: status}
	if err := g.repos.Availability.Upsert(ctx, out); err != nil {
		return nil, fmt.Errorf("set artist availability: %w", err)
	}
	return out, nil
}

func validateRequest(req *domain.ClientBookingRequest) error {
	if req == nil || req.ArtistID == "" {
		return ErrInvalidInput
	}
	if req.ClientID == nil && (strings.TrimSpace(req.GuestName) == "" || strings.TrimSpace(req.GuestEmail) == "") {
		return fmt.Errorf("guest contact details required: %w", ErrInvalidInput)
	}
	if req.ClientID != nil && *req.ClientID == req.ArtistID {
		return fmt.Errorf("cannot request yourself: %w", ErrInvalidInput)
	}
	if req.DepositAmount < 0 {
		return ErrInvalidInput
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}
	return validateRange(req.StartDate, req.EndDate)
}

func validateRange(start, end string) error {
	s, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return fmt.Errorf("start date %q: %w", start, ErrInvalidInput)
	}
	e, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return fmt.Errorf("end date %q: %w", end, ErrInvalidInput)
	}
	if e.Before(s) {
		return fmt.Errorf("end date before start date: %w", ErrInvalidInput)
	}
	return nil
}
