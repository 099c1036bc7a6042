package store

import (
	"errors"

	"inkspace/internal/modules/ai"
	"inkspace/internal/modules/gateway"
	"inkspace/internal/storage"
)

var (
	ErrForbidden          = errors.New("not allowed for this account")
	ErrNotFound           = errors.New("not found in current state")
	ErrNoConversation     = errors.New("no conversation is open")
	ErrMissingIntakeField = errors.New("required intake field missing")
	ErrInvalidPreference  = errors.New("invalid preference value")
)

// userMessage turns an action failure into the text shown in the toast.
func userMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, ErrForbidden), errors.Is(err, gateway.ErrNotParticipant):
		return "You are not allowed to do that."
	case errors.Is(err, ErrMissingIntakeField):
		return "Please fill in every field this artist requires."
	case errors.Is(err, ErrInvalidDateRange):
		return "The end date must not be before the start date."
	case errors.Is(err, gateway.ErrAlreadyPaid):
		return "This has already been paid."
	case errors.Is(err, gateway.ErrReviewAlreadySubmitted):
		return "You have already reviewed this appointment."
	case errors.Is(err, gateway.ErrReviewNotAllowed):
		return "Reviews open once the appointment is completed."
	case errors.Is(err, gateway.ErrInvalidTransition):
		return "This request can no longer be changed that way."
	case errors.Is(err, gateway.ErrShopHasBookings):
		return "This shop has bookings and cannot be deleted."
	case errors.Is(err, gateway.ErrBoothHasBookings):
		return "This booth has bookings and cannot be deleted."
	case errors.Is(err, storage.ErrFileTooLarge):
		return "That file is too large."
	case errors.Is(err, storage.ErrInvalidMimeType):
		return "That file type is not supported."
	case errors.Is(err, ai.ErrNotConfigured):
		return "AI bio drafting is not available right now."
	}
	if fallback == "" {
		return "Something went wrong. Please try again."
	}
	return fallback
}
