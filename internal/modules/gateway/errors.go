package gateway

import (
	"errors"

	"inkspace/internal/repository"
)

var (
	ErrNotFound               = repository.ErrNotFound
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidTransition      = errors.New("status transition not allowed")
	ErrAlreadyPaid            = errors.New("already paid")
	ErrReviewNotAllowed       = errors.New("review allowed only after completion")
	ErrReviewAlreadySubmitted = errors.New("review already submitted")
	ErrShopHasBookings        = errors.New("shop has bookings")
	ErrBoothHasBookings       = errors.New("booth has bookings")
	ErrImageNotInPortfolio    = errors.New("image is not in the portfolio")
	ErrNotParticipant         = errors.New("sender is not a participant of the conversation")
)
