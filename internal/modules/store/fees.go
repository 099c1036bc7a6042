package store

import (
	"errors"
	"math"
	"time"

	"inkspace/internal/domain"
)

const (
	platformFeeRate   = 0.10
	cardProcessingFee = 0.029
)

var ErrInvalidDateRange = errors.New("end date is before start date")

// InclusiveDays counts calendar days from start to end, both included.
// Identical dates count as one day.
func InclusiveDays(start, end string) (int, error) {
	s, err := time.Parse(domain.DateLayout, start)
	if err != nil {
		return 0, err
	}
	e, err := time.Parse(domain.DateLayout, end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, ErrInvalidDateRange
	}
	return int(math.Ceil(e.Sub(s).Hours()/24)) + 1, nil
}

// BoothBookingTotal is the rent for a guest spot: inclusive days times the
// booth's daily rate.
func BoothBookingTotal(start, end string, dailyRate float64) (float64, error) {
	days, err := InclusiveDays(start, end)
	if err != nil {
		return 0, err
	}
	return float64(days) * dailyRate, nil
}

// PlatformFee is the marketplace's cut of a booth booking.
func PlatformFee(total float64) float64 {
	return total * platformFeeRate
}

// DepositCharge is what a client pays to secure a request.
type DepositCharge struct {
	Deposit float64 `json:"deposit"`
	Fee     float64 `json:"fee"`
	Total   float64 `json:"total"`
}

// ChargeDeposit adds the card processing fee to a deposit. Pro artists absorb
// the fee.
func ChargeDeposit(deposit float64, tier domain.SubscriptionTier) DepositCharge {
	fee := 0.0
	if tier != domain.TierPro {
		fee = roundCents(deposit * cardProcessingFee)
	}
	return DepositCharge{Deposit: deposit, Fee: fee, Total: roundCents(deposit + fee)}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
