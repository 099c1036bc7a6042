package store

import (
	"testing"

	"inkspace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoothBookingTotal(t *testing.T) {
	total, err := BoothBookingTotal("2024-08-10", "2024-08-17", 150)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, total)
	assert.InDelta(t, 120.0, PlatformFee(total), 1e-9)
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"same day", "2024-03-01", "2024-03-01", 1},
		{"two days", "2024-03-01", "2024-03-02", 2},
		{"across month", "2024-02-28", "2024-03-01", 3},
		{"across dst change", "2024-03-30", "2024-04-01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InclusiveDays(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInclusiveDays_RejectsReversedRange(t *testing.T) {
	_, err := InclusiveDays("2024-03-02", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = InclusiveDays("yesterday", "2024-03-01")
	assert.Error(t, err)
}

func TestChargeDeposit(t *testing.T) {
	pro := ChargeDeposit(50, domain.TierPro)
	assert.Equal(t, DepositCharge{Deposit: 50, Fee: 0, Total: 50}, pro)

	free := ChargeDeposit(50, domain.TierFree)
	assert.Equal(t, 1.45, free.Fee)
	assert.Equal(t, 51.45, free.Total)

	// fee is rounded to cents
	odd := ChargeDeposit(33.33, domain.TierFree)
	assert.Equal(t, 0.97, odd.Fee)
	assert.Equal(t, 34.3, odd.Total)
}

func TestPlatformFee_IsTenPercent(t *testing.T) {
	for _, total := range []float64{0, 10, 150, 1200, 99.5} {
		assert.InDelta(t, total/10, PlatformFee(total), 1e-9)
	}
}
