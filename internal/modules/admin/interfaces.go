package admin

import (
	"context"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/repository"
)

type StatsRepository interface {
	Counts(ctx context.Context, since time.Time) (*repository.PlatformCounts, error)
}

type VerificationRepository interface {
	ListByStatus(ctx context.Context, status domain.VerificationStatus, limit, offset int) ([]domain.VerificationRequest, int64, error)
}
