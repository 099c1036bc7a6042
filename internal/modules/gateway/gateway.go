package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/pkg/logger"
	"inkspace/internal/pkg/metrics"
	"inkspace/internal/repository"
	"inkspace/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Gateway is the only component that talks to the data store and object
// storage. It takes and returns domain records, never rows.
type Gateway struct {
	db      *gorm.DB
	repos   *repository.Set
	objects storage.ObjectStore
	log     zerolog.Logger
	now     func() time.Time
}

func New(db *gorm.DB, objects storage.ObjectStore) *Gateway {
	return &Gateway{
		db:      db,
		repos:   repository.NewSet(db),
		objects: objects,
		log:     logger.Component("gateway"),
		now:     time.Now,
	}
}

// inTx runs fn with repositories bound to one transaction.
func (g *Gateway) inTx(ctx context.Context, fn func(r *repository.Set) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.NewSet(tx))
	})
}

// FetchInitialData loads every collection the application starts with. The
// fetches run in parallel; if any of them fails the whole call fails with all
// failures joined and no partial data is returned.
func (g *Gateway) FetchInitialData(ctx context.Context) (data *domain.InitialData, err error) {
	defer metrics.Observe("fetch_initial_data", time.Now(), &err)

	var (
		out  domain.InitialData
		mu   sync.Mutex
		errs []error
		eg   errgroup.Group
	)
	fetch := func(name string, fn func() error) {
		eg.Go(func() error {
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
			return nil
		})
	}

	fetch("artists", func() (err error) {
		out.Artists, err = g.repos.Profiles.ListArtists(ctx)
		return err
	})
	fetch("shops", func() (err error) {
		out.Shops, err = g.repos.Shops.List(ctx)
		return err
	})
	fetch("booths", func() (err error) {
		out.Booths, err = g.repos.Booths.List(ctx)
		return err
	})
	fetch("bookings", func() (err error) {
		out.Bookings, err = g.repos.Bookings.List(ctx)
		return err
	})
	fetch("client requests", func() (err error) {
		out.ClientRequests, err = g.repos.ClientRequests.List(ctx)
		return err
	})
	fetch("availability", func() (err error) {
		out.Availability, err = g.repos.Availability.List(ctx)
		return err
	})
	fetch("verification requests", func() (err error) {
		out.VerificationRequests, err = g.repos.Verifications.List(ctx)
		return err
	})
	_ = eg.Wait()

	if len(errs) > 0 {
		return nil, fmt.Errorf("fetch initial data: %w", errors.Join(errs...))
	}
	return &out, nil
}
