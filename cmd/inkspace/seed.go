package main

import (
	"context"
	"fmt"

	"inkspace/internal/database"
	"inkspace/internal/domain"
	"inkspace/internal/modules/auth"
	"inkspace/internal/modules/gateway"
	jwtsvc "inkspace/internal/pkg/jwt"
	"inkspace/internal/pkg/logger"
	"inkspace/internal/repository"
	"inkspace/internal/storage"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedTables lists tables in delete order.
var seedTables = []string{
	"messages",
	"conversations",
	"notifications",
	"verification_requests",
	"artist_availability",
	"client_booking_requests",
	"bookings",
	"booths",
	"shops",
	"profiles",
	"auth_identities",
}

type seedAccount struct {
	email, password, name string
	role                  domain.UserRole
	city, specialty       string
}

var seedAccounts = []seedAccount{
	{"jane@inkspace.dev", "artist123", "Jane Doe", domain.RoleArtist, "Austin", "Fine line"},
	{"marco@inkspace.dev", "artist123", "Marco Silva", domain.RoleDual, "Lisbon", "Neo-traditional"},
	{"sam@inkspace.dev", "client123", "Sam Client", domain.RoleClient, "", ""},
	{"olga@inkspace.dev", "owner123", "Olga Owner", domain.RoleShopOwner, "", ""},
}

func seedCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo accounts, shops and requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			if reset {
				if err := resetTables(db); err != nil {
					return err
				}
			}
			objects := storage.NewLocalStore(cfg.Storage.UploadsDir, cfg.Storage.UploadsURL)
			gw := gateway.New(db, objects)
			authService := auth.NewService(
				repository.NewIdentityRepository(db),
				gw,
				jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL),
				nil,
				auth.DevAdmin{},
				cfg.SessionTTL,
			)
			return seed(cmd.Context(), authService, gw)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete existing data first")
	return cmd
}

func resetTables(db *gorm.DB) error {
	log := logger.Component("seed")
	for _, table := range seedTables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Info().Int("tables", len(seedTables)).Msg("old data removed")
	return nil
}

func seed(ctx context.Context, authService *auth.Service, gw *gateway.Gateway) error {
	log := logger.Component("seed")

	users := make(map[string]*domain.User, len(seedAccounts))
	for _, a := range seedAccounts {
		session, err := authService.Register(ctx, auth.RegisterRequest{
			Email:     a.email,
			Password:  a.password,
			Name:      a.name,
			Role:      a.role,
			City:      a.city,
			Specialty: a.specialty,
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", a.email, err)
		}
		users[a.email] = session.User
		log.Info().Str("email", a.email).Str("password", a.password).Str("role", string(a.role)).Msg("account created")
	}

	jane := users["jane@inkspace.dev"].Artist
	jane.Bio = "Delicate botanical fine line work, single needle specialist."
	jane.Services = []domain.Service{
		{ID: "svc-flash", Name: "Flash piece", Duration: 60, Price: 150, DepositAmount: 50},
		{ID: "svc-custom", Name: "Custom half day", Duration: 240, Price: 600, DepositAmount: 100},
	}
	jane.Hours = domain.WeeklyHours{
		2: {{Start: "10:00", End: "18:00"}},
		4: {{Start: "10:00", End: "18:00"}},
		6: {{Start: "12:00", End: "16:00"}},
	}
	jane.IntakeSettings = &domain.IntakeFormSettings{RequireSize: true, RequirePlacement: true}
	jane.Socials = &domain.Socials{Instagram: "@jane.ink"}
	if _, err := gw.UpdateArtistProfile(ctx, jane); err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	if _, err := gw.SetSubscriptionTier(ctx, jane.ID, domain.TierPro); err != nil {
		return fmt.Errorf("set tier: %w", err)
	}

	owner := users["olga@inkspace.dev"]
	shop, err := gw.CreateShop(ctx, &domain.Shop{
		Name:      "Black Anchor Tattoo",
		Location:  "Austin, TX",
		Address:   "1200 E 6th St, Austin, TX",
		Lat:       30.2644,
		Lng:       -97.7267,
		Amenities: []string{"Wi-Fi", "Parking", "Private rooms"},
		PaymentMethods: &domain.PaymentMethods{
			Venmo: "@black-anchor",
		},
		OwnerID: owner.ID,
	})
	if err != nil {
		return fmt.Errorf("create shop: %w", err)
	}
	for _, b := range []domain.Booth{
		{ShopID: shop.ID, Name: "Front window", DailyRate: 150},
		{ShopID: shop.ID, Name: "Private room", DailyRate: 220},
	} {
		if _, err := gw.CreateBooth(ctx, &b); err != nil {
			return fmt.Errorf("create booth: %w", err)
		}
	}
	if _, err := gw.CreateVerificationRequest(ctx, shop.ID, domain.VerifyShop); err != nil {
		return fmt.Errorf("request verification: %w", err)
	}

	client := users["sam@inkspace.dev"]
	clientID := client.ID
	req, err := gw.CreateClientBookingRequest(ctx, &domain.ClientBookingRequest{
		ClientID:      &clientID,
		ArtistID:      jane.ID,
		StartDate:     "2026-11-12",
		PreferredTime: "14:00",
		Message:       "Hi Jane! I'd love a small fern on my forearm.",
		TattooSize:    "small",
		Placement:     "forearm",
		DepositAmount: 50,
	})
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if _, err := gw.UpdateClientBookingRequestStatus(ctx, req.ID, domain.RequestApproved); err != nil {
		return fmt.Errorf("approve request: %w", err)
	}
	if _, err := gw.CreateClientBookingRequest(ctx, &domain.ClientBookingRequest{
		GuestName:     "Riley Guest",
		GuestEmail:    "riley@example.com",
		ArtistID:      users["marco@inkspace.dev"].ID,
		StartDate:     "2026-12-01",
		EndDate:       "2026-12-02",
		Message:       "Looking for a traditional swallow piece.",
		Budget:        "$300",
		DepositAmount: 40,
	}); err != nil {
		return fmt.Errorf("create guest request: %w", err)
	}
	if _, err := gw.SetArtistAvailability(ctx, jane.ID, "2026-11-26", domain.Unavailable); err != nil {
		return fmt.Errorf("set availability: %w", err)
	}

	log.Info().Str("shop", shop.Name).Msg("seed completed")
	return nil
}
