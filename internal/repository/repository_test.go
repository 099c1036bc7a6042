package repository

import (
	"context"
	"testing"
	"time"

	"inkspace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

var created = time.Date(2024, 8, 1, 9, 30, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

// sameInstant checks the stored timestamp and then aligns got with want so
// the remaining fields can be compared as a whole.
func sameInstant(t *testing.T, want time.Time, got *time.Time) {
	t.Helper()
	assert.True(t, want.Equal(*got), "want %s, got %s", want, *got)
	*got = want
}

func intPtr(v int) *int { return &v }

func seedPeople(t *testing.T, set *Set) (artist, client *domain.User) {
	t.Helper()
	ctx := context.Background()
	artist = domain.NewArtistUser("artist-1", "jane@ink.test", &domain.Artist{Name: "Jane Doe"})
	client = domain.NewClientUser("client-1", "sam@ink.test", &domain.ClientProfile{Name: "Sam Client"})
	require.NoError(t, set.Profiles.Create(ctx, artist))
	require.NoError(t, set.Profiles.Create(ctx, client))
	return artist, client
}

func TestRoundTrip_Artist(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()

	want := domain.Artist{
		Name:      "Mara Vance",
		Specialty: "Blackwork",
		City:      "Portland",
		Bio:       "Bold lines.",
		AvatarURL: "https://cdn.test/mara/avatar.png",
		Portfolio: []domain.PortfolioImage{
			{URL: "https://cdn.test/mara/1.png"},
			{URL: "https://cdn.test/mara/2.png", IsAIGenerated: true},
		},
		IsVerified: true,
		Socials:    &domain.Socials{Instagram: "@mara", TikTok: "@mara.ink", Website: "https://mara.ink"},
		Services: []domain.Service{
			{ID: "svc-1", Name: "Flash", Duration: 90, Price: 180, DepositAmount: 50},
		},
		Hours: domain.WeeklyHours{
			1: {{Start: "10:00", End: "14:00"}, {Start: "15:00", End: "19:00"}},
			6: {{Start: "12:00", End: "16:00"}},
		},
		IntakeSettings:   &domain.IntakeFormSettings{RequireSize: true, RequireBudget: true},
		SubscriptionTier: domain.TierPro,
	}
	artist := want
	u := domain.NewArtistUser("artist-9", "MARA@ink.test ", &artist)
	require.NoError(t, set.Profiles.Create(ctx, u))

	got, err := set.Profiles.GetArtist(ctx, "artist-9")
	require.NoError(t, err)
	want.ID = "artist-9"
	assert.Equal(t, &want, got)

	stored, err := set.Profiles.GetByID(ctx, "artist-9")
	require.NoError(t, err)
	assert.Equal(t, "mara@ink.test", stored.Email)
	assert.Equal(t, domain.RoleArtist, stored.Role)
}

func TestUpdateArtist_KeepsPortfolioVerificationAndTier(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()
	u := domain.NewArtistUser("artist-1", "jane@ink.test", &domain.Artist{
		Name:      "Jane",
		Portfolio: []domain.PortfolioImage{{URL: "https://cdn.test/a.png"}},
	})
	require.NoError(t, set.Profiles.Create(ctx, u))

	require.NoError(t, set.Profiles.UpdateArtist(ctx, &domain.Artist{
		ID:               "artist-1",
		Name:             "Jane D.",
		IsVerified:       true,
		SubscriptionTier: domain.TierPro,
	}))

	got, err := set.Profiles.GetArtist(ctx, "artist-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", got.Name)
	assert.False(t, got.IsVerified)
	assert.Equal(t, domain.TierFree, got.SubscriptionTier)
	assert.Len(t, got.Portfolio, 1)

	require.NoError(t, set.Profiles.SetSubscriptionTier(ctx, "artist-1", domain.TierPro))
	require.NoError(t, set.Profiles.SetVerified(ctx, "artist-1", true))
	got, err = set.Profiles.GetArtist(ctx, "artist-1")
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Equal(t, domain.TierPro, got.SubscriptionTier)
}

func TestRoundTrip_ShopAndBooth(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()

	want := domain.Shop{
		Name:      "Black Anchor",
		Location:  "Austin, TX",
		Address:   "12 Congress Ave",
		Lat:       30.267153,
		Lng:       -97.743057,
		Amenities: []string{"wifi", "parking"},
		Rating:    4.5,
		Image:     "https://cdn.test/shop.png",
		Reviews: []domain.Review{
			{ID: "rev-1", AuthorID: "client-1", AuthorName: "Sam", Rating: 5, Text: "Clean", CreatedAt: created},
			{ID: "rev-2", AuthorID: "client-2", AuthorName: "Ana", Rating: 4, Text: "Busy", CreatedAt: created.Add(time.Hour)},
		},
		PaymentMethods: &domain.PaymentMethods{PayPal: "pp@shop", Venmo: "@anchor", CashApp: "$anchor", Other: "cash"},
		IsVerified:     true,
		OwnerID:        "owner-1",
	}
	shop := want
	require.NoError(t, set.Shops.Create(ctx, &shop))

	got, err := set.Shops.GetByID(ctx, shop.ID)
	require.NoError(t, err)
	want.ID = shop.ID
	assert.Equal(t, &want, got)

	booth := domain.Booth{ShopID: shop.ID, Name: "Front", DailyRate: 150.5}
	require.NoError(t, set.Booths.Create(ctx, &booth))
	gotBooth, err := set.Booths.GetByID(ctx, booth.ID)
	require.NoError(t, err)
	assert.Equal(t, &booth, gotBooth)
}

func TestRoundTrip_Booking(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()

	want := domain.Booking{
		ArtistID:      "artist-1",
		BoothID:       "booth-1",
		ShopID:        "shop-1",
		StartDate:     "2024-09-01",
		EndDate:       "2024-09-03",
		PaymentStatus: domain.PaymentPaid,
		TotalAmount:   450,
		PlatformFee:   45,
		CreatedAt:     created,
	}
	b := want
	require.NoError(t, set.Bookings.Create(ctx, &b))

	got, err := set.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	want.ID = b.ID
	sameInstant(t, want.CreatedAt, &got.CreatedAt)
	assert.Equal(t, &want, got)
}

func TestRoundTrip_ClientBookingRequest(t *testing.T) {
	cases := []struct {
		name       string
		req        domain.ClientBookingRequest
		clientName string
	}{
		{
			name: "signed in client with review",
			req: domain.ClientBookingRequest{
				ArtistID:          "artist-1",
				StartDate:         "2024-09-01",
				EndDate:           "2024-09-02",
				PreferredTime:     "afternoon",
				Message:           "Small rose",
				TattooSize:        "small",
				Placement:         "wrist",
				Budget:            "$200",
				ReferenceImageURL: "https://cdn.test/ref.png",
				Status:            domain.RequestCompleted,
				PaymentStatus:     domain.PaymentPaid,
				DepositAmount:     100,
				PlatformFee:       2.9,
				ReviewRating:      intPtr(4),
				ReviewText:        "Lovely work",
				CreatedAt:         created,
			},
			clientName: "Sam Client",
		},
		{
			name: "signed in client without review",
			req: domain.ClientBookingRequest{
				ArtistID:      "artist-1",
				StartDate:     "2024-09-05",
				EndDate:       "2024-09-05",
				Message:       "Cover up",
				Status:        domain.RequestPending,
				PaymentStatus: domain.PaymentUnpaid,
				DepositAmount: 50,
				CreatedAt:     created,
			},
			clientName: "Sam Client",
		},
		{
			name: "guest",
			req: domain.ClientBookingRequest{
				GuestName:     "Walk In",
				GuestEmail:    "walkin@ink.test",
				ArtistID:      "artist-1",
				StartDate:     "2024-09-07",
				EndDate:       "2024-09-07",
				Message:       "Any openings?",
				Status:        domain.RequestPending,
				PaymentStatus: domain.PaymentUnpaid,
				CreatedAt:     created,
			},
			clientName: "Walk In",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := NewSet(openTestDB(t))
			ctx := context.Background()
			_, client := seedPeople(t, set)

			want := tc.req
			if want.GuestName == "" {
				want.ClientID = &client.ID
			}
			req := want
			require.NoError(t, set.ClientRequests.Create(ctx, &req))

			got, err := set.ClientRequests.GetByID(ctx, req.ID)
			require.NoError(t, err)
			want.ID = req.ID
			want.ClientName = tc.clientName
			want.ArtistName = "Jane Doe"
			sameInstant(t, want.CreatedAt, &got.CreatedAt)
			assert.Equal(t, &want, got)
		})
	}
}

func TestRoundTrip_AvailabilityAndNotification(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()

	av := domain.ArtistAvailability{ArtistID: "artist-1", Date: "2024-09-10", Status: domain.Unavailable}
	require.NoError(t, set.Availability.Upsert(ctx, &av))
	list, err := set.Availability.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, av, list[0])

	want := domain.Notification{UserID: "client-1", Message: "Your request was approved.", Read: true, CreatedAt: created}
	n := want
	require.NoError(t, set.Notifications.Create(ctx, &n))
	notes, err := set.Notifications.ListByUser(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	want.ID = n.ID
	sameInstant(t, want.CreatedAt, &notes[0].CreatedAt)
	assert.Equal(t, want, notes[0])
}

func TestRoundTrip_MessageWithAttachment(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()

	conv := domain.Conversation{Participant1ID: "artist-1", Participant2ID: "client-1", CreatedAt: created}
	require.NoError(t, set.Chat.CreateConversation(ctx, &conv))
	gotConv, err := set.Chat.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	sameInstant(t, conv.CreatedAt, &gotConv.CreatedAt)
	assert.Equal(t, conv.Participant1ID, gotConv.Participant1ID)
	assert.Equal(t, conv.Participant2ID, gotConv.Participant2ID)

	want := domain.Message{
		ConversationID: conv.ID,
		SenderID:       "client-1",
		Content:        "Here is the reference",
		AttachmentURL:  "https://cdn.test/client-1/ref.pdf",
		AttachmentType: "application/pdf",
		CreatedAt:      created,
	}
	msg := want
	require.NoError(t, set.Chat.CreateMessage(ctx, &msg))

	msgs, err := set.Chat.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	want.ID = msg.ID
	sameInstant(t, want.CreatedAt, &msgs[0].CreatedAt)
	assert.Equal(t, want, msgs[0])
}

func TestRoundTrip_VerificationRequest(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()
	seedPeople(t, set)
	shop := domain.Shop{Name: "Black Anchor", OwnerID: "owner-1"}
	require.NoError(t, set.Shops.Create(ctx, &shop))

	cases := []struct {
		name string
		req  domain.VerificationRequest
		item string
	}{
		{"profile", domain.VerificationRequest{ItemID: "artist-1", ItemType: domain.VerifyProfile, Status: domain.VerificationPending, CreatedAt: created}, "Jane Doe"},
		{"shop", domain.VerificationRequest{ItemID: shop.ID, ItemType: domain.VerifyShop, Status: domain.VerificationRejected, CreatedAt: created}, "Black Anchor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.req
			v := want
			require.NoError(t, set.Verifications.Create(ctx, &v))

			got, err := set.Verifications.GetByID(ctx, v.ID)
			require.NoError(t, err)
			want.ID = v.ID
			want.ItemName = tc.item
			sameInstant(t, want.CreatedAt, &got.CreatedAt)
			assert.Equal(t, &want, got)
		})
	}
}

func TestStatsCounts_RevenueSumsBookingCutAndDepositCardFee(t *testing.T) {
	set := NewSet(openTestDB(t))
	ctx := context.Background()
	_, client := seedPeople(t, set)

	require.NoError(t, set.Bookings.Create(ctx, &domain.Booking{
		ArtistID: "artist-1", BoothID: "booth-1", ShopID: "shop-1",
		StartDate: "2024-09-01", EndDate: "2024-09-02",
		PaymentStatus: domain.PaymentPaid, TotalAmount: 300, PlatformFee: 30, CreatedAt: created,
	}))
	require.NoError(t, set.Bookings.Create(ctx, &domain.Booking{
		ArtistID: "artist-1", BoothID: "booth-1", ShopID: "shop-1",
		StartDate: "2024-09-05", EndDate: "2024-09-05",
		TotalAmount: 150, PlatformFee: 15, CreatedAt: created,
	}))

	req := domain.ClientBookingRequest{ClientID: &client.ID, ArtistID: "artist-1", StartDate: "2024-09-01", EndDate: "2024-09-01", DepositAmount: 100}
	require.NoError(t, set.ClientRequests.Create(ctx, &req))
	require.NoError(t, set.ClientRequests.MarkPaid(ctx, req.ID, 2.9))

	counts, err := set.Stats.Counts(ctx, created)
	require.NoError(t, err)
	assert.InDelta(t, 32.9, counts.PlatformRevenue, 1e-9)
	assert.Equal(t, int64(2), counts.Bookings)
	assert.Equal(t, int64(2), counts.BookingsSince)
	assert.Equal(t, int64(1), counts.ClientRequests)
}
