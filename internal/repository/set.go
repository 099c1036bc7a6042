package repository

import "gorm.io/gorm"

// Set bundles every repository over one connection or transaction.
type Set struct {
	Profiles       *ProfileRepository
	Shops          *ShopRepository
	Booths         *BoothRepository
	Bookings       *BookingRepository
	ClientRequests *ClientRequestRepository
	Availability   *AvailabilityRepository
	Notifications  *NotificationRepository
	Chat           *ChatRepository
	Verifications  *VerificationRepository
	Stats          *StatsRepository
}

func NewSet(db *gorm.DB) *Set {
	return &Set{
		Profiles:       NewProfileRepository(db),
		Shops:          NewShopRepository(db),
		Booths:         NewBoothRepository(db),
		Bookings:       NewBookingRepository(db),
		ClientRequests: NewClientRequestRepository(db),
		Availability:   NewAvailabilityRepository(db),
		Notifications:  NewNotificationRepository(db),
		Chat:           NewChatRepository(db),
		Verifications:  NewVerificationRepository(db),
		Stats:          NewStatsRepository(db),
	}
}

// Models lists the row types owned by this package, for migrations.
func Models() []any {
	return []any{
		&profileRow{},
		&shopRow{},
		&boothRow{},
		&bookingRow{},
		&clientRequestRow{},
		&availabilityRow{},
		&notificationRow{},
		&conversationRow{},
		&messageRow{},
		&verificationRow{},
		&identityRow{},
	}
}
