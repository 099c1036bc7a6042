package store

import (
	"slices"

	"inkspace/internal/domain"
)

type ViewMode string

const (
	ViewArtist ViewMode = "artist"
	ViewClient ViewMode = "client"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast is the single transient message shown to the user.
type Toast struct {
	ID      int64     `json:"id"`
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

// Modal is the single open dialog, identified by kind.
type Modal struct {
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

// State is everything the view layer renders from.
type State struct {
	User                 *domain.User                  `json:"user"`
	Artists              []domain.Artist               `json:"artists"`
	Shops                []domain.Shop                 `json:"shops"`
	Booths               []domain.Booth                `json:"booths"`
	Bookings             []domain.Booking              `json:"bookings"`
	ClientRequests       []domain.ClientBookingRequest `json:"clientBookingRequests"`
	Availability         []domain.ArtistAvailability   `json:"artistAvailability"`
	VerificationRequests []domain.VerificationRequest  `json:"verificationRequests"`
	Notifications        []domain.Notification         `json:"notifications"`
	Conversations        []domain.Conversation         `json:"conversations"`
	ActiveConversationID string                        `json:"activeConversationId,omitempty"`
	Messages             []domain.Message              `json:"messages"`
	Loading              bool                          `json:"isLoading"`
	InitError            string                        `json:"initError,omitempty"`
	Toast                *Toast                        `json:"toast,omitempty"`
	Modal                *Modal                        `json:"modal,omitempty"`
	ViewMode             ViewMode                      `json:"viewMode"`
	Theme                Theme                         `json:"theme"`
}

func (st *State) clone() State {
	out := *st
	out.Artists = slices.Clone(st.Artists)
	out.Shops = slices.Clone(st.Shops)
	out.Booths = slices.Clone(st.Booths)
	out.Bookings = slices.Clone(st.Bookings)
	out.ClientRequests = slices.Clone(st.ClientRequests)
	out.Availability = slices.Clone(st.Availability)
	out.VerificationRequests = slices.Clone(st.VerificationRequests)
	out.Notifications = slices.Clone(st.Notifications)
	out.Conversations = slices.Clone(st.Conversations)
	out.Messages = slices.Clone(st.Messages)
	if st.Toast != nil {
		t := *st.Toast
		out.Toast = &t
	}
	if st.Modal != nil {
		m := *st.Modal
		out.Modal = &m
	}
	return out
}

func (st *State) artist(id string) *domain.Artist {
	for i := range st.Artists {
		if st.Artists[i].ID == id {
			return &st.Artists[i]
		}
	}
	return nil
}

func (st *State) shop(id string) *domain.Shop {
	for i := range st.Shops {
		if st.Shops[i].ID == id {
			return &st.Shops[i]
		}
	}
	return nil
}

func (st *State) booth(id string) *domain.Booth {
	for i := range st.Booths {
		if st.Booths[i].ID == id {
			return &st.Booths[i]
		}
	}
	return nil
}

func (st *State) booking(id string) *domain.Booking {
	for i := range st.Bookings {
		if st.Bookings[i].ID == id {
			return &st.Bookings[i]
		}
	}
	return nil
}

func (st *State) request(id string) *domain.ClientBookingRequest {
	for i := range st.ClientRequests {
		if st.ClientRequests[i].ID == id {
			return &st.ClientRequests[i]
		}
	}
	return nil
}

// upsert replaces the element with the same key or prepends v.
func upsert[T any](list []T, v T, key func(T) string) []T {
	k := key(v)
	for i := range list {
		if key(list[i]) == k {
			list[i] = v
			return list
		}
	}
	return append([]T{v}, list...)
}

func remove[T any](list []T, id string, key func(T) string) []T {
	return slices.DeleteFunc(list, func(v T) bool { return key(v) == id })
}

func artistKey(a domain.Artist) string { return a.ID }
func shopKey(s domain.Shop) string { return s.ID }
func boothKey(b domain.Booth) string { return b.ID }
func bookingKey(b domain.Booking) string { return b.ID }
func requestKey(r domain.ClientBookingRequest) string { return r.ID }
func availabilityKey(a domain.ArtistAvailability) string { return a.ArtistID + "|" + a.Date }
func verificationKey(v domain.VerificationRequest) string { return v.ID }
func conversationKey(c domain.Conversation) string { return c.ID }

func removeWhere[T any](list []T, match func(T) bool) []T {
	return slices.DeleteFunc(list, match)
}
