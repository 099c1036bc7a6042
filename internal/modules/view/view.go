package view

import "strings"

type Page string

const (
	PageLanding         Page = "landing"
	PageSearch          Page = "search"
	PageProfile         Page = "profile"
	PageArtistDashboard Page = "artist-dashboard"
	PageDashboard       Page = "dashboard"
	PageAdmin           Page = "admin"
	PageBookings        Page = "bookings"
	PageSettings        Page = "settings"
	PageMessages        Page = "messages"
	PageOnboarding      Page = "onboarding"
)

type SearchMode string

const (
	SearchArtists SearchMode = "artists"
	SearchShops   SearchMode = "shops"
)

// Route is the page a client-side path renders.
type Route struct {
	Page           Page       `json:"page"`
	SearchMode     SearchMode `json:"searchMode,omitempty"`
	ConversationID string     `json:"conversationId,omitempty"`
}

var staticPages = map[string]Page{
	"profile":          PageProfile,
	"artist-dashboard": PageArtistDashboard,
	"dashboard":        PageDashboard,
	"admin":            PageAdmin,
	"bookings":         PageBookings,
	"settings":         PageSettings,
	"onboarding":       PageOnboarding,
}

// Resolve maps a path to its page. Unknown paths land on the landing page.
// Query strings, fragments and trailing slashes are ignored.
func Resolve(path string) Route {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })

	switch len(segments) {
	case 1:
		switch segments[0] {
		case "artists":
			return Route{Page: PageSearch, SearchMode: SearchArtists}
		case "shops":
			return Route{Page: PageSearch, SearchMode: SearchShops}
		case "messages":
			return Route{Page: PageMessages}
		}
		if page, ok := staticPages[segments[0]]; ok {
			return Route{Page: page}
		}
	case 2:
		if segments[0] == "messages" {
			return Route{Page: PageMessages, ConversationID: segments[1]}
		}
	}
	return Route{Page: PageLanding}
}
