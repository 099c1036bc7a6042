package domain

type SubscriptionTier string

const (
	TierFree SubscriptionTier = "free"
	TierPro  SubscriptionTier = "pro"
)

type PortfolioImage struct {
	URL           string `json:"url"`
	IsAIGenerated bool   `json:"isAiGenerated"`
}

type Socials struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	Website   string `json:"website,omitempty"`
}

type Service struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Duration      int     `json:"duration"` // minutes
	Price         float64 `json:"price"`
	DepositAmount float64 `json:"depositAmount"`
}

type TimeRange struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`
}

// WeeklyHours maps day of week (0 = Sunday .. 6 = Saturday) to ordered ranges.
type WeeklyHours map[int][]TimeRange

// IntakeFormSettings lists which client request fields the artist requires.
type IntakeFormSettings struct {
	RequireSize           bool `json:"requireSize"`
	RequirePlacement      bool `json:"requirePlacement"`
	RequireBudget         bool `json:"requireBudget"`
	RequireReferenceImage bool `json:"requireReferenceImage"`
}

type Artist struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Specialty        string              `json:"specialty"`
	City             string              `json:"city"`
	Bio              string              `json:"bio"`
	AvatarURL        string              `json:"avatarUrl,omitempty"`
	Portfolio        []PortfolioImage    `json:"portfolio"`
	IsVerified       bool                `json:"isVerified"`
	Socials          *Socials            `json:"socials,omitempty"`
	Services         []Service           `json:"services,omitempty"`
	Hours            WeeklyHours         `json:"hours,omitempty"`
	IntakeSettings   *IntakeFormSettings `json:"intakeSettings,omitempty"`
	SubscriptionTier SubscriptionTier    `json:"subscriptionTier"`
}

// ReplacePortfolioURL substitutes oldURL with newURL in place, keeping order.
// Reports whether a match was found.
func (a *Artist) ReplacePortfolioURL(oldURL, newURL string) bool {
	found := false
	for i := range a.Portfolio {
		if a.Portfolio[i].URL == oldURL {
			a.Portfolio[i].URL = newURL
			a.Portfolio[i].IsAIGenerated = false
			found = true
		}
	}
	return found
}
