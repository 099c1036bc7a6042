package domain

import "time"

type Review struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"author"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PaymentMethods holds free-form contact handles the shop accepts payment through.
type PaymentMethods struct {
	PayPal  string `json:"paypal,omitempty"`
	Venmo   string `json:"venmo,omitempty"`
	CashApp string `json:"cashapp,omitempty"`
	Other   string `json:"other,omitempty"`
}

type Shop struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	Address        string          `json:"address"`
	Lat            float64         `json:"lat"`
	Lng            float64         `json:"lng"`
	Amenities      []string        `json:"amenities"`
	Rating         float64         `json:"rating"`
	Image          string          `json:"imageUrl"`
	Reviews        []Review        `json:"reviews"`
	PaymentMethods *PaymentMethods `json:"paymentMethods,omitempty"`
	IsVerified     bool            `json:"isVerified"`
	OwnerID        string          `json:"ownerId"`
}

// AverageRating is the plain arithmetic mean of all review ratings.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

type Booth struct {
	ID        string  `json:"id"`
	ShopID    string  `json:"shopId"`
	Name      string  `json:"name"`
	DailyRate float64 `json:"dailyRate"`
}
