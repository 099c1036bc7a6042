package admin

import "inkspace/internal/domain"

type StatisticsResponse struct {
	TotalUsers           int     `json:"totalUsers"`
	TotalArtists         int     `json:"totalArtists"`
	TotalClients         int     `json:"totalClients"`
	TotalShopOwners      int     `json:"totalShopOwners"`
	TotalShops           int     `json:"totalShops"`
	VerifiedShops        int     `json:"verifiedShops"`
	TotalBooths          int     `json:"totalBooths"`
	TotalBookings        int     `json:"totalBookings"`
	BookingsThisMonth    int     `json:"bookingsThisMonth"`
	TotalRequests        int     `json:"totalRequests"`
	PendingRequests      int     `json:"pendingRequests"`
	PendingVerifications int     `json:"pendingVerifications"`
	PlatformRevenue      float64 `json:"platformRevenue"`
}

type VerificationListResponse struct {
	Verifications []domain.VerificationRequest `json:"verifications"`
	Total         int                          `json:"total"`
	Page          int                          `json:"page"`
	Limit         int                          `json:"limit"`
}
