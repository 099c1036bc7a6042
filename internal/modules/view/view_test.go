package view

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Page: PageLanding}},
		{"", Route{Page: PageLanding}},
		{"/artists", Route{Page: PageSearch, SearchMode: SearchArtists}},
		{"/shops", Route{Page: PageSearch, SearchMode: SearchShops}},
		{"/shops/", Route{Page: PageSearch, SearchMode: SearchShops}},
		{"/profile", Route{Page: PageProfile}},
		{"/artist-dashboard", Route{Page: PageArtistDashboard}},
		{"/dashboard", Route{Page: PageDashboard}},
		{"/admin", Route{Page: PageAdmin}},
		{"/bookings", Route{Page: PageBookings}},
		{"/settings?tab=billing", Route{Page: PageSettings}},
		{"/messages", Route{Page: PageMessages}},
		{"/messages/conv-42", Route{Page: PageMessages, ConversationID: "conv-42"}},
		{"/onboarding", Route{Page: PageOnboarding}},
		{"/messages/conv-42/extra", Route{Page: PageLanding}},
		{"/profile/edit", Route{Page: PageLanding}},
		{"/nowhere", Route{Page: PageLanding}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path))
		})
	}
}

func TestHandler_Resolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler().RegisterPublicRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes/resolve?path=%2Fmessages%2Fc1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data Route `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, Route{Page: PageMessages, ConversationID: "c1"}, body.Data)
}
