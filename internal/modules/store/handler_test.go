package store

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkspace/internal/domain"
	"inkspace/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type fakeProfiles map[string]*domain.User

func (f fakeProfiles) GetProfile(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

// setupRouter signs every request in as user, the way JWTAuth would.
func setupRouter(t *testing.T, user *domain.User) (*gin.Engine, *MockGateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := new(MockGateway)
	gw.On("FetchInitialData", mock.Anything).Return(fixtureData(), nil).Maybe()
	gw.On("FetchNotifications", mock.Anything, mock.Anything).Return([]domain.Notification{}, nil).Maybe()
	gw.On("FetchConversations", mock.Anything, mock.Anything).Return([]domain.Conversation{}, nil).Maybe()

	reg := NewRegistry(gw, nil, nil, nil, Options{PollInterval: time.Hour, ToastDuration: time.Hour})
	t.Cleanup(reg.CloseAll)
	h := NewHandler(reg, fakeProfiles{"artist-1": artistUser()})

	router := gin.New()
	v1 := router.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	protected := v1.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Set("token", "token-"+user.ID)
		c.Next()
	})
	h.RegisterProtectedRoutes(protected)
	h.RegisterAdminRoutes(protected.Group("/admin"))
	return router, gw
}

func performRequest(router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var env envelope
	_ = json.Unmarshal(resp.Body.Bytes(), &env)
	return resp, env
}

func TestHandler_GetState(t *testing.T) {
	router, _ := setupRouter(t, artistUser())

	resp, env := performRequest(router, http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, env.Success)

	var st State
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Len(t, st.Booths, 1)
	assert.Equal(t, ViewArtist, st.ViewMode)
	assert.Equal(t, "artist-1", st.User.ID)
}

func TestHandler_BookBooth(t *testing.T) {
	router, gw := setupRouter(t, artistUser())
	gw.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&domain.Booking{ID: "bk-1", TotalAmount: 1200, PlatformFee: 120}, nil)

	resp, env := performRequest(router, http.MethodPost, "/api/v1/bookings", BookBoothRequest{
		BoothID: "booth-1", StartDate: "2024-08-10", EndDate: "2024-08-17",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var booking domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, 1200.0, booking.TotalAmount)
}

func TestHandler_ValidationError(t *testing.T) {
	router, _ := setupRouter(t, artistUser())

	resp, env := performRequest(router, http.MethodPost, "/api/v1/bookings", BookBoothRequest{
		BoothID: "booth-1", StartDate: "10/08/2024", EndDate: "2024-08-17",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "isodate", env.Error.Details["startDate"])
}

func TestHandler_ForbiddenAction(t *testing.T) {
	router, _ := setupRouter(t, clientUser())

	resp, env := performRequest(router, http.MethodPost, "/api/v1/requests/req-1/approve", nil)
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestHandler_AdminVerificationRoutes(t *testing.T) {
	router, gw := setupRouter(t, adminUser())
	gw.On("RejectVerification", mock.Anything, "v-1").
		Return(&domain.VerificationRequest{ID: "v-1", Status: domain.VerificationRejected}, nil)

	resp, _ := performRequest(router, http.MethodPost, "/api/v1/admin/verifications/v-1/reject", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHandler_GuestRequest(t *testing.T) {
	router, gw := setupRouter(t, clientUser())
	gw.On("CreateClientBookingRequest", mock.Anything, mock.MatchedBy(func(r *domain.ClientBookingRequest) bool {
		return r.ClientID == nil && r.GuestEmail == "guest@example.com"
	})).Return(&domain.ClientBookingRequest{ID: "req-g", ArtistID: "artist-1", Status: domain.RequestPending}, nil)

	resp, _ := performRequest(router, http.MethodPost, "/api/v1/requests/guest", RequestInput{
		ArtistID: "artist-1", StartDate: "2024-09-01", Message: "Hi", GuestName: "Guest", GuestEmail: "guest@example.com",
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp, env := performRequest(router, http.MethodPost, "/api/v1/requests/guest", RequestInput{
		ArtistID: "artist-1", StartDate: "2024-09-01", Message: "Hi",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	resp, _ = performRequest(router, http.MethodPost, "/api/v1/requests/guest", RequestInput{
		ArtistID: "missing", StartDate: "2024-09-01", Message: "Hi", GuestName: "Guest", GuestEmail: "guest@example.com",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_SendMessageNeedsOpenConversation(t *testing.T) {
	router, _ := setupRouter(t, clientUser())

	resp, env := performRequest(router, http.MethodPost, "/api/v1/conversations/conv-1/messages", SendMessageRequest{Content: "hi"})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}
