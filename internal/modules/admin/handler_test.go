package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkspace/internal/domain"
	"inkspace/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(stats *MockStatsRepository, verifications *MockVerificationRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(stats, verifications)).RegisterRoutes(router.Group("/admin"))
	return router
}

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_GetStatistics(t *testing.T) {
	stats := new(MockStatsRepository)
	stats.On("Counts", mock.Anything, mock.Anything).Return(&repository.PlatformCounts{Shops: 2, PlatformRevenue: 10}, nil)

	w := performRequest(setupRouter(stats, nil), http.MethodGet, "/admin/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool               `json:"success"`
		Data    StatisticsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Data.TotalShops)
	assert.Equal(t, 10.0, body.Data.PlatformRevenue)
}

func TestHandler_GetStatistics_Error(t *testing.T) {
	stats := new(MockStatsRepository)
	stats.On("Counts", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	w := performRequest(setupRouter(stats, nil), http.MethodGet, "/admin/stats")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestHandler_GetPendingVerifications_ParsesQuery(t *testing.T) {
	repo := new(MockVerificationRepository)
	repo.On("ListByStatus", mock.Anything, domain.VerificationPending, 5, 5).
		Return([]domain.VerificationRequest{{ID: "v-1", ItemName: "Black Anchor"}}, int64(6), nil)

	w := performRequest(setupRouter(nil, repo), http.MethodGet, "/admin/verifications/pending?page=2&limit=5")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data VerificationListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Data.Total)
	assert.Equal(t, 2, body.Data.Page)
	require.Len(t, body.Data.Verifications, 1)
	assert.Equal(t, "v-1", body.Data.Verifications[0].ID)
	repo.AssertExpectations(t)
}
