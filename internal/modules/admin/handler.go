package admin

import (
	"net/http"
	"strconv"

	"inkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects a group already guarded by AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.GetStatistics)
	admin.GET("/verifications/pending", h.GetPendingVerifications)
}

// GetStatistics returns platform totals and fee revenue.
// @Summary		Platform statistics
// @Tags		Admin
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/admin/stats [GET]
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("admin statistics failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// @Summary		Pending verification requests
// @Tags		Admin
// @Security	BearerAuth
// @Param		page	query	int	false	"Page"	default(1)
// @Param		limit	query	int	false	"Page size"	default(20)
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/admin/verifications/pending [GET]
func (h *Handler) GetPendingVerifications(c *gin.Context) {
	page := parseIntDefault(c.Query("page"), 1)
	limit := parseIntDefault(c.Query("limit"), defaultLimit)

	list, err := h.service.GetPendingVerifications(c.Request.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("pending verifications failed")
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to load verification requests")
		return
	}

	response.Success(c, http.StatusOK, list)
}

func parseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
