package view

import (
	"net/http"

	"inkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/routes/resolve", h.Resolve)
}

// Resolve tells the client which page a path renders.
// @Summary		Resolve a client route
// @Tags		Routes
// @Param		path	query	string	true	"Path"
// @Success		200	{object}	map[string]interface{}
// @Router		/routes/resolve [GET]
func (h *Handler) Resolve(c *gin.Context) {
	response.Success(c, http.StatusOK, Resolve(c.Query("path")))
}
