package auth

import (
	"errors"
	"net/http"

	"inkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes sign-in, sign-up and session lookup over HTTP.
type Handler struct {
	service  *Service
	onLogout []func(token string)
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// OnLogout registers fn to run after a session was signed out.
func (h *Handler) OnLogout(fn func(token string)) {
	h.onLogout = append(h.onLogout, fn)
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.GetMe)
		authGroup.POST("/logout", h.Logout)
	}
}

// Register creates an account and signs it in.
// @Summary		Create an account
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	session, err := h.service.Register(c.Request.Context(), req)
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, session)
	case errors.Is(err, ErrInvalidRegistration):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
	case errors.Is(err, ErrInconsistentAccount):
		response.Error(c, http.StatusInternalServerError, "ACCOUNT_INCONSISTENT", "Account could not be created cleanly, contact support")
	default:
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
	}
}

// Login signs in with email and password.
// @Summary		Sign in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to sign in")
		return
	}
	response.Success(c, http.StatusOK, session)
}

// GetMe returns the user behind the session token.
// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetString("token"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session is not valid")
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Logout ends the session.
// @Summary		Sign out
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to sign out")
		return
	}
	for _, fn := range h.onLogout {
		fn(token)
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Signed out"})
}
