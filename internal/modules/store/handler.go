package store

import (
	"context"
	"errors"
	"io"
	"net/http"

	"inkspace/internal/domain"
	"inkspace/internal/middleware"
	"inkspace/internal/modules/ai"
	"inkspace/internal/modules/gateway"
	"inkspace/internal/pkg/response"
	"inkspace/internal/pkg/validator"
	"inkspace/internal/storage"

	"github.com/gin-gonic/gin"
)

// ProfileLookup resolves an artist for guest requests, which have no session.
type ProfileLookup interface {
	GetProfile(ctx context.Context, id string) (*domain.User, error)
}

// Handler exposes the session store over HTTP. Every action endpoint returns
// the action's result; GET /state returns the whole snapshot.
type Handler struct {
	registry *Registry
	profiles ProfileLookup
}

func NewHandler(registry *Registry, profiles ProfileLookup) *Handler {
	return &Handler{registry: registry, profiles: profiles}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/requests/guest", h.SubmitGuestRequest)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/state", h.GetState)
	protected.POST("/state/retry", h.Retry)

	ui := protected.Group("/ui")
	{
		ui.POST("/toast/dismiss", h.DismissToast)
		ui.POST("/modal", h.OpenModal)
		ui.DELETE("/modal", h.CloseModal)
		ui.PUT("/view-mode", h.SetViewMode)
		ui.PUT("/theme", h.SetTheme)
	}

	protected.POST("/bookings", h.BookBooth)
	protected.POST("/bookings/:id/pay", h.PayBooking)

	requests := protected.Group("/requests")
	{
		requests.POST("", h.CreateClientRequest)
		requests.POST("/:id/approve", h.ApproveRequest)
		requests.POST("/:id/decline", h.DeclineRequest)
		requests.POST("/:id/complete", h.CompleteRequest)
		requests.POST("/:id/reschedule", h.RescheduleRequest)
		requests.GET("/:id/deposit", h.QuoteDeposit)
		requests.POST("/:id/deposit", h.PayDeposit)
		requests.POST("/:id/review", h.SubmitReview)
	}

	artists := protected.Group("/artists/:id")
	{
		artists.PUT("", h.UpdateArtistProfile)
		artists.POST("/portfolio", h.UploadPortfolioImage)
		artists.PUT("/portfolio", h.ReplacePortfolioImage)
		artists.DELETE("/portfolio", h.DeletePortfolioImage)
		artists.PUT("/availability", h.SetAvailability)
	}
	protected.POST("/bio/draft", h.GenerateBio)

	shops := protected.Group("/shops")
	{
		shops.POST("", h.CreateShop)
		shops.PUT("/:id", h.UpdateShop)
		shops.DELETE("/:id", h.DeleteShop)
		shops.POST("/:id/reviews", h.AddShopReview)
		shops.POST("/:id/booths", h.CreateBooth)
	}
	protected.PUT("/booths/:id", h.UpdateBooth)
	protected.DELETE("/booths/:id", h.DeleteBooth)

	protected.GET("/notifications", h.FetchNotifications)
	protected.POST("/notifications/read", h.MarkNotificationsAsRead)

	conversations := protected.Group("/conversations")
	{
		conversations.GET("", h.LoadConversations)
		conversations.POST("", h.StartConversation)
		conversations.GET("/:id/messages", h.OpenConversation)
		conversations.POST("/:id/messages", h.SendMessage)
		conversations.DELETE("/active", h.CloseConversation)
	}

	protected.POST("/verifications", h.RequestVerification)
}

// RegisterAdminRoutes expects the group to be guarded by an admin check.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/verifications/:id/approve", h.ApproveVerification)
	admin.POST("/verifications/:id/reject", h.RejectVerification)
	admin.PUT("/artists/:id/tier", h.SetSubscriptionTier)
}

// CloseSession ends the store of a signed-out session.
func (h *Handler) CloseSession(token string) {
	h.registry.Close(token)
}

// session returns the caller's store, opening it on first use.
func (h *Handler) session(c *gin.Context) (*Store, bool) {
	user := middleware.CurrentUser(c)
	token := c.GetString("token")
	if user == nil || token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return nil, false
	}
	// Initialization errors are part of the state and reported by GET /state.
	s, _ := h.registry.Open(c.Request.Context(), token, user)
	return s, true
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if fields := validator.Validate(dst); fields != nil {
		response.ValidationError(c, fields)
		return false
	}
	return true
}

// writeError maps an action error to a status code. The message is the one
// the toast shows.
func writeError(c *gin.Context, err error) {
	msg := userMessage(err, "Request failed")
	switch {
	case errors.Is(err, ErrForbidden), errors.Is(err, gateway.ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", msg)
	case errors.Is(err, ErrNotFound), errors.Is(err, gateway.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", userMessage(err, "Not found"))
	case errors.Is(err, ErrMissingIntakeField),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrInvalidPreference),
		errors.Is(err, gateway.ErrInvalidInput),
		errors.Is(err, gateway.ErrInvalidStatus),
		errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", userMessage(err, "Invalid input"))
	case errors.Is(err, gateway.ErrInvalidTransition),
		errors.Is(err, gateway.ErrAlreadyPaid),
		errors.Is(err, gateway.ErrReviewNotAllowed),
		errors.Is(err, gateway.ErrReviewAlreadySubmitted),
		errors.Is(err, gateway.ErrShopHasBookings),
		errors.Is(err, gateway.ErrBoothHasBookings),
		errors.Is(err, gateway.ErrImageNotInPortfolio),
		errors.Is(err, ErrNoConversation):
		response.Error(c, http.StatusConflict, "CONFLICT", userMessage(err, "Conflicting state"))
	case errors.Is(err, ai.ErrNotConfigured):
		response.Error(c, http.StatusServiceUnavailable, "FEATURE_UNAVAILABLE", msg)
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", msg)
	}
}

func readUpload(c *gin.Context) (storage.Upload, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "File is required")
		return storage.Upload{}, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "File could not be read")
		return storage.Upload{}, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, storage.MaxObjectSize+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "File could not be read")
		return storage.Upload{}, false
	}
	return storage.Upload{Filename: fh.Filename, Data: data}, true
}

// @Summary		Current session state
// @Tags		Session
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/state [GET]
func (h *Handler) GetState(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, s.Snapshot())
}

// @Summary		Retry loading the session
// @Tags		Session
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/state/retry [POST]
func (h *Handler) Retry(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Retry(c.Request.Context()); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "INIT_FAILED", s.Snapshot().InitError)
		return
	}
	response.Success(c, http.StatusOK, s.Snapshot())
}

// @Summary		Dismiss the toast
// @Tags		UI
// @Security	BearerAuth
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/ui/toast/dismiss [POST]
func (h *Handler) DismissToast(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.DismissToast()
	c.Status(http.StatusNoContent)
}

// @Summary		Open a modal
// @Tags		UI
// @Security	BearerAuth
// @Param		request	body	ModalRequest	true	"Request body"
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/ui/modal [POST]
func (h *Handler) OpenModal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ModalRequest
	if !bind(c, &req) {
		return
	}
	s.OpenModal(req.Kind, req.Payload)
	c.Status(http.StatusNoContent)
}

// @Summary		Close the modal
// @Tags		UI
// @Security	BearerAuth
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/ui/modal [DELETE]
func (h *Handler) CloseModal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.CloseModal()
	c.Status(http.StatusNoContent)
}

// @Summary		Switch view mode
// @Tags		UI
// @Security	BearerAuth
// @Param		request	body	ViewModeRequest	true	"Request body"
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/ui/view-mode [PUT]
func (h *Handler) SetViewMode(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ViewModeRequest
	if !bind(c, &req) {
		return
	}
	if err := s.SetViewMode(req.Mode); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Set the theme
// @Tags		UI
// @Security	BearerAuth
// @Param		request	body	ThemeRequest	true	"Request body"
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/ui/theme [PUT]
func (h *Handler) SetTheme(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ThemeRequest
	if !bind(c, &req) {
		return
	}
	if err := s.SetTheme(req.Theme); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Book a booth
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	BookBoothRequest	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/bookings [POST]
func (h *Handler) BookBooth(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req BookBoothRequest
	if !bind(c, &req) {
		return
	}
	booking, err := s.BookBooth(c.Request.Context(), req.BoothID, req.StartDate, req.EndDate)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

// @Summary		Pay a booth booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/bookings/{id}/pay [POST]
func (h *Handler) PayBooking(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	booking, err := s.PayBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

// @Summary		Request a session with an artist
// @Tags		Requests
// @Security	BearerAuth
// @Param		request	body	RequestInput	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests [POST]
func (h *Handler) CreateClientRequest(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req RequestInput
	if !bind(c, &req) {
		return
	}
	created, err := s.CreateClientRequest(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// SubmitGuestRequest takes a request from someone without an account.
// @Summary		Guest session request
// @Tags		Requests
// @Param		request	body	RequestInput	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Router		/requests/guest [POST]
func (h *Handler) SubmitGuestRequest(c *gin.Context) {
	var req RequestInput
	if !bind(c, &req) {
		return
	}
	if req.GuestName == "" || req.GuestEmail == "" {
		response.ValidationError(c, map[string]string{"guestName": "required", "guestEmail": "required"})
		return
	}
	artist, err := h.profiles.GetProfile(c.Request.Context(), req.ArtistID)
	if err != nil || artist.Artist == nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Artist not found")
		return
	}
	created, err := SubmitGuestRequest(c.Request.Context(), h.registry.gw, artist.Artist.IntakeSettings, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// @Summary		Approve a request
// @Tags		Requests
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests/{id}/approve [POST]
func (h *Handler) ApproveRequest(c *gin.Context) {
	h.requestAction(c, (*Store).ApproveRequest)
}

// @Summary		Decline a request
// @Tags		Requests
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests/{id}/decline [POST]
func (h *Handler) DeclineRequest(c *gin.Context) {
	h.requestAction(c, (*Store).DeclineRequest)
}

// @Summary		Complete a request
// @Tags		Requests
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests/{id}/complete [POST]
func (h *Handler) CompleteRequest(c *gin.Context) {
	h.requestAction(c, (*Store).CompleteRequest)
}

func (h *Handler) requestAction(c *gin.Context, fn func(*Store, context.Context, string) (*domain.ClientBookingRequest, error)) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	updated, err := fn(s, c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Reschedule a request
// @Tags		Requests
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	RescheduleRequest	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests/{id}/reschedule [POST]
func (h *Handler) RescheduleRequest(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req RescheduleRequest
	if !bind(c, &req) {
		return
	}
	updated, err := s.RescheduleRequest(c.Request.Context(), c.Param("id"), req.StartDate, req.EndDate, req.PreferredTime)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Quote the deposit charge
// @Tags		Requests
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests/{id}/deposit [GET]
func (h *Handler) QuoteDeposit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	charge, err := s.QuoteDeposit(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, charge)
}

// @Summary		Pay the deposit
// @Tags		Requests
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests/{id}/deposit [POST]
func (h *Handler) PayDeposit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	paid, charge, err := s.PayDeposit(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, PayDepositResponse{Request: paid, Charge: charge})
}

// @Summary		Review a completed appointment
// @Tags		Requests
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	ReviewRequest	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/requests/{id}/review [POST]
func (h *Handler) SubmitReview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if !bind(c, &req) {
		return
	}
	reviewed, err := s.SubmitReview(c.Request.Context(), c.Param("id"), req.Rating, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviewed)
}

// @Summary		Update an artist profile
// @Tags		Artists
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	domain.Artist	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/artists/{id} [PUT]
func (h *Handler) UpdateArtistProfile(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req domain.Artist
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.ID = c.Param("id")
	updated, err := s.UpdateArtistProfile(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Add a portfolio image
// @Tags		Artists
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		file	formData	file	true	"Image"
// @Param		aiGenerated	formData	bool	false	"AI generated"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/artists/{id}/portfolio [POST]
func (h *Handler) UploadPortfolioImage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	file, ok := readUpload(c)
	if !ok {
		return
	}
	aiGenerated := c.PostForm("aiGenerated") == "true"
	updated, err := s.UploadPortfolioImage(c.Request.Context(), c.Param("id"), file, aiGenerated)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, updated)
}

// @Summary		Replace a portfolio image
// @Tags		Artists
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		oldUrl	formData	string	true	"Image to replace"
// @Param		file	formData	file	true	"Image"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/artists/{id}/portfolio [PUT]
func (h *Handler) ReplacePortfolioImage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	oldURL := c.PostForm("oldUrl")
	if oldURL == "" {
		response.ValidationError(c, map[string]string{"oldUrl": "required"})
		return
	}
	file, ok := readUpload(c)
	if !ok {
		return
	}
	updated, err := s.ReplacePortfolioImage(c.Request.Context(), c.Param("id"), oldURL, file)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Remove a portfolio image
// @Tags		Artists
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		url	query	string	true	"Image URL"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/artists/{id}/portfolio [DELETE]
func (h *Handler) DeletePortfolioImage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	url := c.Query("url")
	if url == "" {
		response.ValidationError(c, map[string]string{"url": "required"})
		return
	}
	updated, err := s.DeletePortfolioImage(c.Request.Context(), c.Param("id"), url)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Override availability for a date
// @Tags		Artists
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	AvailabilityRequest	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/artists/{id}/availability [PUT]
func (h *Handler) SetAvailability(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req AvailabilityRequest
	if !bind(c, &req) {
		return
	}
	saved, err := s.SetAvailability(c.Request.Context(), c.Param("id"), req.Date, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, saved)
}

// @Summary		Draft an artist bio
// @Tags		Artists
// @Security	BearerAuth
// @Param		request	body	BioDraftRequest	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/bio/draft [POST]
func (h *Handler) GenerateBio(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req BioDraftRequest
	if !bind(c, &req) {
		return
	}
	draft, err := s.GenerateBio(c.Request.Context(), req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, BioDraftResponse{Bio: draft})
}

// @Summary		Create a shop
// @Tags		Shops
// @Security	BearerAuth
// @Param		request	body	domain.Shop	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/shops [POST]
func (h *Handler) CreateShop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req domain.Shop
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	created, err := s.CreateShop(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// @Summary		Update a shop
// @Tags		Shops
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	domain.Shop	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/shops/{id} [PUT]
func (h *Handler) UpdateShop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req domain.Shop
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.ID = c.Param("id")
	updated, err := s.UpdateShop(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Delete a shop
// @Tags		Shops
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/shops/{id} [DELETE]
func (h *Handler) DeleteShop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.DeleteShop(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Review a shop
// @Tags		Shops
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	ReviewRequest	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/shops/{id}/reviews [POST]
func (h *Handler) AddShopReview(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if !bind(c, &req) {
		return
	}
	updated, err := s.AddShopReview(c.Request.Context(), c.Param("id"), req.Rating, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, updated)
}

// @Summary		Add a booth
// @Tags		Shops
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	domain.Booth	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/shops/{id}/booths [POST]
func (h *Handler) CreateBooth(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req domain.Booth
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.ShopID = c.Param("id")
	created, err := s.CreateBooth(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// @Summary		Update a booth
// @Tags		Shops
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	domain.Booth	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/booths/{id} [PUT]
func (h *Handler) UpdateBooth(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req domain.Booth
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.ID = c.Param("id")
	updated, err := s.UpdateBooth(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Delete a booth
// @Tags		Shops
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/booths/{id} [DELETE]
func (h *Handler) DeleteBooth(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.DeleteBooth(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		List notifications
// @Tags		Notifications
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/notifications [GET]
func (h *Handler) FetchNotifications(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	list, err := s.FetchNotifications(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Summary		Mark notifications read
// @Tags		Notifications
// @Security	BearerAuth
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/notifications/read [POST]
func (h *Handler) MarkNotificationsAsRead(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.MarkNotificationsAsRead(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		List conversations
// @Tags		Messages
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/conversations [GET]
func (h *Handler) LoadConversations(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	list, err := s.LoadConversations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Summary		Start a conversation
// @Tags		Messages
// @Security	BearerAuth
// @Param		request	body	StartConversationRequest	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/conversations [POST]
func (h *Handler) StartConversation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req StartConversationRequest
	if !bind(c, &req) {
		return
	}
	conv, err := s.StartConversation(c.Request.Context(), req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv)
}

// @Summary		Open a conversation
// @Tags		Messages
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/conversations/{id}/messages [GET]
func (h *Handler) OpenConversation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	msgs, err := s.OpenConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

// @Summary		Close the open conversation
// @Tags		Messages
// @Security	BearerAuth
// @Success		204
// @Failure		401	{object}	map[string]interface{}
// @Router		/conversations/active [DELETE]
func (h *Handler) CloseConversation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.CloseConversation()
	c.Status(http.StatusNoContent)
}

// SendMessage accepts JSON, or multipart with "content" and an optional
// "file" attachment. The conversation must be the open one.
// @Summary		Send a message
// @Tags		Messages
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	SendMessageRequest	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/conversations/{id}/messages [POST]
func (h *Handler) SendMessage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if s.activeConversation() != c.Param("id") {
		writeError(c, ErrNoConversation)
		return
	}

	var content string
	var attachment *storage.Upload
	if c.ContentType() == "multipart/form-data" {
		content = c.PostForm("content")
		if _, err := c.FormFile("file"); err == nil {
			file, ok := readUpload(c)
			if !ok {
				return
			}
			attachment = &file
		}
	} else {
		var req SendMessageRequest
		if !bind(c, &req) {
			return
		}
		content = req.Content
	}

	msg, err := s.SendMessage(c.Request.Context(), content, attachment)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

// @Summary		Request verification
// @Tags		Verification
// @Security	BearerAuth
// @Param		request	body	VerificationRequestBody	true	"Request body"
// @Success		201	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/verifications [POST]
func (h *Handler) RequestVerification(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req VerificationRequestBody
	if !bind(c, &req) {
		return
	}
	created, err := s.RequestVerification(c.Request.Context(), req.ItemID, req.ItemType)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// @Summary		Approve a verification request
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/admin/verifications/{id}/approve [POST]
func (h *Handler) ApproveVerification(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	updated, err := s.ApproveVerification(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Change an artist's plan
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Param		request	body	TierRequest	true	"Request body"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/admin/artists/{id}/tier [PUT]
func (h *Handler) SetSubscriptionTier(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req TierRequest
	if !bind(c, &req) {
		return
	}
	updated, err := s.SetSubscriptionTier(c.Request.Context(), c.Param("id"), req.Tier)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// @Summary		Reject a verification request
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	string	true	"ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/admin/verifications/{id}/reject [POST]
func (h *Handler) RejectVerification(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	updated, err := s.RejectVerification(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}
