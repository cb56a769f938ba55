package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/dto"
	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerPublicUserRoutes registers routes that need no principal.
func registerPublicUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)
	rg.POST("/users", h.registerUser)
}

// registerUserRoutes registers routes acting on the authenticated user.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	me := rg.Group("/me")
	{
		me.GET("", h.getMe)
		me.PUT("/email", h.updateEmail)
		me.PUT("/delivery-preference", h.optIn)
		me.DELETE("/delivery-preference", h.optOut)
	}
	rg.POST("/users/:userID/capabilities", h.grantCapability)
}

// registerUser godoc
// @Summary Register a portal user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Username taken"
// @Router /users [post]
func (h *userHandler) registerUser(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	user, err := h.userService.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getMe godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateEmail godoc
// @Summary Change the caller's email
// @Tags users
// @Accept  json
// @Produce  json
// @Param   request body dto.UpdateEmailRequest true "New email"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid email"
// @Security BearerAuth
// @Router /me/email [put]
func (h *userHandler) updateEmail(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	user, err := h.userService.UpdateEmail(c.Request.Context(), userID, req.Email)
	if err != nil {
		respondError(c, err, "Failed to update email")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// optIn godoc
// @Summary Choose the external notification channel
// @Tags users
// @Accept  json
// @Produce  json
// @Param   request body dto.DeliveryPreferenceRequest true "Channel"
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /me/delivery-preference [put]
func (h *userHandler) optIn(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.DeliveryPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	user, err := h.userService.OptIn(c.Request.Context(), userID, req.Channel)
	if err != nil {
		respondError(c, err, "Failed to update delivery preference")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// optOut godoc
// @Summary Turn off external notification delivery
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /me/delivery-preference [delete]
func (h *userHandler) optOut(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.OptOut(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to update delivery preference")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// grantCapability godoc
// @Summary Grant a capability to a user
// @Description The caller must hold CLIENT_ADMIN.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   request body dto.GrantCapabilityRequest true "Role"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{userID}/capabilities [post]
func (h *userHandler) grantCapability(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.GrantCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	user, err := h.userService.GrantCapability(c.Request.Context(), adminID, c.Param("userID"), req.Role)
	if err != nil {
		respondError(c, err, "Failed to grant capability")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
