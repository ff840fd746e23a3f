package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// RegisterRequest is the sign-up form. Presence checks happen in the domain
// so each missing field gets its own message.
type RegisterRequest struct {
	Name     string `json:"name" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"secret123"`
	Phone    string `json:"phone" example:"555-0100"`
	Address  string `json:"address" example:"1 Main St"`
	Answer   string `json:"answer" example:"blue"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"secret123"`
}

// ForgotPasswordRequest resets a password with the security answer
type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest carries optional profile changes
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// ProfileData wraps the updated user
type ProfileData struct {
	UpdatedUser identity.UserResponse `json:"updatedUser"`
}

// AuthHandler serves sign-up, login and the signed-in user's profile
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary      Register a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Sign-up form"
// @Success      201 {object} APIResponse[identity.UserResponse]
// @Success      200 {object} ErrorResponse "Already registered"
// @Failure      400 {object} ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, "User Register Successfully", user)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} APIResponse[identity.LoginResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "login successfully", result)
}

// ForgotPassword godoc
// @Summary      Reset a password with the security answer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Reset form"
// @Success      200 {object} APIResponse[any]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), identity.ForgotPasswordInput{
		Email:       req.Email,
		Answer:      req.Answer,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Password Reset Successfully", nil)
}

// UpdateProfile godoc
// @Summary      Update the signed-in user's profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Changes"
// @Success      200 {object} APIResponse[ProfileData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, identity.UpdateProfileInput{
		Name:     req.Name,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Profile Updated SUccessfully", ProfileData{UpdatedUser: *user})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[identity.UserResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Current user", user)
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[any]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, "Logged out successfully", nil)
}

// UserAuth godoc
// @Summary      Signed-in probe
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[OKData]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/user-auth [get]
func (h *AuthHandler) UserAuth(c *gin.Context) {
	h.Success(c, "", OKData{OK: true})
}

// AdminAuth godoc
// @Summary      Admin probe
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[OKData]
// @Failure      401 {object} ErrorResponse
// @Router       /auth/admin-auth [get]
func (h *AuthHandler) AdminAuth(c *gin.Context) {
	h.Success(c, "", OKData{OK: true})
}

// Protected godoc
// @Summary      Admin-only test route
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[any]
// @Router       /auth/test [get]
func (h *AuthHandler) Protected(c *gin.Context) {
	h.Success(c, "Protected Routes", nil)
}
