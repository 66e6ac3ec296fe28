package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/quickbill/billing-api/internal/application/service"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/request"
	"github.com/quickbill/billing-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles account registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req request.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	account, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Password:     req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account created successfully", account)
}

// Login handles authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"account":       out.Account,
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	out, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", gin.H{
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

// ForgotPassword starts the email-based password reset flow
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "If the email is registered, a reset link has been sent", nil)
}

// ResetPassword sets a new password using a mailed token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password updated successfully", nil)
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c *gin.Context) {
	accountID := GetAccountID(c)
	if accountID == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	account, err := h.authService.Me(c.Request.Context(), *accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved", account)
}
