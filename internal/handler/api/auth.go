package api

import (
	"log/slog"
	"net/http"
	"time"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/pkg/config"
	"slotbook/internal/pkg/cookie"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds commands.AuthCommands
	q    queries.UserQueries
	cfg  config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, q: q, cfg: cfg.Cookie}
}

// @Summary Register a business
// @Description Create a business owner account and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Registration"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.cmds.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.setSession(c, result)
	c.JSON(http.StatusCreated, resdto.FromAuthResult("User registered successfully", result))
}

// @Summary Login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.AuthResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.setSession(c, result)
	c.JSON(http.StatusOK, resdto.FromAuthResult("Login successful", result))
}

// @Summary Logout
// @Description Revoke the current token and clear the session cookie
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} resdto.MessageResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	if err := h.cmds.Logout(c.Request.Context(), principal); err != nil {
		httperr.Respond(c, err)
		return
	}
	cookie.ClearTokenCookie(c, h.cfg)
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Logout successful"})
}

// @Summary Current profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	view, err := h.q.GetCurrentUser(c.Request.Context(), principal.UserID)
	if err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resdto.UserResponse{User: view})
}

// @Summary Update profile
// @Description Only business_name, owner_name, phone, business_type and settings may change
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.UpdateProfileRequest true "Profile patch"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req reqdto.UpdateProfileRequest
	if !bindStrict(c, &req) {
		return
	}
	view, err := h.cmds.UpdateProfile(c.Request.Context(), principal.UserID, req.ToPatch())
	if err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resdto.UserResponse{Message: "Profile updated successfully", User: view})
}

// @Summary Change password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req reqdto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.ChangePassword(c.Request.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Password changed successfully"})
}

// @Summary Deactivate account
// @Description Soft-deletes the account; the email becomes free to register again
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} resdto.MessageResponse
// @Router /auth/account [delete]
func (h *AuthHandler) DeactivateAccount(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	if err := h.cmds.DeactivateAccount(c.Request.Context(), principal.UserID); err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	if err := h.cmds.Logout(c.Request.Context(), principal); err != nil {
		slog.Warn("failed to revoke token after deactivation", "user_id", principal.UserID, "error", err.Error())
	}
	cookie.ClearTokenCookie(c, h.cfg)
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Account deactivated successfully"})
}

func (h *AuthHandler) setSession(c *gin.Context, result *commands.AuthResult) {
	ttl := time.Until(result.ExpiresAt)
	if ttl > 0 {
		cookie.SetTokenCookie(c, h.cfg, result.Token, ttl)
	}
}
