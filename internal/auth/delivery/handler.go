package delivery

import (
	"net/http"

	"vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// Register expects avatar/cover URLs already resolved by the upload
// collaborator; no file handling happens here.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	user, err := h.authUsecase.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "user registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	tokens, err := h.authUsecase.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, tokens.AccessToken, tokens.RefreshToken)
	respond(c, http.StatusOK, tokens, "user logged in successfully")
}

// RefreshToken reads the refresh token from the cookie first, falling back
// to the request body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookie)
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	tokens, err := h.authUsecase.RefreshTokens(refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setTokenCookies(c, tokens.AccessToken, tokens.RefreshToken)
	respond(c, http.StatusOK, tokens, "access token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.authUsecase.Logout(userID); err != nil {
		respondError(c, err)
		return
	}

	h.clearTokenCookies(c)
	respond(c, http.StatusOK, nil, "user logged out successfully")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	userID := c.GetString("userID")
	if err := h.authUsecase.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "password changed successfully")
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.Profile(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "current user fetched successfully")
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "profile updated successfully")
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	var req dto.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	user, err := h.authUsecase.UpdateAvatar(c.GetString("userID"), req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "avatar updated successfully")
}

func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	var req dto.UpdateCoverImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, "invalid request body")
		return
	}

	user, err := h.authUsecase.UpdateCoverImage(c.GetString("userID"), req.CoverImage)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "cover image updated successfully")
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(accessCookie, accessToken, int(h.config.AccessTokenTTL.Seconds()),
		"/", h.config.CookieDomain, h.config.CookieSecure, true)
	c.SetCookie(refreshCookie, refreshToken, int(h.config.RefreshTokenTTL.Seconds()),
		"/", h.config.CookieDomain, h.config.CookieSecure, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetCookie(accessCookie, "", -1, "/", h.config.CookieDomain, h.config.CookieSecure, true)
	c.SetCookie(refreshCookie, "", -1, "/", h.config.CookieDomain, h.config.CookieSecure, true)
}
