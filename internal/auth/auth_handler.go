package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	autherrors "cdbl-lms/internal/auth/errors"
	"cdbl-lms/internal/config"
	"cdbl-lms/internal/shared/apperror"
	platform "cdbl-lms/internal/shared/request"
	"cdbl-lms/internal/shared/response"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	service Service
	cfg     config.AuthConfig
}

func NewHandler(s Service, cfg config.AuthConfig) *Handler {
	return &Handler{service: s, cfg: cfg}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	pair, userResp, err := ctrl.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if platform.IsWebClient(platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))) {
		ctrl.setCookies(c, pair)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, nil)
}

func (ctrl *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	userResp, err := ctrl.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}

func (ctrl *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, "", -1, "/", "", ctrl.cfg.SecureCookies, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", ctrl.cfg.SecureCookies, true)

	response.Success(c, http.StatusOK, "logout success", nil)
}

func (ctrl *Handler) RefreshToken(c *gin.Context) {
	isWeb := platform.IsWebClient(platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))

	var refreshToken string
	if isWeb {
		refreshToken, _ = c.Cookie(refreshCookie)
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperror.ErrInvalidInput)
			return
		}
		refreshToken = req.RefreshToken
	}
	if refreshToken == "" {
		writeError(c, autherrors.ErrTokenNotFound)
		return
	}

	pair, userResp, err := ctrl.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	if isWeb {
		ctrl.setCookies(c, pair)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, nil)
}

func (ctrl *Handler) setCookies(c *gin.Context, pair TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, pair.AccessToken, int(ctrl.cfg.AccessTokenTTL.Seconds()), "/", "", ctrl.cfg.SecureCookies, true)
	c.SetCookie(refreshCookie, pair.RefreshToken, int(ctrl.cfg.RefreshTokenTTL.Seconds()), "/", "", ctrl.cfg.SecureCookies, true)
}
