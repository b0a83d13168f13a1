package auth

import (
	"net/http"
	"strings"
	"time"

	autherrors "github.com/towet/payroll-processing-sys/internal/auth/errors"
	"github.com/towet/payroll-processing-sys/internal/auth/token"
	"github.com/towet/payroll-processing-sys/internal/shared/apperror"
	"github.com/towet/payroll-processing-sys/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	service       Service
	secureCookies bool
}

func NewHandler(s Service, secureCookies bool) *Handler {
	return &Handler{service: s, secureCookies: secureCookies}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

// isWebClient reports whether tokens travel as cookies. Non-browser clients
// send X-Client-Type: mobile and keep the refresh token themselves.
func isWebClient(c *gin.Context) bool {
	return !strings.EqualFold(c.GetHeader("X-Client-Type"), "mobile")
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeSession(c *gin.Context, s Session) {
	if isWebClient(c) {
		h.setCookie(c, accessCookie, s.AccessToken, token.AccessTTL)
		h.setCookie(c, refreshCookie, s.RefreshToken, token.RefreshTTL)
	}
	response.Success(c, http.StatusOK, s, nil)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	res, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.writeSession(c, session)
}

func (h *Handler) Refresh(c *gin.Context) {
	var refreshToken string
	if isWebClient(c) {
		refreshToken, _ = c.Cookie(refreshCookie)
	}
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, autherrors.ErrTokenNotFound)
			return
		}
		refreshToken = req.RefreshToken
	}

	session, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.writeSession(c, session)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		writeServiceError(c, autherrors.ErrMissingAuthContext)
		return
	}

	res, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -time.Second)
	h.setCookie(c, refreshCookie, "", -time.Second)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}
