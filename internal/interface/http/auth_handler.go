package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smartschedule/smartschedule/internal/application"
	"github.com/smartschedule/smartschedule/internal/domain/entity"
	"github.com/smartschedule/smartschedule/internal/interface/middleware"
	"github.com/smartschedule/smartschedule/pkg/helpers"
	"github.com/smartschedule/smartschedule/pkg/response"
	"github.com/smartschedule/smartschedule/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required"`
}

func sessionPayload(s *entity.Session) gin.H {
	return gin.H{
		"id":    s.UserID,
		"email": s.Email,
		"name":  s.Name,
	}
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	st, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, application.ErrInvalidCredentials.Error(), nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetSession(c, st.Token, st.Expiry)
	response.Success(c, http.StatusOK, sessionPayload(st.Session), "login successful", nil)
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	st, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, application.ErrDuplicateUser) {
			response.Error[any](c, http.StatusConflict, application.ErrDuplicateUser.Error(), nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "signup failed", nil)
		return
	}
	h.Cookies.SetSession(c, st.Token, st.Expiry)
	response.Success(c, http.StatusCreated, sessionPayload(st.Session), "account created", nil)
}

// Logout POST /api/logout. Idempotent: an already-cleared session still
// answers 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	sid := c.GetString(middleware.CtxSessionIDKey)
	if err := h.Svc.Logout(c.Request.Context(), sid); err != nil {
		h.Logger.WithError(err).Warn("logout: session delete failed")
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Session GET /api/session returns the current session, the client's
// bootstrap call on load.
func (h *AuthHandler) Session(c *gin.Context) {
	sid := c.GetString(middleware.CtxSessionIDKey)
	sess, err := h.Svc.CurrentSession(c.Request.Context(), sid)
	if err != nil || sess == nil {
		response.Error[any](c, http.StatusUnauthorized, "no active session", nil)
		return
	}
	response.Success(c, http.StatusOK, sessionPayload(sess), "session", nil)
}
