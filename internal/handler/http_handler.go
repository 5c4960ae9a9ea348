package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyatalk/voyatalk/internal/auth"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/internal/repository"
	"github.com/voyatalk/voyatalk/internal/service"
	"github.com/voyatalk/voyatalk/pkg/log"
	"github.com/voyatalk/voyatalk/pkg/response"
)

const sessionCookieMaxAge = 30 * 24 * 60 * 60 // seconds

// HTTPHandler serves the account, directory, history, and booking
// endpoints around the relay.
type HTTPHandler struct {
	users    service.UserService
	history  service.HistoryService
	verifier *auth.Verifier
}

// NewHTTPHandler creates the HTTP handler.
func NewHTTPHandler(users service.UserService, history service.HistoryService, verifier *auth.Verifier) *HTTPHandler {
	return &HTTPHandler{
		users:    users,
		history:  history,
		verifier: verifier,
	}
}

// RegisterRoutes registers all routes.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/logout", h.Logout)
		}

		protected := api.Group("")
		protected.Use(RequireAuth(h.verifier))
		{
			protected.GET("/profile", h.Profile)
			protected.GET("/people", h.People)
			protected.GET("/messages/:user_id", h.Messages)
			protected.GET("/bookings", h.Bookings)
		}
	}

	r.GET("/health", h.HealthCheck)
}

// Register creates an account and starts a session.
func (h *HTTPHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			response.Conflict(c, "username already exists")
		case errors.Is(err, repository.ErrEmailExists):
			response.Conflict(c, "email already exists")
		default:
			l := log.Ctx(c.Request.Context())
			l.Error().Err(err).Msg("register failed")
			response.InternalError(c, "failed to register")
		}
		return
	}

	h.setSessionCookie(c, token)
	response.Created(c, domain.SessionResponse{ID: user.ID, Username: user.Username})
}

// Login verifies credentials and starts a session.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("login failed")
		response.InternalError(c, "failed to log in")
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, domain.SessionResponse{ID: user.ID, Username: user.Username})
}

// Logout clears the session cookie.
func (h *HTTPHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.verifier.CookieName(), "", -1, "/", "", true, true)
	response.Success(c, gin.H{"ok": true})
}

// Profile returns the caller's identity from the session token.
func (h *HTTPHandler) Profile(c *gin.Context) {
	response.Success(c, domain.SessionResponse{
		ID:       GetUserID(c),
		Username: GetUsername(c),
	})
}

// People returns the user directory for contact lists.
func (h *HTTPHandler) People(c *gin.Context) {
	entries, err := h.users.Directory(c.Request.Context())
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("directory listing failed")
		response.InternalError(c, "failed to list users")
		return
	}
	response.Success(c, entries)
}

// Messages returns the conversation between the caller and another user.
func (h *HTTPHandler) Messages(c *gin.Context) {
	otherID := c.Param("user_id")
	if otherID == "" {
		response.BadRequest(c, "user_id is required")
		return
	}

	messages, err := h.history.Conversation(c.Request.Context(), GetUserID(c), otherID)
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("conversation lookup failed")
		response.InternalError(c, "failed to load messages")
		return
	}
	response.Success(c, messages)
}

// Bookings returns the caller's flight bookings.
func (h *HTTPHandler) Bookings(c *gin.Context) {
	bookings, err := h.history.Bookings(c.Request.Context(), GetUserID(c))
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("booking listing failed")
		response.InternalError(c, "failed to load bookings")
		return
	}
	response.Success(c, bookings)
}

// HealthCheck reports liveness.
func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *HTTPHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.verifier.CookieName(), token, sessionCookieMaxAge, "/", "", true, true)
}
