package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"citypulse/backend/internal/service"
)

const (
	authCookieName   = "citypulse_auth"
	authCookieMaxAge = 7 * 24 * 60 * 60
)

// AuthHandler handles admin authentication requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterPublicRoutes registers the routes served without authentication.
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/auth/status", h.GetStatus)
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes registers the routes that require a valid token.
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/auth/me", h.GetCurrentUser)
	g.PUT("/auth/profile", h.UpdateProfile)
	g.POST("/auth/logout", h.Logout)
}

type registerRequest struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type updateProfileRequest struct {
	Nickname        string `json:"nickname"`
	Email           string `json:"email" validate:"omitempty,email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type authStatusResponse struct {
	Registered bool `json:"registered"`
}

type userResponse struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type updateProfileResponse struct {
	User  userResponse `json:"user"`
	Token *string      `json:"token,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(user *service.User) userResponse {
	return userResponse{
		Username: user.Username,
		Nickname: user.Nickname,
		Email:    user.Email,
	}
}

func setAuthCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeAuthError maps authentication errors onto HTTP responses. Validation
// failures keep their message so the admin form can surface them.
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidPassword), errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrCurrentPasswordRequired),
		errors.Is(err, service.ErrSamePassword):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		return writeServiceError(c, err)
	}
}

// GetStatus reports whether an admin account has been registered yet.
func (h *AuthHandler) GetStatus(c echo.Context) error {
	registered, err := h.authService.IsRegistered(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, authStatusResponse{Registered: registered})
}

// Register creates the single admin account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
	}

	resp, err := h.authService.Register(c.Request().Context(), req.Username, req.Nickname, req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}

	setAuthCookie(c, resp.Token, authCookieMaxAge)
	return c.JSON(http.StatusOK, authResponse{Token: resp.Token, User: toUserResponse(resp.User)})
}

// Login authenticates by username or email.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	resp, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}

	setAuthCookie(c, resp.Token, authCookieMaxAge)
	return c.JSON(http.StatusOK, authResponse{Token: resp.Token, User: toUserResponse(resp.User)})
}

// GetCurrentUser returns the admin profile.
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.authService.GetUser(c.Request().Context())
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile updates the admin profile and optionally the password. A
// password change rotates the token, so the fresh one is returned and the
// cookie replaced.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
	}

	resp, err := h.authService.UpdateProfile(c.Request().Context(), req.Nickname, req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return writeAuthError(c, err)
	}

	out := updateProfileResponse{User: toUserResponse(resp.User), Token: resp.Token}
	if resp.Token != nil {
		setAuthCookie(c, *resp.Token, authCookieMaxAge)
	}
	return c.JSON(http.StatusOK, out)
}

// Logout clears the auth cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	setAuthCookie(c, "", -1)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
