package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"taskboard/internal/caching"
	"taskboard/internal/common"
	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// AuthHandlers handles registration, login, and the current-user endpoint.
type AuthHandlers struct {
	authService  services.AuthService
	tokenService services.TokenService
	cacheSvc     caching.CacheService
}

func NewAuthHandlers(authService services.AuthService, tokenService services.TokenService, cacheSvc caching.CacheService) *AuthHandlers {
	return &AuthHandlers{
		authService:  authService,
		tokenService: tokenService,
		cacheSvc:     cacheSvc,
	}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Register handles user registration and issues a token for immediate login.
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "body", err.Error())
	}

	user, err := h.authService.Register(ctx, services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return common.SendClientError(c, "Email already registered. Try logging in")
		}
		log.Printf("Failed to register user: %v", err)
		return common.SendServerError(c, "Registration failed")
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		log.Printf("Failed to issue token for user %d: %v", user.ID, err)
		return common.SendServerError(c, "Registration failed")
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Token:   token,
		Message: "Successful registration",
		User:    user.Summary(),
	})
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same response so accounts can't be enumerated.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return common.SendValidationError(c, "body", err.Error())
	}

	rateKey := "login:" + req.Email
	if limited, err := h.cacheSvc.IsRateLimited(ctx, rateKey, loginRateLimit); err == nil && limited {
		return common.SendTooManyRequestsError(c)
	}

	user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if rlErr := h.cacheSvc.IncrementRateLimit(ctx, rateKey, loginRateWindow); rlErr != nil {
			log.Printf("Failed to track login attempt for %s: %v", req.Email, rlErr)
		}
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return common.SendClientError(c, "Incorrect email or password")
		case errors.Is(err, services.ErrAccountDisabled):
			return common.SendClientError(c, "Account deactivated - please contact support")
		case errors.Is(err, services.ErrAccountLocked):
			return common.SendClientError(c, "Account temporarily locked. Try again later")
		default:
			log.Printf("Login failed for %s: %v", req.Email, err)
			return common.SendServerError(c, "Login failed")
		}
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		log.Printf("Failed to issue token for user %d: %v", user.ID, err)
		return common.SendServerError(c, "Login failed")
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Token:   token,
		Message: "Login successful",
		User:    user.Summary(),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return common.SendNotFoundError(c, "User")
		}
		return common.SendServerError(c, "Failed to load user")
	}

	return c.JSON(http.StatusOK, user)
}
