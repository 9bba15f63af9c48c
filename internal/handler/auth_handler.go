package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foodshare/internal/auth"
	"foodshare/internal/errors"
	"foodshare/internal/model"
	"foodshare/internal/service"
)

const tokenCookieName = "token"

// AuthHandler handles authentication and booking endpoints.
type AuthHandler struct {
	authService  service.AuthService
	cookieExpire time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieExpireDays int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieExpire: time.Duration(cookieExpireDays) * 24 * time.Hour,
		secureCookie: secureCookie,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=feeder needy"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// BookFoodRequest carries the listing id to append to a user's bookings.
type BookFoodRequest struct {
	BookFoodID string `json:"bookFoodId" validate:"required"`
}

// UserFoodsRequest carries a sequence of booked listing ids to resolve.
type UserFoodsRequest struct {
	IDs []string `json:"arr" validate:"required,min=1"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		return err
	}

	return h.sendTokenResponse(c, http.StatusOK, token)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.sendTokenResponse(c, http.StatusOK, token)
}

// GetUser godoc
// @Summary Resolve identity from the session token
// @Tags auth
// @Produce json
// @Param authtoken header string true "Session token"
// @Success 200 {object} DataResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/get-user [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return errors.ErrInvalidToken
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return errors.ErrInvalidToken
	}

	user, err := h.authService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: user})
}

// BookFood godoc
// @Summary Append a booked listing id to a user
// @Tags auth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body BookFoodRequest true "Listing id to book"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/book-food/{id} [put]
func (h *AuthHandler) BookFood(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.NewValidationError("invalid user id")
	}

	var req BookFoodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.BookFood(c.Request().Context(), userID, req.BookFoodID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: user})
}

// GetUserFoods godoc
// @Summary Resolve listing details for a sequence of booked ids
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UserFoodsRequest true "Booked listing ids"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/get-user-food [post]
func (h *AuthHandler) GetUserFoods(c echo.Context) error {
	var req UserFoodsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	foods, err := h.authService.BookedFoods(c.Request().Context(), req.IDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: foods})
}

// sendTokenResponse sets the session cookie and returns the token envelope.
func (h *AuthHandler) sendTokenResponse(c echo.Context, status int, token string) error {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieExpire),
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	return c.JSON(status, TokenResponse{Success: true, Token: token})
}
