package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foodshare/internal/errors"
	"foodshare/internal/repository"
	"foodshare/internal/service"
)

// FoodHandler handles food listing endpoints.
type FoodHandler struct {
	foodService service.FoodService
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(foodService service.FoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

// CreateFoodRequest represents a listing creation request.
type CreateFoodRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
	Description string `json:"description" validate:"required,max=500"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"required"`
}

// UpdateFoodRequest represents a partial listing update. Absent fields stay
// untouched; there is no address field because location is never re-derived.
type UpdateFoodRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Quantity    *int    `json:"quantity" validate:"omitempty,gte=0"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Booked      *bool   `json:"book"`
}

// GetFoods godoc
// @Summary List food listings
// @Tags foods
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param select query string false "Comma-separated fields"
// @Param sort query string false "Comma-separated sort fields, -prefix for descending"
// @Success 200 {object} ListResponse
// @Router /foods [get]
func (h *FoodHandler) GetFoods(c echo.Context) error {
	opts := repository.ParseListOptions(c.QueryParams(), repository.FoodColumns)

	foods, total, err := h.foodService.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ListResponse{
		Success:    true,
		Count:      total,
		Pagination: repository.NewPagination(opts, total),
		Data:       foods,
	})
}

// GetFood godoc
// @Summary Get a single food listing
// @Tags foods
// @Produce json
// @Param id path string true "Food ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /foods/{id} [get]
func (h *FoodHandler) GetFood(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.NewValidationError("invalid food id")
	}

	food, err := h.foodService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: food})
}

// CreateFood godoc
// @Summary Create a food listing
// @Tags foods
// @Accept json
// @Produce json
// @Param request body CreateFoodRequest true "Listing data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /foods [post]
func (h *FoodHandler) CreateFood(c echo.Context) error {
	var req CreateFoodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	food, err := h.foodService.Create(c.Request().Context(), service.CreateFoodInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, DataResponse{Success: true, Data: food})
}

// UpdateFood godoc
// @Summary Update a food listing
// @Tags foods
// @Accept json
// @Produce json
// @Param id path string true "Food ID"
// @Param request body UpdateFoodRequest true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /foods/{id} [put]
func (h *FoodHandler) UpdateFood(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.NewValidationError("invalid food id")
	}

	var req UpdateFoodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	food, err := h.foodService.Update(c.Request().Context(), id, service.UpdateFoodInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
		Phone:       req.Phone,
		Email:       req.Email,
		Booked:      req.Booked,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: food})
}

// DeleteFood godoc
// @Summary Delete a food listing
// @Tags foods
// @Produce json
// @Param id path string true "Food ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /foods/{id} [delete]
func (h *FoodHandler) DeleteFood(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.NewValidationError("invalid food id")
	}

	if err := h.foodService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: map[string]interface{}{}})
}

// GetFoodsInRadius godoc
// @Summary Find unbooked listings within a radius of a zipcode
// @Tags foods
// @Produce json
// @Param zipcode path string true "Zipcode"
// @Param distance path number true "Distance in miles"
// @Success 200 {object} CollectionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /foods/radius/{zipcode}/{distance} [get]
func (h *FoodHandler) GetFoodsInRadius(c echo.Context) error {
	zipcode := c.Param("zipcode")
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		return errors.NewValidationError("invalid distance")
	}

	foods, err := h.foodService.SearchWithinRadius(c.Request().Context(), zipcode, distance)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CollectionResponse{
		Success: true,
		Count:   len(foods),
		Data:    foods,
	})
}

// UploadFoodPhoto godoc
// @Summary Upload a photo for a food listing
// @Tags foods
// @Accept mpfd
// @Produce json
// @Param id path string true "Food ID"
// @Param file formData file true "Image file"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /foods/{id}/photo [post]
func (h *FoodHandler) UploadFoodPhoto(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.NewValidationError("invalid food id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errors.NewValidationError("please upload a file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.NewValidationError("please upload a file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return errors.NewValidationError("please upload a file")
	}

	name, err := h.foodService.AttachPhoto(c.Request().Context(), id, fileHeader.Filename, fileHeader.Size, content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DataResponse{Success: true, Data: name})
}
