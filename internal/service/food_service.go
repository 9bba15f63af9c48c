package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"foodshare/internal/errors"
	"foodshare/internal/geocode"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

// CreateFoodInput carries the fields accepted when creating a listing. The
// address is consumed by geocoding and never stored.
type CreateFoodInput struct {
	Name        string
	Quantity    int
	Description string
	Phone       string
	Email       string
	Address     string
}

// UpdateFoodInput carries the optional fields of a partial update. Address
// changes are not accepted here: location is derived once at creation.
type UpdateFoodInput struct {
	Name        *string
	Quantity    *int
	Description *string
	Phone       *string
	Email       *string
	Booked      *bool
}

// FoodService handles food listing operations.
type FoodService interface {
	List(ctx context.Context, opts repository.ListOptions) ([]model.Food, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Food, error)
	Create(ctx context.Context, in CreateFoodInput) (*model.Food, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateFoodInput) (*model.Food, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SearchWithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]model.Food, error)
	AttachPhoto(ctx context.Context, id uuid.UUID, filename string, size int64, content []byte) (string, error)
}

type foodService struct {
	repo       repository.FoodRepository
	geocoder   geocode.Geocoder
	uploadPath string
	maxUpload  int64
}

// NewFoodService creates a new food service.
func NewFoodService(repo repository.FoodRepository, geocoder geocode.Geocoder, uploadPath string, maxUpload int64) FoodService {
	return &foodService{
		repo:       repo,
		geocoder:   geocoder,
		uploadPath: uploadPath,
		maxUpload:  maxUpload,
	}
}

// List returns a page of listings with the total row count.
func (s *foodService) List(ctx context.Context, opts repository.ListOptions) ([]model.Food, int64, error) {
	return s.repo.List(ctx, opts)
}

// Get fetches a listing by id.
func (s *foodService) Get(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	food, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrFoodNotFound
		}
		return nil, err
	}
	return food, nil
}

// Create runs the validate→enrich→persist pipeline: the slug is derived from
// the name and the address is geocoded before anything is written, so a
// geocoding failure leaves no partial record behind.
func (s *foodService) Create(ctx context.Context, in CreateFoodInput) (*model.Food, error) {
	location, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	food := &model.Food{
		ID:          uuid.New(),
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Quantity:    in.Quantity,
		Description: in.Description,
		Phone:       in.Phone,
		Email:       in.Email,
		Photo:       model.DefaultPhoto,
		Location:    toLocation(location),
	}

	if err := s.repo.Create(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

// Update applies a partial update. Location is never recomputed here, even if
// the name changes; only creation derives it.
func (s *foodService) Update(ctx context.Context, id uuid.UUID, in UpdateFoodInput) (*model.Food, error) {
	food, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		food.Name = *in.Name
		food.Slug = slug.Make(*in.Name)
	}
	if in.Quantity != nil {
		food.Quantity = *in.Quantity
	}
	if in.Description != nil {
		food.Description = *in.Description
	}
	if in.Phone != nil {
		food.Phone = *in.Phone
	}
	if in.Email != nil {
		food.Email = *in.Email
	}
	if in.Booked != nil {
		food.Booked = *in.Booked
	}

	if err := s.repo.Update(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

// Delete removes a listing permanently.
func (s *foodService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrFoodNotFound
		}
		return err
	}
	return nil
}

// SearchWithinRadius geocodes the zipcode and returns unbooked listings within
// the given great-circle distance in miles.
func (s *foodService) SearchWithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]model.Food, error) {
	location, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	return s.repo.FindWithinRadius(ctx, location.Latitude, location.Longitude, distanceMiles)
}

// AttachPhoto validates and stores an uploaded image under a deterministic
// name, then points the listing at it. The disk write and the database update
// are two separate steps with no compensating rollback.
func (s *foodService) AttachPhoto(ctx context.Context, id uuid.UUID, filename string, size int64, content []byte) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}

	if len(content) == 0 {
		return "", errors.NewValidationError("please upload a file")
	}
	if !strings.HasPrefix(http.DetectContentType(content), "image/") {
		return "", errors.ErrInvalidImage
	}
	if size > s.maxUpload {
		return "", errors.ErrFileTooLarge
	}

	name := fmt.Sprintf("photo_%s%s", id, strings.ToLower(filepath.Ext(filename)))

	if err := os.MkdirAll(s.uploadPath, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadPath, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	if err := s.repo.UpdatePhoto(ctx, id, name); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrFoodNotFound
		}
		return "", err
	}
	return name, nil
}

func toLocation(r *geocode.Result) model.Location {
	return model.Location{
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		FormattedAddress: r.FormattedAddress,
		Street:           r.Street,
		City:             r.City,
		State:            r.StateCode,
		Zipcode:          r.Zipcode,
		Country:          r.CountryCode,
	}
}
