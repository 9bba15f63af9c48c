package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodshare/internal/errors"
	"foodshare/internal/geocode"
	"foodshare/internal/model"
)

// pngHeader is enough of a PNG for content sniffing to call it an image.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func newFoodService(t *testing.T, repo *MockFoodRepository, geocoder *MockGeocoder) (FoodService, string) {
	t.Helper()
	uploadPath := t.TempDir()
	return NewFoodService(repo, geocoder, uploadPath, 1024), uploadPath
}

func TestCreate_DerivesSlugAndLocation(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	geocoder.On("Geocode", mock.Anything, "350 5th Ave, New York").Return(&geocode.Result{
		Latitude:         40.748441,
		Longitude:        -73.985664,
		FormattedAddress: "350 5th Ave, New York, NY, 10118, US",
		City:             "New York",
		StateCode:        "NY",
		Zipcode:          "10118",
		CountryCode:      "US",
	}, nil)

	var created *model.Food
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Food")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Food)
		}).
		Return(nil)

	food, err := svc.Create(context.Background(), CreateFoodInput{
		Name:        "Hotel Taj Kitchen",
		Quantity:    40,
		Description: "Leftover lunch buffet",
		Phone:       "(212) 555-0147",
		Address:     "350 5th Ave, New York",
	})
	require.NoError(t, err)

	assert.Equal(t, "hotel-taj-kitchen", food.Slug)
	assert.Equal(t, 40.748441, food.Location.Latitude)
	assert.Equal(t, -73.985664, food.Location.Longitude)
	assert.Equal(t, "10118", food.Location.Zipcode)
	assert.Equal(t, model.DefaultPhoto, food.Photo)
	assert.False(t, food.Booked)

	// the persisted record carries geocoded fields, never the raw address
	require.NotNil(t, created)
	assert.NotZero(t, created.Location.Latitude)
}

func TestCreate_GeocodeFailurePersistsNothing(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	geocoder.On("Geocode", mock.Anything, "nowhere").Return(nil, errors.ErrGeocode)

	_, err := svc.Create(context.Background(), CreateFoodInput{
		Name:        "Ghost Kitchen",
		Description: "d",
		Phone:       "p",
		Address:     "nowhere",
	})
	assert.ErrorIs(t, err, errors.ErrGeocode)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_NeverRecomputesLocation(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	id := uuid.New()
	original := &model.Food{
		ID:   id,
		Name: "Old Name",
		Slug: "old-name",
		Location: model.Location{
			Latitude:  40.0,
			Longitude: -73.0,
			City:      "New York",
		},
	}

	repo.On("FindByID", mock.Anything, id).Return(original, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Food")).Return(nil)

	newName := "New Name"
	booked := true
	updated, err := svc.Update(context.Background(), id, UpdateFoodInput{
		Name:   &newName,
		Booked: &booked,
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new-name", updated.Slug)
	assert.True(t, updated.Booked)
	assert.Equal(t, 40.0, updated.Location.Latitude)
	assert.Equal(t, "New York", updated.Location.City)

	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), id, UpdateFoodInput{})
	assert.ErrorIs(t, err, errors.ErrFoodNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, errors.ErrFoodNotFound)
}

func TestSearchWithinRadius_GeocodesZipcode(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	geocoder.On("Geocode", mock.Anything, "10001").Return(&geocode.Result{
		Latitude:  40.75,
		Longitude: -73.99,
	}, nil)
	repo.On("FindWithinRadius", mock.Anything, 40.75, -73.99, 5.0).
		Return([]model.Food{{Name: "Nearby"}}, nil)

	foods, err := svc.SearchWithinRadius(context.Background(), "10001", 5)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Nearby", foods[0].Name)
}

func TestSearchWithinRadius_GeocodeFailure(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	geocoder.On("Geocode", mock.Anything, "00000").Return(nil, errors.ErrGeocode)

	_, err := svc.SearchWithinRadius(context.Background(), "00000", 5)
	assert.ErrorIs(t, err, errors.ErrGeocode)

	repo.AssertNotCalled(t, "FindWithinRadius", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachPhoto_RejectsNonImage(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, uploadPath := newFoodService(t, repo, geocoder)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&model.Food{ID: id}, nil)

	_, err := svc.AttachPhoto(context.Background(), id, "notes.txt", 10, []byte("plain text, not an image"))
	assert.ErrorIs(t, err, errors.ErrInvalidImage)

	repo.AssertNotCalled(t, "UpdatePhoto", mock.Anything, mock.Anything, mock.Anything)
	entries, readErr := os.ReadDir(uploadPath)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestAttachPhoto_RejectsOversizedFile(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&model.Food{ID: id}, nil)

	_, err := svc.AttachPhoto(context.Background(), id, "big.png", 2048, pngHeader)
	assert.ErrorIs(t, err, errors.ErrFileTooLarge)

	repo.AssertNotCalled(t, "UpdatePhoto", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachPhoto_WritesFileAndUpdatesListing(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, uploadPath := newFoodService(t, repo, geocoder)

	id := uuid.New()
	expectedName := "photo_" + id.String() + ".png"

	repo.On("FindByID", mock.Anything, id).Return(&model.Food{ID: id}, nil)
	repo.On("UpdatePhoto", mock.Anything, id, expectedName).Return(nil)

	name, err := svc.AttachPhoto(context.Background(), id, "upload.PNG", int64(len(pngHeader)), pngHeader)
	require.NoError(t, err)
	assert.Equal(t, expectedName, name)

	written, err := os.ReadFile(filepath.Join(uploadPath, expectedName))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, written)

	repo.AssertExpectations(t)
}

func TestAttachPhoto_ListingNotFound(t *testing.T) {
	repo := new(MockFoodRepository)
	geocoder := new(MockGeocoder)
	svc, _ := newFoodService(t, repo, geocoder)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.AttachPhoto(context.Background(), id, "photo.png", 10, pngHeader)
	assert.ErrorIs(t, err, errors.ErrFoodNotFound)
}
