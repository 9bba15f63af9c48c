package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"foodshare/internal/geocode"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockFoodRepository is a mock implementation of repository.FoodRepository.
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) Create(ctx context.Context, food *model.Food) error {
	args := m.Called(ctx, food)
	return args.Error(0)
}

func (m *MockFoodRepository) Update(ctx context.Context, food *model.Food) error {
	args := m.Called(ctx, food)
	return args.Error(0)
}

func (m *MockFoodRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodRepository) FindByName(ctx context.Context, name string) (*model.Food, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Food, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Food), args.Get(1).(int64), args.Error(2)
}

func (m *MockFoodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFoodRepository) FindWithinRadius(ctx context.Context, lat, lng, distanceMiles float64) ([]model.Food, error) {
	args := m.Called(ctx, lat, lng, distanceMiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Food), args.Error(1)
}

func (m *MockFoodRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, filename string) error {
	args := m.Called(ctx, id, filename)
	return args.Error(0)
}

// MockGeocoder is a mock implementation of geocode.Geocoder.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (*geocode.Result, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.Result), args.Error(1)
}
