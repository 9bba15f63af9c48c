package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodshare/internal/auth"
	"foodshare/internal/errors"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

// AuthService handles registration, login and booking operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	BookFood(ctx context.Context, userID uuid.UUID, foodID string) (*model.User, error)
	BookedFoods(ctx context.Context, foodIDs []string) ([]model.Food, error)
}

type authService struct {
	userRepo   repository.UserRepository
	foodRepo   repository.FoodRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, foodRepo repository.FoodRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		foodRepo:   foodRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with a hashed password and returns a session token.
func (s *authService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrDuplicateEmail
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns a session token. Unknown email and
// wrong password produce the same error so callers cannot tell which failed.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves a session token back to its user.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	return s.GetUser(ctx, id)
}

// GetUser fetches a user by id.
func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// BookFood appends a food id to the user's booked list. The append is a
// read-modify-write across two round-trips; concurrent bookings for the same
// user can interleave and lose one append.
func (s *authService) BookFood(ctx context.Context, userID uuid.UUID, foodID string) (*model.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.BookedFoodIDs = append(user.BookedFoodIDs, foodID)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update booked foods: %w", err)
	}
	return user, nil
}

// BookedFoods resolves listing details for a sequence of food ids, one lookup
// per id. Ids that do not resolve are skipped; an entirely empty result is an
// error.
func (s *authService) BookedFoods(ctx context.Context, foodIDs []string) ([]model.Food, error) {
	foods := make([]model.Food, 0, len(foodIDs))
	for _, raw := range foodIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		food, err := s.foodRepo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, err
		}
		foods = append(foods, *food)
	}
	if len(foods) == 0 {
		return nil, errors.ErrFoodNotFound
	}
	return foods, nil
}
