package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodshare/internal/errors"
	"foodshare/internal/model"
)

// earthRadiusMiles is used to express great-circle distance in miles.
const earthRadiusMiles = 3963

// FoodColumns maps exposed JSON field names to database columns for list
// filtering, sorting and selection.
var FoodColumns = map[string]string{
	"name":        "name",
	"slug":        "slug",
	"quantity":    "quantity",
	"description": "description",
	"phone":       "phone",
	"email":       "email",
	"book":        "booked",
	"photo":       "photo",
	"createdAt":   "created_at",
}

// FoodRepository defines food listing persistence operations.
type FoodRepository interface {
	Create(ctx context.Context, food *model.Food) error
	Update(ctx context.Context, food *model.Food) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Food, error)
	FindByName(ctx context.Context, name string) (*model.Food, error)
	List(ctx context.Context, opts ListOptions) ([]model.Food, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindWithinRadius(ctx context.Context, lat, lng, distanceMiles float64) ([]model.Food, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, filename string) error
}

type foodRepository struct {
	db *gorm.DB
}

// NewFoodRepository builds a GORM-backed food repository.
func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Create(ctx context.Context, food *model.Food) error {
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		if isDuplicateKey(err) {
			return errors.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *foodRepository) Update(ctx context.Context, food *model.Food) error {
	if err := r.db.WithContext(ctx).Save(food).Error; err != nil {
		if isDuplicateKey(err) {
			return errors.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *foodRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	var food model.Food
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) FindByName(ctx context.Context, name string) (*model.Food, error) {
	var food model.Food
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) List(ctx context.Context, opts ListOptions) ([]model.Food, int64, error) {
	base := opts.scope(r.db.WithContext(ctx).Model(&model.Food{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base
	if len(opts.Selects) > 0 {
		query = query.Select(opts.Selects)
	}
	for _, order := range opts.Order {
		query = query.Order(order)
	}

	var foods []model.Food
	if err := query.Offset(opts.offset()).Limit(opts.Limit).Find(&foods).Error; err != nil {
		return nil, 0, err
	}
	return foods, total, nil
}

func (r *foodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Food{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindWithinRadius returns unbooked listings whose coordinates fall within
// distanceMiles of the given point, via a haversine distance in SQL.
func (r *foodRepository) FindWithinRadius(ctx context.Context, lat, lng, distanceMiles float64) ([]model.Food, error) {
	var foods []model.Food
	distanceExpr := "(? * ACOS(LEAST(1.0, " +
		"COS(RADIANS(?)) * COS(RADIANS(location_latitude)) * COS(RADIANS(location_longitude) - RADIANS(?)) + " +
		"SIN(RADIANS(?)) * SIN(RADIANS(location_latitude))))) <= ?"
	err := r.db.WithContext(ctx).
		Where("booked = ?", false).
		Where(distanceExpr, earthRadiusMiles, lat, lng, lat, distanceMiles).
		Find(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, filename string) error {
	res := r.db.WithContext(ctx).Model(&model.Food{}).
		Where("id = ?", id).
		Update("photo", filename)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
