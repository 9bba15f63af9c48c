package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role classifies a registered user.
type Role string

const (
	RoleFeeder Role = "feeder"
	RoleNeedy  Role = "needy"
)

// User represents a registered user of the platform.
//
// The role column default is 'user' even though only feeder/needy pass input
// validation; the mismatch is inherited behavior and deliberately left as-is.
type User struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name                string     `json:"name" gorm:"size:255;not null"`
	Email               string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash        string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role                Role       `json:"role" gorm:"size:50;default:'user'"`
	BookedFoodIDs       []string   `json:"booked_food_ids" gorm:"serializer:json"`
	ResetPasswordToken  string     `json:"-" gorm:"size:255"`
	ResetPasswordExpire *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
