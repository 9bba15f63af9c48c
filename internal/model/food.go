package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPhoto is the sentinel photo reference for listings without an upload.
const DefaultPhoto = "no-photo.jpg"

// Location holds the geocoded position and structured address of a listing.
// It is always derived from the submitted address; the raw address itself is
// never persisted.
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address" gorm:"size:255"`
	Street           string  `json:"street" gorm:"size:255"`
	City             string  `json:"city" gorm:"size:255"`
	State            string  `json:"state" gorm:"size:50"`
	Zipcode          string  `json:"zipcode" gorm:"size:20"`
	Country          string  `json:"country" gorm:"size:50"`
}

// Food represents a food-donation listing.
type Food struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Slug        string    `json:"slug" gorm:"size:255;index"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Description string    `json:"description" gorm:"size:500;not null"`
	Phone       string    `json:"phone" gorm:"size:20;not null"`
	Email       string    `json:"email,omitempty" gorm:"size:255"`
	Booked      bool      `json:"book" gorm:"default:false;index"`
	Location    Location  `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Photo       string    `json:"photo" gorm:"size:255;default:'no-photo.jpg'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
