package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// UserBusinessIDPrefix disambiguates user-submitted listings from provider
// business IDs in the merged collection.
const UserBusinessIDPrefix = "user-"

// UserBusiness is a listing created directly by an app user, stored in our
// own database rather than sourced from the listing provider.
type UserBusiness struct {
	ID          uint     `gorm:"primarykey" json:"id"`
	OwnerID     string   `gorm:"index;not null" json:"owner_id"` // user ID from the external auth provider
	Name        string   `gorm:"not null" json:"name"`
	Category    Category `gorm:"type:varchar(20);index;not null" json:"category"`
	Description string   `gorm:"type:text" json:"description"`
	Address     string   `gorm:"type:text" json:"address"`
	Phone       string   `gorm:"type:varchar(30)" json:"phone"`
	ImageURL    string   `json:"image_url"`
	Website     string   `json:"website"`
	Latitude    *float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude   *float64 `gorm:"type:decimal(11,8)" json:"longitude"`

	Deal string `gorm:"type:text" json:"deal"`

	// Premium flags, owner-only. Described in UI copy; nothing here
	// enforces a subscription.
	IsPremium  bool `gorm:"default:false" json:"is_premium"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserBusiness) TableName() string {
	return "user_businesses"
}

// PublicID returns the prefixed identifier used in the merged collection.
func (b *UserBusiness) PublicID() string {
	return fmt.Sprintf("%s%d", UserBusinessIDPrefix, b.ID)
}

// ToBusiness maps the listing into the unified Business shape. Rating and
// review count start at zero; review aggregation maintains them in the
// session cache.
func (b *UserBusiness) ToBusiness() Business {
	return Business{
		ID:          b.PublicID(),
		Name:        b.Name,
		Category:    b.Category,
		Description: b.Description,
		Address:     b.Address,
		Phone:       b.Phone,
		Image:       b.ImageURL,
		HasDeal:     b.Deal != "",
		Deal:        b.Deal,
		URL:         b.Website,
		IsFeatured:  b.IsFeatured,
		IsVerified:  b.IsVerified,
	}
}
