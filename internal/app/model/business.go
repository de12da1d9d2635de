package model

// Category is the fixed business taxonomy. Every business, whether it came
// from the listing provider or was submitted by a user, carries exactly one.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryRetail   Category = "Retail"
	CategoryServices Category = "Services"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryRetail, CategoryServices:
		return true
	}
	return false
}

// Categories lists the taxonomy in display order.
func Categories() []Category {
	return []Category{CategoryFood, CategoryRetail, CategoryServices}
}

// Business is the unified record served to clients. Provider results and
// user-submitted listings are both mapped into this shape; user-submitted
// IDs carry the "user-" prefix so the two namespaces cannot collide.
//
// Rating is always the one-decimal mean of the associated reviews and
// ReviewCount their count; both are zero when no reviews exist.
type Business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	HasDeal     bool     `json:"has_deal"`
	Deal        string   `json:"deal,omitempty"`
	Distance    *string  `json:"distance,omitempty"` // formatted miles, nil when unknown
	URL         string   `json:"url,omitempty"`
	IsFeatured  bool     `json:"is_featured,omitempty"`
	IsVerified  bool     `json:"is_verified,omitempty"`
}
