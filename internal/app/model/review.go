package model

// Review is a user review held in the session cache. Reviews are never
// updated in place; an edit is a delete followed by a recreate.
type Review struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	UserName   string `json:"user_name"`
	Rating     int    `json:"rating"` // integer 1-5
	Comment    string `json:"comment"`
	Date       string `json:"date"` // calendar date, YYYY-MM-DD
	Verified   bool   `json:"verified"`
}
