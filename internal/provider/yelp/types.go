package yelp

// SearchResponse is the provider's business search payload.
type SearchResponse struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
}

// Business is a raw provider business record.
type Business struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ImageURL     string     `json:"image_url"`
	URL          string     `json:"url"`
	ReviewCount  int        `json:"review_count"`
	Rating       float64    `json:"rating"`
	Categories   []CategoryTag `json:"categories"`
	Location     Location   `json:"location"`
	Phone        string     `json:"phone"`
	DisplayPhone string     `json:"display_phone"`
	Distance     float64    `json:"distance"` // meters from the search point
}

// CategoryTag is a provider category: a machine alias plus display title.
type CategoryTag struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// Location is the provider's address block.
type Location struct {
	Address1 string `json:"address1"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
}

// DisplayAddress renders the street address with the city appended when
// known.
func (l Location) DisplayAddress() string {
	if l.City == "" {
		return l.Address1
	}
	return l.Address1 + ", " + l.City
}
