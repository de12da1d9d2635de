package model

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ValidCoordinate reports whether lat/lng are within range.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// LocationState is a snapshot of device position resolution.
// Coordinates stay nil until a fix resolves; Error is the classified
// failure message, empty while loading or after success.
type LocationState struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Loading   bool     `json:"loading"`
	Error     string   `json:"error,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"` // meters
}

// RefreshState is a snapshot of the movement-triggered refresh tracking.
// PromptPending is true only while the user has an unanswered refresh
// prompt; it is raised when DistanceMovedKm crosses the threshold and
// cleared by a refresh or a dismissal.
type RefreshState struct {
	LastRefreshLocation *LatLng `json:"last_refresh_location"`
	DistanceMovedKm     float64 `json:"distance_moved_km"`
	PromptPending       bool    `json:"prompt_pending"`
}
