package ws

import (
	"encoding/json"

	"github.com/localconnect/localconnect-backend/internal/app/model"
)

// Inbound message types. The client streams device geolocation fixes and
// drives the locate/track/refresh lifecycle over the same connection.
const (
	MsgPosition      = "position"
	MsgPositionError = "position_error"
	MsgLocate        = "locate"
	MsgStartTracking = "start_tracking"
	MsgStopTracking  = "stop_tracking"
	MsgRefresh       = "refresh"
	MsgDismiss       = "dismiss"
)

// Outbound message types.
const (
	MsgLocationState   = "location_state"
	MsgPositionRequest = "position_request"
	MsgRefreshPrompt   = "refresh_prompt"
	MsgBusinesses      = "businesses"
	MsgError           = "error"
)

// ClientMessage is the envelope for everything the client sends.
type ClientMessage struct {
	Type string `json:"type"`

	// position
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`

	// position_error: browser geolocation error codes
	// 1=permission denied, 2=position unavailable, 3=timeout
	Code int `json:"code,omitempty"`
}

// ServerMessage is the envelope for everything the server sends.
type ServerMessage struct {
	Type string `json:"type"`

	LocationState *model.LocationState `json:"location_state,omitempty"`

	// refresh_prompt
	DistanceMovedKm float64 `json:"distance_moved_km,omitempty"`
	Formatted       string  `json:"formatted,omitempty"`

	// businesses
	Businesses []model.Business `json:"businesses,omitempty"`

	// error
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (m ServerMessage) encode() []byte {
	data, _ := json.Marshal(m)
	return data
}
