// Package refresh decides when accumulated movement warrants re-fetching
// nearby businesses.
package refresh

import (
	"context"
	"sync"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/pkg/geo"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// ThresholdKm is the displacement from the last refresh point that raises
// the refresh prompt (~0.5 miles). Exactly-equal displacement triggers;
// there is no hysteresis band.
const ThresholdKm = 0.8

// FetchFunc re-fetches nearby businesses for the given coordinates.
type FetchFunc func(ctx context.Context, lat, lng float64) ([]model.Business, error)

// Controller consumes tracked position updates and raises a refresh
// prompt once displacement from the last refresh point crosses
// ThresholdKm. The prompt is cleared by exactly one of Refresh or
// Dismiss.
type Controller struct {
	fetch    FetchFunc
	onPrompt func(state model.RefreshState)

	mu         sync.Mutex
	last       *model.LatLng
	current    *model.LatLng
	distanceKm float64
	promptOpen bool
}

func NewController(fetch FetchFunc) *Controller {
	return &Controller{fetch: fetch}
}

// OnPrompt registers the callback invoked when the prompt is raised.
func (c *Controller) OnPrompt(fn func(state model.RefreshState)) {
	c.mu.Lock()
	c.onPrompt = fn
	c.mu.Unlock()
}

// State returns a snapshot of the refresh tracking state.
func (c *Controller) State() model.RefreshState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() model.RefreshState {
	state := model.RefreshState{
		DistanceMovedKm: c.distanceKm,
		PromptPending:   c.promptOpen,
	}
	if c.last != nil {
		last := *c.last
		state.LastRefreshLocation = &last
	}
	return state
}

// OnPositionUpdate records a tracked position and raises the prompt when
// displacement from the last refresh point reaches the threshold. A
// pending prompt is never raised a second time.
func (c *Controller) OnPositionUpdate(lat, lng float64) {
	c.mu.Lock()
	c.current = &model.LatLng{Latitude: lat, Longitude: lng}

	if c.last == nil {
		c.mu.Unlock()
		return
	}

	c.distanceKm = geo.DistanceKm(c.last.Latitude, c.last.Longitude, lat, lng)

	var notify func(model.RefreshState)
	var state model.RefreshState
	if c.distanceKm >= ThresholdKm && !c.promptOpen {
		c.promptOpen = true
		notify = c.onPrompt
		state = c.stateLocked()
	}
	c.mu.Unlock()

	if notify != nil {
		logger.Debug("Refresh prompt raised", map[string]interface{}{
			"distance_moved_km": state.DistanceMovedKm,
		})
		notify(state)
	}
}

// Refresh runs the fetch at the current coordinates, marks them as the
// new refresh point, zeroes the accumulated distance and clears the
// prompt. The fetch failing leaves the tracking state untouched so the
// user can retry.
func (c *Controller) Refresh(ctx context.Context) ([]model.Business, error) {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return nil, ErrNoPosition
	}
	point := *c.current
	c.mu.Unlock()

	businesses, err := c.fetch(ctx, point.Latitude, point.Longitude)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.last = &point
	c.distanceKm = 0
	c.promptOpen = false
	c.mu.Unlock()

	return businesses, nil
}

// SetRefreshPoint records coordinates as the last refresh location
// without fetching, for callers that completed a fetch through another
// path (the initial load).
func (c *Controller) SetRefreshPoint(lat, lng float64) {
	c.mu.Lock()
	c.last = &model.LatLng{Latitude: lat, Longitude: lng}
	c.current = &model.LatLng{Latitude: lat, Longitude: lng}
	c.distanceKm = 0
	c.promptOpen = false
	c.mu.Unlock()
}

// Dismiss clears the prompt flag only. Accumulated distance and the last
// refresh point keep their values, so the prompt re-raises only if the
// user keeps moving away.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	c.promptOpen = false
	c.mu.Unlock()
}
