package refresh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localconnect/localconnect-backend/internal/app/model"
)

// Coordinates along the -74.0060 meridian; 0.01 degrees of latitude is
// roughly 1.11 km.
const (
	baseLat = 40.7128
	baseLng = -74.0060
)

func fetchStub(businesses []model.Business, err error) (FetchFunc, *int) {
	calls := new(int)
	return func(ctx context.Context, lat, lng float64) ([]model.Business, error) {
		*calls++
		return businesses, err
	}, calls
}

func TestController_NoPromptWithoutRefreshPoint(t *testing.T) {
	fetch, _ := fetchStub(nil, nil)
	c := NewController(fetch)

	c.OnPositionUpdate(baseLat+1, baseLng)

	state := c.State()
	assert.False(t, state.PromptPending)
	assert.Zero(t, state.DistanceMovedKm)
	assert.Nil(t, state.LastRefreshLocation)
}

func TestController_PromptRaisedAtThreshold(t *testing.T) {
	fetch, _ := fetchStub(nil, nil)
	c := NewController(fetch)
	c.SetRefreshPoint(baseLat, baseLng)

	var prompts []model.RefreshState
	c.OnPrompt(func(s model.RefreshState) { prompts = append(prompts, s) })

	// ~0.55 km: below threshold.
	c.OnPositionUpdate(baseLat+0.005, baseLng)
	assert.False(t, c.State().PromptPending)
	assert.Empty(t, prompts)

	// ~0.89 km: crosses 0.8.
	c.OnPositionUpdate(baseLat+0.008, baseLng)
	state := c.State()
	assert.True(t, state.PromptPending)
	assert.GreaterOrEqual(t, state.DistanceMovedKm, ThresholdKm)
	require.Len(t, prompts, 1)

	// Further movement while pending never raises a second prompt.
	c.OnPositionUpdate(baseLat+0.02, baseLng)
	assert.True(t, c.State().PromptPending)
	assert.Len(t, prompts, 1)
}

func TestController_DistanceIsFromRefreshPointNotCumulative(t *testing.T) {
	fetch, _ := fetchStub(nil, nil)
	c := NewController(fetch)
	c.SetRefreshPoint(baseLat, baseLng)

	// Wander out and back: displacement, not path length, is what counts.
	c.OnPositionUpdate(baseLat+0.005, baseLng)
	c.OnPositionUpdate(baseLat, baseLng)

	state := c.State()
	assert.False(t, state.PromptPending)
	assert.InDelta(t, 0, state.DistanceMovedKm, 0.001)
}

func TestController_RefreshClearsEverything(t *testing.T) {
	businesses := []model.Business{{ID: "1", Name: "Sophie's Artisan Bakery"}}
	fetch, calls := fetchStub(businesses, nil)
	c := NewController(fetch)
	c.SetRefreshPoint(baseLat, baseLng)

	newLat := baseLat + 0.01
	c.OnPositionUpdate(newLat, baseLng)
	require.True(t, c.State().PromptPending)

	got, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, businesses, got)
	assert.Equal(t, 1, *calls)

	state := c.State()
	assert.False(t, state.PromptPending)
	assert.Zero(t, state.DistanceMovedKm)
	require.NotNil(t, state.LastRefreshLocation)
	assert.Equal(t, newLat, state.LastRefreshLocation.Latitude)
}

func TestController_RefreshFailureKeepsState(t *testing.T) {
	fetch, _ := fetchStub(nil, assert.AnError)
	c := NewController(fetch)
	c.SetRefreshPoint(baseLat, baseLng)
	c.OnPositionUpdate(baseLat+0.01, baseLng)

	_, err := c.Refresh(context.Background())
	require.Error(t, err)

	state := c.State()
	assert.True(t, state.PromptPending)
	assert.Equal(t, baseLat, state.LastRefreshLocation.Latitude)
	assert.Greater(t, state.DistanceMovedKm, ThresholdKm)
}

func TestController_DismissKeepsDistanceAndRefreshPoint(t *testing.T) {
	fetch, _ := fetchStub(nil, nil)
	c := NewController(fetch)
	c.SetRefreshPoint(baseLat, baseLng)

	var prompts int
	c.OnPrompt(func(model.RefreshState) { prompts++ })

	c.OnPositionUpdate(baseLat+0.009, baseLng)
	require.True(t, c.State().PromptPending)
	require.Equal(t, 1, prompts)

	c.Dismiss()
	state := c.State()
	assert.False(t, state.PromptPending)
	assert.Greater(t, state.DistanceMovedKm, ThresholdKm)
	assert.Equal(t, baseLat, state.LastRefreshLocation.Latitude)

	// Moving further re-raises; the guard is only "not already pending".
	c.OnPositionUpdate(baseLat+0.012, baseLng)
	assert.True(t, c.State().PromptPending)
	assert.Equal(t, 2, prompts)
}

func TestController_RefreshWithoutPositionFails(t *testing.T) {
	fetch, calls := fetchStub(nil, nil)
	c := NewController(fetch)

	_, err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoPosition)
	assert.Zero(t, *calls)
}
