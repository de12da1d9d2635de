package locator

import (
	"context"
	"sync"
	"time"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/pkg/geo"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// MinMoveKm filters GPS jitter: tracked updates closer than this to the
// previous fix do not fire the location-changed callback (~10 meters).
const MinMoveKm = 0.01

// Position is a single fix from the device.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64 // meters, nil when unreported
}

// Options mirrors the platform position request options.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// OneShotOptions favors a fast answer over precision and tolerates a
// cached fix up to five minutes old.
func OneShotOptions() Options {
	return Options{HighAccuracy: false, Timeout: 15 * time.Second, MaximumAge: 5 * time.Minute}
}

// TrackingOptions always wants a fresh, precise fix.
func TrackingOptions() Options {
	return Options{HighAccuracy: true, Timeout: 10 * time.Second, MaximumAge: 0}
}

// Watch is an active position subscription. Stop is safe to call more
// than once.
type Watch interface {
	Stop()
}

// PositionProvider is the device geolocation capability. Implementations
// include the per-connection WebSocket feed and test fakes.
type PositionProvider interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
	WatchPosition(opts Options, onUpdate func(Position), onError func(error)) (Watch, error)
}

// Locator wraps a PositionProvider behind one-shot resolution and
// continuous tracking.
//
// States: Idle -> Resolving -> {Resolved, Failed}. Tracking is an
// orthogonal flag; a resolved locator keeps updating in place while
// tracking without re-entering Resolving.
type Locator struct {
	provider PositionProvider

	mu       sync.Mutex
	state    model.LocationState
	watch    Watch
	previous *model.LatLng

	onLocationChange func(lat, lng float64)
}

func New(provider PositionProvider) *Locator {
	return &Locator{
		provider: provider,
		state:    model.LocationState{Loading: true},
	}
}

// OnLocationChange registers the callback fired when a tracked update
// moves more than MinMoveKm from the previous fix.
func (l *Locator) OnLocationChange(fn func(lat, lng float64)) {
	l.mu.Lock()
	l.onLocationChange = fn
	l.mu.Unlock()
}

// State returns a snapshot of the current location state.
func (l *Locator) State() model.LocationState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Resolve requests a single position fix. It is the retry operation too:
// each call re-runs the whole resolution sequence.
func (l *Locator) Resolve(ctx context.Context) error {
	if l.provider == nil {
		perr := NewError(KindUnsupported)
		l.setFailed(perr)
		return perr
	}

	l.mu.Lock()
	l.state.Loading = true
	l.state.Error = ""
	l.mu.Unlock()

	opts := OneShotOptions()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	pos, err := l.provider.CurrentPosition(ctx, opts)
	if err != nil {
		perr := Classify(err)
		logger.Debug("Position resolution failed", map[string]interface{}{
			"kind": string(perr.Kind),
		})
		l.setFailed(perr)
		return perr
	}

	l.mu.Lock()
	l.setResolvedLocked(pos)
	l.previous = &model.LatLng{Latitude: pos.Latitude, Longitude: pos.Longitude}
	l.mu.Unlock()

	logger.Debug("Position resolved", map[string]interface{}{
		"latitude":  pos.Latitude,
		"longitude": pos.Longitude,
	})
	return nil
}

// StartTracking begins a continuous position watch. An already-active
// watch is cancelled first so updates are never delivered twice.
func (l *Locator) StartTracking() error {
	if l.provider == nil {
		return NewError(KindUnsupported)
	}

	l.mu.Lock()
	if l.watch != nil {
		l.watch.Stop()
		l.watch = nil
	}
	l.mu.Unlock()

	watch, err := l.provider.WatchPosition(TrackingOptions(), l.handleUpdate, l.handleWatchError)
	if err != nil {
		return Classify(err)
	}

	l.mu.Lock()
	l.watch = watch
	l.mu.Unlock()

	logger.Debug("Location tracking started", nil)
	return nil
}

// StopTracking cancels the active watch. Safe to call when no watch is
// active, and safe to call repeatedly.
func (l *Locator) StopTracking() {
	l.mu.Lock()
	watch := l.watch
	l.watch = nil
	l.mu.Unlock()

	if watch != nil {
		watch.Stop()
		logger.Debug("Location tracking stopped", nil)
	}
}

// IsTracking reports whether a watch is active.
func (l *Locator) IsTracking() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.watch != nil
}

// Close releases the platform watch handle.
func (l *Locator) Close() {
	l.StopTracking()
}

func (l *Locator) handleUpdate(pos Position) {
	l.mu.Lock()
	l.setResolvedLocked(pos)

	var notify func(lat, lng float64)
	if l.previous != nil && l.onLocationChange != nil {
		moved := geo.DistanceKm(l.previous.Latitude, l.previous.Longitude, pos.Latitude, pos.Longitude)
		if moved > MinMoveKm {
			notify = l.onLocationChange
		}
	}
	l.previous = &model.LatLng{Latitude: pos.Latitude, Longitude: pos.Longitude}
	l.mu.Unlock()

	if notify != nil {
		notify(pos.Latitude, pos.Longitude)
	}
}

func (l *Locator) handleWatchError(err error) {
	// Watch errors do not tear down a resolved state; the next good fix
	// keeps the stream going.
	logger.Warn("Location tracking error", map[string]interface{}{
		"error": err.Error(),
	})
}

func (l *Locator) setResolvedLocked(pos Position) {
	lat, lng := pos.Latitude, pos.Longitude
	l.state = model.LocationState{
		Latitude:  &lat,
		Longitude: &lng,
		Loading:   false,
		Accuracy:  pos.Accuracy,
	}
}

func (l *Locator) setFailed(perr *PositionError) {
	l.mu.Lock()
	l.state = model.LocationState{
		Latitude:  nil,
		Longitude: nil,
		Loading:   false,
		Error:     perr.Error(),
	}
	l.mu.Unlock()
}
