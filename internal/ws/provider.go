package ws

import (
	"context"
	"sync"

	"github.com/localconnect/localconnect-backend/internal/locator"
)

// feedProvider adapts the connection's inbound position stream to
// locator.PositionProvider. The read pump delivers fixes; CurrentPosition
// waiters and the active watch consume them.
type feedProvider struct {
	requestFix func()

	mu      sync.Mutex
	waiters []chan fixResult
	watcher *feedWatch
}

type fixResult struct {
	pos locator.Position
	err error
}

type feedWatch struct {
	provider *feedProvider
	onUpdate func(locator.Position)
	onError  func(error)

	stopOnce sync.Once
}

func newFeedProvider(requestFix func()) *feedProvider {
	return &feedProvider{requestFix: requestFix}
}

// CurrentPosition asks the device for a fix and blocks until the next
// position or error arrives, or the context deadline passes.
func (p *feedProvider) CurrentPosition(ctx context.Context, opts locator.Options) (locator.Position, error) {
	waiter := make(chan fixResult, 1)
	p.mu.Lock()
	p.waiters = append(p.waiters, waiter)
	p.mu.Unlock()

	p.requestFix()

	select {
	case result := <-waiter:
		return result.pos, result.err
	case <-ctx.Done():
		p.removeWaiter(waiter)
		return locator.Position{}, ctx.Err()
	}
}

// WatchPosition registers callbacks fed by the read pump. Only one watch
// is active at a time; registering a new one replaces the previous.
func (p *feedProvider) WatchPosition(opts locator.Options, onUpdate func(locator.Position), onError func(error)) (locator.Watch, error) {
	watch := &feedWatch{provider: p, onUpdate: onUpdate, onError: onError}

	p.mu.Lock()
	p.watcher = watch
	p.mu.Unlock()

	return watch, nil
}

func (w *feedWatch) Stop() {
	w.stopOnce.Do(func() {
		w.provider.mu.Lock()
		if w.provider.watcher == w {
			w.provider.watcher = nil
		}
		w.provider.mu.Unlock()
	})
}

// deliver routes an inbound fix to all pending one-shot waiters and the
// active watch.
func (p *feedProvider) deliver(pos locator.Position) {
	p.mu.Lock()
	waiters := p.waiters
	p.waiters = nil
	watcher := p.watcher
	p.mu.Unlock()

	for _, waiter := range waiters {
		waiter <- fixResult{pos: pos}
	}
	if watcher != nil && watcher.onUpdate != nil {
		watcher.onUpdate(pos)
	}
}

// deliverError routes an inbound device geolocation failure.
func (p *feedProvider) deliverError(err error) {
	p.mu.Lock()
	waiters := p.waiters
	p.waiters = nil
	watcher := p.watcher
	p.mu.Unlock()

	for _, waiter := range waiters {
		waiter <- fixResult{err: err}
	}
	if watcher != nil && watcher.onError != nil {
		watcher.onError(err)
	}
}

func (p *feedProvider) removeWaiter(waiter chan fixResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, w := range p.waiters {
		if w == waiter {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			return
		}
	}
}
