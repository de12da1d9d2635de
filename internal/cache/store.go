package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// SessionKeyPrefix namespaces all session-scoped cache keys.
const SessionKeyPrefix = "session:"

// Collection key suffixes, one per cached collection.
const (
	keyBusinesses = "businesses"
	keyReviews    = "reviews"
	keyFavorites  = "favorites"
)

// Store holds the session-scoped copies of businesses, reviews and
// favorites. Each collection is serialized whole on every write; record
// volumes are small enough that incremental updates are not worth their
// complexity.
//
// A parse failure or missing key always reads as an empty collection.
// Reads and writes within one session are serialized by a per-session
// mutex, mirroring the single-writer guarantee a browser tab has.
type Store struct {
	kv  KeyValueStore
	ttl time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(kv KeyValueStore, ttl time.Duration) *Store {
	return &Store{
		kv:    kv,
		ttl:   ttl,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// WithLock runs fn while holding the session's write lock. Review
// aggregation uses this so its read-recompute-write cycle cannot
// interleave with another mutation of the same session.
func (s *Store) WithLock(sessionID string, fn func() error) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

func sessionKey(sessionID, suffix string) string {
	return fmt.Sprintf("%s%s:%s", SessionKeyPrefix, sessionID, suffix)
}

func getCollection[T any](ctx context.Context, s *Store, sessionID, suffix string) []T {
	data, err := s.kv.Get(ctx, sessionKey(sessionID, suffix))
	if err != nil {
		logger.Warn("Session cache read failed, treating as empty", map[string]interface{}{
			"session_id": sessionID,
			"collection": suffix,
			"error":      err.Error(),
		})
		return []T{}
	}
	if data == nil {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("Session cache entry unparsable, treating as empty", map[string]interface{}{
			"session_id": sessionID,
			"collection": suffix,
			"error":      err.Error(),
		})
		return []T{}
	}
	return items
}

func setCollection[T any](ctx context.Context, s *Store, sessionID, suffix string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", suffix, err)
	}
	return s.kv.Set(ctx, sessionKey(sessionID, suffix), data, s.ttl)
}

// GetBusinesses returns the session's cached business collection.
func (s *Store) GetBusinesses(ctx context.Context, sessionID string) []model.Business {
	return getCollection[model.Business](ctx, s, sessionID, keyBusinesses)
}

// SetBusinesses replaces the session's business collection.
func (s *Store) SetBusinesses(ctx context.Context, sessionID string, businesses []model.Business) error {
	return setCollection(ctx, s, sessionID, keyBusinesses, businesses)
}

// GetReviews returns the session's cached review collection.
func (s *Store) GetReviews(ctx context.Context, sessionID string) []model.Review {
	return getCollection[model.Review](ctx, s, sessionID, keyReviews)
}

// SetReviews replaces the session's review collection.
func (s *Store) SetReviews(ctx context.Context, sessionID string, reviews []model.Review) error {
	return setCollection(ctx, s, sessionID, keyReviews, reviews)
}

// GetFavorites returns the session's favorited business IDs.
func (s *Store) GetFavorites(ctx context.Context, sessionID string) []string {
	return getCollection[string](ctx, s, sessionID, keyFavorites)
}

// SetFavorites replaces the session's favorite set.
func (s *Store) SetFavorites(ctx context.Context, sessionID string, favorites []string) error {
	return setCollection(ctx, s, sessionID, keyFavorites, favorites)
}

// ToggleFavorite flips membership of businessID in the favorite set and
// returns the new membership state: true when the business is now
// favorited, false when it was just removed.
func (s *Store) ToggleFavorite(ctx context.Context, sessionID, businessID string) (bool, error) {
	var nowFavorite bool
	err := s.WithLock(sessionID, func() error {
		favorites := s.GetFavorites(ctx, sessionID)
		for i, id := range favorites {
			if id == businessID {
				favorites = append(favorites[:i], favorites[i+1:]...)
				nowFavorite = false
				return s.SetFavorites(ctx, sessionID, favorites)
			}
		}
		favorites = append(favorites, businessID)
		nowFavorite = true
		return s.SetFavorites(ctx, sessionID, favorites)
	})
	return nowFavorite, err
}

// IsFavorite reports whether businessID is in the session's favorite set.
func (s *Store) IsFavorite(ctx context.Context, sessionID, businessID string) bool {
	for _, id := range s.GetFavorites(ctx, sessionID) {
		if id == businessID {
			return true
		}
	}
	return false
}

// Clear drops all collections for a session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	err := s.kv.Delete(ctx,
		sessionKey(sessionID, keyBusinesses),
		sessionKey(sessionID, keyReviews),
		sessionKey(sessionID, keyFavorites),
	)

	s.mu.Lock()
	delete(s.locks, sessionID)
	s.mu.Unlock()

	return err
}
