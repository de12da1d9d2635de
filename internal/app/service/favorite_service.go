package service

import (
	"context"

	"github.com/localconnect/localconnect-backend/internal/cache"
	"github.com/localconnect/localconnect-backend/pkg/logger"

	"github.com/localconnect/localconnect-backend/internal/app/model"
)

// FavoriteService manages the session's favorite set. Favorites store
// business IDs only; the full records are resolved against the session's
// business collection on read.
type FavoriteService interface {
	Toggle(ctx context.Context, sessionID, businessID string) (bool, error)
	List(ctx context.Context, sessionID string) []model.Business
	IsFavorite(ctx context.Context, sessionID, businessID string) bool
}

type favoriteService struct {
	store           *cache.Store
	businessService BusinessService
}

func NewFavoriteService(store *cache.Store, businessService BusinessService) FavoriteService {
	return &favoriteService{
		store:           store,
		businessService: businessService,
	}
}

// Toggle flips favorite membership and returns the new state. The
// business must resolve; a dangling favorite for an unknown ID would
// never render.
func (s *favoriteService) Toggle(ctx context.Context, sessionID, businessID string) (bool, error) {
	if _, err := s.businessService.Get(ctx, sessionID, businessID); err != nil {
		return false, err
	}

	nowFavorite, err := s.store.ToggleFavorite(ctx, sessionID, businessID)
	if err != nil {
		return false, err
	}

	logger.Debug("Favorite toggled", map[string]interface{}{
		"session_id":  sessionID,
		"business_id": businessID,
		"favorited":   nowFavorite,
	})
	return nowFavorite, nil
}

// List resolves the favorite IDs against the session's business
// collection, preserving toggle order. IDs that no longer resolve (the
// collection was refreshed around a different location) are skipped, not
// removed; they render again if the business comes back.
func (s *favoriteService) List(ctx context.Context, sessionID string) []model.Business {
	businesses := s.businessService.Cached(ctx, sessionID)
	byID := make(map[string]model.Business, len(businesses))
	for _, b := range businesses {
		byID[b.ID] = b
	}

	favorites := s.store.GetFavorites(ctx, sessionID)
	resolved := make([]model.Business, 0, len(favorites))
	for _, id := range favorites {
		if b, ok := byID[id]; ok {
			resolved = append(resolved, b)
		}
	}
	return resolved
}

func (s *favoriteService) IsFavorite(ctx context.Context, sessionID, businessID string) bool {
	return s.store.IsFavorite(ctx, sessionID, businessID)
}
