package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/app/repository"
	"github.com/localconnect/localconnect-backend/internal/cache"
	"github.com/localconnect/localconnect-backend/internal/provider/yelp"
	"github.com/localconnect/localconnect-backend/pkg/geo"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

var (
	ErrMalformedCoordinate = errors.New("latitude/longitude out of range")
	ErrInvalidCategory     = errors.New("unknown business category")
	ErrBusinessNotFound    = errors.New("business not found")
)

// Placeholder shown when a business has no image of its own.
const defaultBusinessImage = "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800"

// ProviderSearcher is the slice of the provider client the aggregator
// needs; tests substitute a fake.
type ProviderSearcher interface {
	Search(ctx context.Context, req yelp.SearchRequest) ([]yelp.Business, error)
	HasCredential() bool
}

// BusinessService merges provider results and user-submitted listings
// into the unified, categorized collection clients see.
type BusinessService interface {
	Nearby(ctx context.Context, sessionID string, lat, lng float64, category string) ([]model.Business, error)
	Cached(ctx context.Context, sessionID string) []model.Business
	Get(ctx context.Context, sessionID, businessID string) (*model.Business, error)
}

type businessService struct {
	provider    ProviderSearcher
	listingRepo repository.UserBusinessRepository
	store       *cache.Store
}

func NewBusinessService(
	provider ProviderSearcher,
	listingRepo repository.UserBusinessRepository,
	store *cache.Store,
) BusinessService {
	return &businessService{
		provider:    provider,
		listingRepo: listingRepo,
		store:       store,
	}
}

// Nearby aggregates user-submitted listings and provider results around a
// coordinate, user listings first. The merged collection is written back
// to the session cache so reviews and favorites resolve against it.
//
// Provider fetch failures degrade to the user-submitted subset; a missing
// or rejected credential propagates, since there is nothing to aggregate.
func (s *businessService) Nearby(ctx context.Context, sessionID string, lat, lng float64, category string) ([]model.Business, error) {
	if !model.ValidCoordinate(lat, lng) {
		return nil, ErrMalformedCoordinate
	}

	filter, err := parseCategoryFilter(category)
	if err != nil {
		return nil, err
	}

	userBusinesses := s.userBusinesses(lat, lng, filter)

	providerBusinesses, err := s.providerBusinesses(ctx, lat, lng, filter)
	if err != nil {
		return nil, err
	}

	merged := make([]model.Business, 0, len(userBusinesses)+len(providerBusinesses))
	merged = append(merged, userBusinesses...)
	merged = append(merged, providerBusinesses...)

	if err := s.store.WithLock(sessionID, func() error {
		return s.store.SetBusinesses(ctx, sessionID, merged)
	}); err != nil {
		logger.Warn("Failed to cache merged businesses", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	logger.Info("Nearby businesses aggregated", map[string]interface{}{
		"session_id":     sessionID,
		"user_count":     len(userBusinesses),
		"provider_count": len(providerBusinesses),
	})
	return merged, nil
}

// Cached returns the session's current business collection, falling back
// to the bundled sample dataset when the session has nothing yet (first
// load, or location unavailable).
func (s *businessService) Cached(ctx context.Context, sessionID string) []model.Business {
	businesses := s.store.GetBusinesses(ctx, sessionID)
	if len(businesses) > 0 {
		return businesses
	}
	return SampleBusinesses()
}

// Get resolves a business by ID from the session cache, falling back to
// the listing table for user-submitted IDs that are not cached yet.
func (s *businessService) Get(ctx context.Context, sessionID, businessID string) (*model.Business, error) {
	for _, b := range s.Cached(ctx, sessionID) {
		if b.ID == businessID {
			return &b, nil
		}
	}

	if id, ok := parseUserBusinessID(businessID); ok {
		listing, err := s.listingRepo.FindByID(id)
		if err == nil {
			business := listing.ToBusiness()
			return &business, nil
		}
	}

	return nil, ErrBusinessNotFound
}

func (s *businessService) userBusinesses(lat, lng float64, filter model.Category) []model.Business {
	var listings []model.UserBusiness
	var err error
	if filter != "" {
		listings, err = s.listingRepo.FindByCategory(filter)
	} else {
		listings, err = s.listingRepo.FindAll()
	}
	if err != nil {
		// Degraded merge: the provider half can still be served.
		logger.Error("Failed to load user businesses for aggregation", err, nil)
		return nil
	}

	businesses := make([]model.Business, 0, len(listings))
	for i := range listings {
		business := listings[i].ToBusiness()
		if business.Image == "" {
			business.Image = defaultBusinessImage
		}
		if listings[i].Latitude != nil && listings[i].Longitude != nil {
			km := geo.DistanceKm(lat, lng, *listings[i].Latitude, *listings[i].Longitude)
			business.Distance = milesString(geo.KmToMiles(km))
		}
		businesses = append(businesses, business)
	}
	return businesses
}

func (s *businessService) providerBusinesses(ctx context.Context, lat, lng float64, filter model.Category) ([]model.Business, error) {
	req := yelp.SearchRequest{Latitude: lat, Longitude: lng}
	if filter != "" {
		req.Categories = yelpCategoryTags[filter]
	}

	results, err := s.provider.Search(ctx, req)
	if err != nil {
		if !isRecoverableProviderError(err) {
			return nil, err
		}
		logger.Warn("Provider search failed, serving user-submitted subset only", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil
	}

	businesses := make([]model.Business, 0, len(results))
	for _, biz := range results {
		businesses = append(businesses, mapProviderBusiness(biz))
	}
	return businesses, nil
}

// isRecoverableProviderError reports whether a provider failure still
// allows a degraded merge. Credential problems do not: the caller asked
// for provider data we can never deliver.
func isRecoverableProviderError(err error) bool {
	if errors.Is(err, yelp.ErrMissingAPIKey) {
		return false
	}
	var statusErr *yelp.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden {
			return false
		}
	}
	return true
}

func mapProviderBusiness(biz yelp.Business) model.Business {
	aliases := make([]string, 0, len(biz.Categories))
	titles := make([]string, 0, len(biz.Categories))
	for _, tag := range biz.Categories {
		aliases = append(aliases, tag.Alias)
		titles = append(titles, tag.Title)
	}

	phone := biz.DisplayPhone
	if phone == "" {
		phone = biz.Phone
	}
	if phone == "" {
		phone = "N/A"
	}

	image := biz.ImageURL
	if image == "" {
		image = defaultBusinessImage
	}

	business := model.Business{
		ID:          biz.ID,
		Name:        biz.Name,
		Category:    classifyCategory(aliases),
		Description: strings.Join(titles, ", "),
		Address:     biz.Location.DisplayAddress(),
		Phone:       phone,
		Image:       image,
		Rating:      biz.Rating,
		ReviewCount: biz.ReviewCount,
		URL:         biz.URL,
	}
	if biz.Distance > 0 {
		business.Distance = milesString(geo.MetersToMiles(biz.Distance))
	}
	return business
}

func parseCategoryFilter(category string) (model.Category, error) {
	if category == "" || category == "All" {
		return "", nil
	}
	filter := model.Category(category)
	if !filter.Valid() {
		return "", ErrInvalidCategory
	}
	return filter, nil
}

func parseUserBusinessID(businessID string) (uint, bool) {
	raw, ok := strings.CutPrefix(businessID, model.UserBusinessIDPrefix)
	if !ok {
		return 0, false
	}
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return 0, false
	}
	return id, true
}

func milesString(miles float64) *string {
	s := fmt.Sprintf("%.1f", miles)
	return &s
}
