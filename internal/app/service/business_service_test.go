package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/app/repository"
	"github.com/localconnect/localconnect-backend/internal/cache"
	"github.com/localconnect/localconnect-backend/internal/db"
	"github.com/localconnect/localconnect-backend/internal/provider/yelp"
)

type fakeProvider struct {
	results    []yelp.Business
	err        error
	credential bool
	lastReq    yelp.SearchRequest
}

func (f *fakeProvider) Search(ctx context.Context, req yelp.SearchRequest) ([]yelp.Business, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeProvider) HasCredential() bool {
	return f.credential
}

func setupBusinessService(t *testing.T, provider *fakeProvider) (BusinessService, repository.UserBusinessRepository, *cache.Store) {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := repository.NewUserBusinessRepository(testDB)
	store := cache.NewStore(cache.NewMemoryStore(), 0)
	return NewBusinessService(provider, repo, store), repo, store
}

func yelpBusiness(id, name string, aliases ...string) yelp.Business {
	tags := make([]yelp.CategoryTag, 0, len(aliases))
	for _, a := range aliases {
		tags = append(tags, yelp.CategoryTag{Alias: a, Title: a})
	}
	return yelp.Business{ID: id, Name: name, Categories: tags, Rating: 4.0, ReviewCount: 10}
}

func TestBusinessService_ClassifiesProviderResults(t *testing.T) {
	provider := &fakeProvider{
		credential: true,
		results: []yelp.Business{
			yelpBusiness("y1", "Taqueria", "restaurants", "mexican"),
			yelpBusiness("y2", "Page Turner", "bookstores"),
			yelpBusiness("y3", "Pipe Dreams", "plumbing"),
			yelpBusiness("y4", "Corner Pharmacy", "drugstores"),
		},
	}
	svc, _, _ := setupBusinessService(t, provider)

	businesses, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "")
	require.NoError(t, err)
	require.Len(t, businesses, 4)

	byID := map[string]model.Category{}
	for _, b := range businesses {
		byID[b.ID] = b.Category
	}
	assert.Equal(t, model.CategoryFood, byID["y1"])
	assert.Equal(t, model.CategoryRetail, byID["y2"])
	assert.Equal(t, model.CategoryServices, byID["y3"])
	assert.Equal(t, model.CategoryRetail, byID["y4"])
}

func TestBusinessService_FoodKeywordWinsOverRetail(t *testing.T) {
	provider := &fakeProvider{
		credential: true,
		// "coffee" (food) and "grocery" (retail) on one record: food
		// keywords are tested first.
		results: []yelp.Business{yelpBusiness("y1", "Beans & Things", "grocery", "coffee")},
	}
	svc, _, _ := setupBusinessService(t, provider)

	businesses, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "")
	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, model.CategoryFood, businesses[0].Category)
}

func TestBusinessService_UserListingsComeFirst(t *testing.T) {
	provider := &fakeProvider{
		credential: true,
		results:    []yelp.Business{yelpBusiness("y1", "Provider Cafe", "cafes", "coffee")},
	}
	svc, repo, _ := setupBusinessService(t, provider)

	require.NoError(t, repo.Create(&model.UserBusiness{
		OwnerID: "u1", Name: "My Taco Stand", Category: model.CategoryFood,
	}))

	businesses, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "")
	require.NoError(t, err)
	require.Len(t, businesses, 2)
	assert.Equal(t, "user-1", businesses[0].ID)
	assert.Equal(t, "y1", businesses[1].ID)
}

func TestBusinessService_UserListingDistance(t *testing.T) {
	provider := &fakeProvider{credential: true}
	svc, repo, _ := setupBusinessService(t, provider)

	lat, lng := 40.7580, -73.9855
	require.NoError(t, repo.Create(&model.UserBusiness{
		OwnerID: "u1", Name: "Midtown Deli", Category: model.CategoryFood,
		Latitude: &lat, Longitude: &lng,
	}))
	require.NoError(t, repo.Create(&model.UserBusiness{
		OwnerID: "u1", Name: "No Coords", Category: model.CategoryFood,
	}))

	businesses, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "")
	require.NoError(t, err)
	require.Len(t, businesses, 2)

	for _, b := range businesses {
		if b.Name == "Midtown Deli" {
			require.NotNil(t, b.Distance)
			assert.Equal(t, "3.5", *b.Distance)
		} else {
			assert.Nil(t, b.Distance)
		}
	}
}

func TestBusinessService_ProviderFailureDegrades(t *testing.T) {
	provider := &fakeProvider{
		credential: true,
		err:        &yelp.StatusError{Code: http.StatusTooManyRequests},
	}
	svc, repo, _ := setupBusinessService(t, provider)

	require.NoError(t, repo.Create(&model.UserBusiness{
		OwnerID: "u1", Name: "Still Here", Category: model.CategoryServices,
	}))

	businesses, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "")
	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, "Still Here", businesses[0].Name)
}

func TestBusinessService_CredentialErrorsPropagate(t *testing.T) {
	for name, providerErr := range map[string]error{
		"missing key":  yelp.ErrMissingAPIKey,
		"unauthorized": &yelp.StatusError{Code: http.StatusUnauthorized},
		"forbidden":    &yelp.StatusError{Code: http.StatusForbidden},
	} {
		t.Run(name, func(t *testing.T) {
			provider := &fakeProvider{err: providerErr}
			svc, _, _ := setupBusinessService(t, provider)

			_, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "")
			assert.Error(t, err)
		})
	}
}

func TestBusinessService_RejectsMalformedCoordinates(t *testing.T) {
	svc, _, _ := setupBusinessService(t, &fakeProvider{credential: true})

	_, err := svc.Nearby(context.Background(), "s1", 91, 0, "")
	assert.ErrorIs(t, err, ErrMalformedCoordinate)

	_, err = svc.Nearby(context.Background(), "s1", 0, -181, "")
	assert.ErrorIs(t, err, ErrMalformedCoordinate)
}

func TestBusinessService_CategoryFilter(t *testing.T) {
	provider := &fakeProvider{credential: true}
	svc, _, _ := setupBusinessService(t, provider)

	_, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "Food")
	require.NoError(t, err)
	assert.Equal(t, yelpCategoryTags[model.CategoryFood], provider.lastReq.Categories)

	_, err = svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "All")
	require.NoError(t, err)
	assert.Empty(t, provider.lastReq.Categories)

	_, err = svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "Nightlife")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestBusinessService_NearbyWritesSessionCache(t *testing.T) {
	provider := &fakeProvider{
		credential: true,
		results:    []yelp.Business{yelpBusiness("y1", "Provider Cafe", "cafes", "coffee")},
	}
	svc, _, store := setupBusinessService(t, provider)

	_, err := svc.Nearby(context.Background(), "s1", 40.7128, -74.0060, "")
	require.NoError(t, err)

	cached := store.GetBusinesses(context.Background(), "s1")
	require.Len(t, cached, 1)
	assert.Equal(t, "y1", cached[0].ID)
}

func TestBusinessService_CachedFallsBackToSamples(t *testing.T) {
	svc, _, _ := setupBusinessService(t, &fakeProvider{credential: true})

	businesses := svc.Cached(context.Background(), "fresh-session")
	assert.Len(t, businesses, len(SampleBusinesses()))
	assert.Equal(t, "Sophie's Artisan Bakery", businesses[0].Name)
}

func TestBusinessService_GetResolvesListingNotYetCached(t *testing.T) {
	svc, repo, _ := setupBusinessService(t, &fakeProvider{credential: true})

	require.NoError(t, repo.Create(&model.UserBusiness{
		OwnerID: "u1", Name: "Hidden Gem", Category: model.CategoryRetail,
	}))

	business, err := svc.Get(context.Background(), "s1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Hidden Gem", business.Name)

	_, err = svc.Get(context.Background(), "s1", "user-999")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
