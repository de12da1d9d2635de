package yelp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localconnect/localconnect-backend/config"
)

func testClient(serverURL, apiKey string) *Client {
	return NewClient(&config.YelpConfig{
		APIKey:      apiKey,
		BaseURL:     serverURL,
		RateLimitPS: 1000,
	})
}

func TestClient_SearchRequestShape(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/businesses/search", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"businesses":[{"id":"abc","name":"Taco Spot","rating":4.5,"review_count":12,"distance":1200.5,"categories":[{"alias":"mexican","title":"Mexican"}],"location":{"address1":"1 Main St","city":"Brooklyn"}}],"total":1}`))
	}))
	defer server.Close()

	client := testClient(server.URL, "test-key")
	businesses, err := client.Search(context.Background(), SearchRequest{
		Latitude:   40.7128,
		Longitude:  -74.0060,
		Categories: "restaurants,food",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "40.7128", gotQuery["latitude"])
	assert.Equal(t, "-74.006", gotQuery["longitude"])
	assert.Equal(t, "8000", gotQuery["radius"])
	assert.Equal(t, "20", gotQuery["limit"])
	assert.Equal(t, "best_match", gotQuery["sort_by"])
	assert.Equal(t, "restaurants,food", gotQuery["categories"])

	require.Len(t, businesses, 1)
	assert.Equal(t, "Taco Spot", businesses[0].Name)
	assert.Equal(t, 1200.5, businesses[0].Distance)
	assert.Equal(t, "1 Main St, Brooklyn", businesses[0].Location.DisplayAddress())
}

func TestClient_SearchOmitsEmptyCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["categories"]
		assert.False(t, present)
		w.Write([]byte(`{"businesses":[],"total":0}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL, "test-key").Search(context.Background(), SearchRequest{Latitude: 1, Longitude: 2})
	require.NoError(t, err)
}

func TestClient_MissingAPIKey(t *testing.T) {
	client := testClient("http://unused", "")

	assert.False(t, client.HasCredential())

	_, err := client.Search(context.Background(), SearchRequest{Latitude: 1, Longitude: 2})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":"RATE_LIMITED"}}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL, "test-key").Search(context.Background(), SearchRequest{Latitude: 1, Longitude: 2})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := testClient(server.URL, "test-key").Search(context.Background(), SearchRequest{Latitude: 1, Longitude: 2})
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "network failures are not status errors")
}
