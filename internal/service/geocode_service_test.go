package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"memory-map-be/internal/pkg/logger"
	"memory-map-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
)

func newSuggestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, IGeocodeService) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewGeocodeServiceWithBaseURL("test-token", srv.URL, logger.NewNopLogger())
}

func suggestionJSON(n int) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(`{"mapbox_id":"id-%d","name":"Place %d"}`, i, i))
	}
	return `{"suggestions":[` + strings.Join(items, ",") + `]}`
}

func TestSuggestEmptyQuerySkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	for _, q := range []string{"", "   "} {
		res, err := svc.Suggest(context.Background(), q, "session-1")
		assert.NoError(t, err)
		assert.Empty(t, res.Suggestions)
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestSuggestPassesParamsAndMapsResponse(t *testing.T) {
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suggest", r.URL.Path)
		assert.Equal(t, "cafe", r.URL.Query().Get("q"))
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "session-1", r.URL.Query().Get("session_token"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		fmt.Fprint(w, `{"suggestions":[{
			"mapbox_id":"id-1",
			"name":"Cafe X",
			"name_preferred":"Cafe Y",
			"feature_type":"poi",
			"full_address":"1 Rue de X, Paris",
			"context":{"country":{"name":"France"},"region":{"name":"Ile-de-France"},"place":{"name":"Paris"}}
		}]}`)
	})

	res, err := svc.Suggest(context.Background(), "cafe", "session-1")
	assert.NoError(t, err)
	assert.Len(t, res.Suggestions, 1)

	s := res.Suggestions[0]
	assert.Equal(t, "id-1", s.Id)
	assert.Equal(t, "Cafe X", s.Name)
	assert.Equal(t, "Cafe Y", s.PreferredName)
	assert.Equal(t, "Paris", s.PlaceName)
	assert.Equal(t, "Ile-de-France", s.RegionName)
	assert.Equal(t, "France", s.CountryName)
}

func TestSuggestCapsResultsAtFive(t *testing.T) {
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, suggestionJSON(8))
	})

	res, err := svc.Suggest(context.Background(), "many", "session-1")
	assert.NoError(t, err)
	assert.Len(t, res.Suggestions, 5)
}

func TestSuggestNonSuccessStatusIsRemoteError(t *testing.T) {
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.Suggest(context.Background(), "cafe", "session-1")
	assert.True(t, serverutils.IsKind(err, serverutils.KindRemote))
}

func TestSuggestCachesRepeatedQueries(t *testing.T) {
	var hits atomic.Int32
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, suggestionJSON(1))
	})

	for i := 0; i < 3; i++ {
		res, err := svc.Suggest(context.Background(), "Paris", "session-1")
		assert.NoError(t, err)
		assert.Len(t, res.Suggestions, 1)
	}
	// Case-insensitive cache key.
	_, err := svc.Suggest(context.Background(), "paris", "session-1")
	assert.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
}

func TestSuggestCacheIsScopedToSession(t *testing.T) {
	var hits atomic.Int32
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, suggestionJSON(1))
	})

	_, err := svc.Suggest(context.Background(), "Paris", "session-1")
	assert.NoError(t, err)

	// A rotated session must not be served results the provider saw
	// under the old token: its retrieve would reference an unknown session.
	_, err = svc.Suggest(context.Background(), "Paris", "session-2")
	assert.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
}

func TestRetrieveMapsFirstFeature(t *testing.T) {
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/retrieve/id-1", r.URL.Path)
		assert.Equal(t, "session-1", r.URL.Query().Get("session_token"))
		fmt.Fprint(w, `{"features":[{
			"geometry":{"coordinates":[2.35,48.85]},
			"properties":{"name":"Paris","name_preferred":"Paris, France"}
		}]}`)
	})

	res, err := svc.Retrieve(context.Background(), "id-1", "session-1")
	assert.NoError(t, err)
	assert.Equal(t, 2.35, res.Longitude)
	assert.Equal(t, 48.85, res.Latitude)
	// Preferred name takes priority.
	assert.Equal(t, "Paris, France", res.Name)
}

func TestRetrieveEmptyFeaturesIsNotFound(t *testing.T) {
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[]}`)
	})

	_, err := svc.Retrieve(context.Background(), "id-1", "session-1")
	assert.True(t, serverutils.IsKind(err, serverutils.KindNotFound))
}

func TestRetrieveMissingCoordinatesIsRemoteError(t *testing.T) {
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features":[{"geometry":{"coordinates":[]},"properties":{"name":"X"}}]}`)
	})

	_, err := svc.Retrieve(context.Background(), "id-1", "session-1")
	assert.True(t, serverutils.IsKind(err, serverutils.KindRemote))
}

func TestRetrieveNonSuccessStatusIsRemoteError(t *testing.T) {
	_, svc := newSuggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.Retrieve(context.Background(), "id-1", "session-1")
	assert.True(t, serverutils.IsKind(err, serverutils.KindRemote))
}
