package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"memory-map-be/internal/dto"
	"memory-map-be/internal/pkg/logger"
	"memory-map-be/internal/pkg/serverutils"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultGeocodeBaseURL = "https://api.mapbox.com/search/searchbox/v1"
	suggestLimit          = 5
	suggestCacheTTL       = 5 * time.Minute
)

// IGeocodeService wraps the two-phase suggest/retrieve geocoding protocol.
// The session token groups one suggest sequence and its retrieve for the
// remote provider; callers own the token lifecycle.
type IGeocodeService interface {
	Suggest(ctx context.Context, query, sessionToken string) (*dto.SuggestResponse, error)
	Retrieve(ctx context.Context, candidateId, sessionToken string) (*dto.RetrieveResponse, error)
}

type geocodeService struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	cache       *gocache.Cache
	logger      logger.ILogger
}

func NewGeocodeService(accessToken string, log logger.ILogger) IGeocodeService {
	return &geocodeService{
		accessToken: accessToken,
		baseURL:     defaultGeocodeBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		cache:       gocache.New(suggestCacheTTL, 10*time.Minute),
		logger:      log,
	}
}

// NewGeocodeServiceWithBaseURL points the client at an alternative endpoint.
func NewGeocodeServiceWithBaseURL(accessToken, baseURL string, log logger.ILogger) IGeocodeService {
	s := NewGeocodeService(accessToken, log).(*geocodeService)
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

type mapboxSuggestResponse struct {
	Suggestions []struct {
		Name          string `json:"name"`
		NamePreferred string `json:"name_preferred"`
		MapboxId      string `json:"mapbox_id"`
		FeatureType   string `json:"feature_type"`
		Address       string `json:"address"`
		FullAddress   string `json:"full_address"`
		Context       struct {
			Country struct {
				Name string `json:"name"`
			} `json:"country"`
			Region struct {
				Name string `json:"name"`
			} `json:"region"`
			Place struct {
				Name string `json:"name"`
			} `json:"place"`
		} `json:"context"`
	} `json:"suggestions"`
}

type mapboxRetrieveResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name          string `json:"name"`
			NamePreferred string `json:"name_preferred"`
		} `json:"properties"`
	} `json:"features"`
}

func (s *geocodeService) Suggest(ctx context.Context, query, sessionToken string) (*dto.SuggestResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		// Empty input never reaches the network.
		return &dto.SuggestResponse{Suggestions: []dto.Suggestion{}}, nil
	}

	// The session token is part of the key: a cached response must only be
	// replayed for the session the provider actually saw the suggest under,
	// or the follow-up retrieve would pair with an unknown session.
	cacheKey := "suggest:" + sessionToken + ":" + strings.ToLower(query)
	if val, ok := s.cache.Get(cacheKey); ok {
		return val.(*dto.SuggestResponse), nil
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("access_token", s.accessToken)
	params.Add("session_token", sessionToken)
	params.Add("limit", fmt.Sprintf("%d", suggestLimit))

	body, err := s.get(ctx, s.baseURL+"/suggest?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result mapboxSuggestResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, serverutils.NewRemoteError("invalid suggest response", err)
	}

	suggestions := make([]dto.Suggestion, 0, suggestLimit)
	for _, raw := range result.Suggestions {
		if len(suggestions) == suggestLimit {
			break
		}
		suggestions = append(suggestions, dto.Suggestion{
			Id:            raw.MapboxId,
			Name:          raw.Name,
			PreferredName: raw.NamePreferred,
			FeatureType:   raw.FeatureType,
			Address:       raw.Address,
			FullAddress:   raw.FullAddress,
			PlaceName:     raw.Context.Place.Name,
			RegionName:    raw.Context.Region.Name,
			CountryName:   raw.Context.Country.Name,
		})
	}

	response := &dto.SuggestResponse{Suggestions: suggestions}
	s.cache.Set(cacheKey, response, suggestCacheTTL)

	return response, nil
}

func (s *geocodeService) Retrieve(ctx context.Context, candidateId, sessionToken string) (*dto.RetrieveResponse, error) {
	if candidateId == "" {
		return nil, serverutils.NewValidationError("candidate id is required")
	}

	params := url.Values{}
	params.Add("access_token", s.accessToken)
	params.Add("session_token", sessionToken)

	endpoint := fmt.Sprintf("%s/retrieve/%s?%s", s.baseURL, url.PathEscape(candidateId), params.Encode())
	body, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result mapboxRetrieveResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, serverutils.NewRemoteError("invalid retrieve response", err)
	}

	if len(result.Features) == 0 {
		return nil, serverutils.NewNotFoundError("no feature resolved for candidate")
	}

	feature := result.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return nil, serverutils.NewRemoteError("retrieve response missing coordinates", nil)
	}

	name := feature.Properties.Name
	if feature.Properties.NamePreferred != "" {
		name = feature.Properties.NamePreferred
	}

	return &dto.RetrieveResponse{
		Name:      name,
		Longitude: feature.Geometry.Coordinates[0],
		Latitude:  feature.Geometry.Coordinates[1],
	}, nil
}

func (s *geocodeService) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, serverutils.NewRemoteError("failed to build geocoder request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, serverutils.NewRemoteError("geocoder unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serverutils.NewRemoteError("failed to read geocoder response", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("geocode", "geocoder returned non-success status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return nil, serverutils.NewRemoteError(fmt.Sprintf("geocoder returned status %d", resp.StatusCode), nil)
	}

	return body, nil
}
