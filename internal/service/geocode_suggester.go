package service

import (
	"context"

	"memory-map-be/internal/dto"
	"memory-map-be/pkg/searchbox"
)

// geocodeSuggester adapts IGeocodeService to the searchbox.Suggester
// interface consumed by the headless search-box controller.
type geocodeSuggester struct {
	svc IGeocodeService
}

func NewGeocodeSuggester(svc IGeocodeService) searchbox.Suggester {
	return &geocodeSuggester{svc: svc}
}

func (g *geocodeSuggester) Suggest(ctx context.Context, query, sessionToken string) ([]searchbox.Candidate, error) {
	res, err := g.svc.Suggest(ctx, query, sessionToken)
	if err != nil {
		return nil, err
	}
	return toCandidates(res.Suggestions), nil
}

func (g *geocodeSuggester) Retrieve(ctx context.Context, candidateId, sessionToken string) (searchbox.Place, error) {
	res, err := g.svc.Retrieve(ctx, candidateId, sessionToken)
	if err != nil {
		return searchbox.Place{}, err
	}
	return searchbox.Place{
		Longitude:   res.Longitude,
		Latitude:    res.Latitude,
		DisplayName: res.Name,
	}, nil
}

func toCandidates(suggestions []dto.Suggestion) []searchbox.Candidate {
	candidates := make([]searchbox.Candidate, 0, len(suggestions))
	for _, s := range suggestions {
		candidates = append(candidates, searchbox.Candidate{
			ID:            s.Id,
			Name:          s.Name,
			PreferredName: s.PreferredName,
			PlaceName:     s.PlaceName,
			RegionName:    s.RegionName,
			CountryName:   s.CountryName,
		})
	}
	return candidates
}
