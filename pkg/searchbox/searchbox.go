// Package searchbox implements the headless type-ahead location search
// controller: debounced suggest calls, a visible candidate list, and
// candidate resolution into an exact coordinate. It has no rendering
// dependency; the owning view observes it through the Sink interface.
package searchbox

import (
	"context"
	"strings"
)

// Candidate is one ranked place suggestion. Its ID is only valid for a
// Retrieve within the same search session.
type Candidate struct {
	ID            string
	Name          string
	PreferredName string
	PlaceName     string
	RegionName    string
	CountryName   string
}

// DisplayName renders the candidate for the suggestion list. A preferred
// name wins outright; otherwise the raw name is followed by the present
// context fields in place, region, country order.
func (c Candidate) DisplayName() string {
	if c.PreferredName != "" {
		return c.PreferredName
	}
	parts := []string{c.Name}
	for _, ctx := range []string{c.PlaceName, c.RegionName, c.CountryName} {
		if ctx != "" {
			parts = append(parts, ctx)
		}
	}
	return strings.Join(parts, ", ")
}

// Place is the resolved result of retrieving a candidate.
type Place struct {
	Longitude   float64
	Latitude    float64
	DisplayName string
}

// Suggester is the two-phase geocoding protocol the controller drives.
type Suggester interface {
	Suggest(ctx context.Context, query, sessionToken string) ([]Candidate, error)
	Retrieve(ctx context.Context, candidateId, sessionToken string) (Place, error)
}

// Sink receives the controller's upward events. Implementations must not
// call back into the controller from these methods.
type Sink interface {
	LocationSelected(lng, lat float64)
	TemporaryMarkerPlaced(lng, lat float64)
}
