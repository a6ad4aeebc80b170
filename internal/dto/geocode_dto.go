package dto

// Geocoding API DTOs (two-phase suggest/retrieve protocol).

type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type Suggestion struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	PreferredName string `json:"preferred_name,omitempty"`
	FeatureType   string `json:"feature_type,omitempty"`
	Address       string `json:"address,omitempty"`
	FullAddress   string `json:"full_address,omitempty"`
	PlaceName     string `json:"place_name,omitempty"`
	RegionName    string `json:"region_name,omitempty"`
	CountryName   string `json:"country_name,omitempty"`
}

type RetrieveResponse struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}
