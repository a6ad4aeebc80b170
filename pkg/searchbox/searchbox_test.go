package searchbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateDisplayName(t *testing.T) {
	t.Run("preferred name wins regardless of context", func(t *testing.T) {
		c := Candidate{
			Name:          "Cafe X",
			PreferredName: "Cafe Y",
			PlaceName:     "Paris",
			CountryName:   "France",
		}
		assert.Equal(t, "Cafe Y", c.DisplayName())
	})

	t.Run("context joined in place, region, country order", func(t *testing.T) {
		c := Candidate{
			Name:        "Cafe X",
			PlaceName:   "Paris",
			CountryName: "France",
		}
		assert.Equal(t, "Cafe X, Paris, France", c.DisplayName())
	})

	t.Run("full context", func(t *testing.T) {
		c := Candidate{
			Name:        "Cafe X",
			PlaceName:   "Lyon",
			RegionName:  "Auvergne",
			CountryName: "France",
		}
		assert.Equal(t, "Cafe X, Lyon, Auvergne, France", c.DisplayName())
	})

	t.Run("no context renders bare name", func(t *testing.T) {
		c := Candidate{Name: "Cafe X"}
		assert.Equal(t, "Cafe X", c.DisplayName())
	})
}
