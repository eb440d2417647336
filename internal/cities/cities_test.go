package cities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 27)

	seen := make(map[string]bool)
	var atlantic, med int
	for _, c := range all {
		assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
		seen[c.Code] = true
		switch c.Coast {
		case CoastAtlantic:
			atlantic++
		case CoastMediterranean:
			med++
		default:
			t.Errorf("%s has unknown coast %q", c.Code, c.Coast)
		}
		assert.True(t, c.Latitude > 20 && c.Latitude < 36, "%s latitude %v", c.Code, c.Latitude)
		assert.True(t, c.Longitude > -17 && c.Longitude < -2, "%s longitude %v", c.Code, c.Longitude)
	}
	assert.Equal(t, 19, atlantic)
	assert.Equal(t, 8, med)

	assert.Equal(t, "tanger", all[0].Code)
	assert.Equal(t, "saidia", all[len(all)-1].Code)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		code string
		want string
		ok   bool
	}{
		{"casablanca", "Casablanca", true},
		{"elJadida", "El Jadida", true},
		{" AGADIR ", "Agadir", true},
		{"alHoceima", "Al Hoceima", true},
		{"marrakech", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, ok := Lookup(tt.code)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, c.Name)
		})
	}
}

func TestByRegion(t *testing.T) {
	groups := ByRegion()
	require.Len(t, groups, len(Regions))

	assert.Len(t, groups[RegionAtlanticNorth], 8)
	assert.Len(t, groups[RegionAtlanticCentre], 6)
	assert.Len(t, groups[RegionAtlanticSouth], 5)
	assert.Len(t, groups[RegionMediterranean], 8)

	assert.Equal(t, "mohammedia", groups[RegionAtlanticCentre][0].Code)
	assert.Equal(t, "dakhla", groups[RegionAtlanticSouth][4].Code)
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "casablanca", c.Code)
	assert.InDelta(t, 33.5731, c.Latitude, 1e-9)
}
