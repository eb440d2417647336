// Package cities is the registry of supported Moroccan coastal towns.
package cities

import (
	"fmt"
	"strings"
)

// Coast labels.
const (
	CoastAtlantic      = "Atlantique"
	CoastMediterranean = "Méditerranée"
)

// Region names, in display order.
const (
	RegionAtlanticNorth  = "Atlantique Nord"
	RegionAtlanticCentre = "Atlantique Centre"
	RegionAtlanticSouth  = "Atlantique Sud"
	RegionMediterranean  = "Méditerranée"
)

// Regions lists the region names in display order.
var Regions = []string{RegionAtlanticNorth, RegionAtlanticCentre, RegionAtlanticSouth, RegionMediterranean}

// City is a coastal town the service reports on.
type City struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Coast     string  `json:"coast"`
	Region    string  `json:"region"`
}

func (c City) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f)", c.Name, c.Latitude, c.Longitude)
}

// DefaultCode is the city used when none has been chosen.
const DefaultCode = "casablanca"

// Atlantic north to south, then Mediterranean west to east.
var registry = []City{
	{"tanger", "Tanger", 35.7595, -5.8340, CoastAtlantic, RegionAtlanticNorth},
	{"asilah", "Asilah", 35.4653, -6.0356, CoastAtlantic, RegionAtlanticNorth},
	{"larache", "Larache", 35.1932, -6.1561, CoastAtlantic, RegionAtlanticNorth},
	{"kenitra", "Kénitra", 34.2610, -6.5802, CoastAtlantic, RegionAtlanticNorth},
	{"mehdia", "Mehdia", 34.2500, -6.6667, CoastAtlantic, RegionAtlanticNorth},
	{"sale", "Salé", 34.0531, -6.7985, CoastAtlantic, RegionAtlanticNorth},
	{"rabat", "Rabat", 34.0209, -6.8416, CoastAtlantic, RegionAtlanticNorth},
	{"temara", "Temara", 33.9278, -6.9063, CoastAtlantic, RegionAtlanticNorth},

	{"mohammedia", "Mohammedia", 33.6866, -7.3826, CoastAtlantic, RegionAtlanticCentre},
	{"casablanca", "Casablanca", 33.5731, -7.5898, CoastAtlantic, RegionAtlanticCentre},
	{"eljadida", "El Jadida", 33.2316, -8.5007, CoastAtlantic, RegionAtlanticCentre},
	{"oualidia", "Oualidia", 32.7333, -9.0333, CoastAtlantic, RegionAtlanticCentre},
	{"safi", "Safi", 32.2994, -9.2372, CoastAtlantic, RegionAtlanticCentre},
	{"essaouira", "Essaouira", 31.5085, -9.7595, CoastAtlantic, RegionAtlanticCentre},

	{"agadir", "Agadir", 30.4278, -9.5981, CoastAtlantic, RegionAtlanticSouth},
	{"sidiifni", "Sidi Ifni", 29.3797, -10.1731, CoastAtlantic, RegionAtlanticSouth},
	{"tantan", "Tan-Tan", 28.4378, -11.1036, CoastAtlantic, RegionAtlanticSouth},
	{"laayoune", "Laâyoune", 27.1536, -13.1994, CoastAtlantic, RegionAtlanticSouth},
	{"dakhla", "Dakhla", 23.7148, -15.9370, CoastAtlantic, RegionAtlanticSouth},

	{"mdiq", "M'diq", 35.6850, -5.3264, CoastMediterranean, RegionMediterranean},
	{"fnideq", "Fnideq", 35.8494, -5.3544, CoastMediterranean, RegionMediterranean},
	{"tetouan", "Tétouan", 35.5889, -5.3626, CoastMediterranean, RegionMediterranean},
	{"martil", "Martil", 35.6167, -5.2667, CoastMediterranean, RegionMediterranean},
	{"restinga", "Restinga-Smir", 35.6667, -5.2833, CoastMediterranean, RegionMediterranean},
	{"alhoceima", "Al Hoceima", 35.2517, -3.9372, CoastMediterranean, RegionMediterranean},
	{"nador", "Nador", 35.1681, -2.9330, CoastMediterranean, RegionMediterranean},
	{"saidia", "Saïdia", 35.0894, -2.2317, CoastMediterranean, RegionMediterranean},
}

// All returns every city in registry order.
func All() []City {
	out := make([]City, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a city by code. Matching ignores case, so the camel-cased codes
// used by older clients ("elJadida") resolve too.
func Lookup(code string) (City, bool) {
	code = strings.TrimSpace(code)
	for _, c := range registry {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return City{}, false
}

// ByRegion groups the registry by region, keeping registry order within each.
func ByRegion() map[string][]City {
	out := make(map[string][]City, len(Regions))
	for _, c := range registry {
		out[c.Region] = append(out[c.Region], c)
	}
	return out
}

// Default returns Casablanca.
func Default() City {
	c, _ := Lookup(DefaultCode)
	return c
}
