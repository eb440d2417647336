package forecast

// Season is a fishing season tag used by the species catalog.
type Season string

const (
	SeasonSpring Season = "printemps"
	SeasonSummer Season = "été"
	SeasonAutumn Season = "automne"
	SeasonWinter Season = "hiver"
	// SeasonAllYear marks species present whatever the month.
	SeasonAllYear Season = "toute"
)

// Species describes the environmental window in which a fish is catchable.
type Species struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	ArabicName  string   `json:"arabic_name"`
	Icon        string   `json:"icon"`
	Seasons     []Season `json:"seasons"`
	TempMin     float64  `json:"temp_min"`
	TempMax     float64  `json:"temp_max"`
	WaveMax     float64  `json:"wave_max"`
	Depth       string   `json:"depth"`
	Description string   `json:"description"`
	Advice      string   `json:"advice"`
}

// InSeason reports whether the species is tagged for the given season.
func (s Species) InSeason(season Season) bool {
	for _, tag := range s.Seasons {
		if tag == SeasonAllYear || tag == season {
			return true
		}
	}
	return false
}

// IdealTemp is the midpoint of the tolerated sea temperature range.
func (s Species) IdealTemp() float64 {
	return (s.TempMin + s.TempMax) / 2
}

var catalog = []Species{
	{
		Key:         "sardine",
		Name:        "Sardine",
		ArabicName:  "سردين",
		Icon:        "🐟",
		Seasons:     []Season{SeasonSpring, SeasonSummer, SeasonAutumn},
		TempMin:     15,
		TempMax:     22,
		WaveMax:     2.0,
		Depth:       "Surface et moyenne profondeur",
		Description: "Très commune sur les côtes marocaines. Pêche idéale tôt le matin.",
		Advice:      "Meilleures prises à l'aube avec des eaux calmes",
	},
	{
		Key:         "dorade",
		Name:        "Dorade",
		ArabicName:  "دنيس",
		Icon:        "🐠",
		Seasons:     []Season{SeasonSpring, SeasonSummer},
		TempMin:     18,
		TempMax:     25,
		WaveMax:     1.5,
		Depth:       "Moyenne profondeur",
		Description: "Poisson noble apprécié. Préfère les eaux chaudes et calmes.",
		Advice:      "Pêche optimale pendant les journées ensoleillées",
	},
	{
		Key:         "bar",
		Name:        "Bar (Loup de mer)",
		ArabicName:  "قاروص",
		Icon:        "🐟",
		Seasons:     []Season{SeasonAllYear},
		TempMin:     12,
		TempMax:     20,
		WaveMax:     2.5,
		Depth:       "Surface à moyenne profondeur",
		Description: "Présent toute l'année. Résistant aux conditions variées.",
		Advice:      "Actif même par temps couvert",
	},
	{
		Key:         "maquereau",
		Name:        "Maquereau",
		ArabicName:  "الاسقمري",
		Icon:        "🐟",
		Seasons:     []Season{SeasonSpring, SeasonAutumn},
		TempMin:     14,
		TempMax:     20,
		WaveMax:     2.0,
		Depth:       "Surface",
		Description: "Poisson migrateur très actif. Bancs importants au printemps.",
		Advice:      "Chercher les bancs en surface",
	},
	{
		Key:         "thon",
		Name:        "Thon",
		ArabicName:  "تونة",
		Icon:        "🐟",
		Seasons:     []Season{SeasonSummer},
		TempMin:     20,
		TempMax:     26,
		WaveMax:     3.0,
		Depth:       "Haute mer",
		Description: "Pêche sportive en haute mer. Nécessite des conditions optimales.",
		Advice:      "Pêche en pleine mer, équipement robuste nécessaire",
	},
	{
		Key:         "mulet",
		Name:        "Mulet",
		ArabicName:  "البوري",
		Icon:        "🐟",
		Seasons:     []Season{SeasonAllYear},
		TempMin:     12,
		TempMax:     24,
		WaveMax:     1.5,
		Depth:       "Côtière peu profonde",
		Description: "Très adaptable. Présent près des côtes toute l'année.",
		Advice:      "Pêche côtière facile, bon pour débutants",
	},
}

// ListSpecies returns the catalog in declaration order. The returned slice is a
// copy; callers may not mutate the catalog.
func ListSpecies() []Species {
	out := make([]Species, len(catalog))
	copy(out, catalog)
	return out
}

// LookupSpecies returns the species with the given key.
func LookupSpecies(key string) (Species, bool) {
	for _, s := range catalog {
		if s.Key == key {
			return s, true
		}
	}
	return Species{}, false
}
