package registry

// StaticRegistry serves the built-in terrain dataset for the covered
// California areas. It is the default registry when no database path is
// configured.
type StaticRegistry struct{}

func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{}
}

// Lookup merges the base-risk table with the terrain override table.
// Any attribute not present for an area falls back to DefaultTerrain.
func (r *StaticRegistry) Lookup(areaID string) Terrain {
	id := normalizeID(areaID)

	t := DefaultTerrain
	if o, ok := terrainOverrides[id]; ok {
		t = o
	}
	if risk, ok := baseRisk[id]; ok {
		t.BaseRisk = risk
	}
	return t
}

// baseRisk is the historical ignition-propensity score per area.
var baseRisk = map[string]float64{
	"paradise": 0.95, "camp_fire_area": 0.95, "tubbs_fire_area": 0.90,

	"shasta_trinity": 0.85, "mendocino_national_forest": 0.85, "lassen_national_forest": 0.80,
	"plumas_national_forest": 0.80, "eldorado_national_forest": 0.85, "stanislaus_national_forest": 0.80,
	"sierra_national_forest": 0.75, "sequoia_national_forest": 0.75, "los_padres_national_forest": 0.80,
	"ventana_wilderness": 0.85, "angeles_national_forest": 0.85, "san_bernardino_national_forest": 0.80,
	"cleveland_national_forest": 0.75,

	"grass_valley": 0.80, "auburn": 0.75, "oroville": 0.80, "calistoga": 0.85,
	"forestville": 0.85, "altadena": 0.80, "julian": 0.75, "joshua_tree_area": 0.70,

	"malibu": 0.85, "topanga": 0.80, "calabasas": 0.75, "santa_rosa": 0.80,
	"napa": 0.75, "big_sur": 0.80, "yosemite": 0.70, "lake_tahoe": 0.65,
	"redding": 0.85, "chico": 0.75,

	"riverside": 0.60, "san_bernardino": 0.55, "palm_springs": 0.50,
	"sacramento": 0.45, "fresno": 0.40, "modesto": 0.35, "stockton": 0.30,
	"bakersfield": 0.35, "los_angeles": 0.40, "anaheim": 0.35, "irvine": 0.30,
	"huntington_beach": 0.25, "escondido": 0.40,

	"san_francisco": 0.25, "oakland": 0.30, "san_jose": 0.25, "monterey": 0.30,
	"santa_barbara": 0.35, "san_diego": 0.30, "santa_monica": 0.30,
	"westwood": 0.35, "beverly_hills": 0.30, "brentwood": 0.35, "hollywood": 0.35,
	"downtown_la": 0.30, "woodland_hills": 0.55,

	"mojave_national_preserve": 0.40,
}

// terrainOverrides carries the physical attributes for areas that have
// surveyed values. BaseRisk here is overridden by baseRisk above.
var terrainOverrides = map[string]Terrain{
	"paradise":       {Elevation: 1800, Slope: 25, Aspect: "south", Vegetation: "forest"},
	"malibu":         {Elevation: 400, Slope: 30, Aspect: "south", Vegetation: "chaparral"},
	"santa_rosa":     {Elevation: 300, Slope: 20, Aspect: "southwest", Vegetation: "grassland"},
	"napa":           {Elevation: 500, Slope: 15, Aspect: "west", Vegetation: "mixed"},
	"riverside":      {Elevation: 250, Slope: 10, Aspect: "east", Vegetation: "desert"},
	"sacramento":     {Elevation: 50, Slope: 3, Aspect: "flat", Vegetation: "urban"},
	"fresno":         {Elevation: 100, Slope: 2, Aspect: "flat", Vegetation: "agricultural"},
	"san_francisco":  {Elevation: 100, Slope: 8, Aspect: "west", Vegetation: "urban"},
	"san_diego":      {Elevation: 20, Slope: 5, Aspect: "west", Vegetation: "urban"},
	"los_angeles":    {Elevation: 80, Slope: 4, Aspect: "flat", Vegetation: "urban"},
	"westwood":       {Elevation: 100, Slope: 5, Aspect: "flat", Vegetation: "urban"},
	"beverly_hills":  {Elevation: 150, Slope: 8, Aspect: "south", Vegetation: "urban"},
	"santa_monica":   {Elevation: 50, Slope: 3, Aspect: "west", Vegetation: "urban"},
	"topanga":        {Elevation: 300, Slope: 35, Aspect: "southwest", Vegetation: "chaparral"},
	"calabasas":      {Elevation: 250, Slope: 18, Aspect: "south", Vegetation: "mixed"},
	"woodland_hills": {Elevation: 180, Slope: 12, Aspect: "east", Vegetation: "mixed"},
}
