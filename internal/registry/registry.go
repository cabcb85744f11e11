package registry

import "strings"

// Terrain holds the static attributes looked up per area.
type Terrain struct {
	Elevation  float64
	Slope      float64
	Aspect     string
	Vegetation string
	BaseRisk   float64
}

// TerrainRegistry is an immutable lookup of terrain attributes keyed by
// area identifier. Unknown identifiers resolve to DefaultTerrain.
type TerrainRegistry interface {
	Lookup(areaID string) Terrain
}

// DefaultTerrain is the single documented policy for unknown areas.
var DefaultTerrain = Terrain{
	Elevation:  150,
	Slope:      10,
	Aspect:     "flat",
	Vegetation: "mixed",
	BaseRisk:   0.50,
}

// normalizeID folds display-style names onto registry keys
// ("Los Angeles" -> "los_angeles").
func normalizeID(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "_")
}

// AspectNumeric maps a compass aspect to degrees; flat terrain maps to 0.
func AspectNumeric(aspect string) float64 {
	aspects := map[string]float64{
		"north": 0, "northeast": 45, "east": 90, "southeast": 135,
		"south": 180, "southwest": 225, "west": 270, "northwest": 315,
		"flat": 0,
	}
	return aspects[strings.ToLower(aspect)]
}

// VegetationNumeric maps a vegetation class to its relative fire-risk rank.
func VegetationNumeric(veg string) float64 {
	ranks := map[string]float64{
		"urban": 1, "agricultural": 2, "grassland": 3,
		"mixed": 4, "desert": 5, "chaparral": 6, "forest": 7,
	}
	if r, ok := ranks[strings.ToLower(veg)]; ok {
		return r
	}
	return 3
}

// FuelLoad maps a vegetation class to its fuel load index.
func FuelLoad(veg string) float64 {
	loads := map[string]float64{
		"forest": 8, "chaparral": 7, "grassland": 5, "mixed": 6,
		"desert": 3, "agricultural": 2, "urban": 1,
	}
	if l, ok := loads[strings.ToLower(veg)]; ok {
		return l
	}
	return 5
}
