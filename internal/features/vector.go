package features

import "fmt"

// Size is the feature-vector width the model bundle is trained against.
const Size = 48

// Names fixes the slot ordering of the feature vector. The scaler,
// classifier weights, and importance vector in the model bundle are all
// aligned to this exact order; changing it changes model behavior.
var Names = [Size]string{
	"temperature_f", "temperature_c", "humidity", "wind_speed_mph",
	"vapor_pressure_deficit", "heat_index",

	"distance_to_nearest_fire", "fire_size_nearby", "fire_containment_nearby",
	"num_nearby_fires", "total_fire_area", "avg_fire_age_days", "fire_threat_index",

	"elevation", "slope", "aspect_numeric", "vegetation_type_numeric",
	"topographic_position", "distance_to_coast", "distance_to_urban", "road_density",

	"month", "day_of_year", "is_fire_season", "is_peak_season", "is_shoulder_season",
	"days_since_rain", "fire_season_progress",

	"years_since_last_major_fire", "fire_return_interval", "suppression_difficulty",
	"evacuation_time_estimate", "fuel_load_index", "ignition_risk_sources",

	"haines_index", "burning_index", "energy_release_component", "spread_component",

	"temp_humidity_interaction", "temp_wind_interaction", "humidity_wind_interaction",
	"weather_stress_index", "fire_size_distance_ratio", "fire_containment_urgency",
	"slope_wind_interaction", "elevation_temp_interaction", "season_weather_risk",
	"peak_season_multiplier",
}

var indexByName = func() map[string]int {
	m := make(map[string]int, Size)
	for i, n := range Names {
		m[n] = i
	}
	return m
}()

// Vector is a fully populated, fixed-order feature encoding. Every slot
// is always set; unknown signals carry their documented defaults.
type Vector struct {
	values [Size]float64
}

// Values returns a copy of the slots in canonical order.
func (v Vector) Values() []float64 {
	out := make([]float64, Size)
	copy(out, v.values[:])
	return out
}

// At returns the slot at index i.
func (v Vector) At(i int) float64 {
	return v.values[i]
}

// Get returns the slot by name.
func (v Vector) Get(name string) (float64, bool) {
	i, ok := indexByName[name]
	if !ok {
		return 0, false
	}
	return v.values[i], true
}

func (v *Vector) set(name string, value float64) {
	i, ok := indexByName[name]
	if !ok {
		panic(fmt.Sprintf("features: unknown feature name %q", name))
	}
	v.values[i] = value
}
