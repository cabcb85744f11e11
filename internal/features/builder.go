package features

import (
	"math"
	"time"

	"github.com/ignisml/ignis/internal/models"
	"github.com/ignisml/ignis/internal/registry"
)

// Build synthesizes the 48-slot feature vector for one area. It is pure:
// identical inputs always produce a bit-identical vector. Interaction
// terms are computed last, after every operand slot exists.
func Build(area models.GeographicArea, terrain registry.Terrain, w models.WeatherObservation, incidents []models.FireIncident, now time.Time) Vector {
	var v Vector

	v.set("temperature_f", w.TemperatureF)
	v.set("temperature_c", w.TemperatureC)
	v.set("humidity", w.Humidity)
	v.set("wind_speed_mph", w.WindSpeedMPH)
	v.set("vapor_pressure_deficit", w.VaporPressureDeficit)
	v.set("heat_index", w.HeatIndex)

	prox := proximity(area.Center, incidents)
	v.set("distance_to_nearest_fire", prox.nearestDistance)
	v.set("fire_size_nearby", prox.largestSize)
	v.set("fire_containment_nearby", prox.lowestContainment)
	v.set("num_nearby_fires", float64(prox.count))
	v.set("total_fire_area", prox.totalArea)
	v.set("avg_fire_age_days", prox.avgAgeDays)
	v.set("fire_threat_index", prox.threatIndex)

	urban := terrain.Vegetation == "urban"
	v.set("elevation", terrain.Elevation)
	v.set("slope", terrain.Slope)
	v.set("aspect_numeric", registry.AspectNumeric(terrain.Aspect))
	v.set("vegetation_type_numeric", registry.VegetationNumeric(terrain.Vegetation))
	v.set("topographic_position", terrain.Elevation/100)
	v.set("distance_to_coast", math.Abs(area.Center.Longitude+120)*111)
	v.set("distance_to_urban", pick(urban, 50, 25))
	v.set("road_density", pick(urban, 10, 2))

	month := int(now.Month())
	fireSeason := month >= 5 && month <= 10
	peakSeason := month >= 7 && month <= 9
	shoulderSeason := month == 5 || month == 6 || month == 10
	rainGap := daysSinceRain(month)

	v.set("month", float64(month))
	v.set("day_of_year", float64(now.YearDay()))
	v.set("is_fire_season", boolToFloat(fireSeason))
	v.set("is_peak_season", boolToFloat(peakSeason))
	v.set("is_shoulder_season", boolToFloat(shoulderSeason))
	v.set("days_since_rain", rainGap)
	v.set("fire_season_progress", seasonProgress(month, fireSeason))

	v.set("years_since_last_major_fire", 5)
	v.set("fire_return_interval", pick(terrain.BaseRisk > 0.7, 20, 50))
	v.set("suppression_difficulty", (terrain.Slope+w.WindSpeedMPH)/10)
	v.set("evacuation_time_estimate", pick(urban, 30, 120))
	v.set("fuel_load_index", registry.FuelLoad(terrain.Vegetation)+rainGap/30)
	v.set("ignition_risk_sources", pick(urban, 5, 2))

	v.set("haines_index", math.Min(6, (w.TemperatureF-32)/20+w.WindSpeedMPH/10))
	v.set("burning_index", math.Min(100, w.TemperatureF*(100-w.Humidity)/100))
	v.set("energy_release_component", math.Min(100, w.TemperatureF*w.WindSpeedMPH/10))
	v.set("spread_component", math.Min(100, w.WindSpeedMPH*(100-w.Humidity)/100))

	// Interaction terms: products and ratios of slots set above.
	tempF, humidity, wind := w.TemperatureF, w.Humidity, w.WindSpeedMPH
	stress := (tempF - 32) * (100 - humidity) * wind / 10000

	v.set("temp_humidity_interaction", tempF*(100-humidity)/100)
	v.set("temp_wind_interaction", tempF*wind/100)
	v.set("humidity_wind_interaction", (100-humidity)*wind/100)
	v.set("weather_stress_index", stress)
	v.set("fire_size_distance_ratio", prox.largestSize/(prox.nearestDistance+1))
	v.set("fire_containment_urgency", (100-prox.lowestContainment)*prox.largestSize/100)
	v.set("slope_wind_interaction", terrain.Slope*wind/100)
	v.set("elevation_temp_interaction", terrain.Elevation*tempF/1000)
	v.set("season_weather_risk", boolToFloat(fireSeason)*stress)
	v.set("peak_season_multiplier", boolToFloat(peakSeason)*(tempF+wind)/100)

	return v
}

// daysSinceRain is a month-bucketed dryness heuristic: driest through the
// summer, wettest through the winter storm season.
func daysSinceRain(month int) float64 {
	switch {
	case month >= 6 && month <= 9:
		return 30
	case month >= 11 || month <= 3:
		return 5
	default:
		return 15
	}
}

// seasonProgress is how far into the May-October fire season the month
// falls, 0 outside it.
func seasonProgress(month int, fireSeason bool) float64 {
	if !fireSeason {
		return 0
	}
	return float64(month-5) / 6
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func pick(cond bool, ifTrue, ifFalse float64) float64 {
	if cond {
		return ifTrue
	}
	return ifFalse
}
