package models

import "time"

// Weather data source labels carried through to serving metadata.
const (
	WeatherSourceAPI      = "open-meteo"
	WeatherSourceCache    = "cache"
	WeatherSourceFallback = "fallback_estimates"
)

// ForecastSummary condenses the next 24 hours into the extremes the
// feature pipeline cares about.
type ForecastSummary struct {
	Next24hMaxTempF          float64 `json:"next_24h_max_temp"`
	Next24hMinHumidity       float64 `json:"next_24h_min_humidity"`
	Next24hMaxWindMPH        float64 `json:"next_24h_max_wind"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
}

// WeatherObservation is a processed current-conditions snapshot for one
// coordinate, with fire-weather indices already derived.
type WeatherObservation struct {
	TemperatureF         float64         `json:"temperature_f"`
	TemperatureC         float64         `json:"temperature_c"`
	Humidity             float64         `json:"humidity"`
	WindSpeedMPH         float64         `json:"wind_speed_mph"`
	WindSpeedKMH         float64         `json:"wind_speed_kmh"`
	WindDirection        float64         `json:"wind_direction"`
	Pressure             float64         `json:"pressure"`
	Precipitation        float64         `json:"precipitation"`
	VaporPressureDeficit float64         `json:"vapor_pressure_deficit"`
	HeatIndex            float64         `json:"heat_index"`
	DroughtCode          float64         `json:"drought_code"`
	FireWeatherIndex     float64         `json:"fire_weather_index"`
	RedFlagWarning       bool            `json:"red_flag_warning"`
	Forecast             ForecastSummary `json:"forecast"`
	DataSource           string          `json:"data_source"`
	LastUpdated          time.Time       `json:"last_updated"`
}

// DailyWeather is one row of a historical series, sharing the same
// derived-index formulas as the current-conditions path.
type DailyWeather struct {
	Date             time.Time `json:"date"`
	TempMaxF         float64   `json:"temp_max_f"`
	TempMinF         float64   `json:"temp_min_f"`
	TempMeanF        float64   `json:"temp_mean_f"`
	HumidityMax      float64   `json:"humidity_max"`
	HumidityMin      float64   `json:"humidity_min"`
	HumidityMean     float64   `json:"humidity_mean"`
	WindMaxMPH       float64   `json:"wind_max_mph"`
	WindMeanMPH      float64   `json:"wind_mean_mph"`
	Pressure         float64   `json:"pressure"`
	Precipitation    float64   `json:"precipitation"`
	DroughtCode      float64   `json:"drought_code"`
	FireWeatherIndex float64   `json:"fire_weather_index"`
	RedFlag          bool      `json:"red_flag_conditions"`
}
