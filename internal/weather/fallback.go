package weather

import (
	"math"

	"github.com/ignisml/ignis/internal/models"
)

// Fallback synthesizes a reduced-confidence observation when the upstream
// is unreachable: a seasonal baseline by month, shifted hotter and drier
// for inland longitudes. Every field the pipeline expects is populated.
func (c *Client) Fallback(lat, lon float64) models.WeatherObservation {
	now := c.clock.Now()
	month := int(now.Month())

	var tempF, humidity, windMPH float64
	switch {
	case month >= 6 && month <= 9:
		tempF, humidity, windMPH = 85.0, 30.0, 12.0
	case month == 12 || month <= 2:
		tempF, humidity, windMPH = 65.0, 60.0, 8.0
	default:
		tempF, humidity, windMPH = 75.0, 45.0, 10.0
	}

	// Rough coastal/inland split for the served region.
	if lon > -118 {
		tempF += 10
		humidity -= 10
		windMPH += 3
	}
	humidity = math.Max(10, humidity)

	precipProb := 0.0
	if month >= 11 || month <= 3 {
		precipProb = 5
	}

	drought := droughtCode(tempF, humidity, 0)

	return models.WeatherObservation{
		TemperatureF:         tempF,
		TemperatureC:         fahrenheitToCelsius(tempF),
		Humidity:             humidity,
		WindSpeedMPH:         windMPH,
		WindSpeedKMH:         mphToKMH(windMPH),
		WindDirection:        270,
		Pressure:             1013.25,
		Precipitation:        0,
		VaporPressureDeficit: vaporPressureDeficit(fahrenheitToCelsius(tempF), humidity),
		HeatIndex:            heatIndex(tempF, humidity),
		DroughtCode:          drought,
		FireWeatherIndex:     fireWeatherIndex(tempF, humidity, windMPH, 50),
		RedFlagWarning:       redFlagConditions(tempF, humidity, windMPH),
		Forecast: models.ForecastSummary{
			Next24hMaxTempF:          tempF + 5,
			Next24hMinHumidity:       math.Max(10, humidity-10),
			Next24hMaxWindMPH:        windMPH + 5,
			PrecipitationProbability: precipProb,
		},
		DataSource:  models.WeatherSourceFallback,
		LastUpdated: now,
	}
}
