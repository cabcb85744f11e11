package weather

import "math"

// Derived fire-weather index formulas. These values feed the classifiers
// directly, so the algebraic forms here are part of the model contract
// and must not drift.

func celsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func fahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

func kmhToMPH(kmh float64) float64 {
	return kmh * 0.621371
}

func mphToKMH(mph float64) float64 {
	return mph / 0.621371
}

// droughtCode is a bounded dryness estimate in [0, 100] combining heat,
// dryness of the air, and recent precipitation.
func droughtCode(tempF, humidity, precipitation float64) float64 {
	baseDrought := math.Max(0, (tempF-32)/100)
	humidityFactor := math.Max(0, (100-humidity)/100)
	precipFactor := math.Max(0, 1-precipitation/10)

	return math.Min(100, (baseDrought+humidityFactor+precipFactor)*33.33)
}

// fireWeatherIndex is a simplified FWI in [0, 100] layered on the fine
// fuel moisture code and initial spread index.
func fireWeatherIndex(tempF, humidity, windMPH, drought float64) float64 {
	ffmc := math.Max(0, math.Min(100, 100-humidity+(tempF-32)*0.5))
	dmc := drought
	isi := math.Max(0, ffmc*windMPH*0.05)
	bui := math.Max(0, (dmc+drought)*0.5)

	return math.Max(0, math.Min(100, isi*bui*0.01))
}

// redFlagConditions reports whether at least two of the three critical
// thresholds hold: temp >= 85F, humidity <= 20%, wind >= 25 mph.
func redFlagConditions(tempF, humidity, windMPH float64) bool {
	met := 0
	if tempF >= 85 {
		met++
	}
	if humidity <= 20 {
		met++
	}
	if windMPH >= 25 {
		met++
	}
	return met >= 2
}

// vaporPressureDeficit returns kPa via the Tetens saturation formula.
func vaporPressureDeficit(tempC, humidity float64) float64 {
	es := 0.6108 * math.Exp(17.27*tempC/(tempC+237.3))
	ea := es * humidity / 100
	return es - ea
}

// heatIndex applies the Rothfusz regression above 80F; below that the
// apparent temperature is just the air temperature.
func heatIndex(tempF, humidity float64) float64 {
	if tempF < 80 {
		return tempF
	}

	hi := -42.379 + 2.04901523*tempF + 10.14333127*humidity -
		0.22475541*tempF*humidity - 6.83783e-3*tempF*tempF -
		5.481717e-2*humidity*humidity + 1.22874e-3*tempF*tempF*humidity +
		8.5282e-4*tempF*humidity*humidity - 1.99e-6*tempF*tempF*humidity*humidity

	return math.Max(tempF, hi)
}
