package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ignisml/ignis/internal/models"
)

var historicalDailyFields = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"temperature_2m_mean",
	"relative_humidity_2m_max",
	"relative_humidity_2m_min",
	"relative_humidity_2m_mean",
	"wind_speed_10m_max",
	"wind_speed_10m_mean",
	"surface_pressure_mean",
	"precipitation_sum",
}

type archiveResponse struct {
	Daily struct {
		Time                   []string  `json:"time"`
		Temperature2mMax       []float64 `json:"temperature_2m_max"`
		Temperature2mMin       []float64 `json:"temperature_2m_min"`
		Temperature2mMean      []float64 `json:"temperature_2m_mean"`
		RelativeHumidity2mMax  []float64 `json:"relative_humidity_2m_max"`
		RelativeHumidity2mMin  []float64 `json:"relative_humidity_2m_min"`
		RelativeHumidity2mMean []float64 `json:"relative_humidity_2m_mean"`
		WindSpeed10mMax        []float64 `json:"wind_speed_10m_max"`
		WindSpeed10mMean       []float64 `json:"wind_speed_10m_mean"`
		SurfacePressureMean    []float64 `json:"surface_pressure_mean"`
		PrecipitationSum       []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Historical returns a per-day series for a date range from the archive
// endpoint, with the same derived-index formulas applied row-wise. It is
// outside the never-fails contract of Current and reports errors.
func (c *Client) Historical(ctx context.Context, lat, lon float64, start, end time.Time) ([]models.DailyWeather, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid date range: %s after %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	if err := c.gate.wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/archive?latitude=%.4f&longitude=%.4f&start_date=%s&end_date=%s&timezone=auto&daily=%s",
		c.historicalURL, lat, lon,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		strings.Join(historicalDailyFields, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	d := data.Daily
	series := make([]models.DailyWeather, 0, len(d.Time))
	for i, ts := range d.Time {
		date, err := time.Parse("2006-01-02", ts)
		if err != nil {
			return nil, fmt.Errorf("error parsing daily timestamp %q: %w", ts, err)
		}

		row := models.DailyWeather{
			Date:          date,
			TempMaxF:      celsiusToFahrenheit(at(d.Temperature2mMax, i)),
			TempMinF:      celsiusToFahrenheit(at(d.Temperature2mMin, i)),
			TempMeanF:     celsiusToFahrenheit(at(d.Temperature2mMean, i)),
			HumidityMax:   at(d.RelativeHumidity2mMax, i),
			HumidityMin:   at(d.RelativeHumidity2mMin, i),
			HumidityMean:  at(d.RelativeHumidity2mMean, i),
			WindMaxMPH:    kmhToMPH(at(d.WindSpeed10mMax, i)),
			WindMeanMPH:   kmhToMPH(at(d.WindSpeed10mMean, i)),
			Pressure:      at(d.SurfacePressureMean, i),
			Precipitation: at(d.PrecipitationSum, i),
		}
		row.DroughtCode = droughtCode(row.TempMeanF, row.HumidityMean, row.Precipitation)
		row.FireWeatherIndex = fireWeatherIndex(row.TempMeanF, row.HumidityMean, row.WindMeanMPH, row.DroughtCode)
		row.RedFlag = redFlagConditions(row.TempMaxF, row.HumidityMin, row.WindMaxMPH)

		series = append(series, row)
	}

	return series, nil
}

// at tolerates ragged daily arrays from the archive endpoint.
func at(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}
