package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ignisml/ignis/internal/metrics"
	"github.com/ignisml/ignis/internal/models"
)

const (
	defaultBaseURL       = "https://api.open-meteo.com/v1"
	defaultHistoricalURL = "https://archive-api.open-meteo.com/v1"
)

var currentFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"wind_speed_10m",
	"wind_direction_10m",
	"surface_pressure",
	"precipitation",
}

var hourlyFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"wind_speed_10m",
	"precipitation_probability",
}

// Client fetches current weather from Open-Meteo with a process-wide TTL
// cache and a serialized minimum-interval gate in front of the upstream.
// Current never fails visibly: any transport, status, or decode problem
// degrades to a deterministic seasonal fallback.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	historicalURL string
	cache         *gocache.Cache
	gate          *requestGate
	clock         clockwork.Clock
}

// Options configures a Client. Zero values resolve to the documented
// defaults: 15s timeout, 600s cache TTL, 10s minimum request interval.
type Options struct {
	BaseURL       string
	HistoricalURL string
	Timeout       time.Duration
	CacheTTL      time.Duration
	MinInterval   time.Duration
	Clock         clockwork.Clock
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HistoricalURL == "" {
		opts.HistoricalURL = defaultHistoricalURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 600 * time.Second
	}
	if opts.MinInterval < 0 {
		opts.MinInterval = 10 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Client{
		httpClient:    &http.Client{Timeout: opts.Timeout},
		baseURL:       opts.BaseURL,
		historicalURL: opts.HistoricalURL,
		// No janitor goroutine; expired entries are dropped lazily on Get.
		cache: gocache.New(opts.CacheTTL, 0),
		gate: &requestGate{
			interval: opts.MinInterval,
			clock:    opts.Clock,
		},
		clock: opts.Clock,
	}
}

// cacheKey rounds the coordinate to 2 decimal places (~1 km), so nearby
// lookups share one upstream request.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("weather_%.2f_%.2f", lat, lon)
}

// Current returns the processed observation for a coordinate. A cache hit
// bypasses both the network and the rate gate.
func (c *Client) Current(ctx context.Context, lat, lon float64) models.WeatherObservation {
	key := cacheKey(lat, lon)
	if v, ok := c.cache.Get(key); ok {
		metrics.RecordWeatherLookup(models.WeatherSourceCache)
		return v.(models.WeatherObservation)
	}

	if err := c.gate.wait(ctx); err != nil {
		slog.Warn("weather fetch cancelled while rate limited", "lat", lat, "lon", lon, "error", err)
		metrics.RecordWeatherLookup(models.WeatherSourceFallback)
		return c.Fallback(lat, lon)
	}

	obs, err := c.fetchCurrent(ctx, lat, lon)
	if err != nil {
		slog.Warn("weather fetch failed, using fallback", "lat", lat, "lon", lon, "error", err)
		metrics.RecordWeatherLookup(models.WeatherSourceFallback)
		return c.Fallback(lat, lon)
	}

	c.cache.Set(key, obs, gocache.DefaultExpiration)
	metrics.RecordWeatherLookup(models.WeatherSourceAPI)
	return obs
}

type forecastResponse struct {
	Current struct {
		Temperature2m      float64 `json:"temperature_2m"`
		RelativeHumidity2m float64 `json:"relative_humidity_2m"`
		WindSpeed10m       float64 `json:"wind_speed_10m"`
		WindDirection10m   float64 `json:"wind_direction_10m"`
		SurfacePressure    float64 `json:"surface_pressure"`
		Precipitation      float64 `json:"precipitation"`
	} `json:"current"`
	Hourly struct {
		Temperature2m            []float64 `json:"temperature_2m"`
		RelativeHumidity2m       []float64 `json:"relative_humidity_2m"`
		WindSpeed10m             []float64 `json:"wind_speed_10m"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

func (c *Client) fetchCurrent(ctx context.Context, lat, lon float64) (models.WeatherObservation, error) {
	url := fmt.Sprintf("%s/forecast?latitude=%.4f&longitude=%.4f&timezone=auto&forecast_days=3&current=%s&hourly=%s",
		c.baseURL, lat, lon, strings.Join(currentFields, ","), strings.Join(hourlyFields, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.WeatherObservation{}, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WeatherObservation{}, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherObservation{}, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.WeatherObservation{}, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	return c.process(data), nil
}

// process converts the metric upstream payload into the observation the
// feature pipeline consumes, deriving all fire-weather indices.
func (c *Client) process(data forecastResponse) models.WeatherObservation {
	cur := data.Current
	tempF := celsiusToFahrenheit(cur.Temperature2m)
	windMPH := kmhToMPH(cur.WindSpeed10m)
	drought := droughtCode(tempF, cur.RelativeHumidity2m, cur.Precipitation)

	return models.WeatherObservation{
		TemperatureF:         tempF,
		TemperatureC:         cur.Temperature2m,
		Humidity:             cur.RelativeHumidity2m,
		WindSpeedMPH:         windMPH,
		WindSpeedKMH:         cur.WindSpeed10m,
		WindDirection:        cur.WindDirection10m,
		Pressure:             cur.SurfacePressure,
		Precipitation:        cur.Precipitation,
		VaporPressureDeficit: vaporPressureDeficit(cur.Temperature2m, cur.RelativeHumidity2m),
		HeatIndex:            heatIndex(tempF, cur.RelativeHumidity2m),
		DroughtCode:          drought,
		FireWeatherIndex:     fireWeatherIndex(tempF, cur.RelativeHumidity2m, windMPH, drought),
		RedFlagWarning:       redFlagConditions(tempF, cur.RelativeHumidity2m, windMPH),
		Forecast:             summarizeForecast(data),
		DataSource:           models.WeatherSourceAPI,
		LastUpdated:          c.clock.Now(),
	}
}

// summarizeForecast reduces the first 24 hourly rows to the extremes the
// feature builder cares about, converted to the serving units.
func summarizeForecast(data forecastResponse) models.ForecastSummary {
	s := models.ForecastSummary{
		Next24hMaxTempF:    20,
		Next24hMinHumidity: 50,
	}

	if temps := clip24(data.Hourly.Temperature2m); len(temps) > 0 {
		s.Next24hMaxTempF = celsiusToFahrenheit(maxOf(temps))
	} else {
		s.Next24hMaxTempF = celsiusToFahrenheit(s.Next24hMaxTempF)
	}
	if hums := clip24(data.Hourly.RelativeHumidity2m); len(hums) > 0 {
		s.Next24hMinHumidity = minOf(hums)
	}
	if winds := clip24(data.Hourly.WindSpeed10m); len(winds) > 0 {
		s.Next24hMaxWindMPH = kmhToMPH(maxOf(winds))
	}
	if probs := clip24(data.Hourly.PrecipitationProbability); len(probs) > 0 {
		s.PrecipitationProbability = maxOf(probs)
	}
	return s
}

func clip24(vals []float64) []float64 {
	if len(vals) > 24 {
		return vals[:24]
	}
	return vals
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// requestGate enforces a single global minimum interval between upstream
// calls. The read-wait-update sequence is one critical section so two
// concurrent cache misses cannot both slip through the gap.
type requestGate struct {
	mu       sync.Mutex
	interval time.Duration
	clock    clockwork.Clock
	last     time.Time
}

func (g *requestGate) wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.interval > 0 && !g.last.IsZero() {
		if d := g.interval - g.clock.Since(g.last); d > 0 {
			slog.Debug("rate limiting upstream weather call", "wait", d)
			select {
			case <-g.clock.After(d):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	g.last = g.clock.Now()
	return nil
}
