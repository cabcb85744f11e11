package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignisml/ignis/internal/model"
	"github.com/ignisml/ignis/internal/models"
)

type mockPredictionService struct {
	lastAreas     []models.GeographicArea
	lastIncidents []models.FireIncident
}

func (m *mockPredictionService) PredictMany(_ context.Context, areas []models.GeographicArea, incidents []models.FireIncident) []models.RiskPrediction {
	m.lastAreas = areas
	m.lastIncidents = incidents

	out := make([]models.RiskPrediction, len(areas))
	for i, a := range areas {
		out[i] = models.RiskPrediction{
			AreaName:       a.DisplayName,
			RiskLevel:      models.RiskHigh,
			RiskScore:      0.6,
			RiskPercentage: 60,
			Confidence:     0.8,
			NearbyFires:    []models.NearbyFire{},
			TopRiskFactors: []models.RiskFactor{},
			LastUpdated:    time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC),
		}
	}
	return out
}

type mockWeatherService struct {
	historicalErr error
}

func (m *mockWeatherService) Current(_ context.Context, lat, lon float64) models.WeatherObservation {
	return models.WeatherObservation{
		TemperatureF: 88,
		Humidity:     25,
		WindSpeedMPH: 12,
		DataSource:   models.WeatherSourceAPI,
	}
}

func (m *mockWeatherService) Historical(_ context.Context, lat, lon float64, start, end time.Time) ([]models.DailyWeather, error) {
	if m.historicalErr != nil {
		return nil, m.historicalErr
	}
	return []models.DailyWeather{{Date: start, TempMaxF: 95}}, nil
}

func testMetadata() model.Metadata {
	return model.Metadata{
		Kind:       "Enhanced Ensemble",
		Components: "Gradient Boosting + Random Forest",
		Accuracy:   0.94,
		TrainedAt:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(svc PredictionService, weather WeatherService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, weather, testMetadata()).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func predictionRequest() PredictionRequest {
	return PredictionRequest{
		Areas: []models.GeographicArea{
			{
				Name:        "malibu",
				DisplayName: "Malibu",
				Center:      models.Coordinates{Latitude: 34.0259, Longitude: -118.7798},
			},
			{
				Name:        "topanga",
				DisplayName: "Topanga",
				Center:      models.Coordinates{Latitude: 34.0937, Longitude: -118.6012},
			},
		},
		FireIncidents: []models.FireIncident{
			{Name: "Canyon Fire", Latitude: 34.05, Longitude: -118.70, AcresBurned: 1500, PercentContained: 30, IsActive: true},
		},
	}
}

func TestPredictReturnsOrderedPredictions(t *testing.T) {
	svc := &mockPredictionService{}
	r := newTestRouter(svc, &mockWeatherService{})

	w := doRequest(t, r, http.MethodPost, "/api/predict", predictionRequest())
	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Predictions, 2)
	assert.Equal(t, "Malibu", resp.Predictions[0].AreaName)
	assert.Equal(t, "Topanga", resp.Predictions[1].AreaName)

	assert.Equal(t, "Enhanced Ensemble", resp.ModelInfo.Type)
	assert.Equal(t, "94.0%", resp.ModelInfo.Accuracy)
	assert.Equal(t, "48 advanced features", resp.ModelInfo.Features)
	assert.Equal(t, "Open-Meteo API", resp.WeatherSource)
	assert.GreaterOrEqual(t, resp.ProcessingTimeMS, 0.0)

	require.Len(t, svc.lastIncidents, 1)
	assert.Equal(t, "Canyon Fire", svc.lastIncidents[0].Name)
}

func TestPredictAcceptsDateOnlyIncidentStart(t *testing.T) {
	svc := &mockPredictionService{}
	r := newTestRouter(svc, &mockWeatherService{})

	body := `{
		"areas": [{"name": "malibu", "display_name": "Malibu", "center": {"latitude": 34.03, "longitude": -118.78}}],
		"fire_incidents": [{"name": "Canyon Fire", "latitude": 34.05, "longitude": -118.70, "acres_burned": 1500, "is_active": true, "started": "2024-01-15"}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, svc.lastIncidents, 1)
	assert.Equal(t, 2024, svc.lastIncidents[0].Started.Year())
}

func TestPredictRejectsEmptyAreas(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodPost, "/api/predict", PredictionRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "areas must not be empty")
}

func TestPredictRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestPredictGeoJSONFormat(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodPost, "/api/predict?format=geojson", predictionRequest())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	var fc FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "Feature", first.Type)
	assert.Equal(t, "Point", first.Geometry.Type)
	require.Len(t, first.Geometry.Coordinates, 2)
	assert.Equal(t, -118.7798, first.Geometry.Coordinates[0])
	assert.Equal(t, 34.0259, first.Geometry.Coordinates[1])
	assert.Equal(t, "malibu", first.Properties["area"])
	assert.Equal(t, "high", first.Properties["risk_level"])
}

func TestCurrentWeatherEndpoint(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodGet, "/api/weather/34.05/-118.24", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var obs models.WeatherObservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &obs))
	assert.Equal(t, 88.0, obs.TemperatureF)
	assert.Equal(t, models.WeatherSourceAPI, obs.DataSource)
}

func TestCurrentWeatherRejectsBadCoordinates(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	tests := []struct {
		path string
		want string
	}{
		{"/api/weather/notanumber/-118.24", "invalid latitude"},
		{"/api/weather/95.0/-118.24", "invalid latitude"},
		{"/api/weather/34.05/-200.0", "invalid longitude"},
	}

	for _, tc := range tests {
		w := doRequest(t, r, http.MethodGet, tc.path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.want, tc.path)
	}
}

func TestHistoricalWeatherEndpoint(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodGet, "/api/weather/34.05/-118.24/history?start=2025-01-01&end=2025-01-07", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Days []models.DailyWeather `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 1)
	assert.Equal(t, 95.0, resp.Days[0].TempMaxF)
}

func TestHistoricalWeatherRejectsBadDates(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodGet, "/api/weather/34.05/-118.24/history?start=Jan-1&end=2025-01-07", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid start date")

	w = doRequest(t, r, http.MethodGet, "/api/weather/34.05/-118.24/history?start=2025-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid end date")
}

func TestHistoricalWeatherUpstreamFailure(t *testing.T) {
	weather := &mockWeatherService{historicalErr: errors.New("upstream down")}
	r := newTestRouter(&mockPredictionService{}, weather)

	w := doRequest(t, r, http.MethodGet, "/api/weather/34.05/-118.24/history?start=2025-01-01&end=2025-01-07", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestModelInfoEndpoint(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodGet, "/api/model/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Enhanced Ensemble", resp["model_type"])
	assert.Equal(t, float64(48), resp["features_count"])
	assert.Equal(t, "Open-Meteo API", resp["weather_provider"])
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"model_status":"loaded"`)
}

func TestRootEndpoint(t *testing.T) {
	r := newTestRouter(&mockPredictionService{}, &mockWeatherService{})

	w := doRequest(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wildfire risk prediction")
}
