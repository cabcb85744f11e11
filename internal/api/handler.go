package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignisml/ignis/internal/features"
	"github.com/ignisml/ignis/internal/model"
	"github.com/ignisml/ignis/internal/models"
)

// PredictionService runs the batch serving pipeline.
type PredictionService interface {
	PredictMany(ctx context.Context, areas []models.GeographicArea, incidents []models.FireIncident) []models.RiskPrediction
}

// WeatherService exposes the weather acquisition paths directly.
type WeatherService interface {
	Current(ctx context.Context, lat, lon float64) models.WeatherObservation
	Historical(ctx context.Context, lat, lon float64, start, end time.Time) ([]models.DailyWeather, error)
}

type PredictionRequest struct {
	Areas         []models.GeographicArea `json:"areas"`
	FireIncidents []models.FireIncident   `json:"fire_incidents"`
}

type ModelInfo struct {
	Type       string `json:"type"`
	Accuracy   string `json:"accuracy"`
	Components string `json:"components"`
	Features   string `json:"features"`
}

type PredictionResponse struct {
	Predictions      []models.RiskPrediction `json:"predictions"`
	ModelInfo        ModelInfo               `json:"model_info"`
	ProcessingTimeMS float64                 `json:"processing_time_ms"`
	WeatherSource    string                  `json:"weather_source"`
}

const weatherSourceLabel = "Open-Meteo API"

type Handler struct {
	svc     PredictionService
	weather WeatherService
	meta    model.Metadata
}

func NewHandler(svc PredictionService, weather WeatherService, meta model.Metadata) *Handler {
	return &Handler{
		svc:     svc,
		weather: weather,
		meta:    meta,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
	r.POST("/api/predict", h.predict)
	r.GET("/api/weather/:lat/:lon", h.currentWeather)
	r.GET("/api/weather/:lat/:lon/history", h.historicalWeather)
	r.GET("/api/model/info", h.modelInfo)
}

func (h *Handler) predict(c *gin.Context) {
	var req PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}
	if len(req.Areas) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "areas must not be empty",
		})
		return
	}

	start := time.Now()
	predictions := h.svc.PredictMany(c.Request.Context(), req.Areas, req.FireIncidents)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	if c.Query("format") == "geojson" {
		fc := toGeoJSON(req.Areas, predictions)
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, fc)
		return
	}

	c.JSON(http.StatusOK, PredictionResponse{
		Predictions:      predictions,
		ModelInfo:        h.modelDescriptor(),
		ProcessingTimeMS: elapsed,
		WeatherSource:    weatherSourceLabel,
	})
}

func (h *Handler) currentWeather(c *gin.Context) {
	lat, lon, ok := parseCoordinate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.weather.Current(c.Request.Context(), lat, lon))
}

func (h *Handler) historicalWeather(c *gin.Context) {
	lat, lon, ok := parseCoordinate(c)
	if !ok {
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, want YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, want YYYY-MM-DD"})
		return
	}

	series, err := h.weather.Historical(c.Request.Context(), lat, lon, start, end)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "historical weather unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": series})
}

func (h *Handler) modelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"model_type":       h.meta.Kind,
		"components":       h.meta.Components,
		"accuracy":         h.meta.Accuracy,
		"features_count":   features.Size,
		"trained_at":       h.meta.TrainedAt,
		"weather_provider": weatherSourceLabel,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"model_status":   "loaded",
		"model_type":     h.meta.Kind,
		"features_count": features.Size,
	})
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":          "Ignis wildfire risk prediction API",
		"status":           "healthy",
		"model_accuracy":   h.meta.Accuracy,
		"weather_provider": weatherSourceLabel,
	})
}

func (h *Handler) modelDescriptor() ModelInfo {
	return ModelInfo{
		Type:       h.meta.Kind,
		Accuracy:   strconv.FormatFloat(h.meta.Accuracy*100, 'f', 1, 64) + "%",
		Components: h.meta.Components,
		Features:   strconv.Itoa(features.Size) + " advanced features",
	}
}

func parseCoordinate(c *gin.Context) (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(c.Param("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return 0, 0, false
	}
	return lat, lon, true
}
