package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WeatherLookupsTotal tracks weather acquisitions by where the data
	// came from: upstream API, cache hit, or fallback synthesis.
	WeatherLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ignis_weather_lookups_total",
			Help: "Total number of weather lookups by data source",
		},
		[]string{"source"},
	)

	// PredictionsTotal tracks completed per-area predictions by risk level.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ignis_predictions_total",
			Help: "Total number of per-area risk predictions by level",
		},
		[]string{"level"},
	)

	// DegradedPredictionsTotal counts areas that fell back to the default
	// prediction because their pipeline failed.
	DegradedPredictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ignis_degraded_predictions_total",
			Help: "Total number of degraded default predictions substituted for failed areas",
		},
	)

	// BatchDuration tracks end-to-end duration of predictMany calls.
	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ignis_batch_duration_seconds",
			Help:    "Duration of full batch prediction requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// InferenceDuration tracks single ensemble evaluations.
	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ignis_inference_duration_seconds",
			Help:    "Duration of single ensemble inferences in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	// AppInfo provides static information about the application
	AppInfo = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ignis_app_info",
			Help: "Application information (always 1)",
		},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ignis_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppInfo.Set(1)
	AppStartTime.SetToCurrentTime()
}

// RecordWeatherLookup records one weather acquisition.
func RecordWeatherLookup(source string) {
	WeatherLookupsTotal.WithLabelValues(source).Inc()
}

// RecordPrediction records one completed per-area prediction.
func RecordPrediction(level string, degraded bool) {
	PredictionsTotal.WithLabelValues(level).Inc()
	if degraded {
		DegradedPredictionsTotal.Inc()
	}
}

// RecordInference records one ensemble evaluation.
func RecordInference(d time.Duration) {
	InferenceDuration.Observe(d.Seconds())
}
