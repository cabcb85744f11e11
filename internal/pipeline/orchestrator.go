package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/ignisml/ignis/internal/features"
	"github.com/ignisml/ignis/internal/metrics"
	"github.com/ignisml/ignis/internal/model"
	"github.com/ignisml/ignis/internal/models"
	"github.com/ignisml/ignis/internal/registry"
)

// WeatherProvider acquires current conditions for a coordinate. It never
// fails; degraded data is tagged in the observation itself.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) models.WeatherObservation
}

// InferencePool evaluates feature vectors on bounded workers.
type InferencePool interface {
	Infer(ctx context.Context, v features.Vector) (model.Result, error)
}

// Options carries the batching policy. Zero values resolve to the
// documented defaults: batches of 25 with 100ms pacing between them.
type Options struct {
	BatchSize int
	Pacing    time.Duration
	Clock     clockwork.Clock
}

// Orchestrator fans areas out through the weather -> features ->
// inference pipeline in bounded concurrent batches, isolating per-area
// failures and preserving input order in the result.
type Orchestrator struct {
	weather   WeatherProvider
	registry  registry.TerrainRegistry
	pool      InferencePool
	batchSize int
	pacing    time.Duration
	clock     clockwork.Clock
}

func New(weather WeatherProvider, reg registry.TerrainRegistry, pool InferencePool, opts Options) *Orchestrator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 25
	}
	if opts.Pacing <= 0 {
		opts.Pacing = 100 * time.Millisecond
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Orchestrator{
		weather:   weather,
		registry:  reg,
		pool:      pool,
		batchSize: opts.BatchSize,
		pacing:    opts.Pacing,
		clock:     opts.Clock,
	}
}

// PredictMany scores every area and always returns exactly one
// prediction per input area, in input order, regardless of completion
// order or per-area failure.
func (o *Orchestrator) PredictMany(ctx context.Context, areas []models.GeographicArea, incidents []models.FireIncident) []models.RiskPrediction {
	start := time.Now()
	out := make([]models.RiskPrediction, len(areas))

	for batchStart := 0; batchStart < len(areas); batchStart += o.batchSize {
		batchEnd := batchStart + o.batchSize
		if batchEnd > len(areas) {
			batchEnd = len(areas)
		}

		var g errgroup.Group
		for i := batchStart; i < batchEnd; i++ {
			g.Go(func() error {
				out[i] = o.predictOne(ctx, areas[i], incidents)
				return nil
			})
		}
		g.Wait()

		// Fixed pacing between batches keeps the weather upstream polite.
		if batchEnd < len(areas) {
			o.clock.Sleep(o.pacing)
		}
	}

	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	return out
}

func (o *Orchestrator) predictOne(ctx context.Context, area models.GeographicArea, incidents []models.FireIncident) models.RiskPrediction {
	now := o.clock.Now()

	obs := o.weather.Current(ctx, area.Center.Latitude, area.Center.Longitude)
	terrain := o.registry.Lookup(area.Name)
	vec := features.Build(area, terrain, obs, incidents, now)

	res, err := o.pool.Infer(ctx, vec)
	if err != nil {
		if errors.Is(err, model.ErrFeatureShape) {
			slog.Error("feature contract violated, substituting default prediction", "area", area.Name, "error", err)
		} else {
			slog.Error("inference failed, substituting default prediction", "area", area.Name, "error", err)
		}
		metrics.RecordPrediction(models.RiskModerate.String(), true)
		return DegradedPrediction(area.DisplayName, now)
	}

	metrics.RecordPrediction(res.Level.String(), false)

	return models.RiskPrediction{
		AreaName:                 area.DisplayName,
		RiskLevel:                res.Level,
		RiskScore:                res.Score,
		RiskPercentage:           res.Percentage,
		Confidence:               res.Confidence,
		WeatherImpact:            weatherImpact(obs),
		NearbyFires:              nearbyFires(area.Center, incidents),
		TopRiskFactors:           res.TopFactors,
		EvacuationRecommendation: evacuationRecommendation(res.Level, area.DisplayName),
		LastUpdated:              now,
	}
}

// DegradedPrediction is the clearly marked substitute for an area whose
// pipeline failed: Moderate at 0.5 score and 0.5 confidence.
func DegradedPrediction(displayName string, now time.Time) models.RiskPrediction {
	return models.RiskPrediction{
		AreaName:                 displayName,
		RiskLevel:                models.RiskModerate,
		RiskScore:                0.5,
		RiskPercentage:           50,
		Confidence:               0.5,
		WeatherImpact:            "Unable to evaluate current conditions",
		NearbyFires:              []models.NearbyFire{},
		TopRiskFactors:           []models.RiskFactor{},
		EvacuationRecommendation: "Monitor local emergency services for updates",
		Degraded:                 true,
		LastUpdated:              now,
	}
}
