package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ignisml/ignis/internal/features"
	"github.com/ignisml/ignis/internal/metrics"
	"github.com/ignisml/ignis/internal/models"
)

// ErrFeatureShape marks a feature-vector shape mismatch against the
// loaded bundle. This is a contract violation, never silently coerced.
var ErrFeatureShape = errors.New("feature vector shape mismatch")

// classMidpoints turn the blended class distribution into a continuous
// score in [0, 1].
var classMidpoints = [NumClasses]float64{0.125, 0.375, 0.625, 0.875}

const topFactorCount = 5

// Predictor blends two trained classifiers over a shared scaler.
// Immutable after construction.
type Predictor struct {
	bundle          *Bundle
	primaryWeight   float64
	secondaryWeight float64
}

// Result is the raw inference outcome before per-area assembly.
type Result struct {
	Level         models.RiskLevel
	Score         float64
	Percentage    int
	Confidence    float64
	Probabilities [NumClasses]float64
	TopFactors    []models.RiskFactor
}

func NewPredictor(b *Bundle, primaryWeight, secondaryWeight float64) *Predictor {
	return &Predictor{
		bundle:          b,
		primaryWeight:   primaryWeight,
		secondaryWeight: secondaryWeight,
	}
}

// Metadata exposes the loaded bundle's descriptor.
func (p *Predictor) Metadata() Metadata {
	return p.bundle.Metadata
}

// Predict scales the vector, blends both classifiers, and derives the
// categorical level, score, confidence, and ranked contributing factors.
func (p *Predictor) Predict(v features.Vector) (Result, error) {
	start := time.Now()

	raw := v.Values()
	if len(raw) != len(p.bundle.Scaler.Mean) {
		return Result{}, fmt.Errorf("%w: got %d slots, bundle expects %d", ErrFeatureShape, len(raw), len(p.bundle.Scaler.Mean))
	}

	scaled := make([]float64, len(raw))
	for i, x := range raw {
		scaled[i] = (x - p.bundle.Scaler.Mean[i]) / p.bundle.Scaler.Scale[i]
	}

	primary := p.bundle.Primary.probabilities(scaled)
	secondary := p.bundle.Secondary.probabilities(scaled)

	var blended [NumClasses]float64
	var score, confidence float64
	for k := 0; k < NumClasses; k++ {
		blended[k] = p.primaryWeight*primary[k] + p.secondaryWeight*secondary[k]
		score += blended[k] * classMidpoints[k]
		if blended[k] > confidence {
			confidence = blended[k]
		}
	}

	percentage := int(math.Round(score * 100))

	res := Result{
		Level:         riskLevel(percentage, confidence),
		Score:         score,
		Percentage:    percentage,
		Confidence:    confidence,
		Probabilities: blended,
		TopFactors:    p.topFactors(raw, scaled),
	}

	metrics.RecordInference(time.Since(start))
	return res, nil
}

// riskLevel applies the exact serving precedence. A percentage just above
// 75 with confidence at or below 0.75 resolves to High, not Extreme;
// that boundary is part of the served contract.
func riskLevel(percentage int, confidence float64) models.RiskLevel {
	switch {
	case percentage > 75 && confidence > 0.75:
		return models.RiskExtreme
	case percentage >= 50:
		return models.RiskHigh
	case percentage >= 25:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}

// topFactors ranks |scaled value x importance| and reports the top five
// with the signed contribution and the raw feature value.
func (p *Predictor) topFactors(raw, scaled []float64) []models.RiskFactor {
	type contribution struct {
		index int
		value float64
	}

	contribs := make([]contribution, len(scaled))
	for i, x := range scaled {
		contribs[i] = contribution{index: i, value: x * p.bundle.FeatureImportance[i]}
	}
	sort.Slice(contribs, func(i, j int) bool {
		return math.Abs(contribs[i].value) > math.Abs(contribs[j].value)
	})

	n := topFactorCount
	if n > len(contribs) {
		n = len(contribs)
	}

	factors := make([]models.RiskFactor, 0, n)
	for _, c := range contribs[:n] {
		factors = append(factors, models.RiskFactor{
			Factor:       factorName(features.Names[c.index]),
			Contribution: c.value,
			Value:        raw[c.index],
		})
	}
	return factors
}

// factorName turns a slot name into a display label ("heat_index" ->
// "Heat Index").
func factorName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
