package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ignisml/ignis/internal/features"
)

// NumClasses is the number of ordered risk classes the classifiers emit.
const NumClasses = 4

// ScalerParams is a standard scaler fitted offline, aligned to the
// 48-slot feature ordering. It is never refit at serving time.
type ScalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ClassifierParams is a 4-class multinomial-logit layer: one weight row
// and intercept per class over the scaled feature vector.
type ClassifierParams struct {
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

// Metadata describes the trained artifact for serving responses.
type Metadata struct {
	Kind       string    `json:"kind"`
	Components string    `json:"components"`
	Accuracy   float64   `json:"accuracy"`
	TrainedAt  time.Time `json:"trained_at"`
}

// Bundle is the persisted model artifact the predictor serves from.
// Producing it is external; loading it is a precondition for serving.
type Bundle struct {
	Primary           ClassifierParams `json:"classifier_primary"`
	Secondary         ClassifierParams `json:"classifier_secondary"`
	Scaler            ScalerParams     `json:"feature_scaler"`
	FeatureImportance []float64        `json:"feature_importance"`
	Metadata          Metadata         `json:"metadata"`
}

// Load reads and validates a bundle. Any failure here is a configuration
// fault: the service must not start without a usable bundle.
func Load(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading model bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("error decoding model bundle: %w", err)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model bundle %s: %w", path, err)
	}

	return &b, nil
}

// Validate checks every dimension against the feature-ordering contract.
func (b *Bundle) Validate() error {
	if err := validateClassifier("classifier_primary", b.Primary); err != nil {
		return err
	}
	if err := validateClassifier("classifier_secondary", b.Secondary); err != nil {
		return err
	}

	if len(b.Scaler.Mean) != features.Size || len(b.Scaler.Scale) != features.Size {
		return fmt.Errorf("feature_scaler has %d/%d entries, want %d", len(b.Scaler.Mean), len(b.Scaler.Scale), features.Size)
	}
	for i, s := range b.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("feature_scaler scale is zero for %q", features.Names[i])
		}
	}

	if len(b.FeatureImportance) != features.Size {
		return fmt.Errorf("feature_importance has %d entries, want %d", len(b.FeatureImportance), features.Size)
	}

	return nil
}

func validateClassifier(name string, c ClassifierParams) error {
	if len(c.Weights) != NumClasses {
		return fmt.Errorf("%s has %d classes, want %d", name, len(c.Weights), NumClasses)
	}
	for k, row := range c.Weights {
		if len(row) != features.Size {
			return fmt.Errorf("%s class %d has %d weights, want %d", name, k, len(row), features.Size)
		}
	}
	if len(c.Intercepts) != NumClasses {
		return fmt.Errorf("%s has %d intercepts, want %d", name, len(c.Intercepts), NumClasses)
	}
	return nil
}
