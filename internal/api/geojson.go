package api

import (
	"strings"

	"github.com/ignisml/ignis/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// toGeoJSON renders predictions as area points; areas and predictions
// are index-aligned by the batch-order invariant.
func toGeoJSON(areas []models.GeographicArea, predictions []models.RiskPrediction) FeatureCollection {
	features := make([]Feature, 0, len(predictions))

	for i, p := range predictions {
		f := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{areas[i].Center.Longitude, areas[i].Center.Latitude},
			},
			Properties: map[string]any{
				"area":            areas[i].Name,
				"display_name":    p.AreaName,
				"risk_level":      strings.ToLower(p.RiskLevel.String()),
				"risk_score":      p.RiskScore,
				"risk_percentage": p.RiskPercentage,
				"confidence":      p.Confidence,
				"degraded":        p.Degraded,
				"last_updated":    p.LastUpdated,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
