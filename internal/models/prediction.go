package models

import (
	"fmt"
	"time"
)

// RiskLevel is an ordered wildfire danger category.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskExtreme
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	case RiskExtreme:
		return "Extreme"
	default:
		return "Unknown"
	}
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Low"`:
		*r = RiskLow
	case `"Moderate"`:
		*r = RiskModerate
	case `"High"`:
		*r = RiskHigh
	case `"Extreme"`:
		*r = RiskExtreme
	default:
		return fmt.Errorf("unknown risk level %s", data)
	}
	return nil
}

// RiskFactor is one ranked contributor to a prediction.
type RiskFactor struct {
	Factor       string  `json:"factor"`
	Contribution float64 `json:"contribution"`
	Value        float64 `json:"value"`
}

// RiskPrediction is the per-area output of the serving pipeline.
type RiskPrediction struct {
	AreaName                 string       `json:"area_name"`
	RiskLevel                RiskLevel    `json:"risk_level"`
	RiskScore                float64      `json:"risk_score"`
	RiskPercentage           int          `json:"risk_percentage"`
	Confidence               float64      `json:"confidence"`
	WeatherImpact            string       `json:"weather_impact"`
	NearbyFires              []NearbyFire `json:"nearby_fires"`
	TopRiskFactors           []RiskFactor `json:"top_risk_factors"`
	EvacuationRecommendation string       `json:"evacuation_recommendation"`
	Degraded                 bool         `json:"degraded,omitempty"`
	LastUpdated              time.Time    `json:"last_updated"`
}
