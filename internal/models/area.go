package models

import (
	"fmt"
	"strings"
	"time"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeographicArea is an immutable request input describing one scoring target.
type GeographicArea struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Center      Coordinates `json:"center"`
	Population  int         `json:"population"`
	AreaType    string      `json:"area_type"`
}

// FlexTime accepts the timestamp forms incident feeds actually send:
// RFC3339 or a bare date, with empty and null treated as unknown.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized time %q, want RFC3339 or YYYY-MM-DD", s)
}

// FireIncident is an immutable request input describing one known fire.
type FireIncident struct {
	Name             string   `json:"name"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	AcresBurned      float64  `json:"acres_burned"`
	PercentContained float64  `json:"percent_contained"`
	IsActive         bool     `json:"is_active"`
	Started          FlexTime `json:"started"`
}

func (f *FireIncident) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
	}
}

// NearbyFire summarizes an active incident within reporting range of an area.
type NearbyFire struct {
	Name             string  `json:"name"`
	DistanceKM       float64 `json:"distance_km"`
	AcresBurned      float64 `json:"acres_burned"`
	PercentContained float64 `json:"percent_contained"`
	ThreatLevel      string  `json:"threat_level"`
}
