package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/ignisml/ignis/internal/features"
	"github.com/ignisml/ignis/internal/models"
)

// nearbyReportKM bounds the informational nearby-fires summary; wider
// than the 50km feature window on purpose.
const nearbyReportKM = 100

func nearbyFires(center models.Coordinates, incidents []models.FireIncident) []models.NearbyFire {
	nearby := make([]models.NearbyFire, 0)

	for _, inc := range incidents {
		if !inc.IsActive {
			continue
		}
		d := features.HaversineKM(center, inc.Coordinates())
		if d > nearbyReportKM {
			continue
		}
		nearby = append(nearby, models.NearbyFire{
			Name:             inc.Name,
			DistanceKM:       math.Round(d*10) / 10,
			AcresBurned:      inc.AcresBurned,
			PercentContained: inc.PercentContained,
			ThreatLevel:      fireThreatLevel(d),
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})
	if len(nearby) > 5 {
		nearby = nearby[:5]
	}
	return nearby
}

func fireThreatLevel(distanceKM float64) string {
	switch {
	case distanceKM < 10:
		return "High"
	case distanceKM < 30:
		return "Moderate"
	default:
		return "Low"
	}
}

func weatherImpact(w models.WeatherObservation) string {
	switch {
	case w.RedFlagWarning:
		return fmt.Sprintf("Red flag warning: extreme conditions - %.0fF, %.0f%% humidity, %.0f mph winds",
			w.TemperatureF, w.Humidity, w.WindSpeedMPH)
	case w.TemperatureF >= 95 && w.Humidity <= 20:
		return fmt.Sprintf("Critical fire weather: %.0fF, %.0f%% humidity", w.TemperatureF, w.Humidity)
	case w.TemperatureF >= 85 && w.Humidity <= 30:
		return fmt.Sprintf("High fire danger: %.0fF, %.0f%% humidity", w.TemperatureF, w.Humidity)
	case w.WindSpeedMPH >= 25:
		return fmt.Sprintf("Windy conditions: %.0f mph winds increase fire spread risk", w.WindSpeedMPH)
	default:
		return fmt.Sprintf("Moderate conditions: %.0fF, %.0f%% humidity, %.0f mph winds",
			w.TemperatureF, w.Humidity, w.WindSpeedMPH)
	}
}

func evacuationRecommendation(level models.RiskLevel, areaName string) string {
	switch level {
	case models.RiskExtreme:
		return fmt.Sprintf("Immediate action: prepare for evacuation from %s. Monitor emergency alerts and be ready to leave immediately.", areaName)
	case models.RiskHigh:
		return fmt.Sprintf("High alert: stay vigilant in %s. Have an evacuation plan ready and monitor local emergency services.", areaName)
	case models.RiskModerate:
		return fmt.Sprintf("Prepare: review evacuation routes for %s. Stay informed about fire conditions in the area.", areaName)
	default:
		return fmt.Sprintf("Normal: current fire risk in %s is low. Continue normal activities while staying aware.", areaName)
	}
}
