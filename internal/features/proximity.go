package features

import (
	"math"

	"github.com/ignisml/ignis/internal/models"
)

// proximityWindowKM bounds which active incidents count as nearby.
const proximityWindowKM = 50

// Sentinel values emitted when no active incident is within the window.
const (
	sentinelDistance    = 200.0
	sentinelContainment = 100.0
	sentinelAgeDays     = 999.0
	nearbyAgeDays       = 5.0
)

type proximityFeatures struct {
	nearestDistance   float64
	largestSize       float64
	lowestContainment float64
	count             int
	totalArea         float64
	avgAgeDays        float64
	threatIndex       float64
}

func noNearbyFires() proximityFeatures {
	return proximityFeatures{
		nearestDistance:   sentinelDistance,
		largestSize:       0,
		lowestContainment: sentinelContainment,
		count:             0,
		totalArea:         0,
		avgAgeDays:        sentinelAgeDays,
		threatIndex:       0,
	}
}

// proximity aggregates the active incidents within the window around the
// area center. With nothing in range the documented sentinels apply.
func proximity(center models.Coordinates, incidents []models.FireIncident) proximityFeatures {
	type nearby struct {
		distance    float64
		size        float64
		containment float64
	}

	var inRange []nearby
	for _, inc := range incidents {
		if !inc.IsActive {
			continue
		}
		d := HaversineKM(center, inc.Coordinates())
		if d > proximityWindowKM {
			continue
		}
		inRange = append(inRange, nearby{distance: d, size: inc.AcresBurned, containment: inc.PercentContained})
	}

	if len(inRange) == 0 {
		return noNearbyFires()
	}

	p := proximityFeatures{
		nearestDistance:   inRange[0].distance,
		largestSize:       inRange[0].size,
		lowestContainment: inRange[0].containment,
		count:             len(inRange),
		avgAgeDays:        nearbyAgeDays,
	}

	var threat float64
	for _, f := range inRange {
		p.nearestDistance = math.Min(p.nearestDistance, f.distance)
		p.largestSize = math.Max(p.largestSize, f.size)
		p.lowestContainment = math.Min(p.lowestContainment, f.containment)
		p.totalArea += f.size
		threat += f.size * (100 - f.containment) / (f.distance*f.distance + 1)
	}
	p.threatIndex = math.Min(100, threat/1000)

	return p
}

// HaversineKM is the great-circle distance between two coordinates.
func HaversineKM(a, b models.Coordinates) float64 {
	const earthRadiusKM = 6371

	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	return earthRadiusKM * 2 * math.Asin(math.Sqrt(h))
}
