package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticLookupKnownArea(t *testing.T) {
	r := NewStaticRegistry()

	got := r.Lookup("malibu")
	assert.Equal(t, 400.0, got.Elevation)
	assert.Equal(t, 30.0, got.Slope)
	assert.Equal(t, "south", got.Aspect)
	assert.Equal(t, "chaparral", got.Vegetation)
	assert.Equal(t, 0.85, got.BaseRisk)
}

func TestStaticLookupNormalizesDisplayNames(t *testing.T) {
	r := NewStaticRegistry()

	assert.Equal(t, r.Lookup("los_angeles"), r.Lookup("Los Angeles"))
	assert.Equal(t, r.Lookup("san_francisco"), r.Lookup("  San Francisco  "))
}

func TestStaticLookupBaseRiskOnly(t *testing.T) {
	r := NewStaticRegistry()

	// Paradise carries the highest score in the base-risk table; Big Sur
	// has a risk score but no surveyed terrain, so the physical
	// attributes fall back to the defaults.
	assert.Equal(t, 0.95, r.Lookup("paradise").BaseRisk)

	bigSur := r.Lookup("big_sur")
	assert.Equal(t, 0.80, bigSur.BaseRisk)
	assert.Equal(t, DefaultTerrain.Elevation, bigSur.Elevation)
	assert.Equal(t, DefaultTerrain.Vegetation, bigSur.Vegetation)
}

func TestStaticLookupUnknownArea(t *testing.T) {
	r := NewStaticRegistry()
	assert.Equal(t, DefaultTerrain, r.Lookup("atlantis"))
}

func TestBaseRiskInRange(t *testing.T) {
	for id, risk := range baseRisk {
		assert.GreaterOrEqual(t, risk, 0.0, id)
		assert.LessOrEqual(t, risk, 1.0, id)
	}
}

func TestAspectNumeric(t *testing.T) {
	assert.Equal(t, 0.0, AspectNumeric("north"))
	assert.Equal(t, 90.0, AspectNumeric("east"))
	assert.Equal(t, 180.0, AspectNumeric("South"))
	assert.Equal(t, 315.0, AspectNumeric("northwest"))
	assert.Equal(t, 0.0, AspectNumeric("flat"))
	assert.Equal(t, 0.0, AspectNumeric("sideways"))
}

func TestVegetationNumericOrdersRisk(t *testing.T) {
	assert.Equal(t, 1.0, VegetationNumeric("urban"))
	assert.Equal(t, 7.0, VegetationNumeric("forest"))
	assert.Less(t, VegetationNumeric("grassland"), VegetationNumeric("chaparral"))
	assert.Equal(t, 3.0, VegetationNumeric("tundra"))
}

func TestFuelLoad(t *testing.T) {
	assert.Equal(t, 8.0, FuelLoad("forest"))
	assert.Equal(t, 1.0, FuelLoad("urban"))
	assert.Equal(t, 5.0, FuelLoad("kelp"))
}
