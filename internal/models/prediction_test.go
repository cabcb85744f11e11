package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevelOrdering(t *testing.T) {
	assert.Less(t, RiskLow, RiskModerate)
	assert.Less(t, RiskModerate, RiskHigh)
	assert.Less(t, RiskHigh, RiskExtreme)
}

func TestRiskLevelString(t *testing.T) {
	assert.Equal(t, "Low", RiskLow.String())
	assert.Equal(t, "Moderate", RiskModerate.String())
	assert.Equal(t, "High", RiskHigh.String())
	assert.Equal(t, "Extreme", RiskExtreme.String())
	assert.Equal(t, "Unknown", RiskLevel(9).String())
}

func TestRiskLevelJSONRoundTrip(t *testing.T) {
	for _, level := range []RiskLevel{RiskLow, RiskModerate, RiskHigh, RiskExtreme} {
		raw, err := json.Marshal(level)
		require.NoError(t, err)
		assert.Equal(t, `"`+level.String()+`"`, string(raw))

		var back RiskLevel
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, level, back)
	}

	var bad RiskLevel
	assert.Error(t, json.Unmarshal([]byte(`"Catastrophic"`), &bad))
}
