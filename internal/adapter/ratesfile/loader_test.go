package ratesfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flight-search/flight-value-ranking/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_OverlaysDefaults(t *testing.T) {
	rates, err := Parse([]byte(`
pointValues:
  aa: 1.7
  ZZ: 0.8
pointsCoefficients:
  B6: 75
cabinMultipliers:
  BUSINESS: 2.5
defaultEarnRate: 2
syntheticBonus: 1.1
airlineNames:
  zz: Zed Air
`))

	require.NoError(t, err)
	assert.Equal(t, 1.7, rates.PointValue("AA"))
	assert.Equal(t, 0.8, rates.PointValue("ZZ"))
	assert.Equal(t, 1.3, rates.PointValue("UA"), "untouched entries keep the built-in value")
	assert.Equal(t, 75.0, rates.PointsCoefficient("B6"))
	assert.Equal(t, 2.5, rates.CabinMultiplier("BUSINESS"))
	assert.Equal(t, 3.5, rates.CabinMultiplier("FIRST"))
	assert.Equal(t, 2.0, rates.EarnRate("NK"))
	assert.Equal(t, 1.1, rates.SyntheticBonus)
	assert.Equal(t, "Zed Air", rates.AirlineName("ZZ"))
	assert.True(t, rates.DomesticAirports.Contains("JFK"))
}

func TestParse_DomesticAirportsReplaceList(t *testing.T) {
	rates, err := Parse([]byte("domesticAirports: [cdg, FRA]\n"))

	require.NoError(t, err)
	assert.True(t, rates.DomesticAirports.Contains("CDG"))
	assert.False(t, rates.DomesticAirports.Contains("JFK"))
}

func TestParse_EmptyDocumentIsDefaults(t *testing.T) {
	rates, err := Parse([]byte(""))

	require.NoError(t, err)
	assert.Equal(t, usecase.DefaultRates().PointValues, rates.PointValues)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "unknown key", yaml: "pointValue:\n  AA: 1.0\n", wantErr: "decoding yaml"},
		{name: "wrong type", yaml: "syntheticBonus: lots\n", wantErr: "decoding yaml"},
		{name: "zero table entry", yaml: "pointValues:\n  AA: 0\n", wantErr: "pointValues[AA] must be positive"},
		{name: "explicit zero default", yaml: "defaultPointValue: 0\n", wantErr: "defaultPointValue must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pointValues:\n  DL: 1.4\n"), 0644))

	rates, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1.4, rates.PointValue("DL"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorContains(t, err, "reading rates file")
}

func TestLoad_ReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("syntheticBonus: -1\n"), 0644))

	_, err := Load(path)

	assert.ErrorContains(t, err, path)
	assert.ErrorContains(t, err, "syntheticBonus must be positive")
}
