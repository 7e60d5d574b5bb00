// Package ratesfile loads valuation rate tables from YAML files.
//
// A file only needs the entries it changes; everything else keeps the
// built-in value. Example:
//
//	pointValues:
//	  AA: 1.7
//	pointsCoefficients:
//	  B6: 75
//	syntheticBonus: 1.1
//	domesticAirports: [JFK, LAX, SFO]
package ratesfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flight-search/flight-value-ranking/internal/usecase"
	"go.yaml.in/yaml/v3"
)

// file is the YAML layout. Pointers tell an omitted scalar from an explicit zero,
// which Validate then rejects.
type file struct {
	PointValues       map[string]float64 `yaml:"pointValues"`
	DefaultPointValue *float64           `yaml:"defaultPointValue"`

	PointsCoefficients       map[string]float64 `yaml:"pointsCoefficients"`
	DefaultPointsCoefficient *float64           `yaml:"defaultPointsCoefficient"`

	CabinMultipliers map[string]float64 `yaml:"cabinMultipliers"`

	EarnRates       map[string]float64 `yaml:"earnRates"`
	DefaultEarnRate *float64           `yaml:"defaultEarnRate"`

	CabinEarnMultipliers map[string]float64 `yaml:"cabinEarnMultipliers"`

	SyntheticBonus *float64 `yaml:"syntheticBonus"`

	AirlineNames map[string]string `yaml:"airlineNames"`

	// DomesticAirports replaces the built-in list when present
	DomesticAirports []string `yaml:"domesticAirports"`
}

// Load reads the YAML file at path and overlays it on the built-in rates.
func Load(path string) (*usecase.Rates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates file: %w", err)
	}

	rates, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rates file %s: %w", path, err)
	}
	return rates, nil
}

// Parse decodes YAML rate overrides and returns a validated snapshot.
// Unknown keys are rejected so that a misspelled table does not pass silently.
func Parse(data []byte) (*usecase.Rates, error) {
	var f file

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	rates := overlay(usecase.DefaultRates(), f)
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rates: %w", err)
	}
	return rates, nil
}

func overlay(base *usecase.Rates, f file) *usecase.Rates {
	mergeFloats(base.PointValues, f.PointValues)
	mergeFloats(base.PointsCoefficients, f.PointsCoefficients)
	mergeFloats(base.CabinMultipliers, f.CabinMultipliers)
	mergeFloats(base.EarnRates, f.EarnRates)
	mergeFloats(base.CabinEarnMultipliers, f.CabinEarnMultipliers)

	for code, name := range f.AirlineNames {
		base.AirlineNames[strings.ToUpper(code)] = name
	}

	setIfPresent(&base.DefaultPointValue, f.DefaultPointValue)
	setIfPresent(&base.DefaultPointsCoefficient, f.DefaultPointsCoefficient)
	setIfPresent(&base.DefaultEarnRate, f.DefaultEarnRate)
	setIfPresent(&base.SyntheticBonus, f.SyntheticBonus)

	if f.DomesticAirports != nil {
		base.DomesticAirports = usecase.NewAirportSet(f.DomesticAirports...)
	}
	return base
}

func mergeFloats(dst, src map[string]float64) {
	for key, v := range src {
		dst[strings.ToUpper(key)] = v
	}
}

func setIfPresent(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
