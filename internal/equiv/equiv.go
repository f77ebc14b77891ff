// Package equiv renders calculated footprints as relatable real-world
// equivalencies ("miles driven", "smartphones charged", "tree seedlings")
// using EPA-published conversion factors. Used by the CLI to give KPI
// numbers a human scale; the API never depends on it.
package equiv

import (
	"fmt"
	"math"
)

// EPA greenhouse-gas equivalency factors (2024 edition). Each constant is
// kg CO2e per unit of activity; an equivalency is kg / factor.
const (
	// MilesDrivenFactor is kg CO2e per mile for an average passenger
	// vehicle.
	MilesDrivenFactor = 0.192

	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2e sequestered by one tree seedling
	// grown for 10 years.
	TreeSeedlingFactor = 60.0
)

// MinEquivalencyKg is the smallest footprint worth expressing as
// equivalencies. Below it the numbers are meaninglessly small.
const MinEquivalencyKg = 1.0

// Equivalency is one calculated conversion.
type Equivalency struct {
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formatted_value"`
	Label          string  `json:"label"`
}

// Output holds the equivalencies for one footprint.
type Output struct {
	InputKg     float64       `json:"input_kg"`
	Results     []Equivalency `json:"results"`
	DisplayText string        `json:"display_text"`
	IsEmpty     bool          `json:"is_empty"`
}

// ForFootprint converts a total footprint (kg CO2e) into equivalencies.
//
// Net-negative footprints are expressed as avoided emissions. Footprints
// below MinEquivalencyKg in magnitude return an empty Output with no error.
// Non-finite inputs are rejected.
func ForFootprint(totalKg float64) (Output, error) {
	if math.IsInf(totalKg, 0) || math.IsNaN(totalKg) {
		return Output{IsEmpty: true}, fmt.Errorf("non-finite footprint: %v", totalKg)
	}

	magnitude := math.Abs(totalKg)
	if magnitude < MinEquivalencyKg {
		return Output{InputKg: totalKg, IsEmpty: true}, nil
	}

	miles := magnitude / MilesDrivenFactor
	phones := magnitude / SmartphoneChargeFactor
	trees := magnitude / TreeSeedlingFactor

	results := []Equivalency{
		{Value: miles, FormattedValue: formatValue(miles), Label: "miles driven"},
		{Value: phones, FormattedValue: formatValue(phones), Label: "smartphones charged"},
		{Value: trees, FormattedValue: formatValue(trees), Label: "tree seedlings grown for 10 years"},
	}

	verb := "emitting"
	if totalKg < 0 {
		verb = "avoiding"
	}
	display := fmt.Sprintf("Equivalent to %s the CO2e of driving ~%s miles or charging ~%s smartphones",
		verb, results[0].FormattedValue, results[1].FormattedValue)

	return Output{
		InputKg:     totalKg,
		Results:     results,
		DisplayText: display,
	}, nil
}

// ForScenario scales a per-kg footprint to a product mass before
// converting. Mass must be positive.
func ForScenario(co2ePerKg, massKg float64) (Output, error) {
	if massKg <= 0 {
		return Output{IsEmpty: true}, fmt.Errorf("mass must be positive, got %v", massKg)
	}
	return ForFootprint(co2ePerKg * massKg)
}

// formatValue renders an equivalency value for display, switching to
// abbreviated notation for million-scale numbers.
func formatValue(v float64) string {
	if v >= largeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
