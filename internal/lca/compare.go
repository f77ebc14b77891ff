package lca

// Deltas describes how a candidate scenario differs from a baseline.
// Positive values mean the right-hand (candidate) scenario is higher.
type Deltas struct {
	CO2eDifferenceKg      float64 `json:"gwp_difference"`
	CircularityDifference float64 `json:"circularity_score_difference"`
}

// CompareSummaries computes right-minus-left deltas between two evaluated
// scenarios.
func CompareSummaries(left, right Summary) Deltas {
	return Deltas{
		CO2eDifferenceKg:      right.TotalCO2eKg - left.TotalCO2eKg,
		CircularityDifference: float64(right.CircularityIndex - left.CircularityIndex),
	}
}
