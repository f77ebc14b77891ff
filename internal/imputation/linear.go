package imputation

// Coefficients are one pre-fit linear model: energy consumption (kWh/kg) as
// a function of recycled content percentage. Fitting happens offline; this
// package only runs inference.
type Coefficients struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Predict evaluates the model at the given recycled content percentage
// (0..100 scale). The output is deliberately not clamped: negative or
// implausible predictions pass through unchanged and are the caller's to
// judge, flagged by the confidence on the imputation record.
func (c Coefficients) Predict(recycledContentPercent float64) float64 {
	return c.Slope*recycledContentPercent + c.Intercept
}
