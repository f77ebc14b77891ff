package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/circulens/circulens/internal/lca"
	"github.com/circulens/circulens/internal/logging"
)

// Error codes carried in the JSON error payload. Configuration errors are
// server-side faults (bad artifacts, unknown materials in loaded data);
// validation errors are caller-correctable.
const (
	codeConfiguration = "configuration_error"
	codeValidation    = "validation_error"
	codeBadRequest    = "bad_request"
	codeMethod        = "method_not_allowed"
)

type errorPayload struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, fields []string) {
	writeJSON(w, r, status, errorResponse{Error: errorPayload{
		Code:    code,
		Message: message,
		Fields:  fields,
	}})
}

// roundTo rounds half away from zero at the given number of decimal places,
// matching the frontend's display formatting.
func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func roundSummary(s lca.Summary) lca.Summary {
	s.TotalCO2eKg = roundTo(s.TotalCO2eKg, 3)
	s.TotalEnergyMJ = roundTo(s.TotalEnergyMJ, 3)
	s.TotalWaterM3 = roundTo(s.TotalWaterM3, 3)
	return s
}

func roundBreakdown(b lca.Breakdown) lca.Breakdown {
	b.CO2e.Mining = roundTo(b.CO2e.Mining, 3)
	b.CO2e.Processing = roundTo(b.CO2e.Processing, 3)
	b.CO2e.Transport = roundTo(b.CO2e.Transport, 3)
	b.CO2e.RecyclingCredit = roundTo(b.CO2e.RecyclingCredit, 3)
	b.Energy.Mining = roundTo(b.Energy.Mining, 3)
	b.Energy.Processing = roundTo(b.Energy.Processing, 3)
	b.Energy.Recycling = roundTo(b.Energy.Recycling, 3)
	return b
}

// roundResult applies the wire rounding convention to a full engine result.
// Sankey link values are left untouched: they are exact fractions the
// renderer consumes directly.
func roundResult(res lca.Result) lca.Result {
	res.Summary = roundSummary(res.Summary)
	res.Breakdown = roundBreakdown(res.Breakdown)
	return res
}

func roundDeltas(d lca.Deltas) lca.Deltas {
	d.CO2eDifferenceKg = roundTo(d.CO2eDifferenceKg, 3)
	d.CircularityDifference = roundTo(d.CircularityDifference, 1)
	return d
}
