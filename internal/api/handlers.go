package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/circulens/circulens/internal/factors"
	"github.com/circulens/circulens/internal/imputation"
	"github.com/circulens/circulens/internal/lca"
	"github.com/circulens/circulens/internal/logging"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, codeMethod, "method not allowed", nil)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"materials": s.engine.Store().Len(),
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, codeMethod, "method not allowed", nil)
		return
	}

	var inputs lca.InputParams
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}
	if err := inputs.Validate(); err != nil {
		s.writeCalculationError(w, r, err)
		return
	}

	result, err := s.engine.Calculate(r.Context(), inputs)
	if err != nil {
		s.writeCalculationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, roundResult(result))
}

// imputeRequest wraps the loosely-filled project accepted by the imputation
// surface.
type imputeRequest struct {
	Project imputation.Project `json:"project"`
}

func (s *Server) handleImpute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, codeMethod, "method not allowed", nil)
		return
	}

	var req imputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}

	outcome, err := s.orchestrator.Impute(r.Context(), req.Project)
	if err != nil {
		s.writeCalculationError(w, r, err)
		return
	}

	if outcome.ProjectImputed.Results != nil {
		rounded := roundResult(*outcome.ProjectImputed.Results)
		outcome.ProjectImputed.Results = &rounded
	}
	writeJSON(w, r, http.StatusOK, outcome)
}

type compareRequest struct {
	ProjectA imputation.Project `json:"projectA"`
	ProjectB imputation.Project `json:"projectB"`
}

type compareResponse struct {
	LeftMetrics  lca.Summary `json:"left_metrics"`
	RightMetrics lca.Summary `json:"right_metrics"`
	Deltas       lca.Deltas  `json:"deltas"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, codeMethod, "method not allowed", nil)
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error(), nil)
		return
	}

	left, err := s.compareSide(w, r, "projectA", req.ProjectA)
	if err != nil {
		return
	}
	right, err := s.compareSide(w, r, "projectB", req.ProjectB)
	if err != nil {
		return
	}

	writeJSON(w, r, http.StatusOK, compareResponse{
		LeftMetrics:  roundSummary(left),
		RightMetrics: roundSummary(right),
		Deltas:       roundDeltas(lca.CompareSummaries(left, right)),
	})
}

// compareSide imputes one comparison side and extracts its summary. Both
// sides must resolve to engine results; a project too sparse to calculate
// (no material) is a caller error here, unlike on the impute endpoint.
func (s *Server) compareSide(w http.ResponseWriter, r *http.Request, field string, project imputation.Project) (lca.Summary, error) {
	outcome, err := s.orchestrator.Impute(r.Context(), project)
	if err != nil {
		s.writeCalculationError(w, r, err)
		return lca.Summary{}, err
	}
	if outcome.ProjectImputed.Results == nil {
		err := errors.New("project has no material")
		writeError(w, r, http.StatusBadRequest, codeValidation,
			"cannot compare a project without a material", []string{field + ".material"})
		return lca.Summary{}, err
	}
	return outcome.ProjectImputed.Results.Summary, nil
}

// writeCalculationError maps core errors onto the wire taxonomy: validation
// problems are the caller's to fix, everything else is a server-side
// configuration fault.
func (s *Server) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *lca.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, r, http.StatusBadRequest, codeValidation, verr.Error(), verr.Fields)
	case errors.Is(err, factors.ErrUnknownMaterial), errors.Is(err, imputation.ErrBadArtifact):
		logging.FromContext(r.Context()).Error().Err(err).Msg("configuration error")
		writeError(w, r, http.StatusInternalServerError, codeConfiguration, err.Error(), nil)
	default:
		logging.FromContext(r.Context()).Error().Err(err).Msg("calculation failed")
		writeError(w, r, http.StatusInternalServerError, codeConfiguration, err.Error(), nil)
	}
}
