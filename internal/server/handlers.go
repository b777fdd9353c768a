package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/railfill/pkg/buildinfo"
	"github.com/matzehuels/railfill/pkg/config"
	"github.com/matzehuels/railfill/pkg/errors"
	"github.com/matzehuels/railfill/pkg/evaluate"
	"github.com/matzehuels/railfill/pkg/generate"
	"github.com/matzehuels/railfill/pkg/holes"
	"github.com/matzehuels/railfill/pkg/observability"
	"github.com/matzehuels/railfill/pkg/railing"
)

// healthResponse is returned by GET /healthz.
type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// GenerateResponse is returned by POST /v1/generate.
type GenerateResponse struct {
	RequestID string           `json:"request_id"`
	Cached    bool             `json:"cached"`
	Result    *generate.Result `json:"result"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	f, err := config.ParseJSON(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	frame, err := f.Frame.Build()
	if err != nil {
		writeError(w, r, err)
		return
	}

	params := s.clamp(f.Generation)
	res, cached, err := s.runner.Generate(r.Context(), frame, params, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{
		RequestID: middleware.GetReqID(r.Context()),
		Cached:    cached,
		Result:    res,
	})
}

// clamp limits the evaluation budget to the server timeout.
func (s *Server) clamp(p generate.Params) generate.Params {
	if p.MaxEvaluationDuration > s.cfg.Timeout {
		p.MaxEvaluationDuration = s.cfg.Timeout
	}
	if p.Placement.MaxDuration > s.cfg.Timeout {
		p.Placement.MaxDuration = s.cfg.Timeout
	}
	return p
}

// HolesRequest is the body of POST /v1/holes. Evaluator keys left out keep
// the quality evaluator's defaults; its kind is always quality.
type HolesRequest struct {
	Frame     config.Frame    `json:"frame"`
	Rods      []railing.Rod   `json:"rods"`
	Evaluator evaluate.Params `json:"evaluator"`
}

// HolesResponse is returned by POST /v1/holes.
type HolesResponse struct {
	RequestID  string          `json:"request_id"`
	Holes      []holes.Hole    `json:"holes"`
	TotalArea  float64         `json:"total_area_cm2"`
	Evaluation evaluate.Result `json:"evaluation"`
}

func (s *Server) handleHoles(w http.ResponseWriter, r *http.Request) {
	req := HolesRequest{Evaluator: evaluate.DefaultParams()}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	frame, err := req.Frame.Build()
	if err != nil {
		writeError(w, r, err)
		return
	}
	for i, rod := range req.Rods {
		if err := rod.Validate(); err != nil {
			writeError(w, r, errors.Wrap(errors.GetCode(err), err, "rod %d", i))
			return
		}
	}

	req.Evaluator.Kind = evaluate.KindQuality
	ev, err := evaluate.New(req.Evaluator)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res := ev.Evaluate(railing.NewInfill(req.Rods), frame)

	hs := res.Holes
	writeJSON(w, http.StatusOK, HolesResponse{
		RequestID:  middleware.GetReqID(r.Context()),
		Holes:      hs,
		TotalArea:  holes.TotalArea(hs),
		Evaluation: res,
	})
}

// =============================================================================
// Responses
// =============================================================================

// ErrorBody is the error part of an error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.Host, r.URL.Path, err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     ErrorBody{Code: code, Message: errors.UserMessage(err)},
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidParams, errors.ErrCodeInvalidStrategy,
		errors.ErrCodeInvalidEvaluator, errors.ErrCodeInvalidFrame, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeDegenerateGeometry:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeRunInProgress:
		return http.StatusConflict
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func errNotFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}
