package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	mdwexecutor "github.com/msto63/pascal/foundation/calc/executor"
	mdwerror "github.com/msto63/pascal/foundation/core/error"
)

// EvalRequest is the body of POST /api/v1/eval
type EvalRequest struct {
	Lines []string `json:"lines"`
}

// LineResult is the outcome of one evaluated line
type LineResult struct {
	Line     string             `json:"line"`
	Lines    []mdwexecutor.Line `json:"lines"`
	Continue bool               `json:"continue"`
}

// EvalResponse is returned by POST /api/v1/eval
type EvalResponse struct {
	SessionID string       `json:"session_id"`
	Results   []LineResult `json:"results"`
}

// ErrorResponse is returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleEval evaluates a batch of lines in a fresh session
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "use POST", Code: "METHOD_NOT_ALLOWED"})
		return
	}

	var req EvalRequest
	body := http.MaxBytesReader(w, r.Body, s.config.MaxMessageSize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, mdwerror.Wrap(err, "request body too large").WithCode(mdwerror.CodeInputTooLong))
			return
		}
		writeError(w, mdwerror.Wrap(err, "invalid request body").WithCode(mdwerror.CodeInvalidInput))
		return
	}
	if len(req.Lines) == 0 {
		writeError(w, mdwerror.New("lines required").WithCode(mdwerror.CodeInvalidInput))
		return
	}

	sess, err := s.newSession()
	if err != nil {
		s.logger.Error("Failed to create session", "error", err)
		writeError(w, err)
		return
	}

	resp := EvalResponse{SessionID: sess.ID(), Results: make([]LineResult, 0, len(req.Lines))}
	for _, line := range req.Lines {
		result := sess.Eval(r.Context(), line)
		lines := result.Lines
		if lines == nil {
			lines = []mdwexecutor.Line{}
		}
		resp.Results = append(resp.Results, LineResult{Line: line, Lines: lines, Continue: result.Continue})
		if !result.Continue {
			break
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports the health of the server
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.CheckWithTimeout(2 * time.Second)
	writeJSON(w, report.Status.HTTPStatus(), report)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := mdwerror.GetCode(err)
	message := err.Error()
	var e *mdwerror.Error
	if errors.As(err, &e) {
		message = e.Message()
	}
	writeJSON(w, code.HTTPStatus(), ErrorResponse{Error: message, Code: code.String()})
}
