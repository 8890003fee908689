package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/giftring/pkg/assign"
	"github.com/matzehuels/giftring/pkg/buildinfo"
	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/io"
	"github.com/matzehuels/giftring/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

// handleGenerate answers with the pipeline output as JSON, or with the
// rendered assignment when the format query parameter names another
// output format.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := s.runner.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	if format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, out)
		return
	}

	body, err := pipeline.Render(r.Context(), out, format)
	if err != nil {
		s.logger.Error("render failed", "id", out.ID, "format", format, "error", err)
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Assignment-Id", out.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	shape, err := req.Shape.Shape()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assign.Check(req.Participants, shape, req.Banned, req.Forced))
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	a, err := io.ReadAssignment(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := s.runner.Cycles(a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (io.Request, error) {
	return io.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes), io.FormatJSON)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusOf(code), errorBody{Code: code, Message: errors.UserMessage(err)})
}

func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidShape, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidParticipant, errors.ErrCodeInvalidPath, errors.ErrCodeEmptyParticipants:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
