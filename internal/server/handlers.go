package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/codeflow/pkg/buildinfo"
	cferrors "github.com/matzehuels/codeflow/pkg/errors"
	"github.com/matzehuels/codeflow/pkg/pipeline"
	"github.com/matzehuels/codeflow/pkg/samples"
)

var contentTypes = map[string]string{
	pipeline.FormatPNG: "image/png",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPDF: "application/pdf",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "version": buildinfo.Version})
}

type sampleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	all := samples.All()
	out := make([]sampleInfo, 0, len(all))
	for _, sm := range all {
		fc := sm.Chart()
		out = append(out, sampleInfo{
			Name:        sm.Name,
			Description: sm.Description,
			Nodes:       fc.NodeCount(),
			Edges:       fc.EdgeCount(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	opts.Sample = chi.URLParam(r, "name")
	s.render(w, r, opts)
}

func (s *Server) handleFlowchart(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	opts.Source = src
	s.render(w, r, opts)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readSource(w, r)
	if !ok {
		return
	}
	fc, hit, err := s.runner.ParseWithCacheInfo(r.Context(), "<request>", src, false)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("X-Codeflow-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, fc)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	logger := loggerFrom(r.Context())
	opts.Logger = logger

	res, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	logger.Info("rendered",
		"renderer", opts.Renderer,
		"format", opts.Format,
		"nodes", res.Stats.NodeCount,
		"cached", res.CacheInfo.RenderHit)

	format := opts.Format
	if format == "" {
		format = pipeline.DefaultFormat
	}
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Codeflow-Nodes", strconv.Itoa(res.Stats.NodeCount))
	h.Set("X-Codeflow-Edges", strconv.Itoa(res.Stats.EdgeCount))
	h.Set("X-Codeflow-Cache", cacheHeader(res.CacheInfo.RenderHit))
	h.Set("ETag", `"`+res.GraphHash+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Renderer: q.Get("renderer"),
		Theme:    q.Get("theme"),
		Title:    q.Get("title"),
		Refresh:  q.Get("refresh") == "true",
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, cferrors.New(cferrors.ErrCodeInvalidInput, "scale must be a number, got %q", v)
		}
		if err := pipeline.ValidateScale(scale); err != nil {
			return opts, err
		}
		opts.Scale = scale
	}
	return opts, nil
}

func (s *Server) readSource(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(cferrors.ErrCodeInvalidInput), fmt.Sprintf("source exceeds %d bytes", s.maxBody))
			return nil, false
		}
		writeError(w, r, http.StatusBadRequest, string(cferrors.ErrCodeIO), err.Error())
		return nil, false
	}
	if len(src) == 0 {
		writeError(w, r, http.StatusBadRequest, string(cferrors.ErrCodeInvalidInput), "request body must contain Python source")
		return nil, false
	}
	return src, true
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code cferrors.Code) int {
	switch code {
	case cferrors.ErrCodeInvalidInput, cferrors.ErrCodeInvalidFormat, cferrors.ErrCodeInvalidTheme,
		cferrors.ErrCodeInvalidRenderer, cferrors.ErrCodeInvalidPath, cferrors.ErrCodeInvalidFlowchart:
		return http.StatusBadRequest
	case cferrors.ErrCodeSyntax:
		return http.StatusUnprocessableEntity
	case cferrors.ErrCodeSampleNotFound, cferrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case cferrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	code := cferrors.GetCode(err)
	if code == "" {
		code = cferrors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= 500 {
		loggerFrom(r.Context()).Error("request failed", "err", err)
	}
	writeError(w, r, status, string(code), cferrors.UserMessage(err))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = msg
	body.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
