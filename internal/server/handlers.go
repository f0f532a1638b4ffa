package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// =============================================================================
// Request / response bodies
// =============================================================================

type createSessionRequest struct {
	Width        int         `json:"width,omitempty"`
	Height       int         `json:"height,omitempty"`
	Center       *geom.Point `json:"center,omitempty"`
	Distribution string      `json:"distribution,omitempty"`
	AngleStep    float64     `json:"angle_step,omitempty"`
	Coefficient  float64     `json:"coefficient,omitempty"`
	Stride       int         `json:"stride,omitempty"`
	MaxSteps     int         `json:"max_steps,omitempty"`
}

func (req createSessionRequest) options() pipeline.Options {
	return pipeline.Options{
		Width:        req.Width,
		Height:       req.Height,
		Center:       req.Center,
		Distribution: req.Distribution,
		AngleStep:    req.AngleStep,
		Coefficient:  req.Coefficient,
		Stride:       req.Stride,
		MaxSteps:     req.MaxSteps,
	}
}

type placeRequest struct {
	Sizes  []geom.Size `json:"sizes"`
	Labels []string    `json:"labels,omitempty"`
}

func (req placeRequest) items() ([]sizes.Item, error) {
	if len(req.Sizes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sizes must not be empty")
	}
	if len(req.Labels) > len(req.Sizes) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "got %d labels for %d sizes", len(req.Labels), len(req.Sizes))
	}
	items := sizes.Items(req.Sizes)
	for i, l := range req.Labels {
		items[i].Label = l
	}
	return items, nil
}

type placeResponse struct {
	Placed    []geom.Rectangle `json:"placed"`
	Total     int              `json:"total"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type layoutResponse struct {
	Layout    pipeline.Layout   `json:"layout"`
	Artifacts map[string][]byte `json:"artifacts"`
	Stats     statsResponse     `json:"stats"`
}

type statsResponse struct {
	Rectangles   int            `json:"rectangles"`
	Steps        int            `json:"steps"`
	Bounds       geom.Rectangle `json:"bounds"`
	LayoutMillis float64        `json:"layout_ms"`
	RenderMillis float64        `json:"render_ms"`
	LayoutCached bool           `json:"layout_cached"`
	RenderCached bool           `json:"render_cached"`
}

func millis(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": info.Version, "commit": info.Commit})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decodeJSON(w, r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:    result.Layout,
		Artifacts: result.Artifacts,
		Stats: statsResponse{
			Rectangles:   result.Stats.Rectangles,
			Steps:        result.Stats.Steps,
			Bounds:       result.Stats.Bounds,
			LayoutMillis: millis(result.Stats.LayoutTime),
			RenderMillis: millis(result.Stats.RenderTime),
			LayoutCached: result.CacheInfo.LayoutHit,
			RenderCached: result.CacheInfo.RenderHit,
		},
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Create(r.Context(), req.options())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := req.items()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	placed, sess, err := s.sessions.Place(r.Context(), chi.URLParam(r, "id"), items)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, placeResponse{
		Placed:    placed,
		Total:     len(sess.Rectangles),
		ExpiresAt: sess.ExpiresAt,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := sess.Options()
	opts.Formats = []string{format}
	opts.Logger = s.logger
	if err := applyRenderQuery(&opts, r); err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), sess.Layout(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// applyRenderQuery copies render settings from the query string:
// style, engine, labels, center, probes, margin and scale.
func applyRenderQuery(opts *pipeline.Options, r *http.Request) error {
	q := r.URL.Query()
	opts.Style = q.Get("style")
	opts.Engine = q.Get("engine")

	var err error
	if opts.ShowLabels, err = queryBool(q.Get("labels")); err != nil {
		return err
	}
	if opts.ShowCenter, err = queryBool(q.Get("center")); err != nil {
		return err
	}
	if opts.Probes, err = queryInt("probes", q.Get("probes")); err != nil {
		return err
	}
	if opts.Margin, err = queryInt("margin", q.Get("margin")); err != nil {
		return err
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "scale: %q is not a number", v)
		}
	}
	return nil
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%q is not a boolean", v)
	}
	return b, nil
}

func queryInt(name, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not an integer", name, v)
	}
	return n, nil
}
