package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vck-social/postergen/pkg/generator"
	"github.com/vck-social/postergen/pkg/queue"
	"github.com/vck-social/postergen/pkg/session"
	"github.com/vck-social/postergen/pkg/template"
)

// ── Templates ──

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	cat, err := template.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, s.reg.FindByCategory(cat))
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	def, err := s.reg.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// ── Sessions ──

type createSessionRequest struct {
	TemplateID string            `json:"templateId"`
	Profile    session.Profile   `json:"profile"`
	Values     map[string]string `json:"values,omitempty"`
}

type sessionView struct {
	ID         string            `json:"id"`
	TemplateID string            `json:"templateId"`
	State      string            `json:"state"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Values     map[string]string `json:"values"`
	Images     []string          `json:"images"`
}

func viewOf(id string, sess *session.Session) sessionView {
	def := sess.Template()
	return sessionView{
		ID:         id,
		TemplateID: def.ID,
		State:      sess.State().String(),
		Width:      def.Width,
		Height:     def.Height,
		Values:     sess.Values(),
		Images:     sess.ImageKeys(),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := session.Open(s.reg, req.TemplateID, req.Profile, session.WithFonts(s.fonts))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Values) > 0 {
		if err := sess.SetFields(req.Values); err != nil {
			writeError(w, r, err)
			return
		}
	}
	id := s.sessions.add(sess)
	writeJSON(w, http.StatusCreated, viewOf(id, sess))
}

// lookupSession resolves the {sid} path parameter, writing a 404 when it
// names no live session.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (string, *session.Session, bool) {
	id := chi.URLParam(r, "sid")
	sess, err := s.sessions.get(id)
	if err != nil {
		writeError(w, r, err)
		return "", nil, false
	}
	return id, sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sid")
	if !s.sessions.remove(id) {
		writeError(w, r, fmt.Errorf("%w: %s", errSessionNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetFields(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var values map[string]string
	if err := decodeBody(w, r, &values); err != nil {
		writeError(w, r, err)
		return
	}
	if err := sess.SetFields(values); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	if err := sess.Reset(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, sess))
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: no file: %w", errBadRequest, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: read upload: %w", errBadRequest, err))
		return
	}
	img, err := sess.LoadImage(r.Context(), chi.URLParam(r, "key"), data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b := img.Bounds()
	writeJSON(w, http.StatusOK, map[string]any{
		"session": viewOf(id, sess),
		"width":   b.Dx(),
		"height":  b.Dy(),
	})
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	if err := sess.RemoveImage(chi.URLParam(r, "key")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, sess))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	scale := s.previewScale
	if raw := r.URL.Query().Get("scale"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: scale %q", session.ErrInvalidScale, raw))
			return
		}
		scale = v
	}
	img, err := sess.Preview(scale)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := generator.EncodePNG(img)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	name, data, err := sess.ExportFile(time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// ── Queue ──

func (s *Server) handleListQueue(w http.ResponseWriter, r *http.Request) {
	recs, err := s.queue.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleAddQueue(w http.ResponseWriter, r *http.Request) {
	var rec queue.Record
	if err := decodeBody(w, r, &rec); err != nil {
		writeError(w, r, err)
		return
	}
	def, err := s.reg.Lookup(rec.TemplateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rec.TemplateName == "" {
		rec.TemplateName = def.Name
	}
	rec, err = s.queue.Add(r.Context(), rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type batchRequest struct {
	TemplateID string   `json:"templateId"`
	Caption    string   `json:"caption"`
	Platforms  []string `json:"platforms"`
	Dates      []string `json:"dates"`
	Time       string   `json:"time"`
}

func (s *Server) handleBatchQueue(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	def, err := s.reg.Lookup(req.TemplateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	platforms, err := queue.ParsePlatforms(req.Platforms)
	if err != nil {
		writeError(w, r, err)
		return
	}
	clock := req.Time
	if clock == "" {
		clock = "09:00"
	}
	recs, err := s.queue.AddBatch(r.Context(), def, req.Caption, platforms, req.Dates, clock)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recs)
}

func (s *Server) handleDueQueue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := time.Now()
	if raw := q.Get("now"); raw != "" {
		ts, err := queue.ParseTimestamp(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		now = ts.Time
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: limit %q", errBadRequest, raw))
			return
		}
		limit = n
	}
	recs, err := s.queue.Due(r.Context(), now, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleQueueStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.queue.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSetQueueStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status queue.Status `json:"status"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.queue.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveQueue(w http.ResponseWriter, r *http.Request) {
	if err := s.queue.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
