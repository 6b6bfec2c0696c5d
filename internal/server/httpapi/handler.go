package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Zhanerrke588595/it-events/internal/common"
	"github.com/Zhanerrke588595/it-events/internal/server/resources"
	"github.com/go-chi/chi/v5"
)

// maxBodySize leaves room for a 2 MB image embedded as a data URL.
const maxBodySize = 8 << 20

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withRequestID, s.withLogging, s.withRecover)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/{collection}", func(c chi.Router) {
		c.Get("/", s.handleList)
		c.Post("/", s.handleCreate)
		c.Get("/{id}", s.handleGet)
		c.Put("/{id}", s.handleReplace)
		c.Patch("/{id}", s.handlePatch)
		c.Delete("/{id}", s.handleDelete)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleList(w http.ResponseWriter, req *http.Request) {
	filters := make(map[string]string)
	for k, v := range req.URL.Query() {
		if len(v) > 0 {
			filters[k] = v[0]
		}
	}

	docs, err := s.resources.List(req.Context(), chi.URLParam(req, "collection"), filters)
	if err != nil {
		s.fail(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGet(w http.ResponseWriter, req *http.Request) {
	doc, err := s.resources.Get(req.Context(), chi.URLParam(req, "collection"), chi.URLParam(req, "id"))
	if err != nil {
		s.fail(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleCreate(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req)
	if !ok {
		return
	}
	doc, err := s.resources.Create(req.Context(), chi.URLParam(req, "collection"), body)
	if err != nil {
		s.fail(w, req, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleReplace(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req)
	if !ok {
		return
	}
	doc, err := s.resources.Replace(req.Context(), chi.URLParam(req, "collection"), chi.URLParam(req, "id"), body)
	if err != nil {
		s.fail(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePatch(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req)
	if !ok {
		return
	}
	doc, err := s.resources.Patch(req.Context(), chi.URLParam(req, "collection"), chi.URLParam(req, "id"), body)
	if err != nil {
		s.fail(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, req *http.Request) {
	if err := s.resources.Delete(req.Context(), chi.URLParam(req, "collection"), chi.URLParam(req, "id")); err != nil {
		s.fail(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) readBody(w http.ResponseWriter, req *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return nil, false
	}
	return body, true
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, req *http.Request, err error) {
	status := statusFor(err)
	if !resources.IsClientError(err) {
		s.logger.Error(req.Context(), "request failed",
			"request_id", RequestID(req.Context()),
			"error", err,
		)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, common.UserMessage(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
