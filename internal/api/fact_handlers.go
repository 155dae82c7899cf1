package api

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/logging"

	"github.com/go-chi/chi/v5"
)

const reportFilename = "execution-facts.csv"

func (s *Server) handleCreateFact(w http.ResponseWriter, r *http.Request) {
	var candidate domain.FactCandidate
	if err := decodeBody(r, &candidate, false); err != nil {
		respondError(w, r, err)
		return
	}

	id, err := s.services.Facts.Create(r.Context(), candidate)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleGetFact(w http.ResponseWriter, r *http.Request) {
	fact, err := s.services.Facts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newFactResponse(*fact))
}

func (s *Server) handleUpdateFact(w http.ResponseWriter, r *http.Request) {
	var patch domain.FactPatch
	if err := decodeBody(r, &patch, false); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.services.Facts.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteFact(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Facts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFacts(w http.ResponseWriter, r *http.Request) {
	var criteria domain.FilterCriteria
	if err := decodeBody(r, &criteria, true); err != nil {
		respondError(w, r, err)
		return
	}

	page, err := s.services.Search.Search(r.Context(), criteria)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newFactPage(page))
}

// handleReport streams matching facts as CSV. Headers are deferred until the
// first byte so that rejected criteria still produce a JSON error.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var criteria domain.FilterCriteria
	if err := decodeBody(r, &criteria, true); err != nil {
		respondError(w, r, err)
		return
	}

	out := &csvResponse{w: w}
	rows, err := s.services.Search.Report(r.Context(), out, criteria)
	if err != nil {
		if !out.started {
			respondError(w, r, err)
			return
		}
		logging.FromContext(r.Context()).Error().Err(err).Int("rows", rows).Msg("report stream aborted")
		return
	}
	if !out.started {
		out.start()
	}
}

// csvResponse sets the attachment headers on first write.
type csvResponse struct {
	w       http.ResponseWriter
	started bool
}

func (c *csvResponse) start() {
	c.started = true
	c.w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	c.w.Header().Set("Content-Disposition", `attachment; filename="`+reportFilename+`"`)
	c.w.WriteHeader(http.StatusOK)
}

func (c *csvResponse) Write(p []byte) (int, error) {
	if !c.started {
		c.start()
	}
	return c.w.Write(p)
}

func (c *csvResponse) Flush() {
	if f, ok := c.w.(http.Flusher); ok {
		f.Flush()
	}
}

// handleUpload accepts a JSON array of fact candidates, either as a multipart
// "file" field or as the raw request body.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	var payload io.Reader = r.Body
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxSize); err != nil {
			respondError(w, r, errors.NewParseError("file too large or invalid form", err))
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			respondError(w, r, errors.NewInvalidInputError("file", nil, "no file provided"))
			return
		}
		defer file.Close()
		payload = file
	}

	result, err := s.services.Import.Import(r.Context(), payload)
	if err != nil && result == nil {
		respondError(w, r, err)
		return
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn().Err(err).
			Int("imported", result.ImportedCount).
			Int("failed", result.FailedCount).
			Msg("bulk import interrupted")
	}

	writeJSON(w, http.StatusOK, result)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}
