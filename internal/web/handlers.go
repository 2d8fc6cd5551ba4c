package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jordanshaw/crmgrid/internal/core"
	"github.com/jordanshaw/crmgrid/internal/logging"
	"github.com/jordanshaw/crmgrid/internal/prefs"
)

// filterParamPrefix marks filter criteria in the query string:
// /api/leads?f_status=qualified&f_created_at=2024-03-05
const filterParamPrefix = "f_"

type fieldJSON struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Custom  bool     `json:"custom,omitempty"`
}

// handleListFields returns the current field catalog. With ?refresh=true
// the custom-field metadata is re-fetched first; a failed refresh is
// logged and the previous (or built-in-only) catalog is served rather
// than blocking the grid.
func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if err := s.svc.RefreshMetadata(r.Context()); err != nil {
			logging.FromContext(r.Context()).Warn("metadata refresh failed, serving previous catalog", "error", err)
		}
	}

	registry, _ := s.svc.Snapshot()

	fields := make([]fieldJSON, 0, registry.Len())
	for _, d := range registry.Descriptors() {
		fields = append(fields, fieldJSON{
			ID:      d.ID,
			Label:   d.Label,
			Type:    d.Type.String(),
			Options: d.Options,
			Custom:  d.Custom,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"fields": fields})
}

// handleListLeads returns the record set filtered by f_-prefixed query
// parameters.
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	criteria := core.FilterCriteria{}
	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, filterParamPrefix) || len(values) == 0 {
			continue
		}
		criteria[strings.TrimPrefix(key, filterParamPrefix)] = values[0]
	}

	records, err := s.svc.ListLeads(r.Context(), criteria)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "record fetch failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"total":   len(records),
	})
}

// handleExport streams the full record set as a CSV download with a
// deterministic filename.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Export(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", s.cfg.Grid.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, doc); err != nil {
		logging.FromContext(r.Context()).Error("export write failed", "error", err)
	}
}

// handleImport accepts a multipart CSV upload and bulk-creates records
// row by row. Partial success is expected: the summary reports imported,
// skipped, and failed rows, and a failed row never aborts the batch.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Grid.ImportMaxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing or oversized file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "read upload failed")
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info("import started", "file", header.Filename, "bytes", len(data))

	result := s.svc.Import(r.Context(), string(data))

	logger.Info("import finished",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"failed", len(result.Errors),
	)
	writeJSON(w, http.StatusOK, result)
}

// preferenceKey namespaces a view's layout blob by module.
func (s *Server) preferenceKey(view string) string {
	return s.cfg.Grid.Module + ":" + view
}

func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	layout := s.svc.LoadLayout(r.Context(), s.preferenceKey(view))
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handlePutPreference(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")

	var layout core.ColumnLayout
	if err := json.NewDecoder(r.Body).Decode(&layout); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid layout payload")
		return
	}

	saved, err := s.svc.SaveLayout(r.Context(), s.preferenceKey(view), layout)
	if err != nil {
		if errors.Is(err, prefs.ErrNotLoaded) {
			writeError(w, r, http.StatusConflict, "layout not loaded yet")
			return
		}
		writeError(w, r, http.StatusBadGateway, "layout save failed")
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeletePreference(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if err := s.svc.ResetLayout(r.Context(), s.preferenceKey(view)); err != nil {
		writeError(w, r, http.StatusBadGateway, "layout reset failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
