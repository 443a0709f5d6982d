package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"huangye/pkg/export"
	"huangye/pkg/store"
)

// SubmissionsHandler serves the stored submissions to the admin side.
type SubmissionsHandler struct {
	store store.SubmissionStore
}

// NewSubmissionsHandler creates the submissions handler.
func NewSubmissionsHandler(st store.SubmissionStore) *SubmissionsHandler {
	return &SubmissionsHandler{store: st}
}

// HandleList handles GET /api/submissions?limit=N. Newest first; the
// store caps the limit.
func (h *SubmissionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := store.MaxListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = val
	}

	subs, err := h.store.ListSubmissions(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list submissions", "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(subs); err != nil {
		slog.Error("Failed to encode submissions", "error", err)
	}
}

// HandleExport handles GET /api/submissions/export, an xlsx download of
// the newest submissions.
func (h *SubmissionsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context(), store.MaxListLimit)
	if err != nil {
		slog.Error("Failed to list submissions for export", "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}

	f, err := export.SubmissionsWorkbook(subs)
	if err != nil {
		slog.Error("Failed to build submissions workbook", "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("submissions-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		slog.Error("Failed to write workbook response", "error", err)
	}
}
