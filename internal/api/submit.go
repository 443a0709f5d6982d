package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"huangye/pkg/export"
	"huangye/pkg/model"
	"huangye/pkg/store"
)

// SubmitHandler accepts contact-form submissions.
type SubmitHandler struct {
	store     store.SubmissionStore
	exporters []export.Exporter
	stream    *StreamHandler
}

// NewSubmitHandler creates the submit handler. stream may be nil.
func NewSubmitHandler(st store.SubmissionStore, exporters []export.Exporter, stream *StreamHandler) *SubmitHandler {
	return &SubmitHandler{store: st, exporters: exporters, stream: stream}
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Type    string `json:"type"`
	Details string `json:"details"`
	Contact string `json:"contact"`
}

// Handle handles POST /api/submit.
func (h *SubmitHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmitError(w, "请求格式错误")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Contact = strings.TrimSpace(req.Contact)
	if req.Email == "" && req.Contact == "" {
		writeSubmitError(w, "请留下邮箱或联系方式，方便我们与您联系")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "匿名访客"
	}
	email := req.Email
	if email == "" {
		email = req.Contact
	}

	sub := &model.Submission{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		City:      strings.TrimSpace(req.City),
		Type:      strings.TrimSpace(req.Type),
		Details:   strings.TrimSpace(req.Details),
		Contact:   req.Contact,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.SaveSubmission(r.Context(), sub); err != nil {
		slog.Error("Failed to save submission", "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}

	export.Mirror(h.exporters, sub)
	if h.stream != nil {
		h.stream.Broadcast(sub)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok", "id": sub.ID}); err != nil {
		slog.Error("Failed to encode submit response", "error", err)
	}
}

func writeSubmitError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": msg}); err != nil {
		slog.Error("Failed to encode submit error", "error", err)
	}
}
