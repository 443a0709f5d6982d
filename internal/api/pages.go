package api

import (
	"bytes"
	"log/slog"
	"net/http"

	"huangye/internal/web"
	"huangye/pkg/company"
	"huangye/pkg/directory"
	"huangye/pkg/page"
	"huangye/pkg/places"
)

// PageHandler serves the rendered directory and company pages.
type PageHandler struct {
	companies    *company.Store
	placeSvc     *places.Service
	builder      *page.Builder
	renderer     *web.Renderer
	pinnedCities []string
}

// NewPageHandler creates the page handler.
func NewPageHandler(companies *company.Store, placeSvc *places.Service, builder *page.Builder, renderer *web.Renderer, pinnedCities []string) *PageHandler {
	return &PageHandler{
		companies:    companies,
		placeSvc:     placeSvc,
		builder:      builder,
		renderer:     renderer,
		pinnedCities: pinnedCities,
	}
}

// HandleDirectory handles GET /directory and its aliases.
func (h *PageHandler) HandleDirectory(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.All()
	if err != nil {
		slog.Error("Failed to load companies", "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}

	var photos directory.CoverSource
	if h.placeSvc != nil {
		photos = h.placeSvc
	}

	dir := directory.Build(companies, h.pinnedCities)
	view := web.BuildDirectoryPage(dir, photos)

	var buf bytes.Buffer
	if err := h.renderer.RenderDirectory(&buf, view); err != nil {
		slog.Error("Failed to render directory", "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Failed to write directory response", "error", err)
	}
}

// HandleCompany handles GET /company/{slug}.
func (h *PageHandler) HandleCompany(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	c, err := h.companies.BySlug(slug)
	if err != nil {
		slog.Error("Failed to load companies", "slug", slug, "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.Error(w, "页面不存在", http.StatusNotFound)
		return
	}

	all, err := h.companies.All()
	if err != nil {
		// The nearby strip is optional; render without it.
		slog.Warn("Failed to load companies for nearby strip", "error", err)
		all = nil
	}

	view := h.builder.Build(r.Context(), c, all)

	var buf bytes.Buffer
	if err := h.renderer.RenderCompany(&buf, view); err != nil {
		slog.Error("Failed to render company page", "slug", slug, "error", err)
		http.Error(w, "服务暂时不可用", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("Failed to write company response", "slug", slug, "error", err)
	}
}
