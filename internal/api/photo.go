package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"huangye/pkg/places"
)

// PhotoHandler serves place photos from the cache hierarchy.
type PhotoHandler struct {
	svc *places.Service
}

// NewPhotoHandler creates the photo handler.
func NewPhotoHandler(svc *places.Service) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// Handle handles GET /api/place-photo/{placeId} and
// GET /api/place-photo/{placeId}/{index}.
func (h *PhotoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	placeID := r.PathValue("placeId")
	index := 0
	if raw := r.PathValue("index"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			http.Error(w, "Invalid photo index", http.StatusBadRequest)
			return
		}
		index = val
	}

	if h.svc == nil {
		http.NotFound(w, r)
		return
	}

	blob := h.svc.FetchPlacePhoto(r.Context(), placeID, index)
	if blob == nil || len(blob.Data) == 0 {
		http.NotFound(w, r)
		return
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(blob.Data); err != nil {
		slog.Error("Failed to write photo response", "place_id", placeID, "error", err)
	}
}
