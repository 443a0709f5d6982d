package places

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"huangye/pkg/model"
)

// photoExtensions in lookup order; the prefetch helper writes .jpg.
var photoExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// localPhoto looks for a photo file cached on disk under
// {photoDir}/{placeID}.{ext} for index 0 and {photoDir}/{placeID}-{index}.{ext}
// otherwise. Returns nil when no file exists.
func (s *Service) localPhoto(placeID string, index int) *model.PhotoBlob {
	if s.photoDir == "" {
		return nil
	}

	var names []string
	if index == 0 {
		names = []string{placeID, placeID + "-0"}
	} else {
		names = []string{fmt.Sprintf("%s-%d", placeID, index)}
	}

	for _, name := range names {
		for _, ext := range photoExtensions {
			path := filepath.Join(s.photoDir, name+ext)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			return &model.PhotoBlob{Data: data, ContentType: contentTypeForExt(ext)}
		}
	}
	return nil
}

// HasLocalPhoto reports whether a locally cached photo file exists for the
// place's cover slot. The directory builder uses this to pick card covers
// without pulling photo bytes into memory.
func (s *Service) HasLocalPhoto(placeID string) bool {
	if s.photoDir == "" || placeID == "" {
		return false
	}
	for _, name := range []string{placeID, placeID + "-0"} {
		for _, ext := range photoExtensions {
			if _, err := os.Stat(filepath.Join(s.photoDir, name+ext)); err == nil {
				return true
			}
		}
	}
	return false
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
