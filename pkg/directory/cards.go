package directory

import (
	"huangye/pkg/model"
	"huangye/pkg/places"
)

// CoverSource answers whether a place photo can be served for a place ID.
// Satisfied by places.Service.
type CoverSource interface {
	HasLocalPhoto(placeID string) bool
	Enabled() bool
}

// ResolveCover picks the card/hero image URL for a company: the explicit
// cover path wins, then a locally cached place photo, then the photo route
// backed by the live provider. Empty when nothing can serve an image.
func ResolveCover(c *model.Company, photos CoverSource) string {
	if c.Cover != "" {
		return c.Cover
	}
	if c.PlaceID == "" || photos == nil {
		return ""
	}
	if photos.HasLocalPhoto(c.PlaceID) {
		return places.PhotoURL(c.PlaceID, 0)
	}
	if photos.Enabled() {
		return places.PhotoURL(c.PlaceID, 0)
	}
	return ""
}
