package page

import (
	"fmt"
	"net/url"
	"regexp"

	"huangye/pkg/model"
)

// cidRe pulls the CID out of a shared Google Maps link
// (e.g. https://maps.google.com/?cid=1234567890).
var cidRe = regexp.MustCompile(`[?&]cid=(\d+)`)

// MapEmbedURL builds the iframe src for the company's map, walking the
// fallback chain: explicit embed URL, CID extracted from the maps link,
// coordinates, place-id query, free-text query. Empty when nothing at all
// is known about the location.
func MapEmbedURL(c *model.Company, place *model.CachedPlace) string {
	if c.MapEmbedURL != "" {
		return c.MapEmbedURL
	}

	mapLink := c.MapURL
	if mapLink == "" && place != nil {
		mapLink = place.URL
	}
	if m := cidRe.FindStringSubmatch(mapLink); m != nil {
		return "https://maps.google.com/maps?cid=" + m[1] + "&output=embed"
	}

	lat, lng := c.Lat, c.Lng
	if !c.HasCoords() && place != nil && place.Geometry != nil {
		lat, lng = place.Geometry.Lat, place.Geometry.Lng
	}
	if lat != 0 || lng != 0 {
		return fmt.Sprintf("https://maps.google.com/maps?q=%f,%f&z=15&output=embed", lat, lng)
	}

	if c.PlaceID != "" {
		return "https://maps.google.com/maps?q=place_id:" + url.QueryEscape(c.PlaceID) + "&output=embed"
	}

	query := c.Name
	if c.City != "" {
		query += " " + c.City
	}
	if query == "" {
		return ""
	}
	return "https://maps.google.com/maps?q=" + url.QueryEscape(query) + "&output=embed"
}
