package model

import (
	"strings"
	"time"
)

// Company is one directory record, loaded from the companies JSON file.
// Records are read-only at runtime; the file is re-read per request.
type Company struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	City     string `json:"city"`
	Industry string `json:"industry"`
	Category string `json:"category"`

	PlaceID string `json:"placeId"`
	Contact string `json:"contact"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	Cover       string `json:"cover"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	MapURL      string `json:"mapUrl"`
	MapEmbedURL string `json:"mapEmbedUrl"`

	Detail     string `json:"detail"`
	DetailPaid bool   `json:"detailPaid"`
}

// contact values used by data entry to mean "no contact yet".
var contactSentinels = map[string]bool{
	"未提供": true,
	"暂无":  true,
	"待更新": true,
}

// HasContact reports whether the record carries a real contact string,
// as opposed to a data-entry placeholder.
func (c *Company) HasContact() bool {
	s := strings.TrimSpace(c.Contact)
	return s != "" && !contactSentinels[s]
}

// HasCoords reports whether both coordinates are set.
func (c *Company) HasCoords() bool {
	return c.Lat != 0 || c.Lng != 0
}

// PlaceRef pairs a place ID with the free-text query that describes it.
// SERP-style providers can only look places up by text, so the query has
// to travel with the ID.
type PlaceRef struct {
	PlaceID string
	Query   string
}

// CachedPlace is the provider-independent place record. All three
// providers normalize into this shape; it is also the disk cache format.
type CachedPlace struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Rating           float64       `json:"rating,omitempty"`
	UserRatingsTotal int           `json:"user_ratings_total,omitempty"`
	PriceLevel       int           `json:"price_level,omitempty"`
	Geometry         *Geometry     `json:"geometry,omitempty"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	FormattedPhone   string        `json:"formatted_phone_number,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	Photos           []PlacePhoto  `json:"photos,omitempty"`
	URL              string        `json:"url,omitempty"`
	Website          string        `json:"website,omitempty"`
}

// Geometry holds a place location.
type Geometry struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningHours holds normalized opening hours.
// WeekdayText is 7 entries, Monday first (Google wire order).
type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// PlacePhoto is one photo slot of a place. Reference is either a Google
// photo_reference token or an absolute image URL (SERP providers).
type PlacePhoto struct {
	Reference string `json:"photo_reference,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// IsURL reports whether the photo reference is already a fetchable URL.
func (p PlacePhoto) IsURL() bool {
	return strings.HasPrefix(p.Reference, "http://") || strings.HasPrefix(p.Reference, "https://")
}

// PhotoBlob is fetched photo bytes plus their MIME type.
type PhotoBlob struct {
	Data        []byte
	ContentType string
}

// Submission is one contact-form row.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt"`
}
