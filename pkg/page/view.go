// Package page assembles the view model for a single company's detail
// page: SEO block, hero images, value line, map embed, action buttons and
// the gated detail section.
package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"huangye/pkg/directory"
	"huangye/pkg/geo"
	"huangye/pkg/model"
	"huangye/pkg/places"
	"huangye/pkg/sanitize"
)

// thumbSlots is how many hero thumbnails the page shows below the cover.
const thumbSlots = 4

// nearbyLimit caps the "nearby companies" strip.
const nearbyLimit = 3

// lockedDetailMessage shows in place of the gated detail block.
const lockedDetailMessage = "详细介绍仅对认证商家开放，欢迎联系我们了解更多。"

// View is the complete company page view model.
type View struct {
	Company model.Company

	Title       string
	Description string
	JSONLD      string

	HeroCover  string
	HeroThumbs []string

	ValueLine string
	SubLine   string

	MapEmbedURL string
	Buttons     []Button

	DetailUnlocked bool
	DetailText     string

	Nearby []NearbyCard
}

// NearbyCard is one entry in the nearby strip.
type NearbyCard struct {
	Slug     string
	Name     string
	Distance string
}

// Builder constructs company page views.
type Builder struct {
	placeSvc *places.Service

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewBuilder creates a page builder on top of the places service.
func NewBuilder(placeSvc *places.Service) *Builder {
	return &Builder{placeSvc: placeSvc, now: time.Now}
}

// Build assembles the page view for a company. all is the full company
// list for the nearby strip. Place enrichment is best-effort: a nil place
// just means fewer sections.
func (b *Builder) Build(ctx context.Context, c *model.Company, all []model.Company) *View {
	placeID, place := b.resolvePlace(ctx, c)

	embedURL := MapEmbedURL(c, place)

	v := &View{
		Company:     *c,
		Title:       Title(c),
		Description: Description(c),
		JSONLD:      JSONLD(c, place),
		ValueLine:   valueLine(c, place),
		MapEmbedURL: embedURL,
		Buttons:     Buttons(c, place, embedURL),
	}

	if b.placeSvc != nil {
		// Cover resolution keys off the place ID, which may have been
		// resolved from the company name just above.
		hero := *c
		hero.PlaceID = placeID
		v.HeroCover = directory.ResolveCover(&hero, b.placeSvc)
	} else {
		v.HeroCover = c.Cover
	}
	v.HeroThumbs = heroThumbs(placeID, place)

	if place != nil {
		v.SubLine = TodayHours(place.OpeningHours, b.now())
	}

	v.DetailUnlocked = c.DetailPaid
	if c.DetailPaid {
		v.DetailText = sanitize.Text(c.Detail)
	} else {
		v.DetailText = lockedDetailMessage
	}

	for _, n := range geo.Nearby(c, all, nearbyLimit) {
		v.Nearby = append(v.Nearby, NearbyCard{
			Slug:     n.Company.Slug,
			Name:     n.Company.Name,
			Distance: formatDistance(n.DistanceM),
		})
	}

	return v
}

// resolvePlace finds place enrichment for the company, resolving a place
// ID from the company name when the record has none. The resolved ID is
// returned alongside the place so hero images can use it too.
func (b *Builder) resolvePlace(ctx context.Context, c *model.Company) (string, *model.CachedPlace) {
	if b.placeSvc == nil {
		return c.PlaceID, nil
	}

	placeID := c.PlaceID
	query := strings.TrimSpace(c.Name + " " + c.City)
	if placeID == "" {
		placeID = b.placeSvc.ResolvePlaceID(ctx, query)
	}
	if placeID == "" {
		return "", nil
	}
	return placeID, b.placeSvc.FetchPlaceDetails(ctx, placeID, query)
}

// heroThumbs fills the thumbnail slots, cycling through the available
// photo indices when there are fewer photos than slots.
func heroThumbs(placeID string, place *model.CachedPlace) []string {
	if placeID == "" || place == nil || len(place.Photos) == 0 {
		return nil
	}

	count := len(place.Photos)
	slots := thumbSlots
	var thumbs []string
	for i := 0; i < slots; i++ {
		thumbs = append(thumbs, places.PhotoURL(placeID, i%count))
	}
	return thumbs
}

// valueLine is the one-line summary under the company name: rating, price
// level symbols, first summary clause.
func valueLine(c *model.Company, place *model.CachedPlace) string {
	var parts []string

	if place != nil && place.Rating > 0 {
		if place.UserRatingsTotal > 0 {
			parts = append(parts, fmt.Sprintf("★%.1f (%d)", place.Rating, place.UserRatingsTotal))
		} else {
			parts = append(parts, fmt.Sprintf("★%.1f", place.Rating))
		}
	}
	if place != nil && place.PriceLevel > 0 {
		parts = append(parts, strings.Repeat("¥", place.PriceLevel))
	}
	if clause := firstClause(c.Summary); clause != "" {
		parts = append(parts, clause)
	}

	return strings.Join(parts, " · ")
}

// firstClause cuts the summary at the first clause boundary.
func firstClause(s string) string {
	s = sanitize.Text(strings.TrimSpace(s))
	if idx := strings.IndexAny(s, "。，,;；"); idx >= 0 {
		return s[:idx]
	}
	return s
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
