package page

import (
	"encoding/json"
	"strings"

	"huangye/pkg/model"
)

// schemaRule maps keywords to a schema.org business type. Evaluated in
// order; first match wins.
type schemaRule struct {
	schemaType string
	keywords   []string
}

var schemaRules = []schemaRule{
	{"GroceryStore", []string{"超市", "商店", "便利", "食品", "杂货"}},
	{"CafeOrCoffeeShop", []string{"咖啡", "奶茶", "茶饮", "饮品"}},
	{"Restaurant", []string{"餐", "菜", "面", "火锅", "烧烤", "小吃", "美食"}},
}

// SchemaType classifies a company into a schema.org type by keyword
// priority, defaulting to LocalBusiness.
func SchemaType(c *model.Company) string {
	haystack := c.Name + c.Summary
	for _, rule := range schemaRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.schemaType
			}
		}
	}
	return "LocalBusiness"
}

// JSONLD renders the structured-data block for a company page.
func JSONLD(c *model.Company, place *model.CachedPlace) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    SchemaType(c),
		"name":     c.Name,
	}

	if c.Summary != "" {
		data["description"] = c.Summary
	}

	address := c.Address
	if address == "" && place != nil {
		address = place.FormattedAddress
	}
	if address != "" {
		data["address"] = address
	}

	if c.HasContact() {
		data["telephone"] = c.Contact
	} else if place != nil && place.FormattedPhone != "" {
		data["telephone"] = place.FormattedPhone
	}

	if place != nil {
		if place.Rating > 0 && place.UserRatingsTotal > 0 {
			data["aggregateRating"] = map[string]any{
				"@type":       "AggregateRating",
				"ratingValue": place.Rating,
				"reviewCount": place.UserRatingsTotal,
			}
		}
		if place.Geometry != nil {
			data["geo"] = map[string]any{
				"@type":     "GeoCoordinates",
				"latitude":  place.Geometry.Lat,
				"longitude": place.Geometry.Lng,
			}
		}
	} else if c.HasCoords() {
		data["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  c.Lat,
			"longitude": c.Lng,
		}
	}

	out, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// Title returns the SEO page title.
func Title(c *model.Company) string {
	parts := []string{c.Name}
	if c.City != "" {
		parts = append(parts, c.City)
	}
	parts = append(parts, "华人黄页")
	return strings.Join(parts, " - ")
}

// Description returns the SEO meta description, capped for snippet length.
func Description(c *model.Company) string {
	desc := c.Summary
	if desc == "" {
		desc = c.Name
		if c.City != "" {
			desc += "，位于" + c.City
		}
	}

	runes := []rune(desc)
	if len(runes) > 120 {
		desc = string(runes[:120])
	}
	return desc
}
