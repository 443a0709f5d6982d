package places

import (
	"fmt"
	"strings"

	"huangye/pkg/model"
)

// serpPlaceWire is the place shape shared by the SERP-style aggregators
// (SerpApi and SearchApi both mimic the Google Maps result layout).
type serpPlaceWire struct {
	Title          string            `json:"title"`
	PlaceID        string            `json:"place_id"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	Price          string            `json:"price"`
	Address        string            `json:"address"`
	Phone          string            `json:"phone"`
	Website        string            `json:"website"`
	Thumbnail      string            `json:"thumbnail"`
	OpenState      string            `json:"open_state"`
	OperatingHours map[string]string `json:"operating_hours"`

	GPSCoordinates *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"gps_coordinates"`

	Photos []struct {
		Image string `json:"image"`
	} `json:"photos"`
}

// weekdayOrder is the Google wire order for weekday_text: Monday first.
var weekdayOrder = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (w *serpPlaceWire) normalize() *model.CachedPlace {
	place := &model.CachedPlace{
		PlaceID:          w.PlaceID,
		Name:             w.Title,
		Rating:           w.Rating,
		UserRatingsTotal: w.Reviews,
		PriceLevel:       priceLevel(w.Price),
		FormattedAddress: w.Address,
		FormattedPhone:   w.Phone,
		Website:          w.Website,
	}

	if w.PlaceID != "" {
		place.URL = "https://www.google.com/maps/place/?q=place_id:" + w.PlaceID
	}

	if w.GPSCoordinates != nil {
		place.Geometry = &model.Geometry{
			Lat: w.GPSCoordinates.Latitude,
			Lng: w.GPSCoordinates.Longitude,
		}
	}

	if len(w.OperatingHours) > 0 || w.OpenState != "" {
		hours := &model.OpeningHours{
			OpenNow: openStateIsOpen(w.OpenState),
		}
		for _, day := range weekdayOrder {
			if text, ok := w.OperatingHours[day]; ok {
				label := strings.ToUpper(day[:1]) + day[1:]
				hours.WeekdayText = append(hours.WeekdayText, fmt.Sprintf("%s: %s", label, text))
			}
		}
		place.OpeningHours = hours
	}

	// SERP photos are absolute URLs, stored as-is in the reference slot.
	for _, ph := range w.Photos {
		if ph.Image != "" {
			place.Photos = append(place.Photos, model.PlacePhoto{Reference: ph.Image})
		}
	}
	if len(place.Photos) == 0 && w.Thumbnail != "" {
		place.Photos = append(place.Photos, model.PlacePhoto{Reference: w.Thumbnail})
	}

	return place
}

// openStateIsOpen interprets SERP open-state strings like "Open ⋅ Closes
// 10 PM" or "Closed ⋅ Opens 9 AM". A closed state mentions "Opens", so
// "closed" has to win over any "open" substring.
func openStateIsOpen(state string) bool {
	s := strings.ToLower(state)
	if strings.Contains(s, "closed") {
		return false
	}
	return strings.Contains(s, "open")
}

// priceLevel converts a "$$$" / "￥￥" style price string to a level count.
func priceLevel(price string) int {
	level := 0
	for _, r := range price {
		switch r {
		case '$', '￥', '¥', '€':
			level++
		}
	}
	return level
}
