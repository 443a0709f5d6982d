package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"huangye/pkg/model"
	"huangye/pkg/request"
)

const googleAPIBase = "https://maps.googleapis.com/maps/api/place"

// detailFields is what we ask the Place Details endpoint for; it matches
// the normalized CachedPlace shape field for field.
const detailFields = "place_id,name,rating,user_ratings_total,price_level,geometry,formatted_address,formatted_phone_number,opening_hours,photos,url,website"

// GoogleProvider talks to the Google Places Web Service directly.
type GoogleProvider struct {
	request *request.Client
	key     string

	// APIBase overrides the endpoint for testing.
	APIBase string
}

// NewGoogleProvider creates a Google-backed provider.
func NewGoogleProvider(r *request.Client, key string) *GoogleProvider {
	return &GoogleProvider{request: r, key: key}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) base() string {
	if p.APIBase != "" {
		return p.APIBase
	}
	return googleAPIBase
}

// FindPlaceID calls the Find Place endpoint and returns the first
// candidate's place ID.
func (p *GoogleProvider) FindPlaceID(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id")
	q.Set("key", p.key)

	body, err := p.request.Get(ctx, p.base()+"/findplacefromtext/json?"+q.Encode())
	if err != nil {
		return "", err
	}

	var resp struct {
		Status     string `json:"status"`
		Candidates []struct {
			PlaceID string `json:"place_id"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode find-place response: %w", err)
	}

	if resp.Status != "OK" || len(resp.Candidates) == 0 {
		return "", nil
	}
	return resp.Candidates[0].PlaceID, nil
}

// FetchDetails calls the Place Details endpoint.
func (p *GoogleProvider) FetchDetails(ctx context.Context, placeID, query string) (*model.CachedPlace, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFields)
	q.Set("language", "zh-CN")
	q.Set("key", p.key)

	body, err := p.request.Get(ctx, p.base()+"/details/json?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Status string            `json:"status"`
		Result googleDetailsWire `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode details response: %w", err)
	}

	if resp.Status != "OK" {
		return nil, fmt.Errorf("details request returned status %s", resp.Status)
	}

	return resp.Result.normalize(), nil
}

// FetchPhoto downloads photo bytes via the Place Photo endpoint. The
// endpoint replies with a redirect to the actual image, which the HTTP
// client follows transparently. A reference that is already an absolute
// URL (a disk-cached place fetched through a SERP backend earlier) is
// downloaded directly.
func (p *GoogleProvider) FetchPhoto(ctx context.Context, reference string) (*model.PhotoBlob, error) {
	if (model.PlacePhoto{Reference: reference}).IsURL() {
		return fetchPhotoURL(ctx, p.request, reference)
	}

	q := url.Values{}
	q.Set("photoreference", reference)
	q.Set("maxwidth", "800")
	q.Set("key", p.key)

	body, contentType, err := p.request.GetWithContentType(ctx, p.base()+"/photo?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &model.PhotoBlob{Data: body, ContentType: contentType}, nil
}

// googleDetailsWire is the subset of the Place Details result we consume.
// It is nearly the normalized shape already; normalize only restructures
// the nested geometry.
type googleDetailsWire struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	PriceLevel       int     `json:"price_level"`
	Geometry         *struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	FormattedAddress string `json:"formatted_address"`
	FormattedPhone   string `json:"formatted_phone_number"`
	OpeningHours     *struct {
		OpenNow     bool     `json:"open_now"`
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
		Width          int    `json:"width"`
		Height         int    `json:"height"`
	} `json:"photos"`
	URL     string `json:"url"`
	Website string `json:"website"`
}

func (w *googleDetailsWire) normalize() *model.CachedPlace {
	place := &model.CachedPlace{
		PlaceID:          w.PlaceID,
		Name:             w.Name,
		Rating:           w.Rating,
		UserRatingsTotal: w.UserRatingsTotal,
		PriceLevel:       w.PriceLevel,
		FormattedAddress: w.FormattedAddress,
		FormattedPhone:   w.FormattedPhone,
		URL:              w.URL,
		Website:          w.Website,
	}

	if w.Geometry != nil {
		place.Geometry = &model.Geometry{
			Lat: w.Geometry.Location.Lat,
			Lng: w.Geometry.Location.Lng,
		}
	}
	if w.OpeningHours != nil {
		place.OpeningHours = &model.OpeningHours{
			OpenNow:     w.OpeningHours.OpenNow,
			WeekdayText: w.OpeningHours.WeekdayText,
		}
	}
	for _, ph := range w.Photos {
		place.Photos = append(place.Photos, model.PlacePhoto{
			Reference: ph.PhotoReference,
			Width:     ph.Width,
			Height:    ph.Height,
		})
	}

	return place
}
