package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"huangye/pkg/model"
	"huangye/pkg/request"
)

const serpAPIBase = "https://serpapi.com/search.json"

// SerpAPIProvider uses SerpApi's google_maps engine. Unlike the direct
// Google backend it has no separate details endpoint, but it does accept a
// place_id parameter that returns a single place_results object.
type SerpAPIProvider struct {
	request *request.Client
	key     string

	// APIBase overrides the endpoint for testing.
	APIBase string
}

// NewSerpAPIProvider creates a SerpApi-backed provider.
func NewSerpAPIProvider(r *request.Client, key string) *SerpAPIProvider {
	return &SerpAPIProvider{request: r, key: key}
}

func (p *SerpAPIProvider) Name() string { return "serpapi" }

func (p *SerpAPIProvider) base() string {
	if p.APIBase != "" {
		return p.APIBase
	}
	return serpAPIBase
}

type serpAPIResponse struct {
	PlaceResults *serpPlaceWire  `json:"place_results"`
	LocalResults []serpPlaceWire `json:"local_results"`
}

func (p *SerpAPIProvider) search(ctx context.Context, params url.Values) (*serpAPIResponse, error) {
	params.Set("engine", "google_maps")
	params.Set("hl", "zh-cn")
	params.Set("api_key", p.key)

	body, err := p.request.Get(ctx, p.base()+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp serpAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode serpapi response: %w", err)
	}
	return &resp, nil
}

// FindPlaceID runs a text search and returns the first result's place ID.
func (p *SerpAPIProvider) FindPlaceID(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "search")

	resp, err := p.search(ctx, params)
	if err != nil {
		return "", err
	}

	if resp.PlaceResults != nil {
		return resp.PlaceResults.PlaceID, nil
	}
	if len(resp.LocalResults) > 0 {
		return resp.LocalResults[0].PlaceID, nil
	}
	return "", nil
}

// FetchDetails asks for the place directly by place_id.
func (p *SerpAPIProvider) FetchDetails(ctx context.Context, placeID, query string) (*model.CachedPlace, error) {
	params := url.Values{}
	params.Set("place_id", placeID)

	resp, err := p.search(ctx, params)
	if err != nil {
		return nil, err
	}

	if resp.PlaceResults == nil {
		return nil, fmt.Errorf("no place_results for place_id %s", placeID)
	}

	place := resp.PlaceResults.normalize()
	// The single-place response may omit the id we asked by.
	if place.PlaceID == "" {
		place.PlaceID = placeID
	}
	return place, nil
}

// FetchPhoto downloads a photo. SERP photo references are absolute URLs.
func (p *SerpAPIProvider) FetchPhoto(ctx context.Context, reference string) (*model.PhotoBlob, error) {
	return fetchPhotoURL(ctx, p.request, reference)
}

// fetchPhotoURL downloads an absolute photo URL, shared by the SERP backends.
func fetchPhotoURL(ctx context.Context, r *request.Client, u string) (*model.PhotoBlob, error) {
	body, contentType, err := r.GetWithContentType(ctx, u)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &model.PhotoBlob{Data: body, ContentType: contentType}, nil
}
