package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"huangye/pkg/model"
	"huangye/pkg/request"
)

const searchAPIBase = "https://www.searchapi.io/api/v1/search"

// SearchAPIProvider uses SearchApi's google_maps engine. Its maps engine
// has no place_id lookup at all, so details re-run the original text query
// and pick the result whose place_id matches.
type SearchAPIProvider struct {
	request *request.Client
	key     string

	// APIBase overrides the endpoint for testing.
	APIBase string
}

// NewSearchAPIProvider creates a SearchApi-backed provider.
func NewSearchAPIProvider(r *request.Client, key string) *SearchAPIProvider {
	return &SearchAPIProvider{request: r, key: key}
}

func (p *SearchAPIProvider) Name() string { return "searchapi" }

func (p *SearchAPIProvider) base() string {
	if p.APIBase != "" {
		return p.APIBase
	}
	return searchAPIBase
}

type searchAPIResponse struct {
	LocalResults []serpPlaceWire `json:"local_results"`
}

func (p *SearchAPIProvider) search(ctx context.Context, query string) (*searchAPIResponse, error) {
	params := url.Values{}
	params.Set("engine", "google_maps")
	params.Set("q", query)
	params.Set("hl", "zh-CN")
	params.Set("api_key", p.key)

	body, err := p.request.Get(ctx, p.base()+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode searchapi response: %w", err)
	}
	return &resp, nil
}

// FindPlaceID runs a text search and returns the first result's place ID.
func (p *SearchAPIProvider) FindPlaceID(ctx context.Context, query string) (string, error) {
	resp, err := p.search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(resp.LocalResults) == 0 {
		return "", nil
	}
	return resp.LocalResults[0].PlaceID, nil
}

// FetchDetails re-runs the text query and filters the result list by
// place_id. Without a query there is nothing to search by.
func (p *SearchAPIProvider) FetchDetails(ctx context.Context, placeID, query string) (*model.CachedPlace, error) {
	if query == "" {
		return nil, fmt.Errorf("searchapi details need the original text query for place_id %s", placeID)
	}

	resp, err := p.search(ctx, query)
	if err != nil {
		return nil, err
	}

	for i := range resp.LocalResults {
		if resp.LocalResults[i].PlaceID == placeID {
			return resp.LocalResults[i].normalize(), nil
		}
	}

	// Fall back to the top result when the id was not in the list; a
	// renamed business keeps its query but may get a new place_id.
	if len(resp.LocalResults) > 0 {
		place := resp.LocalResults[0].normalize()
		if place.PlaceID == "" {
			place.PlaceID = placeID
		}
		return place, nil
	}

	return nil, fmt.Errorf("no results matching place_id %s", placeID)
}

// FetchPhoto downloads a photo. SERP photo references are absolute URLs.
func (p *SearchAPIProvider) FetchPhoto(ctx context.Context, reference string) (*model.PhotoBlob, error) {
	return fetchPhotoURL(ctx, p.request, reference)
}
