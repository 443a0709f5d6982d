// Package places resolves company records to place details and photos,
// caching aggressively in front of a configurable live provider.
package places

import (
	"context"

	"huangye/pkg/model"
)

// Provider is one live places backend. All implementations normalize their
// wire formats into model.CachedPlace; none of them is trusted to be up, so
// callers treat every error as "enrichment unavailable".
type Provider interface {
	// Name identifies the provider in logs and config.
	Name() string

	// FindPlaceID resolves a free-text query to a place ID.
	// Returns "" without error when nothing matched.
	FindPlaceID(ctx context.Context, query string) (string, error)

	// FetchDetails returns the normalized place for placeID. The original
	// text query is passed along for backends that can only search by
	// text and filter the result list by place ID.
	FetchDetails(ctx context.Context, placeID, query string) (*model.CachedPlace, error)

	// FetchPhoto downloads photo bytes for a provider photo reference.
	FetchPhoto(ctx context.Context, reference string) (*model.PhotoBlob, error)
}
