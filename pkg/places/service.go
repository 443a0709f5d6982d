package places

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"huangye/pkg/cache"
	"huangye/pkg/model"
)

// PlaceLister enumerates the distinct places the directory references,
// each with the text query that describes it. Satisfied by company.Store.
type PlaceLister interface {
	PlaceRefs() ([]model.PlaceRef, error)
}

// Service is the caching layer in front of the live provider. Lookup order
// is memory tier, disk tier, then the provider; live results are written
// through to both tiers. Every provider failure degrades to "no data".
type Service struct {
	provider Provider // nil when live fetching is disabled
	disk     *cache.Disk

	details *cache.TTL[model.CachedPlace]
	ids     *cache.TTL[string]
	photos  *cache.TTL[model.PhotoBlob]

	photoDir  string
	companies PlaceLister

	// queries remembers the text query last seen for a place ID, so photo
	// fetches and prefetch can feed SERP backends that need one.
	qmu     sync.Mutex
	queries map[string]string

	// group collapses concurrent live fetches for the same key.
	group singleflight.Group

	prefetching   atomic.Bool
	prefetchDelay time.Duration
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// Provider is the live backend; nil makes the service cache-only.
	Provider Provider
	// Disk is the durable place cache.
	Disk *cache.Disk
	// PhotoDir holds locally cached photo files.
	PhotoDir string
	// TTL bounds the memory tiers.
	TTL time.Duration
	// Companies supplies place refs for PrefetchAll and query recovery.
	Companies PlaceLister
	// PrefetchDelay is the pause between prefetch requests.
	PrefetchDelay time.Duration
}

// NewService creates the caching places service.
func NewService(cfg ServiceConfig) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	delay := cfg.PrefetchDelay
	if delay <= 0 {
		delay = 1200 * time.Millisecond
	}

	return &Service{
		provider:      cfg.Provider,
		disk:          cfg.Disk,
		details:       cache.NewTTL[model.CachedPlace](ttl),
		ids:           cache.NewTTL[string](ttl),
		photos:        cache.NewTTL[model.PhotoBlob](ttl),
		photoDir:      cfg.PhotoDir,
		companies:     cfg.Companies,
		queries:       make(map[string]string),
		prefetchDelay: delay,
	}
}

// Enabled reports whether live provider calls are possible.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// ResolvePlaceID resolves a free-text query to a place ID. Misses and
// provider errors both come back as "": callers render without enrichment.
func (s *Service) ResolvePlaceID(ctx context.Context, query string) string {
	if query == "" {
		return ""
	}

	if id, ok := s.ids.Get(query); ok {
		return id
	}

	if s.provider == nil {
		return ""
	}

	result, err, _ := s.group.Do("id:"+query, func() (interface{}, error) {
		return s.provider.FindPlaceID(ctx, query)
	})
	if err != nil {
		slog.Warn("place id lookup failed", "provider", s.provider.Name(), "query", query, "error", err)
		return ""
	}

	id := result.(string)
	if id != "" {
		s.ids.Set(query, id)
	}
	return id
}

// FetchPlaceDetails returns the normalized place for placeID, or nil when
// no tier has it. The optional query helps SERP backends that can only
// search by text.
func (s *Service) FetchPlaceDetails(ctx context.Context, placeID, query string) *model.CachedPlace {
	if placeID == "" {
		return nil
	}
	if query != "" {
		s.rememberQuery(placeID, query)
	}

	if place, ok := s.details.Get(placeID); ok {
		return &place
	}

	// The disk tier never expires; it short-circuits live fetching so the
	// quota is only spent on places we have never seen.
	if s.disk != nil {
		if place, ok := s.disk.Get(placeID); ok {
			s.details.Set(placeID, place)
			return &place
		}
	}

	if s.provider == nil {
		return nil
	}

	result, err, _ := s.group.Do("details:"+placeID, func() (interface{}, error) {
		return s.provider.FetchDetails(ctx, placeID, query)
	})
	if err != nil {
		slog.Warn("place details fetch failed", "provider", s.provider.Name(), "place_id", placeID, "error", err)
		// A concurrent writer may have landed a disk entry meanwhile.
		if s.disk != nil {
			if place, ok := s.disk.Get(placeID); ok {
				return &place
			}
		}
		return nil
	}

	place := result.(*model.CachedPlace)
	if place == nil {
		return nil
	}

	s.details.Set(placeID, *place)
	if s.disk != nil {
		if err := s.disk.Put(placeID, *place); err != nil {
			slog.Error("failed to persist place to disk cache", "place_id", placeID, "error", err)
		}
	}

	return place
}

// FetchPlacePhoto returns photo bytes for the given place and photo index,
// or nil when no tier can supply them. Lookup order: memory cache, local
// photo files, live provider.
func (s *Service) FetchPlacePhoto(ctx context.Context, placeID string, index int) *model.PhotoBlob {
	if placeID == "" {
		return nil
	}
	if index < 0 {
		index = 0
	}

	key := fmt.Sprintf("%s:%d", placeID, index)
	if blob, ok := s.photos.Get(key); ok {
		return &blob
	}

	if blob := s.localPhoto(placeID, index); blob != nil {
		s.photos.Set(key, *blob)
		return blob
	}

	if s.provider == nil {
		return nil
	}

	result, err, _ := s.group.Do("photo:"+key, func() (interface{}, error) {
		return s.fetchLivePhoto(ctx, placeID, index)
	})
	if err != nil {
		slog.Warn("place photo fetch failed", "provider", s.provider.Name(), "place_id", placeID, "index", index, "error", err)
		return nil
	}

	blob := result.(*model.PhotoBlob)
	if blob == nil {
		return nil
	}
	s.photos.Set(key, *blob)
	return blob
}

func (s *Service) fetchLivePhoto(ctx context.Context, placeID string, index int) (*model.PhotoBlob, error) {
	details := s.FetchPlaceDetails(ctx, placeID, s.queryFor(placeID))
	if details == nil || len(details.Photos) == 0 {
		return nil, nil
	}

	// Fall back to the first photo when the requested slot has none.
	if index >= len(details.Photos) {
		index = 0
	}
	return s.provider.FetchPhoto(ctx, details.Photos[index].Reference)
}

func (s *Service) rememberQuery(placeID, query string) {
	s.qmu.Lock()
	s.queries[placeID] = query
	s.qmu.Unlock()
}

// queryFor recovers the text query for a place ID: first from queries seen
// at fetch time, then from the directory records.
func (s *Service) queryFor(placeID string) string {
	s.qmu.Lock()
	query := s.queries[placeID]
	s.qmu.Unlock()
	if query != "" || s.companies == nil {
		return query
	}

	refs, err := s.companies.PlaceRefs()
	if err != nil {
		return ""
	}
	for _, ref := range refs {
		if ref.PlaceID == placeID {
			return ref.Query
		}
	}
	return ""
}

// PhotoURL returns the public URL under which a place photo is served.
func PhotoURL(placeID string, index int) string {
	if index <= 0 {
		return "/api/place-photo/" + placeID
	}
	return fmt.Sprintf("/api/place-photo/%s/%d", placeID, index)
}

// PrefetchAll warms the details and cover-photo caches for every place the
// directory references, serially and with a fixed delay between places so
// provider rate limits are respected. Overlapping runs are no-ops.
func (s *Service) PrefetchAll(ctx context.Context) {
	if s.provider == nil || s.companies == nil {
		return
	}
	if !s.prefetching.CompareAndSwap(false, true) {
		slog.Debug("prefetch already running, skipping")
		return
	}
	defer s.prefetching.Store(false)

	refs, err := s.companies.PlaceRefs()
	if err != nil {
		slog.Error("prefetch could not list places", "error", err)
		return
	}

	slog.Info("prefetching places", "count", len(refs), "provider", s.provider.Name())

	for _, ref := range refs {
		if ctx.Err() != nil {
			slog.Info("prefetch cancelled", "remaining", len(refs))
			return
		}

		s.FetchPlaceDetails(ctx, ref.PlaceID, ref.Query)
		s.FetchPlacePhoto(ctx, ref.PlaceID, 0)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.prefetchDelay):
		}
	}

	slog.Info("prefetch finished", "count", len(refs))
}
