package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"huangye/pkg/request"
)

func TestPriceLevel(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"$$", 2},
		{"￥￥￥", 3},
		{"$10–20", 1},
	}
	for _, tt := range tests {
		if got := priceLevel(tt.in); got != tt.want {
			t.Errorf("priceLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOpenStateIsOpen(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Open ⋅ Closes 10 PM", true},
		{"Open 24 hours", true},
		{"Closed ⋅ Opens 9 AM", false},
		{"Closed ⋅ Opens 9 AM Mon", false},
		{"Temporarily closed", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := openStateIsOpen(tt.in); got != tt.want {
			t.Errorf("openStateIsOpen(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSerpNormalize(t *testing.T) {
	wire := &serpPlaceWire{
		Title:     "重庆火锅城",
		PlaceID:   "ChIJhotpot",
		Rating:    4.2,
		Reviews:   88,
		Price:     "$$",
		Address:   "Av. Insurgentes 500",
		Phone:     "+52 55 8765",
		Website:   "https://hotpot.example",
		OpenState: "Open ⋅ Closes 23:00",
		OperatingHours: map[string]string{
			"sunday": "12 PM–11 PM",
			"monday": "12 PM–11 PM",
		},
		Thumbnail: "https://img.example/thumb.jpg",
	}

	place := wire.normalize()
	require.Equal(t, "重庆火锅城", place.Name)
	require.Equal(t, 2, place.PriceLevel)
	require.Equal(t, 88, place.UserRatingsTotal)
	require.Equal(t, "https://www.google.com/maps/place/?q=place_id:ChIJhotpot", place.URL)

	// Weekday text follows the Google wire order: Monday first.
	require.NotNil(t, place.OpeningHours)
	require.True(t, place.OpeningHours.OpenNow)
	require.Equal(t, []string{"Monday: 12 PM–11 PM", "Sunday: 12 PM–11 PM"}, place.OpeningHours.WeekdayText)

	// No photo list: the thumbnail fills the cover slot, as a URL.
	require.Len(t, place.Photos, 1)
	require.True(t, place.Photos[0].IsURL())
}

func TestSerpAPIFetchDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "google_maps", r.URL.Query().Get("engine"))
		require.Equal(t, "ChIJabc", r.URL.Query().Get("place_id"))
		w.Write([]byte(`{"place_results": {"title": "老王川菜馆", "rating": 4.6, "price": "$$"}}`))
	}))
	defer srv.Close()

	p := NewSerpAPIProvider(request.New(5*time.Second, nil), "k")
	p.APIBase = srv.URL

	place, err := p.FetchDetails(context.Background(), "ChIJabc", "")
	require.NoError(t, err)
	require.Equal(t, "老王川菜馆", place.Name)
	// Missing id in the single-place response is backfilled.
	require.Equal(t, "ChIJabc", place.PlaceID)
}

func TestSerpAPIFindPlaceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"local_results": [{"title": "A", "place_id": "ChIJtop"}, {"title": "B", "place_id": "ChIJnext"}]}`))
	}))
	defer srv.Close()

	p := NewSerpAPIProvider(request.New(5*time.Second, nil), "k")
	p.APIBase = srv.URL

	id, err := p.FindPlaceID(context.Background(), "川菜 墨西哥城")
	require.NoError(t, err)
	require.Equal(t, "ChIJtop", id)
}

func TestSearchAPIFetchDetailsFiltersByPlaceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "老王川菜馆", r.URL.Query().Get("q"))
		w.Write([]byte(`{"local_results": [
			{"title": "别家店", "place_id": "ChIJother"},
			{"title": "老王川菜馆", "place_id": "ChIJwanted", "rating": 4.7}
		]}`))
	}))
	defer srv.Close()

	p := NewSearchAPIProvider(request.New(5*time.Second, nil), "k")
	p.APIBase = srv.URL

	place, err := p.FetchDetails(context.Background(), "ChIJwanted", "老王川菜馆")
	require.NoError(t, err)
	require.Equal(t, "老王川菜馆", place.Name)
	require.Equal(t, 4.7, place.Rating)

	// Details without the original query cannot be looked up at all.
	_, err = p.FetchDetails(context.Background(), "ChIJwanted", "")
	require.Error(t, err)
}

func TestSearchAPIFetchDetailsFallsBackToTopResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"local_results": [{"title": "改名的店", "place_id": "ChIJrenamed"}]}`))
	}))
	defer srv.Close()

	p := NewSearchAPIProvider(request.New(5*time.Second, nil), "k")
	p.APIBase = srv.URL

	place, err := p.FetchDetails(context.Background(), "ChIJgone", "老店")
	require.NoError(t, err)
	require.Equal(t, "改名的店", place.Name)
}
