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

const googleDetailsBody = `{
	"status": "OK",
	"result": {
		"place_id": "ChIJabc",
		"name": "老王川菜馆",
		"rating": 4.6,
		"user_ratings_total": 213,
		"price_level": 2,
		"geometry": {"location": {"lat": 19.4326, "lng": -99.1332}},
		"formatted_address": "Calle Dolores 16, CDMX",
		"formatted_phone_number": "+52 55 1234 5678",
		"opening_hours": {
			"open_now": true,
			"weekday_text": ["Monday: 11:00 – 22:00", "Tuesday: 11:00 – 22:00"]
		},
		"photos": [{"photo_reference": "tok-1", "width": 800, "height": 600}],
		"url": "https://maps.google.com/?cid=123",
		"website": "https://laowang.example"
	}
}`

func newTestGoogle(t *testing.T, handler http.HandlerFunc) *GoogleProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p := NewGoogleProvider(request.New(5*time.Second, nil), "test-key")
	p.APIBase = srv.URL
	return p
}

func TestGoogleFetchDetails(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/details/json", r.URL.Path)
		require.Equal(t, "ChIJabc", r.URL.Query().Get("place_id"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(googleDetailsBody))
	})

	place, err := p.FetchDetails(context.Background(), "ChIJabc", "")
	require.NoError(t, err)
	require.Equal(t, "老王川菜馆", place.Name)
	require.Equal(t, 4.6, place.Rating)
	require.Equal(t, 213, place.UserRatingsTotal)
	require.Equal(t, 2, place.PriceLevel)
	require.NotNil(t, place.Geometry)
	require.InDelta(t, 19.4326, place.Geometry.Lat, 1e-9)
	require.NotNil(t, place.OpeningHours)
	require.True(t, place.OpeningHours.OpenNow)
	require.Len(t, place.OpeningHours.WeekdayText, 2)
	require.Len(t, place.Photos, 1)
	require.Equal(t, "tok-1", place.Photos[0].Reference)
	require.False(t, place.Photos[0].IsURL())
}

func TestGoogleFetchDetailsBadStatus(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "NOT_FOUND"}`))
	})

	_, err := p.FetchDetails(context.Background(), "ChIJnope", "")
	require.Error(t, err)
}

func TestGoogleFindPlaceID(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/findplacefromtext/json", r.URL.Path)
		require.Equal(t, "老王川菜馆 墨西哥城", r.URL.Query().Get("input"))
		w.Write([]byte(`{"status": "OK", "candidates": [{"place_id": "ChIJfirst"}, {"place_id": "ChIJsecond"}]}`))
	})

	id, err := p.FindPlaceID(context.Background(), "老王川菜馆 墨西哥城")
	require.NoError(t, err)
	require.Equal(t, "ChIJfirst", id)
}

func TestGoogleFindPlaceIDNoMatch(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "candidates": []}`))
	})

	id, err := p.FindPlaceID(context.Background(), "不存在的店")
	require.NoError(t, err)
	require.Equal(t, "", id)
}

func TestGoogleFetchPhoto(t *testing.T) {
	p := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/photo", r.URL.Path)
		require.Equal(t, "tok-1", r.URL.Query().Get("photoreference"))
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xff, 0xd8})
	})

	blob, err := p.FetchPhoto(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", blob.ContentType)
	require.Equal(t, []byte{0xff, 0xd8}, blob.Data)
}
