package directory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"huangye/pkg/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		company model.Company
		want    string
	}{
		{"ExplicitCategory", model.Company{Category: "烧烤", Name: "老王面馆"}, "烧烤"},
		{"UnknownExplicitFallsThrough", model.Company{Category: "自创类", Name: "重庆火锅城"}, "火锅"},
		{"NoodleFromSummary", model.Company{Name: "Abc Noodles", Summary: "牛肉面"}, "面馆"},
		{"HotpotBeforeNoodle", model.Company{Name: "麻辣烫面馆"}, "火锅"},
		{"NoodleBeforeBarbecue", model.Company{Name: "一品面烤肉"}, "面馆"},
		{"Barbecue", model.Company{Name: "东北烤串"}, "烧烤"},
		{"Drinks", model.Company{Name: "蜜雪奶茶"}, "饮品"},
		{"Market", model.Company{Name: "华人超市"}, "超市"},
		{"DefaultChinese", model.Company{Name: "好运来酒楼"}, "中餐"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(&tt.company); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func food(slug, name, city string) model.Company {
	return model.Company{Slug: slug, Name: name, City: city, Industry: FoodIndustry}
}

func TestBuildGrouping(t *testing.T) {
	companies := []model.Company{
		food("a", "瓜达拉哈拉面馆", "瓜达拉哈拉"),
		food("b", "老王川菜馆", "墨西哥城"),
		{Slug: "c", Name: "建材批发", City: "墨西哥城", Industry: "贸易"},
		food("d", "海边火锅", "坎昆"),
		{Slug: "e", Name: "无城市公司"},
	}

	dir := Build(companies, []string{"墨西哥城", "坎昆"})

	// Count total equals input length.
	require.Equal(t, 5, dir.Total)
	sum := 0
	for _, city := range dir.Cities {
		sum += city.Count
	}
	require.Equal(t, len(companies), sum)

	// Pinned cities first in pin order, then first-seen, default city last seen.
	var names []string
	for _, city := range dir.Cities {
		names = append(names, city.Name)
	}
	require.Equal(t, []string{"墨西哥城", "坎昆", "瓜达拉哈拉", DefaultCity}, names)

	// Food industry gets categories, others keep a flat company list.
	cdmx := dir.Cities[0]
	require.Equal(t, 2, cdmx.Count)
	require.Equal(t, FoodIndustry, cdmx.Industries[0].Name)
	require.NotEmpty(t, cdmx.Industries[0].Categories)
	require.Empty(t, cdmx.Industries[0].Companies)
	require.Equal(t, "贸易", cdmx.Industries[1].Name)
	require.Len(t, cdmx.Industries[1].Companies, 1)

	// Missing industry falls back to the default bucket.
	require.Equal(t, DefaultIndustry, dir.Cities[3].Industries[0].Name)
}

func TestBuildCategoryOrder(t *testing.T) {
	companies := []model.Company{
		food("a", "华人超市", "墨西哥城"),
		food("b", "兰州拉面", "墨西哥城"),
		food("c", "重庆火锅", "墨西哥城"),
	}

	dir := Build(companies, nil)
	cats := dir.Cities[0].Industries[0].Categories

	// Taxonomy order, not insertion order; empty buckets omitted.
	var names []string
	for _, c := range cats {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"火锅", "面馆", "超市"}, names)
}

func TestBuildDeterminism(t *testing.T) {
	companies := []model.Company{
		food("a", "面馆", "坎昆"),
		food("b", "火锅", "墨西哥城"),
		{Slug: "c", Name: "贸易行", City: "坎昆", Industry: "贸易"},
	}

	a := Build(companies, []string{"墨西哥城", "坎昆"})
	b := Build(companies, []string{"墨西哥城", "坎昆"})
	require.Equal(t, a, b)
}

type fakeCovers struct {
	local   map[string]bool
	enabled bool
}

func (f fakeCovers) HasLocalPhoto(id string) bool { return f.local[id] }
func (f fakeCovers) Enabled() bool                { return f.enabled }

func TestResolveCover(t *testing.T) {
	photos := fakeCovers{local: map[string]bool{"ChIJlocal": true}}

	// Explicit cover wins over everything.
	c := model.Company{Cover: "/image/custom.jpg", PlaceID: "ChIJlocal"}
	require.Equal(t, "/image/custom.jpg", ResolveCover(&c, photos))

	// Local photo file serves through the photo route.
	c = model.Company{PlaceID: "ChIJlocal"}
	require.Equal(t, "/api/place-photo/ChIJlocal", ResolveCover(&c, photos))

	// No local file, provider disabled: no image.
	c = model.Company{PlaceID: "ChIJremote"}
	require.Equal(t, "", ResolveCover(&c, photos))

	// Provider enabled: the route can fetch live.
	require.Equal(t, "/api/place-photo/ChIJremote",
		ResolveCover(&c, fakeCovers{enabled: true}))
}
