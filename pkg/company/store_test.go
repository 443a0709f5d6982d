package company

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"huangye/pkg/model"
)

const testCompanies = `[
	{"slug": "lao-wang", "name": "老王川菜馆", "city": "墨西哥城", "industry": "餐饮与服务", "placeId": "ChIJabc"},
	{"name": "无slug公司"},
	{"slug": "mei-li", "name": "美丽超市", "city": "坎昆", "placeId": "ChIJdef"},
	{"slug": "chong-qing", "name": "重庆火锅", "city": "墨西哥城", "placeId": "ChIJabc"}
]`

func writeTestFile(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewStore(path)
}

func TestAll(t *testing.T) {
	s := writeTestFile(t, testCompanies)

	companies, err := s.All()
	require.NoError(t, err)
	// Slugless record is dropped.
	require.Len(t, companies, 3)
	require.Equal(t, "lao-wang", companies[0].Slug)
	require.Equal(t, "chong-qing", companies[2].Slug)
}

func TestAllReflectsFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"slug":"a","name":"A"}]`), 0o644))
	s := NewStore(path)

	companies, err := s.All()
	require.NoError(t, err)
	require.Len(t, companies, 1)

	// The store re-reads on every call.
	require.NoError(t, os.WriteFile(path, []byte(`[{"slug":"a","name":"A"},{"slug":"b","name":"B"}]`), 0o644))
	companies, err = s.All()
	require.NoError(t, err)
	require.Len(t, companies, 2)
}

func TestBySlug(t *testing.T) {
	s := writeTestFile(t, testCompanies)

	c, err := s.BySlug("mei-li")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "美丽超市", c.Name)

	c, err = s.BySlug("unknown-slug")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestPlaceRefs(t *testing.T) {
	s := writeTestFile(t, testCompanies)

	refs, err := s.PlaceRefs()
	require.NoError(t, err)
	// Deduplicated, first-seen order; the first record owning an ID
	// supplies its query.
	require.Equal(t, []model.PlaceRef{
		{PlaceID: "ChIJabc", Query: "老王川菜馆 墨西哥城"},
		{PlaceID: "ChIJdef", Query: "美丽超市 坎昆"},
	}, refs)
}

func TestAllBadFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	_, err := s.All()
	require.Error(t, err)

	s = writeTestFile(t, "{not json")
	_, err = s.All()
	require.Error(t, err)
}
