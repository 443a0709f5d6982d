package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"huangye/pkg/model"
)

func seededStore() *memStore {
	st := &memStore{}
	st.subs = []*model.Submission{
		{ID: "b", Name: "李女士", Email: "li@example.com", City: "坎昆", CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "a", Name: "王先生", Email: "wang@example.com", City: "墨西哥城", CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}
	return st
}

func TestListSubmissions(t *testing.T) {
	h := NewSubmissionsHandler(seededStore())

	req := httptest.NewRequest(http.MethodGet, "/api/submissions?limit=1", nil)
	w := httptest.NewRecorder()
	h.HandleList(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/json")
	// Newest first, limit respected.
	require.Contains(t, w.Body.String(), "李女士")
	require.NotContains(t, w.Body.String(), "王先生")
}

func TestListSubmissionsBadLimit(t *testing.T) {
	h := NewSubmissionsHandler(seededStore())

	req := httptest.NewRequest(http.MethodGet, "/api/submissions?limit=zero", nil)
	w := httptest.NewRecorder()
	h.HandleList(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportSubmissions(t *testing.T) {
	h := NewSubmissionsHandler(seededStore())

	req := httptest.NewRequest(http.MethodGet, "/api/submissions/export", nil)
	w := httptest.NewRecorder()
	h.HandleExport(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "李女士", rows[1][1])
	require.Equal(t, "王先生", rows[2][1])
}
