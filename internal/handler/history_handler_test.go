package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/previsoft/duerp-backend/internal/errors"
	"github.com/previsoft/duerp-backend/internal/handler"
	"github.com/previsoft/duerp-backend/internal/model"
)

type mockHistoryRepo struct {
	entries []model.HistoryEntry

	gotOffset int
	gotLimit  int
	gotStatus string
}

func (m *mockHistoryRepo) Create(entry *model.HistoryEntry) error { return nil }

func (m *mockHistoryRepo) GetByID(id int) (*model.HistoryEntry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, appErrors.NewHistoryNotFound(id)
}

func (m *mockHistoryRepo) MarkRetry(id int) error { return nil }

func (m *mockHistoryRepo) List(offset, limit int, status string) ([]model.HistoryEntry, int, error) {
	m.gotOffset = offset
	m.gotLimit = limit
	m.gotStatus = status
	return m.entries, len(m.entries), nil
}

func newRouter(repo *mockHistoryRepo) http.Handler {
	h := &handler.HistoryHandler{Repo: repo}
	r := chi.NewRouter()
	r.Get("/api/history", h.ListHistoryHandler)
	r.Get("/api/history/{id}", h.GetHistoryHandler)
	return r
}

func TestListHistoryDefaultsAndEnvelope(t *testing.T) {
	repo := &mockHistoryRepo{entries: []model.HistoryEntry{
		{ID: 2, TemplateKey: "envoi_documents", Status: model.StatusSent},
		{ID: 1, TemplateKey: "envoi_documents", Status: model.StatusError},
	}}

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, repo.gotOffset)
	assert.Equal(t, 20, repo.gotLimit)

	var resp struct {
		Data       []model.HistoryEntry `json:"data"`
		Pagination map[string]int       `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Pagination["total_count"])
	assert.Equal(t, 1, resp.Pagination["total_pages"])
}

func TestListHistoryPaginationAndFilter(t *testing.T) {
	repo := &mockHistoryRepo{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history?page=3&page_size=10&status=error", nil)
	newRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, repo.gotOffset)
	assert.Equal(t, 10, repo.gotLimit)
	assert.Equal(t, "error", repo.gotStatus)
}

func TestGetHistoryEntry(t *testing.T) {
	repo := &mockHistoryRepo{entries: []model.HistoryEntry{
		{ID: 5, TemplateKey: "envoi_documents", Status: model.StatusSent, RetryCount: 1},
	}}

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var entry model.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, 5, entry.ID)
	assert.Equal(t, 1, entry.RetryCount)
}

func TestGetHistoryEntryNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&mockHistoryRepo{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
