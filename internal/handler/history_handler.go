// internal/handler/history_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/previsoft/duerp-backend/internal/errors"
	"github.com/previsoft/duerp-backend/internal/repository"
)

// HistoryHandler holds the dependencies for history HTTP handlers
type HistoryHandler struct {
	Repo repository.HistoryRepositoryInterface
}

// ListHistoryHandler returns a paginated list of send attempts
func (h *HistoryHandler) ListHistoryHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	entries, total, err := h.Repo.List(offset, pageSize, status)
	if err != nil {
		http.Error(w, "failed to fetch history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	response := map[string]interface{}{
		"data": entries,
		"pagination": map[string]int{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": totalPages,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetHistoryHandler returns a single history entry by ID
func (h *HistoryHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid history id", http.StatusBadRequest)
		return
	}

	entry, err := h.Repo.GetByID(id)
	if err != nil {
		if appErrors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch history entry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}
