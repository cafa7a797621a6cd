package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/geohomepro/property-insight/internal/domain"
)

// Saved searches and saved properties live for the lifetime of the process
// only. Durable persistence is deliberately out of scope; the stores exist so
// a UI session can stash and recall state between requests.

type SavedSearch struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Criteria    domain.FilterCriteria `json:"criteria"`
	Email       string                `json:"email,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	ResultCount int                   `json:"result_count"`
}

type searchStore struct {
	mu    sync.Mutex
	items []SavedSearch
}

func newSearchStore() *searchStore { return &searchStore{} }

func (st *searchStore) add(s SavedSearch) SavedSearch {
	st.mu.Lock()
	defer st.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	st.items = append(st.items, s)
	return s
}

func (st *searchStore) list() []SavedSearch {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]SavedSearch, len(st.items))
	copy(out, st.items)
	return out
}

func (st *searchStore) delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, s := range st.items {
		if s.ID == id {
			st.items = append(st.items[:i], st.items[i+1:]...)
			return true
		}
	}
	return false
}

type SavedProperty struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	SavedAt    time.Time `json:"saved_at"`
}

type savedStore struct {
	mu         sync.Mutex
	items      []SavedProperty
	byProperty map[string]struct{}
}

func newSavedStore() *savedStore {
	return &savedStore{byProperty: map[string]struct{}{}}
}

func (st *savedStore) add(propertyID string) (SavedProperty, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, dup := st.byProperty[propertyID]; dup {
		return SavedProperty{}, false
	}
	s := SavedProperty{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		SavedAt:    time.Now().UTC(),
	}
	st.items = append(st.items, s)
	st.byProperty[propertyID] = struct{}{}
	return s, true
}

func (st *savedStore) list() []SavedProperty {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]SavedProperty, len(st.items))
	copy(out, st.items)
	return out
}

func (st *savedStore) delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, s := range st.items {
		if s.ID == id || s.PropertyID == id {
			delete(st.byProperty, s.PropertyID)
			st.items = append(st.items[:i], st.items[i+1:]...)
			return true
		}
	}
	return false
}

// ---- handlers ----

type CreateSearchRequest struct {
	Name     string                `json:"name"`
	Criteria domain.FilterCriteria `json:"criteria"`
	Email    string                `json:"email"`
}

func (s *Server) handleSearchesCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_name", "")
		return
	}

	// Record how many properties the search matches right now so the saved
	// entry can show a count without re-running the filter.
	catalog, err := s.catalog()
	if err != nil {
		s.Logger.Error("load catalog", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	}
	matched, err := s.Filter.Evaluate(req.Criteria, catalog)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_criteria", err.Error())
		return
	}

	saved := s.searches.add(SavedSearch{
		Name:        req.Name,
		Criteria:    req.Criteria,
		Email:       req.Email,
		ResultCount: len(matched),
	})
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleSearchesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.searches.list()})
}

func (s *Server) handleSearchesDelete(w http.ResponseWriter, r *http.Request) {
	if !s.searches.delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type SavePropertyRequest struct {
	PropertyID string `json:"property_id"`
}

func (s *Server) handleSavedCreate(w http.ResponseWriter, r *http.Request) {
	var req SavePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.PropertyID == "" {
		writeError(w, http.StatusBadRequest, "missing_property_id", "")
		return
	}

	if _, ok, err := s.Repo.GetProperty(req.PropertyID); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	} else if !ok {
		writeError(w, http.StatusNotFound, "not_found", req.PropertyID)
		return
	}

	saved, ok := s.saved.add(req.PropertyID)
	if !ok {
		writeError(w, http.StatusConflict, "already_saved", req.PropertyID)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleSavedList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.saved.list()})
}

func (s *Server) handleSavedDelete(w http.ResponseWriter, r *http.Request) {
	if !s.saved.delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
