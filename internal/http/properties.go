package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/geohomepro/property-insight/internal/domain"
	"github.com/geohomepro/property-insight/internal/storage"
)

type PropertySummary struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Price          float64             `json:"price"`
	Size           float64             `json:"size"`
	YearBuilt      int                 `json:"year_built"`
	PropertyType   domain.PropertyType `json:"property_type"`
	SchoolDistrict string              `json:"school_district"`
	WalkScore      int                 `json:"walk_score"`
}

type PropertiesListResponse struct {
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
	Items  []PropertySummary `json:"items"`
}

// PropertyDetail is the record plus the derived display fields the sidebar
// shows when a property is selected.
type PropertyDetail struct {
	domain.PropertyRecord
	Geohash        string `json:"geohash"`
	WalkScoreLabel string `json:"walk_score_label"`
}

func (s *Server) handlePropertiesList(w http.ResponseWriter, r *http.Request) {
	limit, offset := s.parseLimitOffset(r, 20, 0)
	q := r.URL.Query()

	minPrice, _ := strconv.ParseFloat(q.Get("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(q.Get("max_price"), 64)

	props, total, err := s.Repo.ListPropertiesFiltered(
		limit, offset,
		q.Get("district"), q.Get("property_type"),
		minPrice, maxPrice,
		q.Get("sort"),
	)
	if err != nil {
		s.Logger.Error("list properties", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	}

	items := make([]PropertySummary, 0, len(props))
	for _, p := range props {
		items = append(items, PropertySummary{
			ID:             p.ID,
			Title:          p.Title,
			Price:          p.Price,
			Size:           p.Size,
			YearBuilt:      p.YearBuilt,
			PropertyType:   p.PropertyType,
			SchoolDistrict: p.SchoolDistrict,
			WalkScore:      p.WalkScore,
		})
	}

	writeJSON(w, http.StatusOK, PropertiesListResponse{
		Limit:  limit,
		Offset: offset,
		Total:  total,
		Items:  items,
	})
}

func (s *Server) handlePropertiesGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Repo.GetProperty(id)
	if err != nil {
		s.Logger.Error("get property", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}

	writeJSON(w, http.StatusOK, PropertyDetail{
		PropertyRecord: p,
		Geohash:        storage.Geohash(p.Lat, p.Lng),
		WalkScoreLabel: domain.WalkScoreLabel(p.WalkScore),
	})
}

func (s *Server) handlePropertiesCreate(w http.ResponseWriter, r *http.Request) {
	var p domain.PropertyRecord
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if p.ID != "" {
		if _, exists, _ := s.Repo.GetProperty(p.ID); exists {
			writeError(w, http.StatusConflict, "already_exists", p.ID)
			return
		}
	}
	if err := validateForCreate(p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_property", err.Error())
		return
	}

	created, err := s.Repo.CreateProperty(p)
	if err != nil {
		s.Logger.Error("create property", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// validateForCreate runs the catalog invariants but tolerates a blank id,
// which the store fills in.
func validateForCreate(p domain.PropertyRecord) error {
	if p.ID == "" {
		p.ID = "pending"
	}
	return p.Validate()
}

func (s *Server) handlePropertiesDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := s.Repo.DeleteProperty(id)
	if err != nil {
		s.Logger.Error("delete property", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	if s.MaxPageSize > 0 && limit > s.MaxPageSize {
		limit = s.MaxPageSize
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}
