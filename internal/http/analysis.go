package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/geohomepro/property-insight/internal/domain"
	"github.com/geohomepro/property-insight/internal/invest"
	"github.com/geohomepro/property-insight/internal/neighborhood"
	"github.com/geohomepro/property-insight/internal/recommend"
)

type FilterRequest struct {
	Criteria domain.FilterCriteria `json:"criteria"`
}

type FilterResponse struct {
	Count int                     `json:"count"`
	Items []domain.PropertyRecord `json:"items"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	catalog, err := s.catalog()
	if err != nil {
		s.Logger.Error("load catalog", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	}

	matched, err := s.Filter.Evaluate(req.Criteria, catalog)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, "invalid_criteria", verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "filter_error", "")
		return
	}

	writeJSON(w, http.StatusOK, FilterResponse{Count: len(matched), Items: matched})
}

type RecommendRequest struct {
	// Criteria, when present, narrows the candidate set first. Without it the
	// ranker considers the whole catalog.
	Criteria    *domain.FilterCriteria `json:"criteria,omitempty"`
	Preferences recommend.Preferences  `json:"preferences"`
	TopN        int                    `json:"top_n"`
}

type RecommendResponse struct {
	Results []domain.ScoredProperty `json:"results"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	candidates, err := s.catalog()
	if err != nil {
		s.Logger.Error("load catalog", "err", err)
		writeError(w, http.StatusInternalServerError, "storage_error", "")
		return
	}

	if req.Criteria != nil {
		candidates, err = s.Filter.Evaluate(*req.Criteria, candidates)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, "invalid_criteria", verr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "filter_error", "")
			return
		}
	}

	results := s.Ranker.Rank(candidates, req.Preferences, req.TopN)
	writeJSON(w, http.StatusOK, RecommendResponse{Results: results})
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
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

	var params domain.InvestmentParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	metrics, err := invest.ComputeMetrics(p, params)
	if err != nil {
		if errors.Is(err, invest.ErrZeroDownPayment) {
			writeError(w, http.StatusUnprocessableEntity, "zero_down_payment",
				"cash-on-cash return is undefined with a 0% down payment")
			return
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, "invalid_parameters", verr.Error())
			return
		}
		s.Logger.Error("compute investment metrics", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "calculation_error", "")
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

type NeighborhoodResponse struct {
	District string `json:"district"`
	Score    int    `json:"score"`
}

func (s *Server) handleNeighborhoodScore(w http.ResponseWriter, r *http.Request) {
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

	score, err := neighborhood.Score(p, s.Profiles)
	if errors.Is(err, neighborhood.ErrUnknownDistrict) {
		writeError(w, http.StatusNotFound, "unknown_district", p.SchoolDistrict)
		return
	}
	if err != nil {
		s.Logger.Error("neighborhood score", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "calculation_error", "")
		return
	}

	writeJSON(w, http.StatusOK, NeighborhoodResponse{
		District: p.SchoolDistrict,
		Score:    score,
	})
}
