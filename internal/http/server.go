package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/geohomepro/property-insight/internal/domain"
	"github.com/geohomepro/property-insight/internal/filter"
	"github.com/geohomepro/property-insight/internal/neighborhood"
	"github.com/geohomepro/property-insight/internal/recommend"
)

// PropertiesRepo is the catalog source behind the API. The SQLite store
// implements it; tests plug in an in-memory fixture.
type PropertiesRepo interface {
	AllProperties() ([]domain.PropertyRecord, error)
	GetProperty(id string) (domain.PropertyRecord, bool, error)
	CreateProperty(p domain.PropertyRecord) (domain.PropertyRecord, error)
	DeleteProperty(id string) (bool, error)
	ListPropertiesFiltered(limit, offset int, district, propertyType string,
		minPrice, maxPrice float64, sortBy string) ([]domain.PropertyRecord, int, error)
}

type Server struct {
	Logger   *slog.Logger
	Filter   *filter.Engine
	Ranker   *recommend.Ranker
	Profiles neighborhood.ProfileTable
	Repo     PropertiesRepo

	CORSOrigins []string
	MaxPageSize int

	searches *searchStore
	saved    *savedStore
}

func NewServer(logger *slog.Logger, eng *filter.Engine, ranker *recommend.Ranker,
	profiles neighborhood.ProfileTable, repo PropertiesRepo) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Logger:      logger.With("component", "http"),
		Filter:      eng,
		Ranker:      ranker,
		Profiles:    profiles,
		Repo:        repo,
		MaxPageSize: 200,
		searches:    newSearchStore(),
		saved:       newSavedStore(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, RequestLogger(s.Logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/properties", s.handlePropertiesList)
		r.Post("/properties", s.handlePropertiesCreate)
		r.Get("/properties/{id}", s.handlePropertiesGet)
		r.Delete("/properties/{id}", s.handlePropertiesDelete)

		r.Post("/filter", s.handleFilter)
		r.Post("/recommendations", s.handleRecommendations)
		r.Post("/properties/{id}/investment", s.handleInvestment)
		r.Get("/properties/{id}/neighborhood", s.handleNeighborhoodScore)

		r.Post("/searches", s.handleSearchesCreate)
		r.Get("/searches", s.handleSearchesList)
		r.Delete("/searches/{id}", s.handleSearchesDelete)

		r.Post("/saved", s.handleSavedCreate)
		r.Get("/saved", s.handleSavedList)
		r.Delete("/saved/{id}", s.handleSavedDelete)
	})

	return r
}

func (s *Server) corsOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return s.CORSOrigins
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// catalog reads the full property set fresh on every call. Filtering and
// ranking always recompute from scratch; nothing is memoized between requests.
func (s *Server) catalog() ([]domain.PropertyRecord, error) {
	return s.Repo.AllProperties()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	body := map[string]string{"error": code}
	if detail != "" {
		body["detail"] = detail
	}
	writeJSON(w, status, body)
}
