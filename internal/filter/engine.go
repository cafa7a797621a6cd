package filter

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/geohomepro/property-insight/internal/domain"
)

// DefaultMinWalkScore applies when the criteria leave min_walk_score unset.
const DefaultMinWalkScore = 60

// defaultMinYearBuilt is the wildcard lower bound for year_built.
const defaultMinYearBuilt = 1900

// Engine evaluates filter criteria against a catalog. Evaluation is a pure
// function of the criteria snapshot and the catalog slice; the engine itself
// holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With("component", "filter"), now: time.Now}
}

// bounds is the criteria with every wildcard resolved to a concrete limit.
type bounds struct {
	minPrice, maxPrice     float64
	minSize, maxSize       float64
	minLotSize, maxLotSize float64
	minYear, maxYear       int
	propertyType           string
	schoolDistrict         string
	features               []string
	minWalkScore           int
}

// resolve applies the default table: missing mins are 0, missing maxes are
// +Inf, min_year_built falls back to 1900 and max_year_built to the current
// calendar year. The year default makes evaluation time-dependent on purpose:
// a criteria snapshot with no upper year bound admits anything built up to
// "now", so two runs straddling New Year can differ.
func (e *Engine) resolve(c domain.FilterCriteria) (bounds, error) {
	b := bounds{
		propertyType:   c.PropertyType,
		schoolDistrict: c.SchoolDistrict,
		features:       c.Features,
		minWalkScore:   DefaultMinWalkScore,
	}
	if c.MinWalkScore != nil {
		b.minWalkScore = *c.MinWalkScore
	}

	var err error
	if b.minPrice, err = parseBound("min_price", c.MinPrice, 0); err != nil {
		return bounds{}, err
	}
	if b.maxPrice, err = parseBound("max_price", c.MaxPrice, math.Inf(1)); err != nil {
		return bounds{}, err
	}
	if b.minSize, err = parseBound("min_size", c.MinSize, 0); err != nil {
		return bounds{}, err
	}
	if b.maxSize, err = parseBound("max_size", c.MaxSize, math.Inf(1)); err != nil {
		return bounds{}, err
	}
	if b.minLotSize, err = parseBound("min_lot_size", c.MinLotSize, 0); err != nil {
		return bounds{}, err
	}
	if b.maxLotSize, err = parseBound("max_lot_size", c.MaxLotSize, math.Inf(1)); err != nil {
		return bounds{}, err
	}
	if b.minYear, err = parseYear("min_year_built", c.MinYearBuilt, defaultMinYearBuilt); err != nil {
		return bounds{}, err
	}
	if b.maxYear, err = parseYear("max_year_built", c.MaxYearBuilt, e.now().Year()); err != nil {
		return bounds{}, err
	}
	return b, nil
}

// parseBound treats "" as unspecified. A non-empty value that does not parse
// is rejected, never silently coerced to the wildcard.
func parseBound(field, raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Value: raw, Msg: "not a number"}
	}
	return v, nil
}

func parseYear(field, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Value: raw, Msg: "not a year"}
	}
	return v, nil
}

// Evaluate returns the catalog records matching every criterion, in catalog
// order. Records that violate catalog invariants are skipped and reported,
// never fatal to the rest of the pass.
func (e *Engine) Evaluate(c domain.FilterCriteria, catalog []domain.PropertyRecord) ([]domain.PropertyRecord, error) {
	b, err := e.resolve(c)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PropertyRecord, 0, len(catalog))
	for _, p := range catalog {
		if err := p.Validate(); err != nil {
			e.logger.Warn("skipping malformed record", "id", p.ID, "reason", err)
			continue
		}
		if matches(b, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(b bounds, p domain.PropertyRecord) bool {
	if p.Price < b.minPrice || p.Price > b.maxPrice {
		return false
	}
	if p.Size < b.minSize || p.Size > b.maxSize {
		return false
	}
	if p.LotSize < b.minLotSize || p.LotSize > b.maxLotSize {
		return false
	}
	if p.YearBuilt < b.minYear || p.YearBuilt > b.maxYear {
		return false
	}
	if b.propertyType != "" && string(p.PropertyType) != b.propertyType {
		return false
	}
	if b.schoolDistrict != "" && p.SchoolDistrict != b.schoolDistrict {
		return false
	}
	if p.WalkScore < b.minWalkScore {
		return false
	}
	// Superset test: every required feature must be present on the property.
	for _, f := range b.features {
		if !p.HasFeature(f) {
			return false
		}
	}
	return true
}
