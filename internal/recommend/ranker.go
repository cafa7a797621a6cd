package recommend

import (
	"log/slog"
	"math"
	"sort"

	"github.com/geohomepro/property-insight/internal/domain"
	"github.com/geohomepro/property-insight/internal/invest"
)

// DefaultTopN caps the result list when the caller passes topN <= 0.
const DefaultTopN = 5

// fallbackAveragePrice stands in for the mean price of the candidate set when
// that set is empty or priced at zero, so price similarity never divides by 0.
const fallbackAveragePrice = 1_000_000

// Preferences is the caller's ranking context: districts and features they
// care about. Both sets may be empty.
type Preferences struct {
	Districts []string `json:"districts"`
	Features  []string `json:"features"`
}

// Ranker scores candidate properties against preferences and returns the top
// matches. Stateless across calls; safe for concurrent use.
type Ranker struct {
	weights Weights
	logger  *slog.Logger
}

func NewRanker(w Weights, logger *slog.Logger) *Ranker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{weights: w, logger: logger.With("component", "recommend")}
}

// Rank scores every candidate (0..100), sorts descending, and truncates to
// topN. Candidates are typically the filter engine's output; passing the full
// catalog is equally valid. Ties keep candidate order (stable sort), and a
// malformed record is skipped and reported, not fatal.
func (r *Ranker) Rank(candidates []domain.PropertyRecord, prefs Preferences, topN int) []domain.ScoredProperty {
	avgPrice := meanPrice(candidates)
	if avgPrice <= 0 {
		avgPrice = fallbackAveragePrice
	}

	out := make([]domain.ScoredProperty, 0, len(candidates))
	for _, p := range candidates {
		if err := p.Validate(); err != nil {
			r.logger.Warn("skipping malformed record", "id", p.ID, "reason", err)
			continue
		}
		out = append(out, domain.ScoredProperty{
			Property: p,
			Score:    r.scoreOne(p, prefs, avgPrice),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// scoreOne sums the independently capped factor scores and rounds to the
// nearest integer.
func (r *Ranker) scoreOne(p domain.PropertyRecord, prefs Preferences, avgPrice float64) int {
	var score float64

	// Price similarity: full points at the average, zero at 100% deviation.
	deviation := math.Min(math.Abs(p.Price-avgPrice)/avgPrice, 1)
	score += r.weights.PriceSimilarity * (1 - deviation)

	// District match: all or nothing.
	for _, d := range prefs.Districts {
		if p.SchoolDistrict == d {
			score += r.weights.DistrictMatch
			break
		}
	}

	// Feature overlap: share of preferred features the property carries.
	if n := len(prefs.Features); n > 0 {
		matched := 0
		for _, f := range prefs.Features {
			if p.HasFeature(f) {
				matched++
			}
		}
		score += r.weights.FeatureOverlap * float64(matched) / float64(n)
	}

	// Walkability.
	score += r.weights.Walkability * float64(p.WalkScore) / 100

	// Yield bonus: 2 points per percent of gross yield, capped.
	score += math.Min(invest.GrossYield(p.Price, p.MonthlyRent)*2, r.weights.YieldBonus)

	return int(math.Round(clamp(score, 0, 100)))
}

func meanPrice(properties []domain.PropertyRecord) float64 {
	if len(properties) == 0 {
		return 0
	}
	var sum float64
	for _, p := range properties {
		sum += p.Price
	}
	return sum / float64(len(properties))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
