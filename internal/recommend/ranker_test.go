package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geohomepro/property-insight/internal/domain"
)

func candidate(id string, mutate func(*domain.PropertyRecord)) domain.PropertyRecord {
	p := domain.PropertyRecord{
		ID:             id,
		Title:          "Test " + id,
		Price:          1_000_000,
		Size:           1000,
		LotSize:        1400,
		YearBuilt:      2010,
		PropertyType:   domain.PropertyTypeCondo,
		SchoolDistrict: "KLCC",
		Features:       []string{domain.FeaturePool, domain.FeatureGym},
		WalkScore:      80,
		MonthlyRent:    3000,
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func TestRank_ReturnsAllWhenFewerThanTopN(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	candidates := []domain.PropertyRecord{
		candidate("a", func(p *domain.PropertyRecord) { p.Price = 800_000 }),
		candidate("b", nil),
		candidate("c", func(p *domain.PropertyRecord) { p.Price = 1_900_000 }),
	}

	got := r.Rank(candidates, Preferences{}, 5)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRank_TruncatesToTopN(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	var candidates []domain.PropertyRecord
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		candidates = append(candidates, candidate(id, nil))
	}

	got := r.Rank(candidates, Preferences{}, 2)
	assert.Len(t, got, 2)
}

func TestRank_ScoresWithinRange(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	candidates := []domain.PropertyRecord{
		candidate("cheap", func(p *domain.PropertyRecord) { p.Price = 100_000; p.MonthlyRent = 5000 }),
		candidate("pricey", func(p *domain.PropertyRecord) { p.Price = 9_000_000; p.MonthlyRent = 0 }),
		candidate("mid", func(p *domain.PropertyRecord) { p.WalkScore = 0 }),
	}

	got := r.Rank(candidates, Preferences{Districts: []string{"KLCC"}, Features: []string{domain.FeaturePool}}, 10)
	require.Len(t, got, 3)
	for _, sp := range got {
		assert.GreaterOrEqual(t, sp.Score, 0)
		assert.LessOrEqual(t, sp.Score, 100)
	}
}

func TestRank_PerfectMatchScoresFull(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	// Sole candidate: price sits exactly on the set average, so price
	// similarity is maxed; the rest of the factors are maxed by hand.
	candidates := []domain.PropertyRecord{
		candidate("ideal", func(p *domain.PropertyRecord) {
			p.WalkScore = 100
			p.MonthlyRent = 5000 // gross yield 6% caps the bonus
		}),
	}
	prefs := Preferences{
		Districts: []string{"KLCC"},
		Features:  []string{domain.FeaturePool, domain.FeatureGym},
	}

	got := r.Rank(candidates, prefs, 5)
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].Score)
}

func TestRank_DistrictBonus(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	candidates := []domain.PropertyRecord{
		candidate("in", nil),
		candidate("out", func(p *domain.PropertyRecord) { p.SchoolDistrict = "Bangsar" }),
	}

	got := r.Rank(candidates, Preferences{Districts: []string{"KLCC"}}, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "in", got[0].Property.ID)
	assert.Equal(t, 25, got[0].Score-got[1].Score)
}

func TestRank_NoPreferredFeaturesNoDivideByZero(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	got := r.Rank([]domain.PropertyRecord{candidate("a", nil)}, Preferences{}, 5)
	require.Len(t, got, 1)
	assert.GreaterOrEqual(t, got[0].Score, 0)
}

func TestRank_EmptyCandidates(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	assert.Empty(t, r.Rank(nil, Preferences{}, 5))
}

func TestRank_ZeroPricedSetUsesFallbackAverage(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	candidates := []domain.PropertyRecord{
		candidate("free", func(p *domain.PropertyRecord) { p.Price = 0; p.MonthlyRent = 0; p.WalkScore = 50 }),
	}

	got := r.Rank(candidates, Preferences{}, 5)
	require.Len(t, got, 1)
	// Price deviation from the fallback average is 100%, walkability is the
	// only contributor: 15 * 0.5 = 7.5 rounds to 8.
	assert.Equal(t, 8, got[0].Score)
}

func TestRank_StableTieOrder(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	candidates := []domain.PropertyRecord{
		candidate("first", nil),
		candidate("second", nil),
	}

	got := r.Rank(candidates, Preferences{}, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Property.ID)
	assert.Equal(t, "second", got[1].Property.ID)
}

func TestRank_MalformedRecordSkipped(t *testing.T) {
	r := NewRanker(DefaultWeights(), nil)
	candidates := []domain.PropertyRecord{
		candidate("good", nil),
		candidate("bad", func(p *domain.PropertyRecord) { p.WalkScore = 300 }),
	}

	got := r.Rank(candidates, Preferences{}, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "good", got[0].Property.ID)
}

func TestDefaultWeightsSumToScale(t *testing.T) {
	w := DefaultWeights()
	sum := w.PriceSimilarity + w.DistrictMatch + w.FeatureOverlap + w.Walkability + w.YieldBonus
	assert.Equal(t, 100.0, sum)
}
