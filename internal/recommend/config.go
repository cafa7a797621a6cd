package recommend

import (
	"encoding/json"
	"fmt"
	"os"
)

// Weights are the point caps for each scoring factor. The defaults are fixed
// policy and sum to 100; a deployment may override them from a JSON file but
// callers cannot change them per request.
type Weights struct {
	PriceSimilarity float64 `json:"price_similarity"`
	DistrictMatch   float64 `json:"district_match"`
	FeatureOverlap  float64 `json:"feature_overlap"`
	Walkability     float64 `json:"walkability"`
	YieldBonus      float64 `json:"yield_bonus"`
}

func DefaultWeights() Weights {
	return Weights{
		PriceSimilarity: 30,
		DistrictMatch:   25,
		FeatureOverlap:  20,
		Walkability:     15,
		YieldBonus:      10,
	}
}

// LoadWeightsFromFile loads weights from a JSON file, falling back to defaults
// on read errors.
func LoadWeightsFromFile(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}
