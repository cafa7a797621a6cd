package domain

import "fmt"

// ValidationError reports a criteria or record field that could not be
// interpreted as its expected type or violates a catalog invariant.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// Validate checks the catalog invariants for a single record. A record that
// fails here is skipped and reported by the engines, never fatal to a pass.
func (p PropertyRecord) Validate() error {
	if p.ID == "" {
		return &ValidationError{Field: "id", Msg: "must not be empty"}
	}
	if p.Price < 0 {
		return &ValidationError{Field: "price", Value: fmt.Sprintf("%v", p.Price), Msg: "must be >= 0"}
	}
	if p.Size <= 0 {
		return &ValidationError{Field: "size", Value: fmt.Sprintf("%v", p.Size), Msg: "must be > 0"}
	}
	if p.LotSize <= 0 {
		return &ValidationError{Field: "lot_size", Value: fmt.Sprintf("%v", p.LotSize), Msg: "must be > 0"}
	}
	if p.WalkScore < 0 || p.WalkScore > 100 {
		return &ValidationError{Field: "walk_score", Value: fmt.Sprintf("%d", p.WalkScore), Msg: "must be in [0,100]"}
	}
	if p.MonthlyRent < 0 {
		return &ValidationError{Field: "monthly_rent", Value: fmt.Sprintf("%v", p.MonthlyRent), Msg: "must be >= 0"}
	}
	if !p.PropertyType.Valid() {
		return &ValidationError{Field: "property_type", Value: string(p.PropertyType), Msg: "unknown type"}
	}
	for _, f := range p.Features {
		if !KnownFeature(f) {
			return &ValidationError{Field: "features", Value: f, Msg: "unknown feature tag"}
		}
	}
	return nil
}

// WalkScoreLabel maps a 0..100 walk score onto the standard display bands.
func WalkScoreLabel(score int) string {
	switch {
	case score >= 90:
		return "Walker's Paradise"
	case score >= 70:
		return "Very Walkable"
	case score >= 50:
		return "Somewhat Walkable"
	case score >= 25:
		return "Car-Dependent"
	default:
		return "Very Car-Dependent"
	}
}
