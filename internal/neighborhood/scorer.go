package neighborhood

import (
	"errors"
	"math"

	"github.com/geohomepro/property-insight/internal/domain"
)

// ErrUnknownDistrict is the sentinel for a property whose school district has
// no profile entry. It is an expected outcome, not a failure: callers branch
// on it with errors.Is instead of treating any number as "no data".
var ErrUnknownDistrict = errors.New("no neighborhood profile for district")

// ProfileTable maps district name to its profile. Read-only for a score call.
type ProfileTable map[string]domain.NeighborhoodProfile

// Composite weights are fixed policy, not tunable per call. They sum to 1.0.
const (
	weightSafety    = 0.30
	weightSchools   = 0.25
	weightTransport = 0.20
	weightAmenities = 0.15
	weightWalk      = 0.10
)

// Score computes the composite desirability score for a property's district,
// blending the district profile with the property's own walk score.
func Score(p domain.PropertyRecord, profiles ProfileTable) (int, error) {
	profile, ok := profiles[p.SchoolDistrict]
	if !ok {
		return 0, ErrUnknownDistrict
	}

	composite := profile.SafetyScore*weightSafety +
		profile.SchoolScore*weightSchools +
		profile.TransportScore*weightTransport +
		profile.AmenitiesScore*weightAmenities +
		float64(p.WalkScore)*weightWalk

	return int(math.Round(composite)), nil
}
