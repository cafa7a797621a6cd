package neighborhood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geohomepro/property-insight/internal/domain"
)

func TestScore_UnknownDistrictSentinel(t *testing.T) {
	table := ProfileTable{
		"KLCC": {District: "KLCC", SafetyScore: 72, SchoolScore: 78, TransportScore: 95, AmenitiesScore: 96},
	}
	p := domain.PropertyRecord{ID: "p1", SchoolDistrict: "Sri Hartamas", WalkScore: 70}

	_, err := Score(p, table)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDistrict)
}

func TestScore_WeightedComposite(t *testing.T) {
	table := ProfileTable{
		"Bangsar": {District: "Bangsar", SafetyScore: 80, SchoolScore: 80, TransportScore: 80, AmenitiesScore: 80},
	}
	p := domain.PropertyRecord{ID: "p1", SchoolDistrict: "Bangsar", WalkScore: 80}

	score, err := Score(p, table)
	require.NoError(t, err)
	assert.Equal(t, 80, score)
}

func TestScore_RoundsToNearestInteger(t *testing.T) {
	table := ProfileTable{
		"Mont Kiara": {District: "Mont Kiara", SafetyScore: 85, SchoolScore: 90, TransportScore: 70, AmenitiesScore: 60},
	}
	p := domain.PropertyRecord{ID: "p1", SchoolDistrict: "Mont Kiara", WalkScore: 73}

	// 85*0.30 + 90*0.25 + 70*0.20 + 60*0.15 + 73*0.10 = 78.3
	score, err := Score(p, table)
	require.NoError(t, err)
	assert.Equal(t, 78, score)
}

func TestScore_EmptyTable(t *testing.T) {
	p := domain.PropertyRecord{ID: "p1", SchoolDistrict: "KLCC"}

	_, err := Score(p, nil)
	assert.ErrorIs(t, err, ErrUnknownDistrict)
}
