package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog_SkipsInvalidEntries(t *testing.T) {
	path := writeFile(t, "properties.json", `[
		{
			"id": "ok-1", "title": "Fine", "price": 500000, "size": 900,
			"lot_size": 1200, "year_built": 2005, "property_type": "Condo",
			"school_district": "KLCC", "features": ["pool"], "walk_score": 75,
			"monthly_rent": 2000
		},
		{
			"id": "bad-1", "title": "Negative price", "price": -5, "size": 900,
			"lot_size": 1200, "year_built": 2005, "property_type": "Condo",
			"school_district": "KLCC", "walk_score": 75
		},
		{
			"id": "bad-2", "title": "Unknown type", "price": 500000, "size": 900,
			"lot_size": 1200, "year_built": 2005, "property_type": "Castle",
			"school_district": "KLCC", "walk_score": 75
		}
	]`)

	got, err := NewLoader(nil).LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok-1", got[0].ID)
	assert.Equal(t, 500000.0, got[0].Price)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := NewLoader(nil).LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadCatalog_NotAnArray(t *testing.T) {
	path := writeFile(t, "properties.json", `{"id": "x"}`)
	_, err := NewLoader(nil).LoadCatalog(path)
	assert.Error(t, err)
}

func TestLoadProfiles_KeyedByDistrict(t *testing.T) {
	path := writeFile(t, "neighborhoods.json", `[
		{
			"district": "KLCC", "safety_score": 72, "school_score": 78,
			"transport_score": 95, "amenities_score": 96
		},
		{
			"district": "Bangsar", "safety_score": 80, "school_score": 84,
			"transport_score": 82, "amenities_score": 90
		},
		{
			"district": "Broken", "safety_score": 500, "school_score": 84,
			"transport_score": 82, "amenities_score": 90
		}
	]`)

	got, err := NewLoader(nil).LoadProfiles(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Contains(t, got, "KLCC")
	assert.Contains(t, got, "Bangsar")
	assert.NotContains(t, got, "Broken")
	assert.Equal(t, 95.0, got["KLCC"].TransportScore)
}

func TestGeohashStablePrecision(t *testing.T) {
	h := Geohash(3.1578, 101.7123)
	assert.Len(t, h, geohashPrecision)
}
