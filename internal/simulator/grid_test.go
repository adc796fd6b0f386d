package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

func TestGridBuilderProducesSquareGridWithUniqueIDs(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5, 10} {
		builder := NewGridBuilder(testConfig(size), rand.New(rand.NewSource(42)))
		grid, err := builder.Build()
		require.NoError(t, err)
		require.Len(t, grid, size*size)

		seen := make(map[string]bool, len(grid))
		for _, intersection := range grid {
			assert.False(t, seen[intersection.ID], "duplicate id %s", intersection.ID)
			seen[intersection.ID] = true
		}
	}
}

func TestGridBuilderRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		builder := NewGridBuilder(testConfig(size), rand.New(rand.NewSource(42)))
		_, err := builder.Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
	}
}

func TestGridBuilderSmallGridIsAllDowntown(t *testing.T) {
	cfg := testConfig(2)
	cfg.CityLat = 0
	cfg.CityLon = 0

	grid, err := NewGridBuilder(cfg, rand.New(rand.NewSource(42))).Build()
	require.NoError(t, err)
	require.Len(t, grid, 4)

	for _, intersection := range grid {
		assert.Equal(t, models.DistrictDowntown, intersection.District,
			"intersection %s should be in the innermost band", intersection.ID)
	}
}

func TestGridBuilderCoversAllDistrictBands(t *testing.T) {
	grid, err := NewGridBuilder(testConfig(20), rand.New(rand.NewSource(42))).Build()
	require.NoError(t, err)

	byDistrict := make(map[string]int)
	for _, intersection := range grid {
		byDistrict[intersection.District]++
	}
	for _, district := range models.Districts {
		assert.Greater(t, byDistrict[district], 0, "no intersections in %s", district)
	}
}

func TestGridBuilderAttributes(t *testing.T) {
	grid, err := NewGridBuilder(testConfig(10), rand.New(rand.NewSource(42))).Build()
	require.NoError(t, err)

	for _, intersection := range grid {
		assert.Contains(t, laneChoices, intersection.LanesNorthSouth)
		assert.Contains(t, laneChoices, intersection.LanesEastWest)
		assert.NotEmpty(t, intersection.Name)
		assert.InDelta(t, 40.7128, intersection.Location.Lat, 0.1)
		assert.InDelta(t, -74.0060, intersection.Location.Lon, 0.1)
	}
}

func TestGridBuilderIsDeterministicForSeed(t *testing.T) {
	first, err := NewGridBuilder(testConfig(10), rand.New(rand.NewSource(7))).Build()
	require.NoError(t, err)
	second, err := NewGridBuilder(testConfig(10), rand.New(rand.NewSource(7))).Build()
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].District, second[i].District)
		assert.Equal(t, first[i].HasCamera, second[i].HasCamera)
		assert.Equal(t, first[i].LanesNorthSouth, second[i].LanesNorthSouth)
		assert.Equal(t, first[i].LanesEastWest, second[i].LanesEastWest)
	}
}
