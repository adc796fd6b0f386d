package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

func TestTrafficReadingInvariants(t *testing.T) {
	grid, err := NewGridBuilder(testConfig(4), rand.New(rand.NewSource(42))).Build()
	require.NoError(t, err)

	model := NewTrafficModel(rand.New(rand.NewSource(42)))

	for hour := 0; hour < 24; hour++ {
		timestamp := time.Date(2025, 1, 15, hour, 30, 0, 0, time.UTC)
		for _, intersection := range grid {
			reading, err := model.Reading(intersection, timestamp)
			require.NoError(t, err)

			assert.Equal(t, reading.VehicleCount, reading.VehicleTypes.Total(),
				"vehicle class counts must sum to the vehicle count")
			assert.GreaterOrEqual(t, reading.VehicleCount, 0)
			assert.GreaterOrEqual(t, reading.OccupancyRate, 0.0)
			assert.LessOrEqual(t, reading.OccupancyRate, 1.0)
			assert.GreaterOrEqual(t, reading.AverageSpeed, minSpeedMPH)
			assert.GreaterOrEqual(t, reading.WaitTimeSeconds, 0.0)
			assert.GreaterOrEqual(t, reading.QueueLength, 0)
			assert.Contains(t, models.SignalStates, reading.SignalState)
			assert.NoError(t, reading.Validate())
		}
	}
}

func TestTrafficReadingCopiesIntersectionAttributes(t *testing.T) {
	grid, err := NewGridBuilder(testConfig(3), rand.New(rand.NewSource(42))).Build()
	require.NoError(t, err)

	model := NewTrafficModel(rand.New(rand.NewSource(1)))
	timestamp := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	for _, intersection := range grid {
		reading, err := model.Reading(intersection, timestamp)
		require.NoError(t, err)

		assert.Equal(t, intersection.ID, reading.IntersectionID)
		assert.Equal(t, intersection.ID+"-SENSOR-01", reading.SensorID)
		assert.Equal(t, intersection.District, reading.District)
		assert.Equal(t, intersection.Location.Lat, reading.Latitude)
		assert.Equal(t, intersection.Location.Lon, reading.Longitude)
		assert.Equal(t, timestamp.Format(time.RFC3339), reading.Timestamp)
	}
}

func TestTrafficReadingRejectsInvalidInput(t *testing.T) {
	model := NewTrafficModel(rand.New(rand.NewSource(42)))

	_, err := model.Reading(nil, time.Now())
	assert.Error(t, err)

	intersection := &models.Intersection{
		ID:              "INT-0000",
		LanesNorthSouth: 2,
		LanesEastWest:   2,
		District:        models.DistrictDowntown,
	}
	_, err = model.Reading(intersection, time.Time{})
	assert.Error(t, err)
}

func TestTrafficRushHourIsBusierThanNight(t *testing.T) {
	intersection := &models.Intersection{
		ID:              "INT-0505",
		LanesNorthSouth: 3,
		LanesEastWest:   3,
		District:        models.DistrictDowntown,
		Location:        models.Location{Lat: 40.71, Lon: -74.0},
	}
	model := NewTrafficModel(rand.New(rand.NewSource(42)))

	meanCount := func(hour int) float64 {
		timestamp := time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
		var total int
		const draws = 300
		for i := 0; i < draws; i++ {
			reading, err := model.Reading(intersection, timestamp)
			require.NoError(t, err)
			total += reading.VehicleCount
		}
		return float64(total) / draws
	}

	night := meanCount(3)
	morningRush := meanCount(8)
	assert.Greater(t, morningRush, night*2,
		"morning rush (%.1f) should dwarf night traffic (%.1f)", morningRush, night)
}
