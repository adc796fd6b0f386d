package simulator

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

const (
	vehiclesPerLane   = 10
	freeFlowSpeedMPH  = 35.0
	minSpeedMPH       = 5.0
	congestionDamping = 0.7
	countJitter       = 5
)

// TrafficModel produces sensor readings for intersections. It is stateless;
// every reading is derived from the intersection, the timestamp and
// independent draws from its random source.
type TrafficModel struct {
	rng *rand.Rand
}

func NewTrafficModel(rng *rand.Rand) *TrafficModel {
	return &TrafficModel{rng: rng}
}

// Reading generates one traffic reading for the intersection at the given
// timestamp.
func (t *TrafficModel) Reading(intersection *models.Intersection, timestamp time.Time) (*models.TrafficReading, error) {
	if intersection == nil {
		return nil, errors.New("intersection must not be nil")
	}
	if timestamp.IsZero() {
		return nil, errors.New("timestamp must not be zero")
	}

	baseCapacity := float64(intersection.BaseCapacity(vehiclesPerLane))
	timeMultiplier := t.timeOfDayMultiplier(timestamp)
	districtMultiplier := DistrictProfiles[intersection.District].TrafficMultiplier
	weatherMultiplier := t.weatherImpactMultiplier()

	vehicleCount := int(math.Round(baseCapacity * timeMultiplier * districtMultiplier * weatherMultiplier))
	vehicleCount += t.rng.Intn(2*countJitter+1) - countJitter
	if vehicleCount < 0 {
		vehicleCount = 0
	}

	occupancy := math.Min(1.0, float64(vehicleCount)/(2*baseCapacity))
	averageSpeed := math.Max(minSpeedMPH, freeFlowSpeedMPH*(1-occupancy*congestionDamping))

	waitTime := occupancy * uniformBetween(t.rng, 30, 120)
	queueLength := int(occupancy * baseCapacity * 0.5)

	return &models.TrafficReading{
		SensorID:        intersection.ID + "-SENSOR-01",
		IntersectionID:  intersection.ID,
		Timestamp:       timestamp.Format(time.RFC3339),
		VehicleCount:    vehicleCount,
		AverageSpeed:    roundTo(averageSpeed, 2),
		OccupancyRate:   roundTo(occupancy, 3),
		VehicleTypes:    t.apportionVehicleTypes(vehicleCount),
		WaitTimeSeconds: roundTo(waitTime, 1),
		QueueLength:     queueLength,
		SignalState:     models.SignalStates[t.rng.Intn(len(models.SignalStates))],
		Latitude:        intersection.Location.Lat,
		Longitude:       intersection.Location.Lon,
		District:        intersection.District,
	}, nil
}

// timeOfDayMultiplier matches the hour against the daily traffic bands and
// jitters the band's multiplier by U[0.8, 1.2).
func (t *TrafficModel) timeOfDayMultiplier(timestamp time.Time) float64 {
	hour := timestamp.Hour()
	for _, pattern := range TimeOfDayPatterns {
		if hour >= pattern.StartHour && hour < pattern.EndHour {
			return pattern.Multiplier * uniformBetween(t.rng, 0.8, 1.2)
		}
	}
	return 1.0
}

func (t *TrafficModel) weatherImpactMultiplier() float64 {
	weights := make([]float64, len(TrafficWeatherImpacts))
	for i, impact := range TrafficWeatherImpacts {
		weights[i] = impact.Weight
	}
	return TrafficWeatherImpacts[weightedIndex(t.rng, weights)].Multiplier
}

// apportionVehicleTypes splits the vehicle count into classes. Truck,
// motorcycle and bus shares are independent uniform fractions; car absorbs
// the remainder so the class counts always sum to the total.
func (t *TrafficModel) apportionVehicleTypes(total int) models.VehicleTypeCounts {
	truck := int(float64(total) * uniformBetween(t.rng, 0.05, 0.12))
	motorcycle := int(float64(total) * uniformBetween(t.rng, 0.02, 0.05))
	bus := int(float64(total) * uniformBetween(t.rng, 0.01, 0.03))

	return models.VehicleTypeCounts{
		Car:        total - truck - motorcycle - bus,
		Truck:      truck,
		Motorcycle: motorcycle,
		Bus:        bus,
	}
}
