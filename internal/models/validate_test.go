package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrafficReading() TrafficReading {
	return TrafficReading{
		SensorID:       "INT-0101-SENSOR-01",
		IntersectionID: "INT-0101",
		Timestamp:      "2025-01-15T08:30:00Z",
		VehicleCount:   52,
		AverageSpeed:   22.4,
		OccupancyRate:  0.43,
		VehicleTypes: VehicleTypeCounts{
			Car: 45, Truck: 4, Motorcycle: 2, Bus: 1,
		},
		WaitTimeSeconds: 38.2,
		QueueLength:     12,
		SignalState:     SignalStateRed,
		Latitude:        40.7128,
		Longitude:       -74.0060,
		District:        DistrictDowntown,
	}
}

func TestTrafficReadingValidateAcceptsGoodReading(t *testing.T) {
	reading := validTrafficReading()
	require.NoError(t, reading.Validate())
}

func TestTrafficReadingValidateRejectsBadReadings(t *testing.T) {
	cases := map[string]func(*TrafficReading){
		"bad timestamp":      func(r *TrafficReading) { r.Timestamp = "15/01/2025 08:30" },
		"negative count":     func(r *TrafficReading) { r.VehicleCount = -1 },
		"occupancy above 1":  func(r *TrafficReading) { r.OccupancyRate = 1.2 },
		"type sum mismatch":  func(r *TrafficReading) { r.VehicleTypes.Car = 40 },
		"unknown signal":     func(r *TrafficReading) { r.SignalState = "flashing" },
		"unknown district":   func(r *TrafficReading) { r.District = "harbor" },
		"latitude off earth": func(r *TrafficReading) { r.Latitude = 91 },
		"excessive wait":     func(r *TrafficReading) { r.WaitTimeSeconds = 601 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			reading := validTrafficReading()
			mutate(&reading)
			assert.Error(t, reading.Validate())
		})
	}
}

func TestWeatherReadingValidate(t *testing.T) {
	reading := WeatherReading{
		StationID:         "WEATHER-CENTRAL-01",
		Timestamp:         "2025-01-15T08:30:00Z",
		TemperatureF:      71.3,
		Humidity:          0.42,
		PrecipitationRate: 0,
		VisibilityMiles:   10,
		WindSpeedMPH:      8.5,
		Condition:         ConditionClear,
		Latitude:          40.7128,
		Longitude:         -74.0060,
	}
	require.NoError(t, reading.Validate())

	bad := reading
	bad.Humidity = 1.4
	assert.Error(t, bad.Validate())

	bad = reading
	bad.Condition = "drizzle"
	assert.Error(t, bad.Validate())

	bad = reading
	bad.VisibilityMiles = -1
	assert.Error(t, bad.Validate())
}

func TestVehicleTypeCountsTotal(t *testing.T) {
	counts := VehicleTypeCounts{Car: 10, Truck: 2, Motorcycle: 1, Bus: 1}
	assert.Equal(t, 14, counts.Total())
}
