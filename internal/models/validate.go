package models

import (
	"fmt"
	"slices"
	"time"
)

// Value ranges enforced by the downstream ingestion pipeline. Readings outside
// these bounds are rejected by the stream validator, so the simulators must
// never produce them.
const (
	MaxVehicleCount    = 1000
	MaxAverageSpeedMPH = 100
	MaxWaitTimeSeconds = 600
	MaxQueueLength     = 500
)

// Validate checks the reading against the ranges and enumerations the
// ingestion pipeline enforces.
func (r *TrafficReading) Validate() error {
	if r.SensorID == "" || r.IntersectionID == "" {
		return fmt.Errorf("traffic reading missing sensor or intersection id")
	}
	if _, err := time.Parse(time.RFC3339, r.Timestamp); err != nil {
		return fmt.Errorf("traffic reading timestamp %q is not RFC 3339: %w", r.Timestamp, err)
	}
	if r.VehicleCount < 0 || r.VehicleCount > MaxVehicleCount {
		return fmt.Errorf("vehicle_count %d out of range [0, %d]", r.VehicleCount, MaxVehicleCount)
	}
	if r.AverageSpeed < 0 || r.AverageSpeed > MaxAverageSpeedMPH {
		return fmt.Errorf("average_speed %.2f out of range [0, %d]", r.AverageSpeed, MaxAverageSpeedMPH)
	}
	if r.OccupancyRate < 0 || r.OccupancyRate > 1 {
		return fmt.Errorf("occupancy_rate %.3f out of range [0, 1]", r.OccupancyRate)
	}
	if r.WaitTimeSeconds < 0 || r.WaitTimeSeconds > MaxWaitTimeSeconds {
		return fmt.Errorf("wait_time_seconds %.1f out of range [0, %d]", r.WaitTimeSeconds, MaxWaitTimeSeconds)
	}
	if r.QueueLength < 0 || r.QueueLength > MaxQueueLength {
		return fmt.Errorf("queue_length %d out of range [0, %d]", r.QueueLength, MaxQueueLength)
	}
	if total := r.VehicleTypes.Total(); total != r.VehicleCount {
		return fmt.Errorf("vehicle_types sum %d does not match vehicle_count %d", total, r.VehicleCount)
	}
	if !slices.Contains(SignalStates, r.SignalState) {
		return fmt.Errorf("unknown signal_state %q", r.SignalState)
	}
	if !slices.Contains(Districts, r.District) {
		return fmt.Errorf("unknown district %q", r.District)
	}
	return validateCoordinates(r.Latitude, r.Longitude)
}

// Validate checks the reading against the ranges and enumerations the
// ingestion pipeline enforces.
func (r *WeatherReading) Validate() error {
	if r.StationID == "" {
		return fmt.Errorf("weather reading missing station id")
	}
	if _, err := time.Parse(time.RFC3339, r.Timestamp); err != nil {
		return fmt.Errorf("weather reading timestamp %q is not RFC 3339: %w", r.Timestamp, err)
	}
	if r.Humidity < 0 || r.Humidity > 1 {
		return fmt.Errorf("humidity %.2f out of range [0, 1]", r.Humidity)
	}
	if r.PrecipitationRate < 0 {
		return fmt.Errorf("precipitation_rate %.2f is negative", r.PrecipitationRate)
	}
	if r.VisibilityMiles < 0 {
		return fmt.Errorf("visibility_miles %.1f is negative", r.VisibilityMiles)
	}
	if r.WindSpeedMPH < 0 {
		return fmt.Errorf("wind_speed_mph %.1f is negative", r.WindSpeedMPH)
	}
	if !slices.Contains(WeatherConditions, r.Condition) {
		return fmt.Errorf("unknown condition %q", r.Condition)
	}
	return validateCoordinates(r.Latitude, r.Longitude)
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.6f out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %.6f out of range [-180, 180]", lon)
	}
	return nil
}
