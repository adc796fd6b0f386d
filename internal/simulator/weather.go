package simulator

import (
	"math/rand"
	"time"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

// Condition dwell time in weather ticks.
const (
	minConditionTicks = 4
	maxConditionTicks = 20
)

// WeatherModel is a small state machine over the weather conditions. The
// current condition and its remaining duration are the only mutable state in
// the simulation; the model is not safe for concurrent use and is owned by a
// single loop.
type WeatherModel struct {
	rng       *rand.Rand
	stationID string
	location  models.Location

	condition      string
	remainingTicks int
}

func NewWeatherModel(cfg *models.Config, rng *rand.Rand) *WeatherModel {
	return &WeatherModel{
		rng:       rng,
		stationID: cfg.StationID,
		location:  models.Location{Lat: cfg.CityLat, Lon: cfg.CityLon},
	}
}

// Condition returns the current weather condition. Empty until the first
// reading has been generated.
func (w *WeatherModel) Condition() string {
	return w.condition
}

// Reading advances the state machine by one tick and generates a weather
// reading. When the remaining duration reaches zero a new condition is drawn
// from the weighted condition table along with a fresh dwell time.
func (w *WeatherModel) Reading(timestamp time.Time) *models.WeatherReading {
	if w.remainingTicks == 0 {
		weights := make([]float64, len(models.WeatherConditions))
		for i, condition := range models.WeatherConditions {
			weights[i] = ConditionProfiles[condition].Weight
		}
		w.condition = models.WeatherConditions[weightedIndex(w.rng, weights)]
		w.remainingTicks = minConditionTicks + w.rng.Intn(maxConditionTicks-minConditionTicks+1)
	}
	w.remainingTicks--

	profile := ConditionProfiles[w.condition]

	return &models.WeatherReading{
		StationID:         w.stationID,
		Timestamp:         timestamp.Format(time.RFC3339),
		TemperatureF:      roundTo(uniformWithin(w.rng, profile.Temperature), 1),
		Humidity:          roundTo(uniformWithin(w.rng, profile.Humidity), 2),
		PrecipitationRate: profile.BasePrecipitation * uniformBetween(w.rng, 0.8, 1.2),
		VisibilityMiles:   profile.BaseVisibility * uniformBetween(w.rng, 0.9, 1.1),
		WindSpeedMPH:      roundTo(uniformBetween(w.rng, 0, 25), 1),
		Condition:         w.condition,
		Latitude:          w.location.Lat,
		Longitude:         w.location.Lon,
	}
}
