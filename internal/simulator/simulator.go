package simulator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

// Simulator owns the sensor grid and the generation models and drives the two
// publishing loops. The traffic and weather loops share no mutable state:
// each model has its own random source and the grid is read-only after
// construction.
type Simulator struct {
	Config  *models.Config
	Logger  zerolog.Logger
	Grid    []*models.Intersection
	Traffic *TrafficModel
	Weather *WeatherModel
}

func NewSimulator(cfg *models.Config, logger zerolog.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := int64(cfg.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	grid, err := NewGridBuilder(cfg, rand.New(rand.NewSource(seed))).Build()
	if err != nil {
		return nil, err
	}

	return &Simulator{
		Config:  cfg,
		Logger:  logger,
		Grid:    grid,
		Traffic: NewTrafficModel(rand.New(rand.NewSource(seed + 1))),
		Weather: NewWeatherModel(cfg, rand.New(rand.NewSource(seed+2))),
	}, nil
}

// Run acquires the configured sink and drives both loops until the context is
// cancelled. The sink is released on every exit path. Cancellation is the
// orderly way to stop and is not reported as an error.
func (s *Simulator) Run(ctx context.Context) error {
	sink, err := s.determineSink(ctx)
	if err != nil {
		return err
	}
	return s.RunWithSink(ctx, sink)
}

// RunWithSink is Run with an explicit sink, which it takes ownership of.
func (s *Simulator) RunWithSink(ctx context.Context, sink Sink) error {
	defer func() {
		if err := sink.Close(); err != nil {
			s.Logger.Error().Err(err).Msg("closing sink")
		}
	}()

	publisher := NewBatchPublisher(sink, s.Config.MaxBatchBytes, s.Logger)

	s.Logger.Info().
		Str("city", s.Config.CityName).
		Int("intersections", len(s.Grid)).
		Dur("traffic_interval", s.Config.TrafficInterval).
		Dur("weather_interval", s.Config.WeatherInterval).
		Str("traffic_topic", s.Config.TrafficTopic).
		Str("weather_topic", s.Config.WeatherTopic).
		Msg("simulation started")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.trafficLoop(ctx, publisher) })
	g.Go(func() error { return s.weatherLoop(ctx, publisher) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	s.Logger.Info().Msg("simulation stopped")
	return nil
}

func (s *Simulator) trafficLoop(ctx context.Context, publisher *BatchPublisher) error {
	ticker := time.NewTicker(s.Config.TrafficInterval)
	defer ticker.Stop()

	iteration := 1
	s.trafficTick(ctx, publisher, iteration)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			iteration++
			s.trafficTick(ctx, publisher, iteration)
		}
	}
}

// trafficTick generates one reading per intersection, all sharing a single
// timestamp snapshot, publishes them and logs the tick summary. Delivery
// failures are annotated on the summary; they never stop the loop.
func (s *Simulator) trafficTick(ctx context.Context, publisher *BatchPublisher, iteration int) {
	now := time.Now().UTC()

	readings := make([]*models.TrafficReading, 0, len(s.Grid))
	for _, intersection := range s.Grid {
		reading, err := s.Traffic.Reading(intersection, now)
		if err != nil {
			s.Logger.Error().Err(err).Str("intersection", intersection.ID).Msg("generating traffic reading")
			continue
		}
		readings = append(readings, reading)
	}

	items := make([]any, len(readings))
	for i, reading := range readings {
		items[i] = reading
	}
	result, err := publisher.Publish(ctx, s.Config.TrafficTopic, items)

	stats := computeTrafficStats(readings)
	event := s.Logger.Info().
		Int("iteration", iteration).
		Time("tick", now).
		Int("total_vehicles", stats.TotalVehicles).
		Float64("avg_speed_mph", roundTo(stats.MeanSpeed, 1)).
		Float64("avg_occupancy", roundTo(stats.MeanOccupancy, 3)).
		Int("events_sent", result.Published).
		Int("batches", result.Batches)
	if result.Oversized > 0 {
		event = event.Int("oversized_dropped", result.Oversized)
	}
	if err != nil {
		event = event.AnErr("delivery_error", err)
	}
	event.Msg("traffic tick")
}

func (s *Simulator) weatherLoop(ctx context.Context, publisher *BatchPublisher) error {
	ticker := time.NewTicker(s.Config.WeatherInterval)
	defer ticker.Stop()

	iteration := 1
	s.weatherTick(ctx, publisher, iteration)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			iteration++
			s.weatherTick(ctx, publisher, iteration)
		}
	}
}

func (s *Simulator) weatherTick(ctx context.Context, publisher *BatchPublisher, iteration int) {
	now := time.Now().UTC()
	reading := s.Weather.Reading(now)

	result, err := publisher.Publish(ctx, s.Config.WeatherTopic, []any{reading})

	event := s.Logger.Info().
		Int("iteration", iteration).
		Time("tick", now).
		Str("condition", reading.Condition).
		Float64("temperature_f", reading.TemperatureF).
		Float64("precipitation_in_hr", roundTo(reading.PrecipitationRate, 2)).
		Float64("visibility_miles", roundTo(reading.VisibilityMiles, 1)).
		Int("events_sent", result.Published)
	if err != nil {
		event = event.AnErr("delivery_error", err)
	}
	event.Msg("weather tick")
}

// TrafficTickStats aggregates a tick's readings for observability only; the
// values carry no behavioral significance.
type TrafficTickStats struct {
	TotalVehicles int
	MeanSpeed     float64
	MeanOccupancy float64
}

func computeTrafficStats(readings []*models.TrafficReading) TrafficTickStats {
	var stats TrafficTickStats
	if len(readings) == 0 {
		return stats
	}
	for _, reading := range readings {
		stats.TotalVehicles += reading.VehicleCount
		stats.MeanSpeed += reading.AverageSpeed
		stats.MeanOccupancy += reading.OccupancyRate
	}
	stats.MeanSpeed /= float64(len(readings))
	stats.MeanOccupancy /= float64(len(readings))
	return stats
}
