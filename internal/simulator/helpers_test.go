package simulator

import (
	"context"
	"sync"
	"time"

	"github.com/smartcitydata/trafficdatasim/internal/models"
)

func testConfig(gridSize int) *models.Config {
	return &models.Config{
		Seed:            42,
		CityName:        "Testville",
		CityLat:         40.7128,
		CityLon:         -74.0060,
		GridSize:        gridSize,
		TrafficInterval: 30 * time.Second,
		WeatherInterval: 5 * time.Minute,
		MaxBatchBytes:   1 << 20,
		TrafficTopic:    "traffic-sensors",
		WeatherTopic:    "weather-events",
		StationID:       "WEATHER-CENTRAL-01",
	}
}

// captureSink records every batch it receives. failures makes the first N
// sends return err.
type captureSink struct {
	mu       sync.Mutex
	topics   []string
	batches  [][][]byte
	failures int
	err      error
	closed   bool
}

func (c *captureSink) SendBatch(_ context.Context, topic string, payloads [][]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failures > 0 {
		c.failures--
		return c.err
	}

	batch := make([][]byte, len(payloads))
	for i, payload := range payloads {
		batch[i] = append([]byte(nil), payload...)
	}
	c.topics = append(c.topics, topic)
	c.batches = append(c.batches, batch)
	return nil
}

func (c *captureSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *captureSink) batchesForTopic(topic string) [][][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out [][][]byte
	for i, t := range c.topics {
		if t == topic {
			out = append(out, c.batches[i])
		}
	}
	return out
}
