package simulator

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileSinkWritesNewlineDelimitedPayloads(t *testing.T) {
	dir := t.TempDir()
	sink := NewJSONFileSink(dir, "data")

	payloads := [][]byte{
		[]byte(`{"sensor_id":"INT-0101-SENSOR-01"}`),
		[]byte(`{"sensor_id":"INT-0102-SENSOR-01"}`),
	}
	require.NoError(t, sink.SendBatch(context.Background(), "traffic-sensors", payloads))
	require.NoError(t, sink.SendBatch(context.Background(), "traffic-sensors", payloads[:1]))
	require.NoError(t, sink.Close())

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, files[0], filepath.Join("data", "traffic-sensors"))

	file, err := os.Open(files[0])
	require.NoError(t, err)
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())

	assert.Equal(t, []string{
		`{"sensor_id":"INT-0101-SENSOR-01"}`,
		`{"sensor_id":"INT-0102-SENSOR-01"}`,
		`{"sensor_id":"INT-0101-SENSOR-01"}`,
	}, lines)
}

func TestDetermineSinkFallsBackToConsole(t *testing.T) {
	sim, err := NewSimulator(testConfig(2), zerolog.Nop())
	require.NoError(t, err)

	sink, err := sim.determineSink(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &ConsoleSink{}, sink)
}

func TestDetermineSinkSelectsJSONFileOutput(t *testing.T) {
	cfg := testConfig(2)
	cfg.OutputPath = t.TempDir()
	cfg.OutputFolder = "data"
	cfg.OutputFormat = "json"

	sim, err := NewSimulator(cfg, zerolog.Nop())
	require.NoError(t, err)

	sink, err := sim.determineSink(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &JSONFileSink{}, sink)
	require.NoError(t, sink.Close())
}

func TestDetermineSinkRejectsUnknownFormat(t *testing.T) {
	cfg := testConfig(2)
	cfg.OutputPath = t.TempDir()
	cfg.OutputFormat = "avro"

	sim, err := NewSimulator(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = sim.determineSink(context.Background())
	assert.Error(t, err)
}
