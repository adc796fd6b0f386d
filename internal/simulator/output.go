package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/smartcitydata/trafficdatasim/internal/cloudwriter"
	"github.com/smartcitydata/trafficdatasim/internal/models"
	"github.com/smartcitydata/trafficdatasim/internal/output"
	"github.com/smartcitydata/trafficdatasim/internal/simulator/producers"
)

// determineSink selects the sink from the configuration: Kafka if enabled,
// then Postgres, then file output, falling back to the console.
func (s *Simulator) determineSink(ctx context.Context) (Sink, error) {
	cfg := s.Config
	switch {
	case cfg.KafkaEnabled:
		return producers.NewSaramaSink(cfg, s.Logger)
	case cfg.PostgresEnabled:
		return output.NewPostgresSink(ctx, &cfg.Database)
	case cfg.OutputPath != "":
		switch cfg.OutputFormat {
		case "parquet":
			return NewParquetSink(cfg)
		case "json":
			return NewJSONFileSink(cfg.OutputPath, cfg.OutputFolder), nil
		default:
			return nil, fmt.Errorf("%w: unsupported output format %q", models.ErrInvalidConfiguration, cfg.OutputFormat)
		}
	default:
		return &ConsoleSink{}, nil
	}
}

// ConsoleSink writes each payload to stdout, prefixed with its topic.
type ConsoleSink struct{}

func (c *ConsoleSink) SendBatch(_ context.Context, topic string, payloads [][]byte) error {
	for _, payload := range payloads {
		if _, err := fmt.Fprintf(os.Stdout, "[%s] %s\n", topic, payload); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	return nil
}

func (c *ConsoleSink) Close() error { return nil }

// JSONFileSink appends newline-delimited JSON payloads to hour-partitioned
// files per topic.
type JSONFileSink struct {
	basePath string
	folder   string

	mu    sync.Mutex
	files map[string]*os.File
}

func NewJSONFileSink(basePath, folder string) *JSONFileSink {
	return &JSONFileSink{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONFileSink) SendBatch(_ context.Context, topic string, payloads [][]byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := j.fileFor(topic, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, payload := range payloads {
		if _, err := file.Write(payload); err != nil {
			return fmt.Errorf("failed to write payload for topic %s: %w", topic, err)
		}
		if _, err := file.WriteString("\n"); err != nil {
			return fmt.Errorf("failed to write payload for topic %s: %w", topic, err)
		}
	}
	return nil
}

func (j *JSONFileSink) fileFor(topic string, now time.Time) (*os.File, error) {
	partition := partitionPath(now)
	key := topic + "_" + partition

	if file, ok := j.files[key]; ok {
		return file, nil
	}

	dir := filepath.Join(j.basePath, j.folder, topic, partition)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath.Join(dir, "data.json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file for topic %s: %w", topic, err)
	}
	j.files[key] = file
	return file, nil
}

func (j *JSONFileSink) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var lastErr error
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// ParquetSink writes payloads as parquet rows under hour-partitioned paths,
// either to local files or to cloud objects through a cloud writer factory.
type ParquetSink struct {
	basePath     string
	folder       string
	trafficTopic string
	weatherTopic string

	mu      sync.Mutex
	writers map[string]*writer.ParquetWriter
	files   map[string]source.ParquetFile

	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetSink(cfg *models.Config) (*ParquetSink, error) {
	p := &ParquetSink{
		basePath:     cfg.OutputPath,
		folder:       cfg.OutputFolder,
		trafficTopic: cfg.TrafficTopic,
		weatherTopic: cfg.WeatherTopic,
		writers:      make(map[string]*writer.ParquetWriter),
		files:        make(map[string]source.ParquetFile),
	}

	if cfg.OutputDestination != "local" {
		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(context.Background(), cfg.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = cfg.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("%w: unsupported cloud storage provider %q", models.ErrInvalidConfiguration, cfg.CloudStorage.Provider)
		}
	}

	return p, nil
}

func (p *ParquetSink) SendBatch(_ context.Context, topic string, payloads [][]byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pw, err := p.writerFor(topic, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, payload := range payloads {
		row, err := p.rowFor(topic)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(payload, row); err != nil {
			return fmt.Errorf("payload for topic %s is not valid JSON: %w", topic, err)
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write parquet row for topic %s: %w", topic, err)
		}
	}
	return nil
}

func (p *ParquetSink) writerFor(topic string, now time.Time) (*writer.ParquetWriter, error) {
	partition := partitionPath(now)
	key := topic + "_" + partition

	if pw, ok := p.writers[key]; ok {
		return pw, nil
	}

	var fw source.ParquetFile
	var err error
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, partition, "data.parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = cloudwriter.NewParquetFile(cw)
	} else {
		dir := filepath.Join(p.basePath, p.folder, topic, partition)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(dir, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	row, err := p.rowFor(topic)
	if err != nil {
		return nil, err
	}

	pw, err := writer.NewParquetWriter(fw, row, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	p.writers[key] = pw
	p.files[key] = fw
	return pw, nil
}

// rowFor returns a fresh row value of the reading type carried on the topic.
func (p *ParquetSink) rowFor(topic string) (interface{}, error) {
	switch topic {
	case p.trafficTopic:
		return new(models.TrafficReading), nil
	case p.weatherTopic:
		return new(models.WeatherReading), nil
	default:
		return nil, fmt.Errorf("no parquet schema for topic %q", topic)
	}
}

func (p *ParquetSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = fmt.Errorf("failed to finalize parquet writer %s: %w", key, err)
		}
		if fw, ok := p.files[key]; ok {
			if err := fw.Close(); err != nil {
				lastErr = fmt.Errorf("failed to close parquet file %s: %w", key, err)
			}
		}
	}
	return lastErr
}

func partitionPath(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, t.Hour())
}
