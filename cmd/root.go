package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smartcitydata/trafficdatasim/internal/models"
	"github.com/smartcitydata/trafficdatasim/internal/simulator"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trafficdatasim",
	Short: "Simulates streaming traffic and weather telemetry for a smart city",
	Long:  `trafficdatasim is a CLI tool that stands in for a city sensor network: it generates a grid of traffic intersections and a city weather station, simulates time-of-day traffic patterns and slowly changing weather, and publishes the readings in size-bounded batches to a streaming sink (Kafka, Postgres, parquet/JSON files or the console).`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()

		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		sim, err := simulator.NewSimulator(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initialising simulator: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sim.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("simulation failed")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Int("seed", 42, "Random seed for simulation (0 picks a time-based seed)")
	rootCmd.Flags().String("city_name", "New York City", "City name used in logs")
	rootCmd.Flags().Float64("city_latitude", 40.7128, "Latitude of the city center")
	rootCmd.Flags().Float64("city_longitude", -74.0060, "Longitude of the city center")
	rootCmd.Flags().Int("grid_size", 10, "Grid dimension N; the city has N*N intersections")
	rootCmd.Flags().Duration("traffic_interval", 30*time.Second, "Interval between traffic ticks")
	rootCmd.Flags().Duration("weather_interval", 5*time.Minute, "Interval between weather ticks")
	rootCmd.Flags().Int("max_batch_bytes", 1<<20, "Transport batch size limit in bytes")
	rootCmd.Flags().String("traffic_topic", "traffic-sensors", "Topic for traffic readings")
	rootCmd.Flags().String("weather_topic", "weather-events", "Topic for weather readings")
	rootCmd.Flags().Bool("kafka_enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka_broker_list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().Bool("postgres_enabled", false, "Enable Postgres output")
	rootCmd.Flags().String("output_path", "", "Base path for file output (if not using Kafka or Postgres)")
	rootCmd.Flags().String("output_folder", "data", "Folder under the output path")
	rootCmd.Flags().String("output_format", "json", "File output format (json or parquet)")
	rootCmd.Flags().String("output_destination", "local", "Where parquet output goes (local or s3)")

	viper.BindPFlags(rootCmd.Flags())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
