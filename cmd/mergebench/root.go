package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"mergebench/internal/config"
	"mergebench/internal/telemetry"
	"mergebench/internal/ui"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string
var noColor bool

var (
	// settings is the validated configuration for the running command.
	settings config.Settings
	registry *prometheus.Registry
	metrics  *telemetry.Metrics

	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mergebench",
	Short: "Merge sort benchmark pipeline",
	Long: `mergebench generates random integer datasets, persists and reloads them,
sorts them with a top-down merge sort, verifies the output and reports the
timing of two trials per dataset size.

Run without a subcommand to start the interactive session.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	rootCmd.RunE = runInteractive
	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(closeLog)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().Int("metrics-port", 0, "Serve prometheus metrics on this port (0 disables)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("metrics_port", rootCmd.PersistentFlags().Lookup("metrics-port"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	s, err := config.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
	settings = s

	logCloser = telemetry.InitLogger(telemetry.LogOptions{
		Debug:  settings.Verbose,
		Format: settings.LogFormat,
		File:   settings.LogFile,
		Output: rootCmd.ErrOrStderr(),
	})
	ui.ConfigureColor(noColor)

	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics = telemetry.NewMetrics(registry)

	if settings.MetricsPort > 0 {
		go func() {
			if err := telemetry.StartMetricsServer(settings.MetricsPort, registry); err != nil {
				slog.Warn("metrics server stopped", "error", err)
			}
		}()
	}
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}
