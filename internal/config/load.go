package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mergebench/internal/dataset"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MERGEBENCH_REPORT_PATH.
const EnvPrefix = "MERGEBENCH"

// DefaultSizes are the dataset sizes measured by a suite when none are given.
var DefaultSizes = []int{1000, 5000, 10000, 25000, 50000}

// HistorySettings selects where finished suites are recorded.
type HistorySettings struct {
	Type string `mapstructure:"type"` // sqlite, postgres, json or none
	DSN  string `mapstructure:"dsn"`
}

// Settings is the typed view of the loaded configuration.
type Settings struct {
	DatasetPath string          `mapstructure:"dataset_path"`
	ReportPath  string          `mapstructure:"report_path"`
	ValueMin    int             `mapstructure:"value_min"`
	ValueMax    int             `mapstructure:"value_max"`
	Sizes       []int           `mapstructure:"sizes"`
	OnDefect    string          `mapstructure:"on_defect"`
	Seed        uint64          `mapstructure:"seed"`
	History     HistorySettings `mapstructure:"history"`
	MetricsPort int             `mapstructure:"metrics_port"`
	Verbose     bool            `mapstructure:"verbose"`
	LogFile     string          `mapstructure:"log_file"`
	LogFormat   string          `mapstructure:"log_format"` // json or text
}

// Range returns the configured value range.
func (s Settings) Range() dataset.Range {
	return dataset.Range{Min: s.ValueMin, Max: s.ValueMax}
}

// SetDefaults registers the default for every known key.
func SetDefaults() {
	viper.SetDefault("dataset_path", "numeros_aleatorios.txt")
	viper.SetDefault("report_path", "resultados_pruebas.txt")
	viper.SetDefault("value_min", dataset.DefaultRange.Min)
	viper.SetDefault("value_max", dataset.DefaultRange.Max)
	viper.SetDefault("sizes", DefaultSizes)
	viper.SetDefault("on_defect", "flag")
	viper.SetDefault("seed", 0)
	viper.SetDefault("history.type", "sqlite")
	viper.SetDefault("history.dsn", ".mergebench.db")
	viper.SetDefault("metrics_port", 0)
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("log_format", "json")
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; defaults and environment apply.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}

	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Current decodes the loaded configuration into Settings.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("failed to decode config: %w", err)
	}
	return s, nil
}
