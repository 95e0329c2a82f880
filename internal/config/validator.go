package config

import (
	"fmt"
	"strings"
)

// Validate checks every setting and reports all violations at once.
func (s Settings) Validate() error {
	var errors []string

	if strings.TrimSpace(s.DatasetPath) == "" {
		errors = append(errors, "dataset_path must not be empty")
	}
	if strings.TrimSpace(s.ReportPath) == "" {
		errors = append(errors, "report_path must not be empty")
	}

	if s.ValueMin > s.ValueMax {
		errors = append(errors, fmt.Sprintf("value_min must not exceed value_max, got: %d > %d", s.ValueMin, s.ValueMax))
	}

	for _, size := range s.Sizes {
		if size <= 0 {
			errors = append(errors, fmt.Sprintf("sizes must be positive, got: %d", size))
		}
	}

	switch s.OnDefect {
	case "flag", "abort":
	default:
		errors = append(errors, fmt.Sprintf("on_defect must be flag or abort, got: %q", s.OnDefect))
	}

	switch strings.ToLower(s.History.Type) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "json":
		if s.History.DSN == "" {
			errors = append(errors, fmt.Sprintf("history.dsn is required for history.type %s", s.History.Type))
		}
	case "none", "":
	default:
		errors = append(errors, fmt.Sprintf("history.type must be one of sqlite, postgres, json, none, got: %q", s.History.Type))
	}

	switch s.LogFormat {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("log_format must be json or text, got: %q", s.LogFormat))
	}

	// 0 disables the metrics server
	if s.MetricsPort < 0 || s.MetricsPort > 65535 {
		errors = append(errors, fmt.Sprintf("metrics_port must be between 0 and 65535, got: %d", s.MetricsPort))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}

// ValidateConfig decodes the loaded configuration and validates it.
func ValidateConfig() (Settings, error) {
	s, err := Current()
	if err != nil {
		return s, err
	}
	return s, s.Validate()
}
