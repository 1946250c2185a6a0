package config

import (
	"fmt"
	"strings"
)

// Config holds every setting of a comparison run, merged from config file and
// command line.
type Config struct {
	OldRoot     string   `mapstructure:"old"`
	NewRoot     string   `mapstructure:"new"`
	SummaryFile string   `mapstructure:"summary_file"`
	JSONOutput  bool     `mapstructure:"json_output"`
	HTMLOutput  string   `mapstructure:"html_output"`
	NoColor     bool     `mapstructure:"no_color"`
	KeepGoing   bool     `mapstructure:"keep_going"`
	Workers     int      `mapstructure:"workers"`
	Thresholds  []string `mapstructure:"thresholds"`
	ConfigFile  string   `mapstructure:"-"`
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	if strings.TrimSpace(c.OldRoot) == "" {
		issues = append(issues, "old run directory is required (use --help for usage information)")
	}
	if strings.TrimSpace(c.NewRoot) == "" {
		issues = append(issues, "new run directory is required (use --help for usage information)")
	}
	if c.Workers < 1 {
		issues = append(issues, "workers must be >= 1")
	}
	if strings.ContainsAny(c.SummaryFile, `/\`) {
		issues = append(issues, "summary-file must be a bare file name, not a path")
	}
	if strings.TrimSpace(c.SummaryFile) == "" {
		issues = append(issues, "summary-file must not be empty")
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}
