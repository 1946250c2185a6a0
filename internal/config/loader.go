package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"benchdiff/internal/summary"
)

// Loader handles loading configuration from files and command-line
// arguments.
type Loader struct{}

// ErrHelpRequested is returned when the user requests help via --help flag.
var ErrHelpRequested = errors.New("help requested")

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses command-line arguments and an optional configuration file to
// produce a Config. The two positional arguments name the old and new run
// directories; a config file may supply them instead under the keys "old"
// and "new".
func (Loader) Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	if helpFlag := flagSet.Lookup("help"); helpFlag != nil {
		if wantsHelp, err := strconv.ParseBool(helpFlag.Value.String()); err == nil && wantsHelp {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
	}

	configPath := flagSet.Lookup("config").Value.String()
	if len(args) == 0 && configPath == "" {
		displayHelp(cmd)
		return nil, ErrHelpRequested
	}

	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	settings := cfgViper.AllSettings()

	cfg := &Config{
		SummaryFile: summary.DefaultFileName,
		Workers:     1,
		ConfigFile:  configPath,
	}

	if err := applyConfigSettings(cfg, settings); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	if err := applyPositionalArgs(cfg, flagSet.Args()); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyPositionalArgs fills the run roots from the positional arguments.
// Both may come from the config file instead, but partial overrides are
// rejected to avoid comparing a directory against itself by accident.
func applyPositionalArgs(cfg *Config, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 2:
		cfg.OldRoot = args[0]
		cfg.NewRoot = args[1]
		return nil
	default:
		return fmt.Errorf("expected exactly two arguments <oldrunid> <newrunid>, got %d", len(args))
	}
}

// applyConfigSettings applies settings from a config file to the Config
// struct.
func applyConfigSettings(cfg *Config, settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}

	if raw, ok := lookupSetting(settings, "old"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("old: %w", err)
		}
		cfg.OldRoot = val
	}

	if raw, ok := lookupSetting(settings, "new"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("new: %w", err)
		}
		cfg.NewRoot = val
	}

	if raw, ok := lookupSetting(settings, "summaryfile", "summary_file", "summary-file"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("summaryFile: %w", err)
		}
		if val != "" {
			cfg.SummaryFile = val
		}
	}

	if raw, ok := lookupSetting(settings, "jsonoutput", "json_output", "json-output", "json"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("jsonOutput: %w", err)
		}
		cfg.JSONOutput = val
	}

	if raw, ok := lookupSetting(settings, "htmloutput", "html_output", "html-output"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("htmlOutput: %w", err)
		}
		cfg.HTMLOutput = val
	}

	if raw, ok := lookupSetting(settings, "nocolor", "no_color", "no-color"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("noColor: %w", err)
		}
		cfg.NoColor = val
	}

	if raw, ok := lookupSetting(settings, "keepgoing", "keep_going", "keep-going"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("keepGoing: %w", err)
		}
		cfg.KeepGoing = val
	}

	if raw, ok := lookupSetting(settings, "workers"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("workers: %w", err)
		}
		cfg.Workers = val
	}

	if raw, ok := lookupSetting(settings, "thresholds"); ok {
		val, err := asStringSlice(raw)
		if err != nil {
			return fmt.Errorf("thresholds: %w", err)
		}
		cfg.Thresholds = val
	}

	return nil
}
