package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/npratt/powerdash/internal/config"
)

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagBaseURL = "base-url"
	FlagTimeout = "timeout"
	FlagLogFile = "log-file"

	// Dashboard command flags
	FlagTUI         = "tui"
	FlagAutoRefresh = "auto-refresh"

	// Selection flags
	FlagRows      = "rows"
	FlagModel     = "model"
	FlagChart     = "chart"
	FlagComponent = "component"

	// Output format flags
	FlagJSON = "json"

	// Export command flags
	FlagFormat = "format"
	FlagOut    = "out"
)

// flagKeys maps flags onto the config keys they override. Flags not listed
// bind under their own name.
var flagKeys = map[string]string{
	FlagBaseURL:     "service.base_url",
	FlagTimeout:     "service.timeout",
	FlagLogFile:     "paths.log",
	FlagAutoRefresh: "dashboard.auto_refresh_interval",
	FlagRows:        "dashboard.row_limit",
	FlagModel:       "dashboard.model",
	FlagChart:       "dashboard.chart_type",
	FlagComponent:   "dashboard.component",
	FlagFormat:      "export.formats",
	FlagOut:         "paths.export_dir",
}

// newViper returns a viper instance reading POWERDASH_* environment
// variables. Nested keys use underscores: POWERDASH_SERVICE_BASE_URL.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags binds every flag of the running command to v. Only flags the
// user set take precedence over config files and the environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if k, ok := flagKeys[f.Name]; ok {
			key = k
		}
		_ = v.BindPFlag(key, f)
	})
}
