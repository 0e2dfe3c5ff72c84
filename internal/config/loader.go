package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory under $XDG_CONFIG_HOME (or ~/.config).
	GlobalConfigDir = "powerdash"
	// GlobalConfigFile is the per-user dashboard config.
	GlobalConfigFile = "config.yaml"
	// ProjectConfigDir holds the config of the working directory.
	ProjectConfigDir = ".powerdash"
	// ProjectConfigFile is the project dashboard config.
	ProjectConfigFile = "config.yaml"
	// EnvPrefix prefixes every environment override (POWERDASH_SERVICE_BASE_URL).
	EnvPrefix = "POWERDASH"
	// KeyConfigFile is the viper key of the explicit --config path.
	KeyConfigFile = "config"
)

// fileLayer is one YAML file merged over the settings before it.
type fileLayer struct {
	name     string
	path     string
	required bool
}

// fileLayers lists the config files for v, lowest precedence first.
// Optional layers are included only when the file exists.
func fileLayers(v *viper.Viper) []fileLayer {
	var layers []fileLayer
	if path := globalConfigPath(); path != "" {
		layers = append(layers, fileLayer{name: "global", path: path})
	}
	if path := projectConfigPath(); path != "" {
		layers = append(layers, fileLayer{name: "project", path: path})
	}
	if path := v.GetString(KeyConfigFile); path != "" {
		layers = append(layers, fileLayer{name: "explicit", path: path, required: true})
	}
	return layers
}

// LoadConfig resolves the dashboard configuration. Later layers win:
//  1. Default() values
//  2. $XDG_CONFIG_HOME/powerdash/config.yaml
//  3. .powerdash/config.yaml
//  4. the --config file, which must exist
//  5. POWERDASH_* environment variables
//  6. flags the user set, already bound to v
//
// Environment and flags are read by v itself at decode time, so they
// override every file layer. The result is validated.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := Default()

	defaults, err := defaultsMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	if err := v.MergeConfigMap(defaults); err != nil {
		return nil, fmt.Errorf("merge defaults: %w", err)
	}

	for _, layer := range fileLayers(v) {
		if err := mergeLayer(v, layer); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg, decodeHooks()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// globalConfigPath returns the per-user config path if the file exists.
func globalConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return existing(filepath.Join(configDir, GlobalConfigDir, GlobalConfigFile))
}

// projectConfigPath returns the project config path if the file exists.
func projectConfigPath() string {
	return existing(filepath.Join(ProjectConfigDir, ProjectConfigFile))
}

func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// mergeLayer reads the layer's YAML and merges it into v. A vanished
// optional file is skipped.
func mergeLayer(v *viper.Viper, layer fileLayer) error {
	file, err := os.Open(layer.path)
	if err != nil {
		if os.IsNotExist(err) && !layer.required {
			return nil
		}
		return fmt.Errorf("%s config file: %w", layer.name, err)
	}
	defer func() { _ = file.Close() }()

	fileViper := viper.New()
	fileViper.SetConfigType("yaml")
	if err := fileViper.ReadConfig(file); err != nil {
		return fmt.Errorf("load %s: %w", layer.path, err)
	}
	return v.MergeConfigMap(fileViper.AllSettings())
}

// decodeHooks parses durations ("30s") and comma-separated format lists.
func decodeHooks() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// defaultsMap flattens cfg into the nested map viper merges as its base layer.
func defaultsMap(cfg *Config) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "mapstructure",
		Result:     &result,
		DecodeHook: durationToString(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	return result, nil
}

// durationToString keeps durations in the form YAML files use.
func durationToString() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return data.(time.Duration).String(), nil
	}
}
