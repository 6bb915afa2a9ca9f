package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phanxgames/lattice"
)

// cliConfig holds command settings. Engine settings start from the LATTICE_*
// environment read by lattice.LoadConfig and are overridden by flags or the
// config file.
type cliConfig struct {
	Host     string       `mapstructure:"host"`
	Concrete string       `mapstructure:"concrete"`
	Engine   engineConfig `mapstructure:"engine"`
	Term     termConfig   `mapstructure:"term"`
	Window   windowConfig `mapstructure:"window"`
	Otel     otelConfig   `mapstructure:"otel"`
}

type engineConfig struct {
	OpenPolicy string `mapstructure:"open_policy"`
	Debug      bool   `mapstructure:"debug"`
}

type termConfig struct {
	TickMillis int `mapstructure:"tick_millis"`
	CellWidth  int `mapstructure:"cell_width"`
}

type windowConfig struct {
	CellSize int  `mapstructure:"cell_size"`
	ShowTPS  bool `mapstructure:"show_tps"`
}

type otelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Enabled  bool   `mapstructure:"enabled"`
}

// loadConfig reads file, env, and flags, in increasing precedence. Env var
// overrides use prefix LATTICE_ with dots replaced by underscores.
func loadConfig(cmd *cobra.Command) (cliConfig, error) {
	v := viper.New()

	v.SetDefault("host", "term")
	v.SetDefault("concrete", "LIME_CONCRETE")
	v.SetDefault("engine.open_policy", "")
	v.SetDefault("engine.debug", false)
	v.SetDefault("term.tick_millis", 50)
	v.SetDefault("term.cell_width", 4)
	v.SetDefault("window.cell_size", 48)
	v.SetDefault("window.show_tps", false)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.enabled", true)

	v.SetConfigType("toml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "lattice"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LATTICE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"host":               "host",
		"engine.open_policy": "policy",
		"engine.debug":       "debug",
		"concrete":           "concrete",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cliConfig{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	// read config file if present
	if err := v.ReadInConfig(); err != nil && configFile != "" {
		return cliConfig{}, fmt.Errorf("read config %s: %w", configFile, err)
	}

	var c cliConfig
	if err := v.Unmarshal(&c); err != nil {
		return cliConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// engineSettings layers CLI settings over the engine's environment config.
func engineSettings(c cliConfig) (lattice.Config, error) {
	cfg, err := lattice.LoadConfig()
	if err != nil {
		return lattice.Config{}, err
	}
	if c.Engine.OpenPolicy != "" {
		p := lattice.OpenPolicy(strings.ToLower(c.Engine.OpenPolicy))
		if !p.Valid() {
			return lattice.Config{}, fmt.Errorf("unknown open policy %q", c.Engine.OpenPolicy)
		}
		cfg.OpenPolicy = p
	}
	if c.Engine.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}
