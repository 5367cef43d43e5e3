// Package config loads the simulator settings from an optional config.yaml
// and ESCALONADOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "ESCALONADOR"

type SchedulerConfig struct {
	Port     int
	Quantum  int64
	Format   string
	LogLevel string
	Tracing  TracingConfig
}

type TracingConfig struct {
	Enabled bool
	Output  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("quantum", 0)
	v.SetDefault("format", "table")
	v.SetDefault("log_level", "info")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.output", "")
}

// Load reads configuration. With an empty path config.yaml is looked up in
// the working directory and its absence is not an error; an explicit path
// must exist.
func Load(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading config", err)
		}
	}

	config := &SchedulerConfig{
		Port:     v.GetInt("port"),
		Quantum:  v.GetInt64("quantum"),
		Format:   v.GetString("format"),
		LogLevel: v.GetString("log_level"),
		Tracing: TracingConfig{
			Enabled: v.GetBool("tracing.enabled"),
			Output:  v.GetString("tracing.output"),
		},
	}
	if config.Quantum < 0 {
		return nil, fmt.Errorf("invalid quantum %d in config", config.Quantum)
	}
	return config, nil
}
