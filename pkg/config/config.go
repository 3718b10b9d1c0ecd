package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/limaJavier/classtables/pkg/compiler"
	"github.com/limaJavier/classtables/pkg/fet"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	envPrefix = "CLASSTABLES"
)

type Config struct {
	Env              string `mapstructure:"env"`
	compiler.Options `mapstructure:",squash"`
	Log              LogConfig         `mapstructure:"log"`
	Fet              fet.RunnerOptions `mapstructure:"fet"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the configuration from file, or from a config.json next to the executable or in the
// working directory when file is empty. Every key may be overridden by a CLASSTABLES_* variable
func Load(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		if executable, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(executable))
		}
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	options := compiler.DefaultOptions()

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("weights.default", options.Weights.Default)
	v.SetDefault("weights.lunch_end_day", options.Weights.LunchEndDay)
	v.SetDefault("subjects.lunch", options.Subjects.Lunch)
	v.SetDefault("subjects.free_afternoon", options.Subjects.FreeAfternoon)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("fet.path", fet.DefaultPath)
	v.SetDefault("fet.time_limit", "0s")
	v.SetDefault("fet.output_dir", "")
}
