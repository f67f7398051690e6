package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the YAML config at path. Environment variables with the APP_
// prefix override file values (APP_POSTGRES_PASSWORD beats postgres.password).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Postgres.User == "" || config.Postgres.DBName == "" {
		return nil, fmt.Errorf("postgres user and dbname are required (set postgres.* in %s or APP_POSTGRES_* env)", path)
	}
	return &config, nil
}
