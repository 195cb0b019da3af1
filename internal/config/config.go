// Package config provides centralized configuration for ideaforge.
// Precedence: explicit Viper config > environment variables > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Server defaults.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8000
	DefaultStaticDir = "static"
)

// DefaultNumIdeas is how many ideas the coach generates per request when the
// caller does not say otherwise.
const DefaultNumIdeas = 5

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host      string `mapstructure:"host" validate:"required"`
	Port      int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	StaticDir string `mapstructure:"staticDir" validate:"required"`
}

// AgentConfig holds agent-team tunables.
type AgentConfig struct {
	NumIdeas int `mapstructure:"numIdeas" validate:"gte=1,lte=20"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	Server ServerConfig `mapstructure:"server"`
	Agents AgentConfig  `mapstructure:"agents"`
	LLM    LLMSettings  `mapstructure:"llm"`
}

// InitViper wires the IDEAFORGE_* environment namespace into Viper so that
// e.g. IDEAFORGE_SERVER_PORT maps to server.port.
func InitViper() {
	viper.SetEnvPrefix("IDEAFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads a .env file if one exists, resolves all settings, and validates
// the result.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()
	InitViper()

	cfg := &AppConfig{
		Server: ServerConfig{
			Host:      stringSetting("server.host", DefaultHost),
			Port:      intSetting("server.port", DefaultPort),
			StaticDir: stringSetting("server.staticDir", DefaultStaticDir),
		},
		Agents: AgentConfig{
			NumIdeas: intSetting("agents.numIdeas", DefaultNumIdeas),
		},
	}

	llmSettings, err := LoadLLMSettings()
	if err != nil {
		return nil, err
	}
	cfg.LLM = llmSettings

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func stringSetting(key, def string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return def
}

func intSetting(key string, def int) int {
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return def
}
