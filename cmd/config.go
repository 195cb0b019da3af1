package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/agentlab/ideaforge/internal/config"
	"github.com/agentlab/ideaforge/internal/orchestrator"
)

const configName = ".ideaforge"

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	config.InitViper()

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newOrchestrator loads configuration and builds the agent team behind the
// provider gateway.
func newOrchestrator() (*orchestrator.Orchestrator, *config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return orchestrator.New(cfg.LLM.NewGateway(), cfg.Agents.NumIdeas), cfg, nil
}
