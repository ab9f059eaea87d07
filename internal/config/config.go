package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DataFile    string     `mapstructure:"data_file" validate:"required"`
	HistoryFile string     `mapstructure:"history_file" validate:"required"`
	LogFile     string     `mapstructure:"log_file"`
	Quiz        QuizConfig `mapstructure:"quiz"`
	AI          AIConfig   `mapstructure:"ai"`
}

type QuizConfig struct {
	Size int `mapstructure:"size" validate:"min=1,max=20"`
}

type AIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Enabled reports whether translation suggestions can be requested
func (c AIConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vocabmaster")
	}

	v.SetDefault("data_file", "vocab_data.json")
	v.SetDefault("history_file", "vocab_history.db")
	v.SetDefault("log_file", "vocabmaster.log")
	v.SetDefault("quiz.size", 5)
	v.SetDefault("ai.model", "")

	v.SetEnvPrefix("VOCABMASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("ai.api_key", "ANTHROPIC_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind ANTHROPIC_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
