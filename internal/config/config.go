package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort       int    `mapstructure:"APP_PORT"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`
	GenAIBaseURL  string `mapstructure:"GENAI_BASE_URL"`
	GenAIModel    string `mapstructure:"GENAI_MODEL"`
	DefaultAPIKey string `mapstructure:"DEFAULT_API_KEY"`
	DailyLimit    int    `mapstructure:"DAILY_LIMIT"`
	AdminToken    string `mapstructure:"ADMIN_TOKEN"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/linguachat.db")
	viper.SetDefault("GENAI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("GENAI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("DEFAULT_API_KEY", "")
	viper.SetDefault("DAILY_LIMIT", 4)
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
