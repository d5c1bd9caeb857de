package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr string `mapstructure:"SERVER_ADDR"`

	PgHost     string `mapstructure:"PG_HOST"`
	PgPort     string `mapstructure:"PG_PORT"`
	PgUser     string `mapstructure:"PG_USER"`
	PgPassword string `mapstructure:"PG_PASSWORD"`
	PgName     string `mapstructure:"PG_NAME"`

	GroqApiKey  string `mapstructure:"GROQ_API_KEY"`
	GroqBaseUrl string `mapstructure:"GROQ_BASE_URL"`
	ModelName   string `mapstructure:"MODEL_NAME"`

	JwtSecret string `mapstructure:"JWT_SECRET"`
	UploadDir string `mapstructure:"UPLOAD_DIR"`
}

// NewConfig загружает конфигурацию из .env файла и переменных окружения
func NewConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDR", ":5641")
	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", "5432")
	v.SetDefault("PG_USER", "postgres")
	v.SetDefault("PG_PASSWORD", "")
	v.SetDefault("PG_NAME", "brd")
	v.SetDefault("GROQ_API_KEY", "")
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("MODEL_NAME", "llama3-70b-8192")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("UPLOAD_DIR", "uploads")

	if err := v.ReadInConfig(); err != nil {
		// Файл может отсутствовать — тогда работаем только с окружением
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if cfg.GroqApiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY не задан")
	}
	if cfg.JwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET не задан")
	}

	return &cfg, nil
}
