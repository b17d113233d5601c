package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port           string
	Timezone       string
	DBPath         string
	JWTSecret      string
	JWTTTL         time.Duration
	EnableDevLogin bool
	LogLevel       string
	LogFormat      string

	// client side (cmd/plotctl)
	APIBaseURL string
	APIToken   string
	APITimeout time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() AppConfig {
	envErr := godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("TZ", "Africa/Tunis")
	v.SetDefault("DB_PATH", "fieldplot.db")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("ENABLE_DEV_LOGIN", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TOKEN", "")
	v.SetDefault("API_TIMEOUT", "15s")

	cfg := AppConfig{
		Port:           v.GetString("PORT"),
		Timezone:       v.GetString("TZ"),
		DBPath:         v.GetString("DB_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		EnableDevLogin: v.GetBool("ENABLE_DEV_LOGIN"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		APIBaseURL:     v.GetString("API_BASE_URL"),
		APIToken:       v.GetString("API_TOKEN"),
		APITimeout:     v.GetDuration("API_TIMEOUT"),
	}
	if envErr != nil {
		zap.L().Debug("[cfg] no .env file loaded", zap.Error(envErr))
	}
	return cfg
}

// Fields is the loggable view of the config; secrets are left out.
func (c AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("tz", c.Timezone),
		zap.String("db_path", c.DBPath),
		zap.Duration("jwt_ttl", c.JWTTTL),
		zap.Bool("dev_login", c.EnableDevLogin),
		zap.String("log_level", c.LogLevel),
		zap.String("api_base_url", c.APIBaseURL),
	}
}
