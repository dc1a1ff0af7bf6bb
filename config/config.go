package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB       int    `mapstructure:"REDIS_CONTEXT_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// LLM and speech providers.
	GeminiAPIKey             string `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey             string `mapstructure:"OPENAI_API_KEY"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// The assistant works in one fixed locale; all conflict math and
	// spoken date phrasing happens in this timezone.
	UserTimezone string `mapstructure:"USER_TIMEZONE"`

	// Minimum interval between remote TTS calls before falling back to
	// client-side synthesis.
	TTSMinIntervalMS int `mapstructure:"TTS_MIN_INTERVAL_MS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONTEXT_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("USER_TIMEZONE", "America/New_York")
	viper.SetDefault("TTS_MIN_INTERVAL_MS", 3000)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UserLocation resolves the configured user timezone, falling back to UTC
// if the name is unknown.
func UserLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.UserTimezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC", AppConfig.UserTimezone)
		return time.UTC
	}
	return loc
}

// TTSMinInterval returns the configured minimum spacing between remote
// TTS calls.
func TTSMinInterval() time.Duration {
	return time.Duration(AppConfig.TTSMinIntervalMS) * time.Millisecond
}
