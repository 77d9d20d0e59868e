// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	Port           string `mapstructure:"PORT"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	Env            string `mapstructure:"APP_ENV"`

	TMDBAPIKey  string `mapstructure:"TMDB_API_KEY"`
	TMDBBaseURL string `mapstructure:"TMDB_BASE_URL"`

	// MatchRequireFriendship gates pairwise match queries on an accepted
	// friendship edge. The original system did not enforce this, so it
	// defaults off; it is a policy flag, not a hard-coded behavior.
	MatchRequireFriendship bool `mapstructure:"MATCH_REQUIRE_FRIENDSHIP"`
	// MatchFetchMissingMetadata controls whether match computations fetch
	// uncached movie metadata inline from TMDB. When off (or when the fetch
	// fails), matches are returned with null display fields instead of being
	// dropped.
	MatchFetchMissingMetadata bool `mapstructure:"MATCH_FETCH_MISSING_METADATA"`
	// MovieCacheTTLDays is the staleness threshold for movies_cache rows.
	MovieCacheTTLDays int `mapstructure:"MOVIE_CACHE_TTL_DAYS"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config.
	// The config file may legitimately not exist yet.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	// Set default values for development
	viper.SetDefault("PORT", "8480")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "flick")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("MATCH_REQUIRE_FRIENDSHIP", false)
	viper.SetDefault("MATCH_FETCH_MISSING_METADATA", true)
	viper.SetDefault("MOVIE_CACHE_TTL_DAYS", 7)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env == "production" {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default in production")
		}
		if c.TMDBAPIKey == "" {
			return errors.New("TMDB_API_KEY is required in production")
		}
	}
	if c.MovieCacheTTLDays <= 0 {
		return errors.New("MOVIE_CACHE_TTL_DAYS must be positive")
	}
	return nil
}
