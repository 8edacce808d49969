package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	Port string

	// Chat platform credentials.
	ChatBotToken      string
	ChatSigningSecret string
	ChatAPIURL        string

	// Catalog (Spotify Web API) credentials.
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyAPIURL       string
	SpotifyAccountsURL  string
	SpotifyMarket       string

	// Language model / image generation.
	OpenAIAPIKey     string
	OpenAIAPIURL     string
	OpenAIModel      string
	OpenAIImageModel string

	// Token cache lifetime. The catalog token nominally lives 60 minutes;
	// caching for less keeps the lazy-expiry window safe.
	TokenCacheTTL time.Duration

	// Scoring tunables. The defaults mirror the values the curation engine
	// was tuned with; no derivation is documented for them.
	ScoreEnergyWeight     float64
	ScoreValenceWeight    float64
	ScorePopularityWeight float64
	FeatureJitterWidth    float64
	FeatureJitterBias     float64

	// Logging.
	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat gets an environment variable as float64 or returns a default value.
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		ChatBotToken:      os.Getenv("CHAT_BOT_TOKEN"),
		ChatSigningSecret: os.Getenv("CHAT_SIGNING_SECRET"),
		ChatAPIURL:        getEnv("CHAT_API_URL", "https://slack.com/api"),

		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyAPIURL:       getEnv("SPOTIFY_API_URL", "https://api.spotify.com/v1"),
		SpotifyAccountsURL:  getEnv("SPOTIFY_ACCOUNTS_URL", "https://accounts.spotify.com/api/token"),
		SpotifyMarket:       getEnv("SPOTIFY_MARKET", "US"),

		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL:     getEnv("OPENAI_API_URL", "https://api.openai.com/v1"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),

		TokenCacheTTL: time.Duration(getEnvInt("TOKEN_CACHE_TTL_MINUTES", 50)) * time.Minute,

		ScoreEnergyWeight:     getEnvFloat("SCORE_ENERGY_WEIGHT", 0.4),
		ScoreValenceWeight:    getEnvFloat("SCORE_VALENCE_WEIGHT", 0.4),
		ScorePopularityWeight: getEnvFloat("SCORE_POPULARITY_WEIGHT", 0.2),
		FeatureJitterWidth:    getEnvFloat("FEATURE_JITTER_WIDTH", 0.4),
		FeatureJitterBias:     getEnvFloat("FEATURE_JITTER_BIAS", -0.2),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
