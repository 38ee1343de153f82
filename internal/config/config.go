package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Search   SearchConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AnalyticsLogPath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini   string
	IndexTopic     string // POI indexing topic
	AnalyticsTopic string // search analytics topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
}

// SearchConfig tunes retrieval and ranking.
type SearchConfig struct {
	TopK                int
	SimilarityThreshold float64
	MaxResults          int
	MaxDistanceKm       float64
	EmbedTimeout        time.Duration
	HoursHorizon        time.Duration
}

// SessionConfig tunes conversation-state storage.
type SessionConfig struct {
	Backend       string // "redis" or "memory"
	TTL           time.Duration
	MemoryTTL     time.Duration
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AnalyticsLogPath:   getEnv("ANALYTICS_LOG_PATH", "logs/analytics.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			IndexTopic:     getEnv("INDEX_POI_TOPIC_NAME", "INDEX_POI"),
			AnalyticsTopic: getEnv("SEARCH_ANALYTICS_TOPIC_NAME", "SEARCH_ANALYTICS"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Search: SearchConfig{
			TopK:                getEnvAsInt("SEARCH_TOP_K", 15),
			SimilarityThreshold: getEnvAsFloat("SEARCH_SIMILARITY_THRESHOLD", 0.3),
			MaxResults:          getEnvAsInt("SEARCH_MAX_RESULTS", 20),
			MaxDistanceKm:       getEnvAsFloat("SEARCH_MAX_DISTANCE_KM", 10),
			EmbedTimeout:        getEnvAsDuration("SEARCH_EMBED_TIMEOUT", 10*time.Second),
			HoursHorizon:        getEnvAsDuration("SEARCH_HOURS_HORIZON", time.Hour),
		},
		Session: SessionConfig{
			Backend:       getEnv("SESSION_BACKEND", "redis"),
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			MemoryTTL:     getEnvAsDuration("SESSION_MEMORY_TTL", time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
