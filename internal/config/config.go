package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// OpenAI provider. An empty APIKey degrades the AI endpoints:
	// generation falls back to demo material, speech endpoints return
	// a configuration error.
	OpenAIAPIKey string
	OpenAIModel  string

	// Supabase persistence (PostgREST + storage). Optional.
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	// Direct Postgres persistence, used when Supabase is not configured.
	DatabaseURL string
	MaxDBConns  int32

	// Redis TTS audio cache. Optional.
	RedisURL string

	TokenSecret string
	TokenExpiry time.Duration
	BcryptCost  int

	// Demo credential pair accepted by /auth/login.
	DemoEmail    string
	DemoPassword string
	DemoName     string
	DemoSchool   string

	MaxAudioBytes int64
	WebDir        string
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins
	// are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
		SupabaseURL:    getEnv("SUPABASE_URL", ""),
		SupabaseKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseBucket: getEnv("SUPABASE_BUCKET", "tts-audio"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MaxDBConns:     int32(getEnvInt("MAX_DB_CONNS", 8)),
		RedisURL:       getEnv("REDIS_URL", ""),
		TokenSecret:    getEnv("TOKEN_SECRET", "change-this-to-a-secure-random-string"),
		TokenExpiry:    time.Duration(getEnvInt("TOKEN_EXPIRY_HOURS", 24)) * time.Hour,
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		DemoEmail:      getEnv("DEMO_EMAIL", "demo@example.com"),
		DemoPassword:   getEnv("DEMO_PASSWORD", "demo123"),
		DemoName:       getEnv("DEMO_NAME", "데모 사용자"),
		DemoSchool:     getEnv("DEMO_SCHOOL", "데모 초등학교"),
		MaxAudioBytes:  int64(getEnvInt("MAX_AUDIO_SIZE_MB", 25)) * 1024 * 1024,
		WebDir:         getEnv("WEB_DIR", "./web"),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// HasOpenAI reports whether the AI provider key is configured.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// HasSupabase reports whether the hosted database is configured.
func (c *Config) HasSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
