package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/sibap-dev/storm/internal/shared/telemetry"
)

// Object store kinds.
const (
	StoreLocal = "local"
	StoreS3    = "s3"
	StoreNone  = "none"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	CORSAllowOrigin []string
	UploadTmpDir    string
	MaxUploadBytes  int64
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	DatabaseURL     string
	TaxonomyFile    string
	RedisURL        string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	store := normalizeStoreType(getEnv("OBJECT_STORE", StoreLocal))

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		UploadTmpDir:    getEnv("UPLOAD_TMP_DIR", os.TempDir()),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
		ObjectStoreType: store,
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		TaxonomyFile:    getEnv("TAXONOMY_FILE", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:  int(getEnvInt64("RATE_LIMIT_BURST", 5)),
	}

	if cfg.ObjectStoreType == StoreS3 && cfg.S3Bucket == "" {
		telemetry.Warn("config.s3_bucket_missing", map[string]any{"object_store": cfg.ObjectStoreType})
	}
	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StoreS3:
		return StoreS3
	case StoreNone, "off", "disabled":
		return StoreNone
	default:
		return StoreLocal
	}
}
