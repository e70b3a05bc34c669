package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port               string
	CORSAllowOrigin    []string
	Env                string
	ObjectStoreType    string
	LocalStoreDir      string
	AWSRegion          string
	UploadsBucket      string
	BillsTable         string
	BedrockRegion      string
	BedrockModelID     string
	BedrockMaxTokens   int
	DatabaseURL        string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

const (
	// defaultBedrockModelID is the model the bill analysis prompt was tuned for.
	defaultBedrockModelID   = "anthropic.claude-3-sonnet-20240229-v1:0"
	defaultBedrockMaxTokens = 2000
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	region := getEnv("AWS_REGION", "eu-west-1")

	return Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		Env:                env,
		ObjectStoreType:    normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:      getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:          region,
		UploadsBucket:      getEnv("BILLS_S3_BUCKET", ""),
		BillsTable:         getEnv("BILLS_TABLE_NAME", "UtilityBills"),
		BedrockRegion:      getEnv("BEDROCK_REGION", region),
		BedrockModelID:     getEnv("BEDROCK_MODEL_ID", defaultBedrockModelID),
		BedrockMaxTokens:   getEnvInt("BEDROCK_MAX_TOKENS", defaultBedrockMaxTokens),
		DatabaseURL:        dbURL,
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", "http://localhost:3000/auth/callback"),
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStoreType(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
