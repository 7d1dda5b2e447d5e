package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads a .env file from the working directory when one exists.
// Variables already set in the process environment win.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

func getEnv(key string, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

var (
	GoogleAPIKey = func() string { return getEnv("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")) }
	OpenAIAPIKey = func() string { return getEnv("OPENAI_API_KEY", "") }

	LLMProvider       = func() string { return strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderGemini)) }
	EmbeddingProvider = func() string { return strings.ToLower(getEnv("EMBEDDING_PROVIDER", LLMProvider())) }
	VectorBackend     = func() string { return strings.ToLower(getEnv("VECTOR_BACKEND", VectorBackendQdrant)) }

	QdrantHostAddr = func() string { return getEnv("QDRANT_HOST", QdrantHost) }
	QdrantPortNum  = func() int { return getEnvInt("QDRANT_PORT", QdrantGrpcPort) }
	QdrantAPIKey   = func() string { return getEnv("QDRANT_API_KEY", "") }

	RedisAddress  = func() string { return getEnv("REDIS_ADDR", RedisAddr) }
	RedisPassword = func() string { return getEnv("REDIS_PASSWORD", "") }

	AuthToken    = func() string { return getEnv("API_AUTH_TOKEN", "") }
	NoAuthBypass = func() bool { return getEnvBool("API_NO_AUTH", !IS_PROD) }

	SECAgent = func() string { return getEnv("SEC_USER_AGENT", SECUserAgent) }

	SummaryRequestsPerMinute = func() int { return getEnvInt("SUMMARY_RATE_PER_MINUTE", summaryRatePerMinute) }
	SummaryRequestBurst      = func() int { return getEnvInt("SUMMARY_RATE_BURST", summaryRateBurst) }
)
