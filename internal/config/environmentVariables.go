package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internals in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5
	RateLimiterIdleTTL              = 10 * time.Minute
	summaryRatePerMinute            = 6 //each submission is a full pipeline run
	summaryRateBurst                = 3

	//pipeline
	DefaultForm            = "8-K"
	SimilarityTopK         = 3
	MetricQueryConcurrency = 1 //1 keeps the five metric queries sequential
	PipelineTimeout        = 5 * time.Minute

	//chunking
	ChunkSize      = 1500 //characters
	ChunkOverlap   = 200
	EmbedBatchSize = 100

	//TODO:this will differ based on the request and provider
	EmbeddingOutputDimensionality int32 = 1536
	ExhibitCollectionPrefix             = "exhibit-"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100
	JobTimeout  = PipelineTimeout

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second

	//llm
	LLMProviderGemini   = "gemini"
	LLMProviderOpenAI   = "openai"
	GeminiModelName     = "gemini-2.5-flash-lite-preview-09-2025"
	OpenAIModelName     = "gpt-4o-mini"
	LLMCallTimeout      = 60 * time.Second
	EmbeddingRetryDelay = 5 * time.Second

	//embeddings
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	ModelTemperature float32 = 0.1
	ModelContext             = "You are a financial analyst reading a company's earnings release. Answer strictly from the supplied context. Keep answers short and factual. If the context does not contain the answer, say it is not available."

	VectorBackendQdrant = "qdrant"
	VectorBackendMemory = "memory"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//SEC EDGAR
	SECUserAgent          = "EarningsAPI research contact@example.com"
	SECRequestsPerSecond  = 8 //fair access policy caps at 10
	SECRequestTimeout     = 30 * time.Second
	SECTickersURL         = "https://www.sec.gov/files/company_tickers.json"
	SECSubmissionsBaseURL = "https://data.sec.gov"
	SECArchivesBaseURL    = "https://www.sec.gov"
	MaxExhibitBytes       = 50 << 20

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore = 0

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour

	//MCP
	MCPServerName    = "earnings-summariser"
	MCPServerVersion = "0.1.0"
)
