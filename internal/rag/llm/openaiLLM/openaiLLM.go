package openaiLLM

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/akolanti/EarningsAPI/internal/config"
	"github.com/akolanti/EarningsAPI/internal/rag/llm"
	"github.com/akolanti/EarningsAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger = logger_i.NewLogger("llm_openai")
var once sync.Once
var openaiClient *llmClient

type llmClient struct {
	api       openai.Client
	modelName string
}

// GetOpenAIClient returns nil when no API key is configured.
func GetOpenAIClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		if apikey == "" {
			logger.Error("OPENAI_API_KEY is not set")
			return
		}
		openaiClient = &llmClient{
			api:       openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *llmClient) Generate(ctx context.Context, question string, matches []string) (string, error) {
	log := logger.WithTrace(ctx)

	ctx, cancel := context.WithTimeout(ctx, config.LLMCallTimeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(llm.BuildPrompt(question, matches)),
		},
		Model:       openai.ChatModel(c.modelName),
		Temperature: openai.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		log.Error("OpenAI call failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
