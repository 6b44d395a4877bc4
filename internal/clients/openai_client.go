package clients

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	openAIRequestTimeout = 30 * time.Second // Outer HTTP timeout for individual OpenAI API requests
)

var (
	aiClientInstance *AIClient
	aiOnce           sync.Once
)

type AIClient struct {
	// Client is nil when no API key is configured; explanation generation
	// then degrades instead of failing requests.
	Client *openai.Client
}

func GetAIClient() *AIClient {
	aiOnce.Do(func() {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			slog.Warn("[OpenAIClient] Missing OPENAI_API_KEY, explanation generation disabled")
			aiClientInstance = &AIClient{}
			return
		}

		httpClient := &http.Client{
			Timeout: openAIRequestTimeout,
		}
		aiClientInstance = &AIClient{
			Client: openai.NewClient(
				option.WithAPIKey(apiKey),
				option.WithHTTPClient(httpClient),
			),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return aiClientInstance
}
