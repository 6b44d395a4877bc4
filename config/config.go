package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, parsed from the environment after
// LoadEnv has run.
type Config struct {
	ServerAddress string `envconfig:"SERVER_ADDRESS" default:":8080"`
	ModelDir      string `envconfig:"MODEL_DIR" default:"./models"`

	// SentimentBackend selects the sentiment classifier: "onnx" for the
	// local transformer model, "vader" for the lexicon-based alternative.
	SentimentBackend string  `envconfig:"SENTIMENT_BACKEND" default:"onnx"`
	NeutralThreshold float64 `envconfig:"NEUTRAL_THRESHOLD" default:"0.55"`

	OpenAIModel       string        `envconfig:"OPENAI_MODEL"`
	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"5s"`

	// Result cache is enabled only when an address is set.
	ValkeyAddress  string        `envconfig:"VALKEY_INIT_ADDRESS"`
	ValkeyPassword string        `envconfig:"VALKEY_PASSWORD"`
	ValkeyTLS      bool          `envconfig:"VALKEY_TLS"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
