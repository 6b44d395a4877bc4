package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/emotiflow/internal/models"
)

const keyPrefix = "emotiflow:analysis:"

// Options for connecting the optional result cache.
type Options struct {
	InitAddress string
	Password    string
	UseTLS      bool
	TTL         time.Duration
}

// ResultCache is an opt-in, short-TTL cache of final analysis payloads.
// Keys are content hashes of the request text, never the text itself. The
// pipeline is fully functional without it: callers treat a nil *ResultCache
// as cache-off.
type ResultCache struct {
	client valkey.Client
	ttl    time.Duration
}

func New(opts Options) (*ResultCache, error) {
	clientOpts := valkey.ClientOption{
		InitAddress: []string{
			opts.InitAddress,
		},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if opts.UseTLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ResultCache] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ResultCache] failed to ping Valkey: %w", err)
	}

	slog.Info("[ResultCache] Successfully connected to valkey",
		slog.Duration("ttl", opts.TTL))

	return &ResultCache{client: client, ttl: opts.TTL}, nil
}

// Key derives the cache key for a request text: a SHA-256 digest so raw
// input never appears in the keyspace.
func Key(text string) string {
	digest := sha256.Sum256([]byte(text))
	return keyPrefix + hex.EncodeToString(digest[:])
}

// Get returns the cached result for the key, or false on miss or any error.
// Cache errors never fail a request.
func (c *ResultCache) Get(ctx context.Context, key string) (*models.AnalysisResult, bool) {
	if c == nil {
		return nil, false
	}

	res := c.client.Do(ctx, c.client.B().Get().Key(key).Build())
	payload, err := res.AsBytes()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ResultCache]cache read failed",
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		slog.Warn("[ResultCache] Dropping unreadable cache entry",
			slog.String("error", err.Error()))
		return nil, false
	}

	return &result, true
}

// Set stores the result under the key with the configured TTL. Best effort.
func (c *ResultCache) Set(ctx context.Context, key string, result *models.AnalysisResult) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		slog.Warn("[ResultCache] Failed to marshal result",
			slog.String("error", err.Error()))
		return
	}

	commands := []valkey.Completed{
		c.client.B().Set().Key(key).Value(string(payload)).Build(),
		c.client.B().Expire().Key(key).Seconds(int64(c.ttl.Seconds())).Build(),
	}
	for _, res := range c.client.DoMulti(ctx, commands...) {
		if err := res.Error(); err != nil {
			slog.Warn("[ResultCache] Failed to store result",
				slog.String("error", err.Error()))
			return
		}
	}
}

func (c *ResultCache) Close() {
	if c != nil {
		c.client.Close()
	}
}
