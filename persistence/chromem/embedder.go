package chromem

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/philippgille/chromem-go"

	"github.com/flarexio/agrimithra/vector"
)

const (
	DefaultOllamaModel = "nomic-embed-text"
	DefaultOpenAIModel = string(chromem.EmbeddingModelOpenAI3Small)
	DefaultAPIKeyEnv   = "OPENAI_API_KEY"
)

// NewEmbedder builds the configured embedding provider. Remote providers
// are served through chromem-go's embedding functions. A provider of "none"
// (or an empty one) yields vector.ErrEmbedderUnavailable.
func NewEmbedder(cfg vector.Config) (vector.Embedder, error) {
	switch cfg.Provider {
	case vector.ProviderHashing:
		return vector.NewHashingEmbedder(cfg.Dimension), nil

	case vector.ProviderOllama:
		model := cfg.Model
		if model == "" {
			model = DefaultOllamaModel
		}

		fn := chromem.NewEmbeddingFuncOllama(model, cfg.BaseURL)
		return NewFuncEmbedder("ollama/"+model, fn, cfg.Timeout), nil

	case vector.ProviderOpenAI:
		env := cfg.APIKeyEnv
		if env == "" {
			env = DefaultAPIKeyEnv
		}

		key := os.Getenv(env)
		if key == "" {
			return nil, fmt.Errorf("%w: missing API key in env %s", vector.ErrEmbedderUnavailable, env)
		}

		model := cfg.Model
		if model == "" {
			model = DefaultOpenAIModel
		}

		var fn chromem.EmbeddingFunc
		if cfg.BaseURL != "" {
			fn = chromem.NewEmbeddingFuncOpenAICompat(cfg.BaseURL, key, model, nil)
		} else {
			fn = chromem.NewEmbeddingFuncOpenAI(key, chromem.EmbeddingModelOpenAI(model))
		}

		return NewFuncEmbedder("openai/"+model, fn, cfg.Timeout), nil

	case vector.ProviderNone, "":
		return nil, vector.ErrEmbedderUnavailable

	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", vector.ErrEmbedderUnavailable, cfg.Provider)
	}
}

func NewFuncEmbedder(name string, fn chromem.EmbeddingFunc, timeout time.Duration) *FuncEmbedder {
	return &FuncEmbedder{
		name:    name,
		fn:      fn,
		timeout: timeout,
	}
}

// FuncEmbedder adapts a chromem.EmbeddingFunc to vector.Embedder.
type FuncEmbedder struct {
	name    string
	fn      chromem.EmbeddingFunc
	timeout time.Duration

	dimension atomic.Int64
}

func (e *FuncEmbedder) Name() string {
	return e.name
}

func (e *FuncEmbedder) Dimension() int {
	return int(e.dimension.Load())
}

func (e *FuncEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.encode(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", vector.ErrEmbedding, err)
		}

		dim := int64(len(v))
		if !e.dimension.CompareAndSwap(0, dim) && e.dimension.Load() != dim {
			return nil, vector.ErrDimensionMismatch
		}

		vectors[i] = v
	}

	return vectors, nil
}

func (e *FuncEmbedder) encode(ctx context.Context, text string) ([]float32, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	return e.fn(ctx, text)
}

// EmbeddingFunc exposes an Embedder as a chromem.EmbeddingFunc so that a
// collection can embed text on its own when asked to.
func EmbeddingFunc(embedder vector.Embedder) chromem.EmbeddingFunc {
	if embedder == nil {
		return nil
	}

	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := embedder.Encode(ctx, []string{text})
		if err != nil {
			return nil, err
		}

		return vectors[0], nil
	}
}
