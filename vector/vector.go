package vector

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmbedderUnavailable = errors.New("embedding provider unavailable")
	ErrEmbedding           = errors.New("embedding failed")
	ErrDimensionMismatch   = errors.New("vector dimension mismatch")
	ErrIndexNotFound       = errors.New("index file not found")
)

type ProviderType string

const (
	ProviderNone    ProviderType = "none"
	ProviderHashing ProviderType = "hashing"
	ProviderOllama  ProviderType = "ollama"
	ProviderOpenAI  ProviderType = "openai"
)

type Config struct {
	Provider     ProviderType  `yaml:"provider"`
	Model        string        `yaml:"model"`
	BaseURL      string        `yaml:"baseURL"`
	APIKeyEnv    string        `yaml:"apiKeyEnv"`
	Dimension    int           `yaml:"dimension"`
	Timeout      time.Duration `yaml:"timeout"`
	ProbeTimeout time.Duration `yaml:"probeTimeout"`
	Path         string        `yaml:"path"`
	Collection   string        `yaml:"collection"`
	Compress     bool          `yaml:"compress"`
}

// Embedder maps text to fixed-dimension vectors.
type Embedder interface {
	Name() string

	// Dimension is zero until the first successful Encode for remote providers.
	Dimension() int

	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Neighbor is a single search hit. Lower distance means closer.
type Neighbor struct {
	Distance float64
	Position int
}

// Index is a nearest-neighbor structure addressed by corpus position.
type Index interface {
	Add(ctx context.Context, positions []int, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]Neighbor, error)
	Len() int
	Reset() error
	Save() error
	Load() error
}

// Similarity maps a distance onto a score where higher is better.
func Similarity(distance float64) float64 {
	if distance < 0 {
		distance = 0
	}

	return 1 / (1 + distance)
}

// IsZero reports whether v has no direction, which cosine search cannot rank.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}

	return true
}
