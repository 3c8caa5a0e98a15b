package vector

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

const DefaultDimension = 384

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Tokenize lowercases text and splits it into letter/digit runs.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// HashingEmbedder is a local feature-hashing embedder. Unigrams and
// adjacent bigrams are hashed into a fixed number of buckets with a signed
// FNV-1a hash, then L2 normalized. It never needs the corpus up front, so
// documents can be appended without changing the dimension.
type HashingEmbedder struct {
	dimension int
	stopwords map[string]struct{}
}

func NewHashingEmbedder(dimension int) *HashingEmbedder {
	if dimension <= 0 {
		dimension = DefaultDimension
	}

	return &HashingEmbedder{
		dimension: dimension,
		stopwords: defaultStopwords(),
	}
}

func (e *HashingEmbedder) Name() string {
	return "hashing"
}

func (e *HashingEmbedder) Dimension() int {
	return e.dimension
}

func (e *HashingEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vectors[i] = e.embed(text)
	}

	return vectors, nil
}

func (e *HashingEmbedder) embed(text string) []float32 {
	vec := make([]float32, e.dimension)

	var terms []string
	for _, tok := range Tokenize(text) {
		if _, ok := e.stopwords[tok]; ok {
			continue
		}

		terms = append(terms, tok)
	}

	for i, term := range terms {
		e.add(vec, term, 1)

		if i > 0 {
			e.add(vec, terms[i-1]+" "+term, 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}

	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}

	return vec
}

func (e *HashingEmbedder) add(vec []float32, feature string, weight float32) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := int(sum % uint64(e.dimension))
	if sum>>63 == 1 {
		weight = -weight
	}

	vec[bucket] += weight
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "for", "to", "of",
		"in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be",
		"it", "this", "that", "these", "those", "from", "so", "into", "about",
		"can", "will", "should", "what", "how", "my", "i", "do", "does",
	}

	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}

	return m
}
