package agrimithra

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/flarexio/agrimithra/vector"
)

// Retriever ranks corpus documents against a query, best first.
type Retriever interface {
	Mode() RetrievalMode
	Retrieve(ctx context.Context, query string, k int) ([]Match, error)
}

type lexicalRetriever struct {
	kb *KnowledgeBase
}

func (r *lexicalRetriever) Mode() RetrievalMode {
	return ModeLexical
}

// Retrieve scores each document by the share of distinct query words it
// contains. Zero scores are dropped and ties keep corpus order.
func (r *lexicalRetriever) Retrieve(ctx context.Context, query string, k int) ([]Match, error) {
	terms := wordSet(query)
	if len(terms) == 0 || k <= 0 {
		return []Match{}, nil
	}

	r.kb.mu.RLock()
	defer r.kb.mu.RUnlock()

	matches := make([]Match, 0)
	for _, doc := range r.kb.docs {
		words := wordSet(doc.Text())

		hits := 0
		for term := range terms {
			if _, ok := words[term]; ok {
				hits++
			}
		}

		if hits == 0 {
			continue
		}

		matches = append(matches, Match{
			Document: doc,
			Score:    float64(hits) / (float64(len(terms)) + 0.001),
		})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	return matches, nil
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range vector.Tokenize(text) {
		set[token] = struct{}{}
	}

	return set
}

type vectorRetriever struct {
	kb       *KnowledgeBase
	fallback Retriever
	log      *zap.Logger
}

func (r *vectorRetriever) Mode() RetrievalMode {
	return ModeVector
}

// Retrieve encodes the query outside any lock and searches the index. A
// stale index is rebuilt once; any other failure degrades this call to
// lexical matching.
func (r *vectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]Match, error) {
	log := r.log.With(
		zap.String("action", "vector_retrieve"),
	)

	if len(vector.Tokenize(query)) == 0 || k <= 0 {
		return []Match{}, nil
	}

	vectors, err := r.kb.embedder.Encode(ctx, []string{query})
	if err == nil && len(vectors) != 1 {
		err = vector.ErrEmbedding
	}

	if err != nil {
		log.Warn("query encoding failed, using lexical matching", zap.Error(err))
		return r.fallback.Retrieve(ctx, query, k)
	}

	matches, err := r.search(ctx, vectors[0], k)
	if errors.Is(err, ErrIndexCorpusMismatch) {
		log.Warn("index out of sync with corpus, rebuilding")

		if err := r.kb.Rebuild(ctx); err != nil {
			log.Error(err.Error())
			return r.fallback.Retrieve(ctx, query, k)
		}

		matches, err = r.search(ctx, vectors[0], k)
	}

	if err != nil {
		log.Error(err.Error())
		return r.fallback.Retrieve(ctx, query, k)
	}

	return matches, nil
}

func (r *vectorRetriever) search(ctx context.Context, query []float32, k int) ([]Match, error) {
	kb := r.kb

	kb.mu.RLock()
	defer kb.mu.RUnlock()

	if kb.index.Len() != kb.indexed() {
		return nil, ErrIndexCorpusMismatch
	}

	neighbors, err := kb.index.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Position < 0 || n.Position >= len(kb.docs) || len(kb.vectors[n.Position]) == 0 {
			continue
		}

		matches = append(matches, Match{
			Document: kb.docs[n.Position],
			Score:    vector.Similarity(n.Distance),
		})
	}

	return matches, nil
}
