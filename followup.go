package agrimithra

import (
	"math/rand/v2"
	"sync"
	"time"
)

// NewSuggester samples follow-up questions from the taxonomy. A zero seed
// uses the clock.
func NewSuggester(taxonomy *Taxonomy, seed uint64) *Suggester {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return NewSuggesterWithRand(taxonomy, rand.New(rand.NewPCG(seed, seed>>1|1)))
}

func NewSuggesterWithRand(taxonomy *Taxonomy, rng *rand.Rand) *Suggester {
	return &Suggester{
		taxonomy: taxonomy,
		rng:      rng,
	}
}

type Suggester struct {
	taxonomy *Taxonomy

	mu  sync.Mutex // *rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// Suggest returns up to n distinct follow-ups for the category. Categories
// without a pool yield none.
func (s *Suggester) Suggest(category Category, n int) []string {
	spec, ok := s.taxonomy.Lookup(category)
	if !ok || len(spec.Followups) == 0 || n <= 0 {
		return nil
	}

	n = min(n, len(spec.Followups))

	s.mu.Lock()
	perm := s.rng.Perm(len(spec.Followups))
	s.mu.Unlock()

	questions := make([]string, n)
	for i := range questions {
		questions[i] = spec.Followups[perm[i]]
	}

	return questions
}
