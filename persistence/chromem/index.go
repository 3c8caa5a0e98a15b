package chromem

import (
	"context"
	"errors"
	"math"
	"os"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/flarexio/agrimithra/vector"
)

const DefaultCollection = "knowledge"

var ErrZeroVector = errors.New("zero vector cannot be indexed")

// NewIndex returns an in-memory chromem collection used as an exact
// nearest-neighbor index. Save and Load move the collection to and from
// cfg.Path as a single gob file.
func NewIndex(cfg vector.Config, embedder vector.Embedder) (*Index, error) {
	name := cfg.Collection
	if name == "" {
		name = DefaultCollection
	}

	idx := &Index{
		db:       chromem.NewDB(),
		name:     name,
		path:     cfg.Path,
		compress: cfg.Compress,
		embed:    EmbeddingFunc(embedder),
	}

	c, err := idx.db.GetOrCreateCollection(name, nil, idx.embed)
	if err != nil {
		return nil, err
	}

	idx.collection = c
	return idx, nil
}

type Index struct {
	db       *chromem.DB
	name     string
	path     string
	compress bool
	embed    chromem.EmbeddingFunc

	mu         sync.RWMutex
	collection *chromem.Collection
}

func (idx *Index) Add(ctx context.Context, positions []int, vectors [][]float32) error {
	if len(positions) != len(vectors) {
		return vector.ErrDimensionMismatch
	}

	if len(positions) == 0 {
		return nil
	}

	ids := make([]string, len(positions))
	for i, pos := range positions {
		if vector.IsZero(vectors[i]) {
			return ErrZeroVector
		}

		ids[i] = strconv.Itoa(pos)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.collection.Add(ctx, ids, vectors, nil, nil)
}

// Search runs an exhaustive cosine search. chromem reports cosine
// similarity over normalized vectors, which is converted to the Euclidean
// distance between the unit vectors: sqrt(2 - 2cos).
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]vector.Neighbor, error) {
	if k <= 0 || vector.IsZero(query) {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	count := idx.collection.Count()
	if count == 0 {
		return nil, nil
	}

	if k > count {
		k = count
	}

	results, err := idx.collection.QueryEmbedding(ctx, query, k, nil, nil)
	if err != nil {
		return nil, err
	}

	neighbors := make([]vector.Neighbor, 0, len(results))
	for _, result := range results {
		pos, err := strconv.Atoi(result.ID)
		if err != nil {
			continue
		}

		d := 2 - 2*float64(result.Similarity)
		if d < 0 {
			d = 0
		}

		neighbors = append(neighbors, vector.Neighbor{
			Distance: math.Sqrt(d),
			Position: pos,
		})
	}

	return neighbors, nil
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.collection.Count()
}

func (idx *Index) Reset() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if err := idx.db.DeleteCollection(idx.name); err != nil {
		return err
	}

	c, err := idx.db.CreateCollection(idx.name, nil, idx.embed)
	if err != nil {
		return err
	}

	idx.collection = c
	return nil
}

func (idx *Index) Save() error {
	if idx.path == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.db.ExportToFile(idx.path, idx.compress, "", idx.name)
}

func (idx *Index) Load() error {
	if idx.path == "" {
		return vector.ErrIndexNotFound
	}

	if _, err := os.Stat(idx.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return vector.ErrIndexNotFound
		}

		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if err := idx.db.ImportFromFile(idx.path, "", idx.name); err != nil {
		return err
	}

	c := idx.db.GetCollection(idx.name, idx.embed)
	if c == nil {
		return vector.ErrIndexNotFound
	}

	idx.collection = c
	return nil
}
