package agrimithra

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/flarexio/agrimithra/vector"
)

const probeText = "crop advisory"

// NewKnowledgeBase wires the corpus store, the embedder and the index. A nil
// embedder or index leaves the knowledge base in lexical mode.
func NewKnowledgeBase(repo Repository, embedder vector.Embedder, index vector.Index, probeTimeout time.Duration) *KnowledgeBase {
	kb := &KnowledgeBase{
		repo:         repo,
		embedder:     embedder,
		index:        index,
		probeTimeout: probeTimeout,
		keys:         make(map[string]int),
		log: zap.L().With(
			zap.String("service", "agrimithra"),
			zap.String("component", "knowledge_base"),
		),
	}

	kb.lexical = &lexicalRetriever{kb}
	kb.retriever = kb.lexical
	return kb
}

// KnowledgeBase holds the corpus, its vectors and the index. Positions in
// docs, vectors and the index agree; vectors[i] is empty when docs[i] is
// only reachable lexically.
type KnowledgeBase struct {
	repo         Repository
	embedder     vector.Embedder
	index        vector.Index
	probeTimeout time.Duration

	lexical   Retriever
	retriever Retriever

	writeMu sync.Mutex // serializes writers

	mu      sync.RWMutex
	docs    []Document
	keys    map[string]int
	vectors [][]float32

	once    sync.Once
	initErr error
	ready   atomic.Bool

	log *zap.Logger
}

// Initialize loads the corpus, seeding an empty store with seed, and builds
// or restores the vectors and the index. It runs once; concurrent callers
// wait for the same build.
func (kb *KnowledgeBase) Initialize(ctx context.Context, seed []Document) error {
	kb.once.Do(func() {
		kb.initErr = kb.build(ctx, seed)
		if kb.initErr == nil {
			kb.ready.Store(true)
		}
	})

	return kb.initErr
}

func (kb *KnowledgeBase) build(ctx context.Context, seed []Document) error {
	log := kb.log.With(
		zap.String("action", "initialize"),
	)

	docs, err := kb.repo.Documents(ctx)
	if err != nil {
		return err
	}

	docs, dropped := unique(docs)
	for _, doc := range dropped {
		log.Warn("duplicate document key, later copy ignored",
			zap.String("title", doc.Title),
			zap.String("category", string(doc.Category)),
		)
	}

	if len(docs) == 0 && len(seed) > 0 {
		now := time.Now()
		for _, doc := range seed {
			if doc.Created.IsZero() {
				doc.Created = now
			}

			if err := kb.repo.Store(ctx, doc); err != nil {
				return err
			}

			docs = append(docs, doc)
		}

		log.Info("corpus seeded", zap.Int("documents", len(docs)))
	}

	if kb.embedder != nil && kb.index != nil {
		if err := kb.probe(ctx); err != nil {
			log.Warn("embedding provider unavailable, using lexical matching",
				zap.String("embedder", kb.embedder.Name()),
				zap.Error(err),
			)

			kb.embedder = nil
		}
	} else {
		kb.embedder = nil
	}

	kb.writeMu.Lock()
	defer kb.writeMu.Unlock()

	if kb.embedder == nil {
		kb.mu.Lock()
		kb.publish(docs, make([][]float32, len(docs)))
		kb.mu.Unlock()

		log.Info("knowledge base ready",
			zap.String("mode", string(ModeLexical)),
			zap.Int("documents", len(docs)),
		)

		return nil
	}

	cache, err := kb.repo.LoadVectors(ctx)
	if err != nil && !errors.Is(err, ErrCacheNotFound) {
		log.Warn("vector cache unreadable", zap.Error(err))
	}

	var keys []string
	if cache != nil {
		keys = cache.Keys
	}

	docs = arrange(docs, keys)

	reused := false
	recovered := 0

	var vectors [][]float32
	if cache != nil && cache.Fingerprint == kb.fingerprint(docs) && len(cache.Vectors) == len(docs) {
		vectors = cache.Vectors
		reused = true

		recovered = kb.encodeMissing(ctx, docs, vectors)

		log.Info("vector cache reused",
			zap.Int("vectors", len(vectors)),
			zap.Int("recovered", recovered),
		)
	} else {
		vectors = kb.encode(ctx, docs)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	kb.publish(docs, vectors)

	if !reused || recovered > 0 {
		if err := kb.saveVectors(ctx); err != nil {
			log.Warn("vector cache not saved", zap.Error(err))
		}
	}

	restored := false
	if reused && recovered == 0 {
		err := kb.index.Load()
		switch {
		case err == nil && kb.index.Len() == kb.indexed():
			restored = true
			log.Info("index restored", zap.Int("indexed", kb.index.Len()))

		case err == nil:
			log.Warn(ErrIndexCorpusMismatch.Error(),
				zap.Int("indexed", kb.index.Len()),
				zap.Int("vectors", kb.indexed()),
			)

		case !errors.Is(err, vector.ErrIndexNotFound):
			log.Warn("index unreadable", zap.Error(err))
		}
	}

	if !restored {
		if err := kb.reindex(ctx); err != nil {
			return err
		}

		if err := kb.index.Save(); err != nil {
			log.Warn("index not saved", zap.Error(err))
		}
	}

	kb.retriever = &vectorRetriever{
		kb:       kb,
		fallback: kb.lexical,
		log:      kb.log,
	}

	log.Info("knowledge base ready",
		zap.String("mode", string(ModeVector)),
		zap.String("embedder", kb.embedder.Name()),
		zap.Int("documents", len(kb.docs)),
		zap.Int("indexed", kb.index.Len()),
	)

	return nil
}

func (kb *KnowledgeBase) probe(ctx context.Context) error {
	if kb.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, kb.probeTimeout)
		defer cancel()
	}

	vectors, err := kb.embedder.Encode(ctx, []string{probeText})
	if err != nil {
		return err
	}

	if len(vectors) != 1 || vector.IsZero(vectors[0]) {
		return vector.ErrEmbedding
	}

	return nil
}

// encode embeds the whole corpus in one batch, falling back to one document
// at a time so that a single failure only costs that document its vector.
func (kb *KnowledgeBase) encode(ctx context.Context, docs []Document) [][]float32 {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text()
	}

	vectors, err := kb.embedder.Encode(ctx, texts)
	if err == nil && len(vectors) == len(docs) {
		for i, v := range vectors {
			if vector.IsZero(v) {
				vectors[i] = nil
			}
		}

		return vectors
	}

	vectors = make([][]float32, len(docs))
	for i, text := range texts {
		v, err := kb.embedder.Encode(ctx, []string{text})
		if err != nil {
			kb.log.Warn("document not encoded",
				zap.String("title", docs[i].Title),
				zap.Error(err),
			)

			continue
		}

		if len(v) == 1 && !vector.IsZero(v[0]) {
			vectors[i] = v[0]
		}
	}

	return vectors
}

// encodeMissing retries the cached documents that have no vector, such as
// ones whose encoding failed when they were added. It fills vectors in place
// and reports how many were recovered.
func (kb *KnowledgeBase) encodeMissing(ctx context.Context, docs []Document, vectors [][]float32) int {
	var missing []int
	for i, v := range vectors {
		if len(v) == 0 {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		return 0
	}

	subset := make([]Document, len(missing))
	for i, pos := range missing {
		subset[i] = docs[pos]
	}

	recovered := 0
	for i, v := range kb.encode(ctx, subset) {
		if len(v) == 0 {
			continue
		}

		vectors[missing[i]] = v
		recovered++
	}

	return recovered
}

// publish replaces the corpus. Callers hold the write lock.
func (kb *KnowledgeBase) publish(docs []Document, vectors [][]float32) {
	keys := make(map[string]int, len(docs))
	for i, doc := range docs {
		keys[doc.Key()] = i
	}

	kb.docs = docs
	kb.keys = keys
	kb.vectors = vectors
}

// reindex rebuilds the index from the vector list. Callers hold the write
// lock.
func (kb *KnowledgeBase) reindex(ctx context.Context) error {
	if err := kb.index.Reset(); err != nil {
		return err
	}

	positions := make([]int, 0, len(kb.vectors))
	vectors := make([][]float32, 0, len(kb.vectors))
	for i, v := range kb.vectors {
		if len(v) == 0 {
			continue
		}

		positions = append(positions, i)
		vectors = append(vectors, v)
	}

	return kb.index.Add(ctx, positions, vectors)
}

// indexed counts documents that carry a vector. Callers hold a lock.
func (kb *KnowledgeBase) indexed() int {
	n := 0
	for _, v := range kb.vectors {
		if len(v) > 0 {
			n++
		}
	}

	return n
}

// Rebuild recreates the index from the current vector list and persists it.
func (kb *KnowledgeBase) Rebuild(ctx context.Context) error {
	if kb.index == nil {
		return nil
	}

	kb.writeMu.Lock()
	defer kb.writeMu.Unlock()

	kb.mu.Lock()
	defer kb.mu.Unlock()

	if err := kb.reindex(ctx); err != nil {
		return err
	}

	if err := kb.index.Save(); err != nil {
		kb.log.Warn("index not saved", zap.Error(err))
	}

	return nil
}

// Add persists doc, then appends it to the corpus together with its vector
// and index entry. A document that could not be embedded or indexed stays
// lexically searchable and reports partial success.
func (kb *KnowledgeBase) Add(ctx context.Context, doc Document) (AddStatus, error) {
	if !kb.ready.Load() {
		return AddStatusError, ErrNotInitialized
	}

	if doc.Category == "" {
		doc.Category = CategoryGeneral
	}

	if err := doc.Validate(); err != nil {
		return AddStatusError, err
	}

	if doc.Created.IsZero() {
		doc.Created = time.Now()
	}

	log := kb.log.With(
		zap.String("action", "add_document"),
		zap.String("title", doc.Title),
	)

	kb.writeMu.Lock()
	defer kb.writeMu.Unlock()

	kb.mu.RLock()
	_, exists := kb.keys[doc.Key()]
	kb.mu.RUnlock()

	if exists {
		return AddStatusError, fmt.Errorf("%w: %s", ErrDocumentExists, doc.Title)
	}

	if err := kb.repo.Store(ctx, doc); err != nil {
		return AddStatusError, err
	}

	var v []float32
	if kb.embedder != nil {
		vectors, err := kb.embedder.Encode(ctx, []string{doc.Text()})
		switch {
		case err != nil:
			log.Warn("document not encoded", zap.Error(err))

		case len(vectors) != 1:
			log.Warn("document not encoded", zap.Error(vector.ErrEmbedding))

		case vector.IsZero(vectors[0]):
			log.Warn("document has no indexable terms")

		default:
			v = vectors[0]
		}
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	pos := len(kb.docs)

	if v != nil {
		if err := kb.index.Add(ctx, []int{pos}, [][]float32{v}); err != nil {
			log.Warn("document not indexed", zap.Error(err))
			v = nil
		}
	}

	kb.docs = append(kb.docs, doc)
	kb.vectors = append(kb.vectors, v)
	kb.keys[doc.Key()] = pos

	if kb.embedder != nil {
		if err := kb.saveVectors(ctx); err != nil {
			log.Warn("vector cache not saved", zap.Error(err))
		}

		if err := kb.index.Save(); err != nil {
			log.Warn("index not saved", zap.Error(err))
		}
	}

	if v == nil {
		return AddStatusPartialSuccess, nil
	}

	return AddStatusSuccess, nil
}

// saveVectors writes the vector cache. Callers hold a lock.
func (kb *KnowledgeBase) saveVectors(ctx context.Context) error {
	cache := &VectorCache{
		Fingerprint: kb.fingerprint(kb.docs),
		Dimension:   kb.embedder.Dimension(),
		Keys:        make([]string, len(kb.docs)),
		Vectors:     kb.vectors,
	}

	for i, doc := range kb.docs {
		cache.Keys[i] = doc.Key()
	}

	return kb.repo.SaveVectors(ctx, cache)
}

// fingerprint identifies the embedder and the ordered corpus content.
func (kb *KnowledgeBase) fingerprint(docs []Document) string {
	h := sha256.New()

	if kb.embedder != nil {
		fmt.Fprintf(h, "%s/%d", kb.embedder.Name(), kb.embedder.Dimension())
		h.Write([]byte{0})
	}

	for _, doc := range docs {
		h.Write([]byte(doc.Key()))
		h.Write([]byte{0})
		h.Write([]byte(doc.Category))
		h.Write([]byte{0})
		h.Write([]byte(doc.Text()))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// unique keeps the first document for each key; later ones are returned as
// dropped.
func unique(docs []Document) (kept []Document, dropped []Document) {
	seen := make(map[string]struct{}, len(docs))

	kept = make([]Document, 0, len(docs))
	for _, doc := range docs {
		if _, ok := seen[doc.Key()]; ok {
			dropped = append(dropped, doc)
			continue
		}

		seen[doc.Key()] = struct{}{}
		kept = append(kept, doc)
	}

	return kept, dropped
}

// arrange orders docs by the cached key order; documents the cache does not
// know keep their store order after the known ones.
func arrange(docs []Document, keys []string) []Document {
	if len(keys) == 0 {
		return docs
	}

	byKey := make(map[string]Document, len(docs))
	for _, doc := range docs {
		byKey[doc.Key()] = doc
	}

	arranged := make([]Document, 0, len(docs))
	placed := make(map[string]bool, len(keys))
	for _, key := range keys {
		doc, ok := byKey[key]
		if !ok || placed[key] {
			continue
		}

		arranged = append(arranged, doc)
		placed[key] = true
	}

	for _, doc := range docs {
		if !placed[doc.Key()] {
			arranged = append(arranged, doc)
		}
	}

	return arranged
}

func (kb *KnowledgeBase) Search(ctx context.Context, query string, k int) ([]Match, error) {
	if !kb.ready.Load() {
		return nil, ErrNotInitialized
	}

	return kb.retriever.Retrieve(ctx, query, k)
}

func (kb *KnowledgeBase) Mode() RetrievalMode {
	return kb.retriever.Mode()
}

func (kb *KnowledgeBase) Status() Status {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	status := Status{
		Mode:      kb.retriever.Mode(),
		Documents: len(kb.docs),
	}

	if kb.embedder != nil && kb.index != nil {
		status.Embedder = kb.embedder.Name()
		status.Indexed = kb.index.Len()
	}

	return status
}

// Documents returns a snapshot of the corpus in index order.
func (kb *KnowledgeBase) Documents() []Document {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	docs := make([]Document, len(kb.docs))
	copy(docs, kb.docs)
	return docs
}

func (kb *KnowledgeBase) Close() error {
	if kb.index == nil || !kb.ready.Load() || kb.embedder == nil {
		return nil
	}

	kb.writeMu.Lock()
	defer kb.writeMu.Unlock()

	kb.mu.RLock()
	defer kb.mu.RUnlock()

	return kb.index.Save()
}
