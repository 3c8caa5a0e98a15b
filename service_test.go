package agrimithra

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/flarexio/agrimithra/persistence/chromem"
	"github.com/flarexio/agrimithra/vector"
)

type memRepository struct {
	mu    sync.Mutex
	docs  []Document
	cache *VectorCache
	saves int
}

func (repo *memRepository) Documents(ctx context.Context) ([]Document, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return slices.Clone(repo.docs), nil
}

func (repo *memRepository) Store(ctx context.Context, doc Document) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, d := range repo.docs {
		if d.Key() == doc.Key() {
			return ErrDocumentExists
		}
	}

	repo.docs = append(repo.docs, doc)
	return nil
}

func (repo *memRepository) LoadVectors(ctx context.Context) (*VectorCache, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.cache == nil {
		return nil, ErrCacheNotFound
	}

	cache := *repo.cache
	return &cache, nil
}

func (repo *memRepository) SaveVectors(ctx context.Context, cache *VectorCache) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	saved := *cache
	saved.Keys = slices.Clone(cache.Keys)
	saved.Vectors = slices.Clone(cache.Vectors)

	repo.cache = &saved
	repo.saves++
	return nil
}

type countingEmbedder struct {
	vector.Embedder
	texts atomic.Int64
}

func (e *countingEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	e.texts.Add(int64(len(texts)))
	return e.Embedder.Encode(ctx, texts)
}

type brokenEmbedder struct{}

func (brokenEmbedder) Name() string   { return "broken" }
func (brokenEmbedder) Dimension() int { return 0 }

func (brokenEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, vector.ErrEmbedderUnavailable
}

func newIndex(t *testing.T, embedder vector.Embedder, path string) *chromem.Index {
	idx, err := chromem.NewIndex(vector.Config{Path: path}, embedder)
	if err != nil {
		t.Fatal(err)
	}

	return idx
}

type agriMithraTestSuite struct {
	suite.Suite
	ctx   context.Context
	repo  *memRepository
	index *chromem.Index
	svc   Service
}

func (suite *agriMithraTestSuite) SetupSuite() {
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
		},
		FollowupSeed: 42,
	}

	embedder := vector.NewHashingEmbedder(256)
	index := newIndex(suite.T(), embedder, filepath.Join(suite.T().TempDir(), "index.gob"))
	repo := new(memRepository)

	svc, err := NewService(ctx, cfg, repo, embedder, index)
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.ctx = ctx
	suite.repo = repo
	suite.index = index
	suite.svc = svc
}

func (suite *agriMithraTestSuite) TearDownSuite() {
	suite.svc.Close()
}

func (suite *agriMithraTestSuite) TestSeededStatus() {
	status, err := suite.svc.Status(suite.ctx)
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.Equal(ModeVector, status.Mode)
	suite.Equal("hashing", status.Embedder)
	suite.GreaterOrEqual(status.Documents, len(DefaultDocuments()))
	suite.Equal(status.Documents, status.Indexed)
}

func (suite *agriMithraTestSuite) TestRetrieve() {
	matches, err := suite.svc.Retrieve(suite.ctx, "yellow spots on tomato leaves")
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.Len(matches, DefaultTopK)
	suite.Equal("Tomato Yellow Spots", matches[0].Document.Title)

	for i := 1; i < len(matches); i++ {
		suite.GreaterOrEqual(matches[i-1].Score, matches[i].Score)
	}

	for _, m := range matches {
		suite.Greater(m.Score, 0.0)
		suite.LessOrEqual(m.Score, 1.0)
	}

	matches, err = suite.svc.Retrieve(suite.ctx, "onion prices in kochi", 2)
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.Len(matches, 2)
	suite.Equal("Onion Prices Kochi", matches[0].Document.Title)
}

func (suite *agriMithraTestSuite) TestRetrieveEmptyQuery() {
	matches, err := suite.svc.Retrieve(suite.ctx, "   ")
	suite.NoError(err)
	suite.Empty(matches)
}

func (suite *agriMithraTestSuite) TestAsk() {
	answer, err := suite.svc.Ask(suite.ctx, AskRequest{
		Query: "How to make neem spray recipe for pest control?",
	})

	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.NotEmpty(answer.ID)
	suite.Equal(CategoryPestControl, answer.Category)
	suite.Equal(ModeVector, answer.Mode)
	suite.Contains(answer.Answer, Disclaimer)
	suite.LessOrEqual(len(answer.Sources), MaxSources)

	titles := make([]string, len(answer.Sources))
	for i, src := range answer.Sources {
		titles[i] = src.Title
	}

	suite.Contains(titles, "Homemade Neem Spray")
	suite.False(answer.Timestamp.IsZero())

	spec, _ := DefaultTaxonomy().Lookup(CategoryPestControl)

	suite.Len(answer.SuggestedFollowups, DefaultFollowups)
	suite.NotEqual(answer.SuggestedFollowups[0], answer.SuggestedFollowups[1])
	for _, q := range answer.SuggestedFollowups {
		suite.Contains(spec.Followups, q)
	}
}

func (suite *agriMithraTestSuite) TestAskCategoryOverride() {
	answer, err := suite.svc.Ask(suite.ctx, AskRequest{
		Query:    "neem spray",
		Category: CategoryWeather,
	})

	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.Equal(CategoryWeather, answer.Category)

	spec, _ := DefaultTaxonomy().Lookup(CategoryWeather)
	for _, q := range answer.SuggestedFollowups {
		suite.Contains(spec.Followups, q)
	}
}

func (suite *agriMithraTestSuite) TestAskEmptyQuery() {
	answer, err := suite.svc.Ask(suite.ctx, AskRequest{Query: " "})
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.Equal(EmptyQueryMessage, answer.Answer)
	suite.Empty(answer.Sources)
	suite.Empty(answer.SuggestedFollowups)
}

func (suite *agriMithraTestSuite) TestAddDocument() {
	doc := Document{
		Title:    "Cardamom Thrips Control",
		Category: CategoryPestControl,
		Content:  "Cardamom thrips damage capsules. Spray fipronil or use blue sticky traps in cardamom plantations.",
	}

	status, err := suite.svc.AddDocument(suite.ctx, doc)
	suite.NoError(err)
	suite.Equal(AddStatusSuccess, status)

	matches, err := suite.svc.Retrieve(suite.ctx, "cardamom thrips capsules")
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.Equal("Cardamom Thrips Control", matches[0].Document.Title)

	status, err = suite.svc.AddDocument(suite.ctx, doc)
	suite.True(errors.Is(err, ErrDocumentExists))
	suite.Equal(AddStatusError, status)

	st, _ := suite.svc.Status(suite.ctx)
	suite.Equal(st.Documents, st.Indexed)

	suite.repo.mu.Lock()
	cache := suite.repo.cache
	suite.repo.mu.Unlock()

	suite.Equal(st.Documents, len(cache.Keys))
	suite.Equal(doc.Key(), cache.Keys[len(cache.Keys)-1])
}

func (suite *agriMithraTestSuite) TestAddDocumentInvalid() {
	status, err := suite.svc.AddDocument(suite.ctx, Document{Title: "", Content: "no title"})
	suite.True(errors.Is(err, ErrInvalidDocument))
	suite.Equal(AddStatusError, status)
}

func (suite *agriMithraTestSuite) TestGuide() {
	guide, err := suite.svc.Guide(suite.ctx, "Coconut___Bud_rot")
	if err != nil {
		suite.Fail(err.Error())
		return
	}

	suite.Contains(guide, "## Comprehensive Guide: Coconut")

	_, err = suite.svc.Guide(suite.ctx, "___")
	suite.True(errors.Is(err, ErrGuideNotFound))
}

func (suite *agriMithraTestSuite) TestConcurrentReadsDuringWrites() {
	var wg sync.WaitGroup

	for i := range 4 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			doc := Document{
				Title:    "Concurrent Note " + string(rune('A'+i)),
				Category: CategoryGeneral,
				Content:  "Mulching conserves soil moisture during summer.",
			}

			_, err := suite.svc.AddDocument(suite.ctx, doc)
			suite.NoError(err)
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()

			matches, err := suite.svc.Retrieve(suite.ctx, "mulching soil moisture")
			suite.NoError(err)
			suite.LessOrEqual(len(matches), DefaultTopK)
		}()
	}

	wg.Wait()

	status, _ := suite.svc.Status(suite.ctx)
	suite.Equal(status.Documents, status.Indexed)
}

func TestAgriMithraTestSuite(t *testing.T) {
	suite.Run(t, new(agriMithraTestSuite))
}

func TestLexicalMode(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
		},
	}

	svc, err := NewService(ctx, cfg, new(memRepository), nil, nil)
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc.Close()

	status, _ := svc.Status(ctx)
	assert.Equal(ModeLexical, status.Mode)
	assert.Equal(0, status.Indexed)

	matches, err := svc.Retrieve(ctx, "neem spray recipe")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("Homemade Neem Spray", matches[0].Document.Title)
	assert.InDelta(3/3.001, matches[0].Score, 1e-9)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(matches[i-1].Score, matches[i].Score)
	}

	matches, err = svc.Retrieve(ctx, "xyzzy plugh")
	assert.NoError(err)
	assert.Empty(matches)

	status2, err := svc.AddDocument(ctx, Document{
		Title:   "Vanilla Pollination",
		Content: "Hand pollinate vanilla flowers in the morning.",
	})

	assert.NoError(err)
	assert.Equal(AddStatusPartialSuccess, status2)

	matches, _ = svc.Retrieve(ctx, "vanilla pollination")
	assert.Equal("Vanilla Pollination", matches[0].Document.Title)
	assert.Equal(CategoryGeneral, matches[0].Document.Category)

	answer, _ := svc.Ask(ctx, AskRequest{Query: "xyzzy"})
	assert.Equal(InsufficientInformationMessage, answer.Answer)
	assert.Empty(answer.SuggestedFollowups)
}

func titlesOf(matches []Match) []string {
	titles := make([]string, len(matches))
	for i, m := range matches {
		titles[i] = m.Document.Title
	}

	return titles
}

func TestLexicalScoresFavorRelatedQueries(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := &memRepository{
		docs: []Document{seedDocument(t, "Tomato Yellow Spots")},
	}

	svc, err := NewService(ctx, Config{}, repo, nil, nil)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	related, _ := svc.Retrieve(ctx, "yellow spots tomato leaves")
	unrelated, _ := svc.Retrieve(ctx, "tractor subsidy documents")

	assert.Len(related, 1)
	assert.Empty(unrelated)
	assert.InDelta(4/4.001, related[0].Score, 1e-9)
}

func seedDocument(t *testing.T, title string) Document {
	for _, doc := range DefaultDocuments() {
		if doc.Title == title {
			return doc
		}
	}

	t.Fatalf("no seed document %q", title)
	return Document{}
}

func TestTwoDocumentScenario(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := &memRepository{
		docs: []Document{
			seedDocument(t, "Tomato Yellow Spots"),
			seedDocument(t, "Onion Prices Kochi"),
		},
	}

	embedder := vector.NewHashingEmbedder(256)

	svc, err := NewService(ctx, Config{}, repo, embedder, newIndex(t, embedder, ""))
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc.Close()

	matches, err := svc.Retrieve(ctx, "my tomato has yellow spots")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("Tomato Yellow Spots", matches[0].Document.Title)

	answer, _ := svc.Compose(ctx, "my tomato has yellow spots", matches[:1])

	spec, _ := DefaultTaxonomy().Lookup(CategoryCropDisease)
	assert.True(strings.HasPrefix(answer, spec.Intro))
	assert.True(strings.HasSuffix(answer, Disclaimer))
}

func TestLexicalTiesKeepCorpusOrder(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := &memRepository{
		docs: []Document{
			{Title: "First", Category: CategoryGeneral, Content: "paddy field"},
			{Title: "Second", Category: CategoryGeneral, Content: "paddy harvest"},
			{Title: "Third", Category: CategoryGeneral, Content: "coconut"},
			{Title: "Fourth", Category: CategoryGeneral, Content: "paddy"},
		},
	}

	svc, err := NewService(ctx, Config{}, repo, nil, nil)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	matches, _ := svc.Retrieve(ctx, "paddy", 10)

	assert.Equal([]string{"First", "Second", "Fourth"}, titlesOf(matches))

	matches, _ = svc.Retrieve(ctx, "paddy", 1)
	assert.Len(matches, 1)
}

func TestUnavailableEmbedderFallsBackToLexical(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
		},
	}

	index := newIndex(t, nil, "")

	svc, err := NewService(ctx, cfg, new(memRepository), brokenEmbedder{}, index)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	status, _ := svc.Status(ctx)
	assert.Equal(ModeLexical, status.Mode)

	matches, err := svc.Retrieve(ctx, "tomato yellow spots")
	assert.NoError(err)
	assert.Equal("Tomato Yellow Spots", matches[0].Document.Title)

	added, err := svc.AddDocument(ctx, Document{Title: "Note", Content: "text"})
	assert.NoError(err)
	assert.Equal(AddStatusPartialSuccess, added)
}

func TestVectorCacheReuse(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
		},
	}

	path := filepath.Join(t.TempDir(), "index.gob")
	repo := new(memRepository)

	first := &countingEmbedder{Embedder: vector.NewHashingEmbedder(128)}

	svc, err := NewService(ctx, cfg, repo, first, newIndex(t, first, path))
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	before, err := svc.Retrieve(ctx, "coconut palm fertilizer")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	svc.Close()

	// probe plus the whole corpus
	assert.Equal(int64(1+len(DefaultDocuments())), first.texts.Load())

	second := &countingEmbedder{Embedder: vector.NewHashingEmbedder(128)}
	index := newIndex(t, second, path)

	svc, err = NewService(ctx, cfg, repo, second, index)
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc.Close()

	assert.Equal(int64(1), second.texts.Load(), "only the probe is encoded")
	assert.Equal(len(DefaultDocuments()), index.Len())

	after, err := svc.Retrieve(ctx, "coconut palm fertilizer")
	assert.NoError(err)
	assert.Equal("Coconut Palm Fertilizer", after[0].Document.Title)
	assert.Equal(titlesOf(before)[:3], titlesOf(after)[:3])

	// a changed corpus invalidates the cache
	repo.mu.Lock()
	repo.docs[0].Content = "Changed advisory text about tomatoes."
	repo.mu.Unlock()

	third := &countingEmbedder{Embedder: vector.NewHashingEmbedder(128)}

	svc3, err := NewService(ctx, cfg, repo, third, newIndex(t, third, path))
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc3.Close()

	assert.Equal(int64(1+len(DefaultDocuments())), third.texts.Load())
}

func TestIndexMismatchTriggersRebuild(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
		},
	}

	embedder := vector.NewHashingEmbedder(128)
	index := newIndex(t, embedder, "")

	svc, err := NewService(ctx, cfg, new(memRepository), embedder, index)
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc.Close()

	stray, _ := embedder.Encode(ctx, []string{"stray entry"})
	if err := index.Add(ctx, []int{999}, stray); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(len(DefaultDocuments())+1, index.Len())

	matches, err := svc.Retrieve(ctx, "paddy fertilizer dosage urea")
	assert.NoError(err)
	assert.NotEmpty(matches)
	assert.Equal(len(DefaultDocuments()), index.Len())

	for _, m := range matches {
		assert.NotEmpty(m.Document.Title)
	}
}

func TestLazyInitialization(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
			Lazy: true,
		},
	}

	repo := new(memRepository)

	svc, err := NewService(ctx, cfg, repo, nil, nil)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	repo.mu.Lock()
	assert.Empty(repo.docs, "nothing is built before the first request")
	repo.mu.Unlock()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.Retrieve(ctx, "rain forecast")
			assert.NoError(err)
		}()
	}

	wg.Wait()

	repo.mu.Lock()
	assert.Len(repo.docs, len(DefaultDocuments()), "the corpus is seeded once")
	repo.mu.Unlock()
}

// flakyEmbedder fails on texts containing a marker, optionally by returning
// no vectors at all instead of an error.
type flakyEmbedder struct {
	vector.Embedder
	marker string
	empty  bool
}

func (e *flakyEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	for _, text := range texts {
		if strings.Contains(strings.ToLower(text), e.marker) {
			if e.empty {
				return [][]float32{}, nil
			}

			return nil, vector.ErrEmbedding
		}
	}

	return e.Embedder.Encode(ctx, texts)
}

func TestAddDocumentEncodeFailureInVectorMode(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
		},
	}

	path := filepath.Join(t.TempDir(), "index.gob")
	repo := new(memRepository)

	flaky := &flakyEmbedder{Embedder: vector.NewHashingEmbedder(128), marker: "vanilla"}
	index := newIndex(t, flaky, path)

	svc, err := NewService(ctx, cfg, repo, flaky, index)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	doc := Document{
		Title:   "Vanilla Pollination",
		Content: "Hand pollinate vanilla flowers in the morning.",
	}

	status, err := svc.AddDocument(ctx, doc)
	assert.NoError(err)
	assert.Equal(AddStatusPartialSuccess, status)

	st, _ := svc.Status(ctx)
	assert.Equal(ModeVector, st.Mode)
	assert.Equal(len(DefaultDocuments())+1, st.Documents)
	assert.Equal(len(DefaultDocuments()), st.Indexed)
	assert.Equal(len(DefaultDocuments()), index.Len())

	repo.mu.Lock()
	assert.Len(repo.docs, len(DefaultDocuments())+1, "the document is stored")
	repo.mu.Unlock()

	svc.Close()

	// a healthy provider on restart recovers the missing vector
	healthy := &countingEmbedder{Embedder: vector.NewHashingEmbedder(128)}
	index = newIndex(t, healthy, path)

	svc, err = NewService(ctx, cfg, repo, healthy, index)
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc.Close()

	assert.Equal(int64(2), healthy.texts.Load(), "probe plus the missing document")

	st, _ = svc.Status(ctx)
	assert.Equal(st.Documents, st.Indexed)
	assert.Equal(st.Documents, index.Len())

	matches, err := svc.Retrieve(ctx, "hand pollinate vanilla flowers")
	assert.NoError(err)
	assert.Equal("Vanilla Pollination", matches[0].Document.Title)

	repo.mu.Lock()
	cache := repo.cache
	repo.mu.Unlock()

	assert.NotEmpty(cache.Vectors[len(cache.Vectors)-1], "the recovered vector is cached")
}

func TestAddDocumentWithoutVectorsFromEmbedder(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := Config{
		Corpus: CorpusConfig{
			Seed: true,
		},
	}

	flaky := &flakyEmbedder{Embedder: vector.NewHashingEmbedder(128), marker: "vanilla", empty: true}

	svc, err := NewService(ctx, cfg, new(memRepository), flaky, newIndex(t, flaky, ""))
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc.Close()

	doc := Document{
		Title:   "Vanilla Pollination",
		Content: "Hand pollinate vanilla flowers in the morning.",
	}

	status, err := svc.AddDocument(ctx, doc)
	assert.NoError(err)
	assert.Equal(AddStatusPartialSuccess, status)

	st, _ := svc.Status(ctx)
	assert.Equal(len(DefaultDocuments())+1, st.Documents)

	// the query cannot be encoded either, so retrieval degrades to lexical
	matches, err := svc.Retrieve(ctx, "vanilla pollination")
	assert.NoError(err)
	assert.Equal("Vanilla Pollination", matches[0].Document.Title)

	_, err = svc.AddDocument(ctx, doc)
	assert.True(errors.Is(err, ErrDocumentExists))
}

func TestDuplicateKeysInStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := &memRepository{
		docs: []Document{
			{Title: "Rain Alert", Category: CategoryWeather, Content: "Heavy rain expected."},
			{Title: "Rain Alert", Category: CategoryGeneral, Content: "Another copy."},
			{Title: "Neem", Category: CategoryPestControl, Content: "Neem oil spray."},
		},
	}

	embedder := vector.NewHashingEmbedder(128)

	svc, err := NewService(ctx, Config{}, repo, embedder, newIndex(t, embedder, ""))
	if err != nil {
		assert.Fail(err.Error())
		return
	}
	defer svc.Close()

	st, _ := svc.Status(ctx)
	assert.Equal(2, st.Documents)
	assert.Equal(2, st.Indexed)

	matches, _ := svc.Retrieve(ctx, "heavy rain expected")
	assert.Equal(CategoryWeather, matches[0].Document.Category, "the first copy wins")
}

func TestUnique(t *testing.T) {
	assert := assert.New(t)

	docs := []Document{
		{Title: "A", Category: CategoryWeather},
		{Title: "B"},
		{Title: "A ", Category: CategoryGeneral},
	}

	kept, dropped := unique(docs)

	assert.Equal(docs[:2], kept)
	assert.Equal([]Document{docs[2]}, dropped)
}
