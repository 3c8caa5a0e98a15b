package agrimithra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flarexio/agrimithra/vector"
)

// Service defines the advisory engine of AgriMithra.
type Service interface {

	// Close persists the index and stops the service.
	Close() error

	// Ask answers a farmer query with sources and follow-up suggestions.
	Ask(ctx context.Context, req AskRequest) (*Answer, error)

	// Retrieve returns the best matching documents, best first.
	Retrieve(ctx context.Context, query string, k ...int) ([]Match, error)

	// Categorize assigns the query to an advisory category.
	Categorize(ctx context.Context, query string) (Category, error)

	// Compose builds the answer text from ranked matches.
	Compose(ctx context.Context, query string, matches []Match) (string, error)

	// AddDocument persists a document and makes it searchable.
	AddDocument(ctx context.Context, doc Document) (AddStatus, error)

	// Categories lists the advisory categories with sample questions.
	Categories(ctx context.Context) ([]CategoryInfo, error)

	// Guide renders the crop guide for an image classifier label.
	Guide(ctx context.Context, label string) (string, error)

	// Status reports the retrieval mode and corpus size.
	Status(ctx context.Context) (Status, error)
}

type ServiceMiddleware func(Service) Service

// NewService builds the advisory service. A nil embedder or index keeps the
// service in lexical mode. Unless the corpus is lazy, the knowledge base is
// built before NewService returns.
func NewService(ctx context.Context, cfg Config, repo Repository, embedder vector.Embedder, index vector.Index) (Service, error) {
	log := zap.L().With(
		zap.String("service", "agrimithra"),
	)

	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}

	if cfg.Followups <= 0 {
		cfg.Followups = DefaultFollowups
	}

	ctx, cancel := context.WithCancel(ctx)

	taxonomy := DefaultTaxonomy()

	svc := &service{
		kb:        NewKnowledgeBase(repo, embedder, index, cfg.Vector.ProbeTimeout),
		taxonomy:  taxonomy,
		suggester: NewSuggester(taxonomy, cfg.FollowupSeed),

		cfg:    cfg,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}

	if cfg.Corpus.Seed {
		svc.seed = DefaultDocuments()
	}

	if !cfg.Corpus.Lazy {
		if err := svc.kb.Initialize(ctx, svc.seed); err != nil {
			cancel()
			return nil, err
		}
	}

	return svc, nil
}

type service struct {
	kb        *KnowledgeBase
	taxonomy  *Taxonomy
	suggester *Suggester
	seed      []Document

	cfg    Config
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// ready builds the knowledge base on first use. The build runs on the
// service context so that a cancelled request cannot fail it for everyone.
func (svc *service) ready() error {
	return svc.kb.Initialize(svc.ctx, svc.seed)
}

func (svc *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := svc.cfg.RequestTimeout.Duration(); d > 0 {
		return context.WithTimeout(ctx, d)
	}

	return ctx, func() {}
}

func (svc *service) Close() error {
	if svc.cancel != nil {
		svc.cancel()
		svc.cancel = nil
	}

	return svc.kb.Close()
}

func (svc *service) Ask(ctx context.Context, req AskRequest) (answer *Answer, err error) {
	log := svc.log.With(
		zap.String("action", "ask"),
	)

	query := strings.TrimSpace(req.Query)

	answer = &Answer{
		ID:        uuid.NewString(),
		Query:     query,
		Category:  CategoryGeneral,
		Sources:   []Source{},
		Timestamp: time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", zap.Any("panic", r))

			answer.Answer = ApologyMessage
			answer.Sources = []Source{}
			answer.SuggestedFollowups = nil
			err = nil
		}
	}()

	if query == "" {
		answer.Answer = EmptyQueryMessage
		return answer, nil
	}

	if err := svc.ready(); err != nil {
		return nil, err
	}

	category := req.Category
	if _, known := svc.taxonomy.Lookup(category); category == "" || !known {
		category = svc.taxonomy.Categorize(query)
	}

	matches, err := svc.Retrieve(ctx, query, req.TopK)
	if err != nil {
		return nil, err
	}

	answer.Category = category
	answer.Mode = svc.kb.Mode()
	answer.Answer = svc.taxonomy.Compose(query, matches)

	for _, m := range matches[:min(len(matches), MaxSources)] {
		answer.Sources = append(answer.Sources, Source{
			Title:    m.Document.Title,
			Category: m.Document.Category,
			Score:    m.Score,
		})
	}

	answer.SuggestedFollowups = svc.suggester.Suggest(category, svc.cfg.Followups)

	return answer, nil
}

func (svc *service) Retrieve(ctx context.Context, query string, k ...int) (matches []Match, err error) {
	n := svc.cfg.TopK
	if len(k) > 0 && k[0] > 0 {
		n = k[0]
	}

	defer func() {
		if r := recover(); r != nil {
			svc.log.Error("recovered from panic",
				zap.String("action", "retrieve"),
				zap.Any("panic", r),
			)

			matches, err = []Match{}, nil
		}
	}()

	if err := svc.ready(); err != nil {
		return nil, err
	}

	ctx, cancel := svc.withTimeout(ctx)
	defer cancel()

	return svc.kb.Search(ctx, query, n)
}

func (svc *service) Categorize(ctx context.Context, query string) (Category, error) {
	return svc.taxonomy.Categorize(query), nil
}

func (svc *service) Compose(ctx context.Context, query string, matches []Match) (string, error) {
	return svc.taxonomy.Compose(query, matches), nil
}

func (svc *service) AddDocument(ctx context.Context, doc Document) (status AddStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			svc.log.Error("recovered from panic",
				zap.String("action", "add_document"),
				zap.Any("panic", r),
			)

			status, err = AddStatusError, fmt.Errorf("add document: %v", r)
		}
	}()

	if err := svc.ready(); err != nil {
		return AddStatusError, err
	}

	ctx, cancel := svc.withTimeout(ctx)
	defer cancel()

	return svc.kb.Add(ctx, doc)
}

func (svc *service) Categories(ctx context.Context) ([]CategoryInfo, error) {
	return svc.taxonomy.Categories(), nil
}

func (svc *service) Guide(ctx context.Context, label string) (string, error) {
	plant := ParseLabel(label)
	if plant == "" {
		return "", ErrGuideNotFound
	}

	if err := svc.ready(); err != nil {
		return "", err
	}

	ctx, cancel := svc.withTimeout(ctx)
	defer cancel()

	docs := svc.kb.Documents()

	matches, err := svc.kb.Search(ctx, plant, len(docs))
	if err != nil {
		return "", err
	}

	for _, m := range matches {
		if m.Document.Guide != nil {
			return FormatGuide(m.Document), nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrGuideNotFound, plant)
}

func (svc *service) Status(ctx context.Context) (Status, error) {
	if err := svc.ready(); err != nil {
		return Status{}, err
	}

	return svc.kb.Status(), nil
}
