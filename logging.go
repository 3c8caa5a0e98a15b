package agrimithra

import (
	"context"

	"go.uber.org/zap"
)

func LoggingMiddleware(log *zap.Logger) ServiceMiddleware {
	log = log.With(
		zap.String("service", "agrimithra"),
	)

	return func(next Service) Service {
		log.Info("service initialized")

		return &loggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type loggingMiddleware struct {
	log  *zap.Logger
	next Service
}

func (mw *loggingMiddleware) Close() error {
	log := mw.log.With(
		zap.String("action", "close"),
	)

	err := mw.next.Close()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("service closed")
	return nil
}

func (mw *loggingMiddleware) Ask(ctx context.Context, req AskRequest) (*Answer, error) {
	log := mw.log.With(
		zap.String("action", "ask"),
		zap.String("query", req.Query),
	)

	if req.Category != "" {
		log = log.With(
			zap.String("category", string(req.Category)),
		)
	}

	answer, err := mw.next.Ask(ctx, req)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("query answered",
		zap.String("id", answer.ID),
		zap.String("category", string(answer.Category)),
		zap.String("mode", string(answer.Mode)),
		zap.Int("sources", len(answer.Sources)),
	)

	return answer, nil
}

func (mw *loggingMiddleware) Retrieve(ctx context.Context, query string, k ...int) ([]Match, error) {
	log := mw.log.With(
		zap.String("action", "retrieve"),
		zap.String("query", query),
	)

	if len(k) > 0 && k[0] > 0 {
		log = log.With(
			zap.Int("k", k[0]),
		)
	}

	matches, err := mw.next.Retrieve(ctx, query, k...)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("documents retrieved", zap.Int("count", len(matches)))
	return matches, nil
}

func (mw *loggingMiddleware) Categorize(ctx context.Context, query string) (Category, error) {
	log := mw.log.With(
		zap.String("action", "categorize"),
		zap.String("query", query),
	)

	category, err := mw.next.Categorize(ctx, query)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Debug("query categorized", zap.String("category", string(category)))
	return category, nil
}

func (mw *loggingMiddleware) Compose(ctx context.Context, query string, matches []Match) (string, error) {
	log := mw.log.With(
		zap.String("action", "compose"),
		zap.Int("matches", len(matches)),
	)

	answer, err := mw.next.Compose(ctx, query, matches)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Debug("answer composed")
	return answer, nil
}

func (mw *loggingMiddleware) AddDocument(ctx context.Context, doc Document) (AddStatus, error) {
	log := mw.log.With(
		zap.String("action", "add_document"),
		zap.String("title", doc.Title),
		zap.String("category", string(doc.Category)),
	)

	status, err := mw.next.AddDocument(ctx, doc)
	if err != nil {
		log.Error(err.Error(), zap.String("status", string(status)))
		return status, err
	}

	log.Info("document added", zap.String("status", string(status)))
	return status, nil
}

func (mw *loggingMiddleware) Categories(ctx context.Context) ([]CategoryInfo, error) {
	log := mw.log.With(
		zap.String("action", "categories"),
	)

	categories, err := mw.next.Categories(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Debug("categories listed", zap.Int("count", len(categories)))
	return categories, nil
}

func (mw *loggingMiddleware) Guide(ctx context.Context, label string) (string, error) {
	log := mw.log.With(
		zap.String("action", "guide"),
		zap.String("label", label),
	)

	guide, err := mw.next.Guide(ctx, label)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("crop guide rendered")
	return guide, nil
}

func (mw *loggingMiddleware) Status(ctx context.Context) (Status, error) {
	log := mw.log.With(
		zap.String("action", "status"),
	)

	status, err := mw.next.Status(ctx)
	if err != nil {
		log.Error(err.Error())
		return Status{}, err
	}

	log.Debug("status reported",
		zap.String("mode", string(status.Mode)),
		zap.Int("documents", status.Documents),
	)

	return status, nil
}
