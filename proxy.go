package agrimithra

import (
	"context"
	"errors"
)

// ProxyMiddleware serves the Service through remote endpoints, such as the
// NATS client endpoints used by the MCP server binary.
func ProxyMiddleware(endpoints *EndpointSet) ServiceMiddleware {
	return func(next Service) Service {
		return &proxyMiddleware{
			endpoints: endpoints,
		}
	}
}

type proxyMiddleware struct {
	endpoints *EndpointSet
}

func (mw *proxyMiddleware) Close() error {
	return errors.New("method not implemented")
}

func (mw *proxyMiddleware) Ask(ctx context.Context, req AskRequest) (*Answer, error) {
	resp, err := mw.endpoints.Ask(ctx, req)
	if err != nil {
		return nil, err
	}

	answer, ok := resp.(*Answer)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return answer, nil
}

func (mw *proxyMiddleware) Retrieve(ctx context.Context, query string, k ...int) ([]Match, error) {
	n := 0
	if len(k) > 0 {
		n = k[0]
	}

	req := RetrieveRequest{
		Query: query,
		K:     n,
	}

	resp, err := mw.endpoints.Retrieve(ctx, req)
	if err != nil {
		return nil, err
	}

	matches, ok := resp.([]Match)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return matches, nil
}

func (mw *proxyMiddleware) Categorize(ctx context.Context, query string) (Category, error) {
	resp, err := mw.endpoints.Categorize(ctx, query)
	if err != nil {
		return "", err
	}

	category, ok := resp.(Category)
	if !ok {
		return "", errors.New("invalid response type")
	}

	return category, nil
}

func (mw *proxyMiddleware) Compose(ctx context.Context, query string, matches []Match) (string, error) {
	req := ComposeRequest{
		Query:   query,
		Matches: matches,
	}

	resp, err := mw.endpoints.Compose(ctx, req)
	if err != nil {
		return "", err
	}

	answer, ok := resp.(string)
	if !ok {
		return "", errors.New("invalid response type")
	}

	return answer, nil
}

func (mw *proxyMiddleware) AddDocument(ctx context.Context, doc Document) (AddStatus, error) {
	resp, err := mw.endpoints.AddDocument(ctx, doc)

	result, ok := resp.(AddDocumentResponse)
	if !ok {
		if err != nil {
			return AddStatusError, err
		}

		return AddStatusError, errors.New("invalid response type")
	}

	return result.Status, err
}

func (mw *proxyMiddleware) Categories(ctx context.Context) ([]CategoryInfo, error) {
	resp, err := mw.endpoints.Categories(ctx, nil)
	if err != nil {
		return nil, err
	}

	categories, ok := resp.([]CategoryInfo)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return categories, nil
}

func (mw *proxyMiddleware) Guide(ctx context.Context, label string) (string, error) {
	resp, err := mw.endpoints.Guide(ctx, label)
	if err != nil {
		return "", err
	}

	guide, ok := resp.(string)
	if !ok {
		return "", errors.New("invalid response type")
	}

	return guide, nil
}

func (mw *proxyMiddleware) Status(ctx context.Context) (Status, error) {
	resp, err := mw.endpoints.Status(ctx, nil)
	if err != nil {
		return Status{}, err
	}

	status, ok := resp.(Status)
	if !ok {
		return Status{}, errors.New("invalid response type")
	}

	return status, nil
}
