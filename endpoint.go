package agrimithra

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	Ask         endpoint.Endpoint
	Retrieve    endpoint.Endpoint
	Categorize  endpoint.Endpoint
	Compose     endpoint.Endpoint
	AddDocument endpoint.Endpoint
	Categories  endpoint.Endpoint
	Guide       endpoint.Endpoint
	Status      endpoint.Endpoint
}

func MakeEndpoints(svc Service) *EndpointSet {
	return &EndpointSet{
		Ask:         AskEndpoint(svc),
		Retrieve:    RetrieveEndpoint(svc),
		Categorize:  CategorizeEndpoint(svc),
		Compose:     ComposeEndpoint(svc),
		AddDocument: AddDocumentEndpoint(svc),
		Categories:  CategoriesEndpoint(svc),
		Guide:       GuideEndpoint(svc),
		Status:      StatusEndpoint(svc),
	}
}

func AskEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(AskRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Ask(ctx, req)
	}
}

type RetrieveRequest struct {
	Query string `json:"query" form:"query"`
	K     int    `json:"k,omitempty" form:"k"`
}

func RetrieveEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(RetrieveRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Retrieve(ctx, req.Query, req.K)
	}
}

func CategorizeEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		query, ok := request.(string)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Categorize(ctx, query)
	}
}

type ComposeRequest struct {
	Query   string  `json:"query"`
	Matches []Match `json:"matches"`
}

func ComposeEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(ComposeRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Compose(ctx, req.Query, req.Matches)
	}
}

type AddDocumentResponse struct {
	Status  AddStatus `json:"status"`
	Title   string    `json:"title"`
	Message string    `json:"message,omitempty"`
}

// AddDocumentEndpoint reports failures in the response as well as the
// error, so transports can return the status to the caller.
func AddDocumentEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		doc, ok := request.(Document)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		status, err := svc.AddDocument(ctx, doc)

		resp := AddDocumentResponse{
			Status: status,
			Title:  doc.Title,
		}

		if err != nil {
			resp.Message = err.Error()
		}

		return resp, err
	}
}

func CategoriesEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.Categories(ctx)
	}
}

func GuideEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		label, ok := request.(string)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Guide(ctx, label)
	}
}

func StatusEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		return svc.Status(ctx)
	}
}
