package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"

	"github.com/flarexio/agrimithra"
)

// RequestTimeout bounds a request whose context carries no deadline.
var RequestTimeout = 10 * time.Second

func MakeEndpoints(nc *nats.Conn, prefix string) *agrimithra.EndpointSet {
	return &agrimithra.EndpointSet{
		Ask:         AskEndpoint(nc, prefix+".ask"),
		Retrieve:    RetrieveEndpoint(nc, prefix+".retrieve"),
		Categorize:  CategorizeEndpoint(nc, prefix+".categorize"),
		Compose:     ComposeEndpoint(nc, prefix+".compose"),
		AddDocument: AddDocumentEndpoint(nc, prefix+".add_document"),
		Categories:  CategoriesEndpoint(nc, prefix+".categories"),
		Guide:       GuideEndpoint(nc, prefix+".guide"),
		Status:      StatusEndpoint(nc, prefix+".status"),
	}
}

func requestMsg(ctx context.Context, nc *nats.Conn, topic string, data []byte) (*nats.Msg, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
	}

	msg, err := nc.RequestWithContext(ctx, topic, data)
	if err != nil {
		return nil, err
	}

	return msg, Error(msg)
}

func AskEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(agrimithra.AskRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		resp, err := requestMsg(ctx, nc, topic, data)
		if err != nil {
			return nil, err
		}

		var answer *agrimithra.Answer
		if err := json.Unmarshal(resp.Data, &answer); err != nil {
			return nil, err
		}

		return answer, nil
	}
}

func RetrieveEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(agrimithra.RetrieveRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		resp, err := requestMsg(ctx, nc, topic, data)
		if err != nil {
			return nil, err
		}

		var matches []agrimithra.Match
		if err := json.Unmarshal(resp.Data, &matches); err != nil {
			return nil, err
		}

		return matches, nil
	}
}

func CategorizeEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		query, ok := request.(string)
		if !ok {
			return nil, errors.New("invalid request")
		}

		resp, err := requestMsg(ctx, nc, topic, []byte(query))
		if err != nil {
			return nil, err
		}

		return agrimithra.Category(resp.Data), nil
	}
}

func ComposeEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(agrimithra.ComposeRequest)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&req)
		if err != nil {
			return nil, err
		}

		resp, err := requestMsg(ctx, nc, topic, data)
		if err != nil {
			return nil, err
		}

		return string(resp.Data), nil
	}
}

func AddDocumentEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		doc, ok := request.(agrimithra.Document)
		if !ok {
			return nil, errors.New("invalid request")
		}

		data, err := json.Marshal(&doc)
		if err != nil {
			return nil, err
		}

		resp, reqErr := requestMsg(ctx, nc, topic, data)
		if resp == nil {
			return nil, reqErr
		}

		var result agrimithra.AddDocumentResponse
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			if reqErr != nil {
				return nil, reqErr
			}

			return nil, err
		}

		return result, reqErr
	}
}

func CategoriesEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		resp, err := requestMsg(ctx, nc, topic, nil)
		if err != nil {
			return nil, err
		}

		var categories []agrimithra.CategoryInfo
		if err := json.Unmarshal(resp.Data, &categories); err != nil {
			return nil, err
		}

		return categories, nil
	}
}

func GuideEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		label, ok := request.(string)
		if !ok {
			return nil, errors.New("invalid request")
		}

		resp, err := requestMsg(ctx, nc, topic, []byte(label))
		if err != nil {
			return nil, err
		}

		return string(resp.Data), nil
	}
}

func StatusEndpoint(nc *nats.Conn, topic string) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		resp, err := requestMsg(ctx, nc, topic, nil)
		if err != nil {
			return nil, err
		}

		var status agrimithra.Status
		if err := json.Unmarshal(resp.Data, &status); err != nil {
			return nil, err
		}

		return status, nil
	}
}

func Error(msg *nats.Msg) error {
	if msg == nil {
		return errors.New("nil message")
	}

	code := msg.Header.Get(micro.ErrorCodeHeader)
	if code == "" {
		return nil
	}

	description := msg.Header.Get(micro.ErrorHeader)
	if description == "" {
		description = "unknown error"
	}

	switch code {
	case "409":
		return fmt.Errorf("%w: %s", agrimithra.ErrDocumentExists, description)
	case "404":
		return fmt.Errorf("%w: %s", agrimithra.ErrGuideNotFound, description)
	case "400":
		return fmt.Errorf("%w: %s", agrimithra.ErrInvalidDocument, description)
	}

	return errors.New(code + ":" + description)
}
