package nats

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-kit/kit/endpoint"
	"github.com/nats-io/nats.go/micro"

	"github.com/flarexio/agrimithra"
)

func AskHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var req agrimithra.AskRequest
		if err := json.Unmarshal(r.Data(), &req); err != nil {
			r.Error("422", err.Error(), nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, req)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		answer, ok := resp.(*agrimithra.Answer)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(answer)
	}
}

func RetrieveHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var req agrimithra.RetrieveRequest
		if err := json.Unmarshal(r.Data(), &req); err != nil {
			r.Error("422", err.Error(), nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, req)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		matches, ok := resp.([]agrimithra.Match)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(&matches)
	}
}

func CategorizeHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		query := string(r.Data())

		ctx := context.Background()
		resp, err := endpoint(ctx, query)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		category, ok := resp.(agrimithra.Category)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.Respond([]byte(category))
	}
}

func ComposeHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var req agrimithra.ComposeRequest
		if err := json.Unmarshal(r.Data(), &req); err != nil {
			r.Error("422", err.Error(), nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, req)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		answer, ok := resp.(string)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.Respond([]byte(answer))
	}
}

// AddDocumentHandler replies with the add status even on failure; the
// error code header carries the failure itself.
func AddDocumentHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var doc agrimithra.Document
		if err := json.Unmarshal(r.Data(), &doc); err != nil {
			r.Error("400", err.Error(), nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, doc)

		result, ok := resp.(agrimithra.AddDocumentResponse)
		if !ok {
			if err != nil {
				r.Error("417", err.Error(), nil)
				return
			}

			r.Error("500", "invalid response type", nil)
			return
		}

		if err != nil {
			data, _ := json.Marshal(&result)
			r.Error(errorCode(err), err.Error(), data)
			return
		}

		r.RespondJSON(&result)
	}
}

func CategoriesHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		ctx := context.Background()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		categories, ok := resp.([]agrimithra.CategoryInfo)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(&categories)
	}
}

func GuideHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		label := string(r.Data())

		ctx := context.Background()
		resp, err := endpoint(ctx, label)
		if err != nil {
			r.Error(errorCode(err), err.Error(), nil)
			return
		}

		guide, ok := resp.(string)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.Respond([]byte(guide))
	}
}

func StatusHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		ctx := context.Background()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			r.Error("417", err.Error(), nil)
			return
		}

		status, ok := resp.(agrimithra.Status)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(&status)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, agrimithra.ErrDocumentExists):
		return "409"
	case errors.Is(err, agrimithra.ErrInvalidDocument):
		return "400"
	case errors.Is(err, agrimithra.ErrGuideNotFound):
		return "404"
	default:
		return "417"
	}
}
