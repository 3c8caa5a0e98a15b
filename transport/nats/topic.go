package nats

import (
	"github.com/nats-io/nats.go/micro"

	"github.com/flarexio/agrimithra"
)

func AddEndpoints(group micro.Group, endpoints agrimithra.EndpointSet) {
	group.AddEndpoint("ask", AskHandler(endpoints.Ask))
	group.AddEndpoint("retrieve", RetrieveHandler(endpoints.Retrieve))
	group.AddEndpoint("categorize", CategorizeHandler(endpoints.Categorize))
	group.AddEndpoint("compose", ComposeHandler(endpoints.Compose))
	group.AddEndpoint("add_document", AddDocumentHandler(endpoints.AddDocument))
	group.AddEndpoint("categories", CategoriesHandler(endpoints.Categories))
	group.AddEndpoint("guide", GuideHandler(endpoints.Guide))
	group.AddEndpoint("status", StatusHandler(endpoints.Status))
}
