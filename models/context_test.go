package models

import (
	"context"

	"github.com/notionviews/relay/durable"
	"github.com/notionviews/relay/notion"
	"github.com/notionviews/relay/session"
)

func setupTestContext(endpoint string) context.Context {
	client := notion.NewClient()
	if endpoint != "" {
		client.Endpoint = endpoint
	}
	ctx := session.WithStore(context.Background(), durable.NewMemoryStore())
	return session.WithUpstream(ctx, client)
}
