package session

import (
	"context"
	"net/http"

	"github.com/notionviews/relay/durable"
	"github.com/notionviews/relay/notion"
	"github.com/unrolled/render"
)

type contextValueKey int

const (
	keyRequest       contextValueKey = 0
	keyStore         contextValueKey = 1
	keyLogger        contextValueKey = 2
	keyRender        contextValueKey = 3
	keyUpstream      contextValueKey = 4
	keyRemoteAddress contextValueKey = 11
	keyRequestBody   contextValueKey = 13
)

func Logger(ctx context.Context) *durable.Logger {
	v, _ := ctx.Value(keyLogger).(*durable.Logger)
	return v
}

func Store(ctx context.Context) durable.Store {
	v, _ := ctx.Value(keyStore).(durable.Store)
	return v
}

func Render(ctx context.Context) *render.Render {
	v, _ := ctx.Value(keyRender).(*render.Render)
	return v
}

func Upstream(ctx context.Context) *notion.Client {
	v, _ := ctx.Value(keyUpstream).(*notion.Client)
	return v
}

func Request(ctx context.Context) *http.Request {
	v, _ := ctx.Value(keyRequest).(*http.Request)
	return v
}

func RemoteAddress(ctx context.Context) string {
	v, _ := ctx.Value(keyRemoteAddress).(string)
	return v
}

func RequestBody(ctx context.Context) string {
	v, _ := ctx.Value(keyRequestBody).(string)
	return v
}

func WithLogger(ctx context.Context, logger *durable.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

func WithStore(ctx context.Context, store durable.Store) context.Context {
	return context.WithValue(ctx, keyStore, store)
}

func WithRender(ctx context.Context, render *render.Render) context.Context {
	return context.WithValue(ctx, keyRender, render)
}

func WithUpstream(ctx context.Context, client *notion.Client) context.Context {
	return context.WithValue(ctx, keyUpstream, client)
}

func WithRequest(ctx context.Context, r *http.Request) context.Context {
	rCopy := new(http.Request)
	*rCopy = *r
	return context.WithValue(ctx, keyRequest, rCopy)
}

func WithRemoteAddress(ctx context.Context, remoteAddr string) context.Context {
	return context.WithValue(ctx, keyRemoteAddress, remoteAddr)
}

func WithRequestBody(ctx context.Context, body string) context.Context {
	return context.WithValue(ctx, keyRequestBody, body)
}
