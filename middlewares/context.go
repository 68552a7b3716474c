package middlewares

import (
	"net/http"

	"github.com/notionviews/relay/durable"
	"github.com/notionviews/relay/notion"
	"github.com/notionviews/relay/session"
	"github.com/unrolled/render"
)

func Context(handler http.Handler, store durable.Store, upstream *notion.Client, render *render.Render) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := session.WithRequest(r.Context(), r)
		ctx = session.WithStore(ctx, store)
		ctx = session.WithUpstream(ctx, upstream)
		ctx = session.WithRender(ctx, render)
		handler.ServeHTTP(w, r.WithContext(ctx))
	})
}
