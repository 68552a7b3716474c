package main

import (
	"fmt"
	"net/http"

	"github.com/bugsnag/bugsnag-go"
	"github.com/dimfeld/httptreemux"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/gorilla/handlers"
	"github.com/notionviews/relay/config"
	"github.com/notionviews/relay/controllers"
	"github.com/notionviews/relay/durable"
	"github.com/notionviews/relay/middlewares"
	"github.com/notionviews/relay/notion"
	"github.com/unrolled/render"
)

func StartServer(store durable.Store) error {
	logger, err := durable.NewLoggerClient(config.Environment() != "production")
	if err != nil {
		return err
	}
	defer logger.Close()

	router := httptreemux.New()
	controllers.RegisterHanders(router)
	controllers.RegisterRoutes(router)
	handler := middlewares.Authenticate(router)
	handler = middlewares.Constraint(handler)
	handler = middlewares.Stats(handler, config.BuildVersion)
	handler = middlewares.Context(handler, store, notion.NewClient(), render.New(render.Options{UnEscapeHTML: true}))
	handler = middlewares.Log(handler, logger, "http")
	handler = handlers.ProxyHeaders(handler)
	handler = bugsnag.Handler(handler)

	return gracehttp.Serve(&http.Server{Addr: fmt.Sprintf(":%d", config.HTTPListenPort()), Handler: handler})
}
