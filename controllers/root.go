package controllers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/bugsnag/bugsnag-go/errors"
	"github.com/dimfeld/httptreemux"
	"github.com/notionviews/relay/config"
	"github.com/notionviews/relay/models"
	"github.com/notionviews/relay/views"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
)

func RegisterRoutes(router *httptreemux.TreeMux) {
	router.GET("/", root)
	router.GET("/_hc", healthCheck)
	router.GET("/health", health)
	router.GET("/stats", stats)
	router.GET("/metrics", metrics)

	registerTenants(router)
	registerCounters(router)
}

func RegisterHanders(router *httptreemux.TreeMux) {
	router.MethodNotAllowedHandler = func(w http.ResponseWriter, r *http.Request, _ map[string]httptreemux.HandlerFunc) {
		render.New().JSON(w, http.StatusNotFound, map[string]interface{}{})
	}
	router.NotFoundHandler = func(w http.ResponseWriter, r *http.Request) {
		render.New().JSON(w, http.StatusNotFound, map[string]interface{}{})
	}
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, rcv interface{}) {
		err := fmt.Errorf(string(errors.New(rcv, 2).Stack()))
		render.New().JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
	}
}

func root(w http.ResponseWriter, r *http.Request, params map[string]string) {
	views.RenderDataResponse(w, r, map[string]interface{}{
		"message": "Notion Views API",
		"status":  "online",
		"version": config.BuildVersion + "-" + runtime.Version(),
		"endpoints": map[string]string{
			"health":           "GET /health",
			"register":         "POST /register",
			"configure":        "POST /config/database_id",
			"increment":        "POST /increment_views",
			"popular_commands": "GET /popular_commands",
			"stats":            "GET /stats",
		},
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request, params map[string]string) {
	views.RenderBlankResponse(w, r)
}

func health(w http.ResponseWriter, r *http.Request, params map[string]string) {
	views.RenderDataResponse(w, r, map[string]interface{}{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int64(models.Uptime().Seconds()),
	})
}

func stats(w http.ResponseWriter, r *http.Request, params map[string]string) {
	views.RenderDataResponse(w, r, map[string]interface{}{
		"total_views":        models.TotalViews(),
		"registered_tenants": models.TenantCount(r.Context()),
		"uptime_seconds":     int64(models.Uptime().Seconds()),
		"started_at":         models.StartedAt().UTC().Format(time.RFC3339),
	})
}

func metrics(w http.ResponseWriter, r *http.Request, params map[string]string) {
	promhttp.Handler().ServeHTTP(w, r)
}
