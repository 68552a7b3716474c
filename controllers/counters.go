package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dimfeld/httptreemux"
	"github.com/notionviews/relay/middlewares"
	"github.com/notionviews/relay/models"
	"github.com/notionviews/relay/session"
	"github.com/notionviews/relay/views"
)

type countersImpl struct{}

type incrementRequest struct {
	PageId     string `json:"page_id"`
	DatabaseId string `json:"database_id"`
	// NotionToken is the legacy fallback for callers that never registered,
	// honored only when no API key resolves to a tenant.
	NotionToken string `json:"notion_token"`
}

func registerCounters(router *httptreemux.TreeMux) {
	impl := &countersImpl{}

	router.POST("/increment_views", impl.increment)
	router.GET("/popular_commands", impl.popular)
}

func (impl *countersImpl) increment(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body incrementRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PageId == "" {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}

	tenant := middlewares.CurrentTenant(r)
	token := body.NotionToken
	if tenant != nil {
		token = tenant.NotionToken
	}
	if token == "" {
		views.RenderErrorResponse(w, r, session.AuthorizationError(r.Context()))
		return
	}

	result, err := models.IncrementViews(r.Context(), tenant, token, body.PageId)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderIncrement(w, r, result)
}

func (impl *countersImpl) popular(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	tenant := middlewares.CurrentTenant(r)
	if tenant == nil {
		views.RenderErrorResponse(w, r, session.AuthorizationError(r.Context()))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	result, err := models.PopularPages(r.Context(), tenant, limit)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderDataResponse(w, r, result)
}
