package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dimfeld/httptreemux"
	"github.com/notionviews/relay/middlewares"
	"github.com/notionviews/relay/models"
	"github.com/notionviews/relay/session"
	"github.com/notionviews/relay/views"
)

type tenantsImpl struct{}

type registrationRequest struct {
	NotionToken string `json:"notion_token"`
	DatabaseId  string `json:"database_id"`
}

type databaseIdRequest struct {
	DatabaseId string `json:"database_id"`
}

func registerTenants(router *httptreemux.TreeMux) {
	impl := &tenantsImpl{}

	router.POST("/register", impl.create)
	router.POST("/config/database_id", impl.configureDatabase)
	router.DELETE("/user/:key", impl.delete)
	router.GET("/debug/page_meta", impl.pageMeta)
}

func (impl *tenantsImpl) create(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}

	tenant, err := models.CreateTenant(r.Context(), body.NotionToken, body.DatabaseId)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderTenant(w, r, tenant)
}

func (impl *tenantsImpl) configureDatabase(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	tenant := middlewares.CurrentTenant(r)
	if tenant == nil {
		views.RenderErrorResponse(w, r, session.AuthorizationError(r.Context()))
		return
	}

	var body databaseIdRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.DatabaseId) == "" {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}

	models.SetTenantDatabaseId(r.Context(), tenant, strings.TrimSpace(body.DatabaseId))
	views.RenderDataResponse(w, r, map[string]interface{}{
		"success":     true,
		"database_id": tenant.DatabaseId,
	})
}

func (impl *tenantsImpl) delete(w http.ResponseWriter, r *http.Request, params map[string]string) {
	tenant := middlewares.CurrentTenant(r)
	if tenant == nil {
		views.RenderErrorResponse(w, r, session.AuthorizationError(r.Context()))
		return
	}

	if err := models.DeleteTenant(r.Context(), params["key"], tenant.APIKey); err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderDataResponse(w, r, map[string]interface{}{"success": true})
}

func (impl *tenantsImpl) pageMeta(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	tenant := middlewares.CurrentTenant(r)
	token := r.URL.Query().Get("notion_token")
	if tenant != nil {
		token = tenant.NotionToken
	}
	if token == "" {
		views.RenderErrorResponse(w, r, session.AuthorizationError(r.Context()))
		return
	}

	pageId := r.URL.Query().Get("page_id")
	if pageId == "" {
		views.RenderErrorResponse(w, r, session.BadRequestError(r.Context()))
		return
	}

	meta, err := models.DescribePage(r.Context(), tenant, token, pageId)
	if err != nil {
		views.RenderErrorResponse(w, r, err)
		return
	}
	views.RenderDataResponse(w, r, meta)
}
