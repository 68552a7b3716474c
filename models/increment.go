package models

import (
	"context"
	"encoding/json"

	"github.com/notionviews/relay/session"
)

type IncrementResult struct {
	PageId        string
	PropertyUsed  string
	PreviousViews float64
	NewViews      float64
}

// IncrementViews runs the counter flow: normalize the page id, fetch the
// page, require a database row parent, resolve the counter property, PATCH
// its value plus one, then record stats. Any upstream failure aborts the
// flow before local counters move; there is nothing to roll back because no
// local mutation happens before the remote write succeeds. The parent is
// not checked against the tenant's registered database, that relaxed
// posture is kept on purpose and surfaced by /debug/page_meta instead.
func IncrementViews(ctx context.Context, tenant *Tenant, token, pageId string) (*IncrementResult, error) {
	normalized, err := NormalizePageId(ctx, pageId)
	if err != nil {
		return nil, err
	}

	client := session.Upstream(ctx)
	page, err := client.GetPage(ctx, token, normalized)
	if err != nil {
		return nil, mapUpstreamError(ctx, err)
	}
	if page.Parent.Type != "database_id" {
		return nil, session.PageNotInDatabaseError(ctx)
	}

	match, err := ResolveViewsProperty(ctx, page.Properties)
	if err != nil {
		return nil, err
	}

	previous := match.Property.NumberValue()
	next := previous + 1
	if err := client.UpdatePageNumber(ctx, token, normalized, match.Name, next); err != nil {
		return nil, mapUpstreamError(ctx, err)
	}

	RecordIncrement(ctx, tenant)
	return &IncrementResult{
		PageId:        normalized,
		PropertyUsed:  match.Name,
		PreviousViews: previous,
		NewViews:      next,
	}, nil
}

// PopularPages queries the tenant's registered database sorted descending
// by its counter column and relays the raw Notion result.
func PopularPages(ctx context.Context, tenant *Tenant, limit int) (json.RawMessage, error) {
	if tenant.DatabaseId == "" {
		return nil, session.DatabaseNotConfiguredError(ctx)
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	client := session.Upstream(ctx)
	database, err := client.GetDatabase(ctx, tenant.NotionToken, tenant.DatabaseId)
	if err != nil {
		return nil, mapUpstreamError(ctx, err)
	}
	match, err := ResolveViewsProperty(ctx, database.Properties)
	if err != nil {
		return nil, err
	}

	result, err := client.QueryDatabase(ctx, tenant.NotionToken, tenant.DatabaseId, match.Name, limit)
	if err != nil {
		return nil, mapUpstreamError(ctx, err)
	}
	return result, nil
}
