package models

import (
	"context"
	"strings"

	"github.com/notionviews/relay/notion"
	"github.com/notionviews/relay/session"
	"github.com/notionviews/relay/uuid"
)

// NormalizePageId accepts a page id copied out of a Notion URL, with or
// without dashes, and returns the canonical dashed UUID form. Anything that
// is not 32 hex characters after dash removal fails fast.
func NormalizePageId(ctx context.Context, id string) (string, error) {
	stripped := strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if len(stripped) != 32 {
		return "", session.InvalidPageIdError(ctx, id)
	}
	parsed, err := uuid.FromString(stripped)
	if err != nil {
		return "", session.InvalidPageIdError(ctx, id)
	}
	return parsed.String(), nil
}

type PagePropertyMeta struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Number float64 `json:"number,omitempty"`
}

// PageMeta is the diagnostic snapshot behind /debug/page_meta.
type PageMeta struct {
	PageId                  string             `json:"page_id"`
	Parent                  notion.Parent      `json:"parent"`
	IsDatabaseRow           bool               `json:"is_database_row"`
	RegisteredDatabaseMatch *bool              `json:"registered_database_match,omitempty"`
	Properties              []PagePropertyMeta `json:"properties"`
	ResolvedProperty        string             `json:"resolved_property,omitempty"`
}

// DescribePage reports where a page lives and which property the resolver
// would pick, without writing anything. The registered database comparison
// is informational only, the increment flow deliberately doesn't enforce it.
func DescribePage(ctx context.Context, tenant *Tenant, token, pageId string) (*PageMeta, error) {
	normalized, err := NormalizePageId(ctx, pageId)
	if err != nil {
		return nil, err
	}

	page, err := session.Upstream(ctx).GetPage(ctx, token, normalized)
	if err != nil {
		return nil, mapUpstreamError(ctx, err)
	}

	meta := &PageMeta{
		PageId:        page.Id,
		Parent:        page.Parent,
		IsDatabaseRow: page.Parent.Type == "database_id",
	}
	if tenant != nil && tenant.DatabaseId != "" {
		matched := normalizeDatabaseId(page.Parent.DatabaseId) == normalizeDatabaseId(tenant.DatabaseId)
		meta.RegisteredDatabaseMatch = &matched
	}
	if page.Properties != nil {
		page.Properties.Each(func(name string, property notion.Property) {
			item := PagePropertyMeta{Name: name, Type: property.Type}
			if property.Type == "number" {
				item.Number = property.NumberValue()
			}
			meta.Properties = append(meta.Properties, item)
		})
	}
	if match, err := ResolveViewsProperty(ctx, page.Properties); err == nil {
		meta.ResolvedProperty = match.Name
	}
	return meta, nil
}

func normalizeDatabaseId(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, "-", ""))
}
