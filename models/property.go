package models

import (
	"context"
	"strings"

	"github.com/notionviews/relay/notion"
	"github.com/notionviews/relay/session"
)

// viewsPropertyCandidates is the fixed priority list the resolver tries
// first, the canonical name leads and known localized aliases follow.
var viewsPropertyCandidates = []string{
	"Views",
	"views",
	"조회수",
	"View Count",
	"ViewCount",
	"view_count",
	"閲覧数",
	"Count",
}

// viewsKeywords drive the substring fallback when no candidate matches.
var viewsKeywords = []string{"view", "조회", "閲覧", "count"}

type PropertyMatch struct {
	Name     string
	Property notion.Property
}

// ResolveViewsProperty locates the numeric counter property on a page or
// database. First match wins: exact candidate name, then case-insensitive
// candidate name, then a view related keyword as substring, then the first
// numeric property in page order. The last rule is a best effort tiebreak,
// with several unrelated numeric columns it can pick the wrong one.
func ResolveViewsProperty(ctx context.Context, properties *notion.PropertyMap) (*PropertyMatch, error) {
	if properties == nil || properties.Size() == 0 {
		return nil, session.NoCounterPropertyError(ctx, nil)
	}

	for _, candidate := range viewsPropertyCandidates {
		if property, found := properties.Get(candidate); found && property.Type == "number" {
			return &PropertyMatch{Name: candidate, Property: property}, nil
		}
	}

	// candidate priority outranks page order here, a page with both COUNT
	// and VIEWS still resolves to VIEWS
	var match *PropertyMatch
	for _, candidate := range viewsPropertyCandidates {
		properties.Each(func(name string, property notion.Property) {
			if match != nil || property.Type != "number" {
				return
			}
			if strings.EqualFold(name, candidate) {
				match = &PropertyMatch{Name: name, Property: property}
			}
		})
		if match != nil {
			return match, nil
		}
	}

	properties.Each(func(name string, property notion.Property) {
		if match != nil || property.Type != "number" {
			return
		}
		lower := strings.ToLower(name)
		for _, keyword := range viewsKeywords {
			if strings.Contains(lower, keyword) {
				match = &PropertyMatch{Name: name, Property: property}
				return
			}
		}
	})
	if match != nil {
		return match, nil
	}

	properties.Each(func(name string, property notion.Property) {
		if match == nil && property.Type == "number" {
			match = &PropertyMatch{Name: name, Property: property}
		}
	})
	if match != nil {
		return match, nil
	}

	return nil, session.NoCounterPropertyError(ctx, properties.Names())
}
