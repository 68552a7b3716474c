package models

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/notionviews/relay/notion"
	"github.com/notionviews/relay/session"
	"github.com/notionviews/relay/uuid"
	"golang.org/x/crypto/sha3"
)

const (
	tokenPrefixSecret   = "secret_"
	tokenPrefixInternal = "ntn_"

	apiKeyPrefix = "nvk_"
)

// Tenant is a registered user of the relay, identified by an issued API
// key. Records live in the injected store only and die with the process.
// Concurrent requests for the same key may interleave updates on the
// advisory ActiveAt and IncrementCount fields, the authoritative counter
// lives in Notion.
type Tenant struct {
	APIKey         string
	NotionToken    string
	DatabaseId     string
	CreatedAt      time.Time
	ActiveAt       time.Time
	IncrementCount int64
}

// CreateTenant validates the token format, verifies it against the Notion
// identity endpoint, and mints a fresh API key. A configured database id is
// checked best effort, a failure there is logged and ignored.
func CreateTenant(ctx context.Context, token, databaseId string) (*Tenant, error) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, tokenPrefixSecret) && !strings.HasPrefix(token, tokenPrefixInternal) {
		return nil, session.InvalidTokenFormatError(ctx)
	}

	if _, err := session.Upstream(ctx).GetSelf(ctx, token); err != nil {
		var requestErr *notion.RequestError
		if errors.As(err, &requestErr) {
			return nil, session.IdentityVerificationError(ctx, requestErr.Status)
		}
		return nil, session.UpstreamUnreachableError(ctx, err)
	}

	if databaseId != "" {
		if _, err := session.Upstream(ctx).GetDatabase(ctx, token, databaseId); err != nil {
			if logger := session.Logger(ctx); logger != nil {
				logger.Infof("database %s not verified at registration: %v", databaseId, err)
			}
		}
	}

	tenant := &Tenant{
		APIKey:      mintAPIKey(token),
		NotionToken: token,
		DatabaseId:  databaseId,
		CreatedAt:   time.Now(),
		ActiveAt:    time.Now(),
	}
	session.Store(ctx).Put(tenant.APIKey, tenant)
	recordRegistration()
	return tenant, nil
}

// AuthenticateTenant resolves an API key and bumps the tenant's activity
// timestamp as a side effect.
func AuthenticateTenant(ctx context.Context, key string) (*Tenant, error) {
	if key == "" {
		return nil, session.AuthorizationError(ctx)
	}
	value, found := session.Store(ctx).Get(key)
	if !found {
		return nil, session.AuthorizationError(ctx)
	}
	tenant := value.(*Tenant)
	tenant.ActiveAt = time.Now()
	session.Store(ctx).Put(tenant.APIKey, tenant)
	return tenant, nil
}

// RecordIncrement bumps the process-wide and, when a registered tenant made
// the call, the per-tenant counters. Callers invoke it only after the
// upstream PATCH succeeded.
func RecordIncrement(ctx context.Context, tenant *Tenant) {
	recordView()
	if tenant == nil {
		return
	}
	tenant.IncrementCount = tenant.IncrementCount + 1
	tenant.ActiveAt = time.Now()
	session.Store(ctx).Put(tenant.APIKey, tenant)
}

func SetTenantDatabaseId(ctx context.Context, tenant *Tenant, databaseId string) {
	tenant.DatabaseId = databaseId
	session.Store(ctx).Put(tenant.APIKey, tenant)
}

// DeleteTenant removes a record, self-service only: the requester key must
// equal the target key.
func DeleteTenant(ctx context.Context, key, requesterKey string) error {
	if key != requesterKey {
		return session.ForbiddenError(ctx)
	}
	if !session.Store(ctx).Delete(key) {
		return session.NotFoundError(ctx)
	}
	return nil
}

func TenantCount(ctx context.Context) int {
	return session.Store(ctx).Count()
}

// mintAPIKey hashes the token together with the current time and a random
// id, keys are never reused across tenants.
func mintAPIKey(token string) string {
	seed := fmt.Sprintf("%s:%d:%s", token, time.Now().UnixNano(), uuid.NewV4())
	sum := sha3.Sum256([]byte(seed))
	return apiKeyPrefix + hex.EncodeToString(sum[:20])
}

func mapUpstreamError(ctx context.Context, err error) error {
	var requestErr *notion.RequestError
	if errors.As(err, &requestErr) {
		return session.UpstreamError(ctx, requestErr.Status, requestErr.Body)
	}
	var connectivityErr *notion.ConnectivityError
	if errors.As(err, &connectivityErr) {
		return session.UpstreamUnreachableError(ctx, err)
	}
	return session.ServerError(ctx, err)
}
