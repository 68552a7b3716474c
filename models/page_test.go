package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribePage(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	stub.pageJSON = pageJSON("database_id", `{"Name":{"id":"t","type":"title"},"Views":{"id":"v","type":"number","number":3}}`)

	meta, err := DescribePage(ctx, nil, "secret_good", testPageId)
	assert.Nil(err)
	assert.Equal(testPageIdDashed, meta.PageId)
	assert.True(meta.IsDatabaseRow)
	assert.Nil(meta.RegisteredDatabaseMatch)
	assert.Equal("Views", meta.ResolvedProperty)
	assert.Len(meta.Properties, 2)

	tenant := &Tenant{APIKey: "nvk_test", NotionToken: "secret_good", DatabaseId: "known-db"}
	meta, err = DescribePage(ctx, tenant, tenant.NotionToken, testPageId)
	assert.Nil(err)
	assert.NotNil(meta.RegisteredDatabaseMatch)
	assert.True(*meta.RegisteredDatabaseMatch)

	tenant.DatabaseId = "other-db"
	meta, err = DescribePage(ctx, tenant, tenant.NotionToken, testPageId)
	assert.Nil(err)
	assert.False(*meta.RegisteredDatabaseMatch)
}

func TestNormalizePageId(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	canonical := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	id, err := NormalizePageId(ctx, "6ba7b8109dad11d180b400c04fd430c8")
	assert.Nil(err)
	assert.Equal(canonical, id)

	// already dashed ids pass through unchanged
	id, err = NormalizePageId(ctx, canonical)
	assert.Nil(err)
	assert.Equal(canonical, id)

	id, err = NormalizePageId(ctx, "  "+canonical+" ")
	assert.Nil(err)
	assert.Equal(canonical, id)

	for _, malformed := range []string{
		"",
		"6ba7b810",
		"6ba7b8109dad11d180b400c04fd430c8ff",
		"zza7b8109dad11d180b400c04fd430c8",
		"not-a-page-id",
	} {
		id, err = NormalizePageId(ctx, malformed)
		assert.NotNil(err, malformed)
		assert.Equal("", id)
	}
}
