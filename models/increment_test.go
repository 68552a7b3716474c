package models

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/notionviews/relay/session"
	"github.com/stretchr/testify/assert"
)

const testPageId = "6ba7b8109dad11d180b400c04fd430c8"
const testPageIdDashed = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

type upstreamStub struct {
	server     *httptest.Server
	pageJSON   string
	pageStatus int
	patches    int64
	requests   int64
	lastPatch  []byte
	lastQuery  []byte
}

func newUpstreamStub() *upstreamStub {
	stub := &upstreamStub{pageStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/pages/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.requests, 1)
		switch r.Method {
		case "GET":
			if stub.pageStatus != http.StatusOK {
				w.WriteHeader(stub.pageStatus)
				w.Write([]byte(`{"object":"error","message":"boom"}`))
				return
			}
			w.Write([]byte(stub.pageJSON))
		case "PATCH":
			atomic.AddInt64(&stub.patches, 1)
			stub.lastPatch, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"object":"page","id":"` + testPageIdDashed + `"}`))
		}
	})
	mux.HandleFunc("/v1/databases/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.requests, 1)
		if r.Method == "POST" {
			stub.lastQuery, _ = io.ReadAll(r.Body)
			w.Write([]byte(`{"object":"list","results":[{"object":"page","id":"p1"}]}`))
			return
		}
		w.Write([]byte(`{"object":"database","id":"known-db","properties":{"Name":{"id":"t","type":"title"},"Views":{"id":"v","type":"number","number":{"format":"number"}}}}`))
	})
	stub.server = httptest.NewServer(mux)
	return stub
}

func pageJSON(parentType, propertiesJSON string) string {
	parent := fmt.Sprintf(`{"type":"%s","database_id":"known-db"}`, parentType)
	if parentType == "workspace" {
		parent = `{"type":"workspace","workspace":true}`
	}
	return fmt.Sprintf(`{"object":"page","id":"%s","parent":%s,"properties":%s}`, testPageIdDashed, parent, propertiesJSON)
}

func TestIncrementViews(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	stub.pageJSON = pageJSON("database_id", `{"Notes":{"id":"a","type":"rich_text"},"Views":{"id":"b","type":"number","number":3}}`)

	tenant := &Tenant{APIKey: "nvk_test", NotionToken: "secret_good"}
	session.Store(ctx).Put(tenant.APIKey, tenant)
	viewsBefore := TotalViews()

	result, err := IncrementViews(ctx, tenant, tenant.NotionToken, testPageId)
	assert.Nil(err)
	assert.Equal(testPageIdDashed, result.PageId)
	assert.Equal("Views", result.PropertyUsed)
	assert.Equal(float64(3), result.PreviousViews)
	assert.Equal(float64(4), result.NewViews)
	assert.Equal(int64(1), stub.patches)
	assert.Equal(int64(1), tenant.IncrementCount)
	assert.Equal(viewsBefore+1, TotalViews())

	var patch struct {
		Properties map[string]struct {
			Number float64 `json:"number"`
		} `json:"properties"`
	}
	assert.Nil(json.Unmarshal(stub.lastPatch, &patch))
	assert.Equal(float64(4), patch.Properties["Views"].Number)
}

func TestIncrementViewsLegacyToken(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	stub.pageJSON = pageJSON("database_id", `{"Views":{"id":"b","type":"number","number":null}}`)
	viewsBefore := TotalViews()

	// null counter is treated as zero
	result, err := IncrementViews(ctx, nil, "secret_good", testPageId)
	assert.Nil(err)
	assert.Equal(float64(0), result.PreviousViews)
	assert.Equal(float64(1), result.NewViews)
	assert.Equal(viewsBefore+1, TotalViews())
}

func TestIncrementViewsSoleNumericProperty(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	stub.pageJSON = pageJSON("database_id", `{"Name":{"id":"t","type":"title"},"Counter":{"id":"c","type":"number","number":9}}`)

	result, err := IncrementViews(ctx, nil, "secret_good", testPageId)
	assert.Nil(err)
	assert.Equal("Counter", result.PropertyUsed)
	assert.Equal(float64(10), result.NewViews)
}

func TestIncrementViewsRejectsNonDatabaseParent(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	stub.pageJSON = pageJSON("workspace", `{"Views":{"id":"b","type":"number","number":3}}`)

	result, err := IncrementViews(ctx, nil, "secret_good", testPageId)
	assert.Nil(result)
	sessionErr, ok := err.(session.Error)
	assert.True(ok)
	assert.Equal(400, sessionErr.Status)
	assert.Equal(20004, sessionErr.Code)
	assert.Equal(int64(0), stub.patches)
}

func TestIncrementViewsUpstreamFailureLeavesCountersUnchanged(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	stub.pageStatus = http.StatusServiceUnavailable
	tenant := &Tenant{APIKey: "nvk_test", NotionToken: "secret_good"}
	session.Store(ctx).Put(tenant.APIKey, tenant)
	viewsBefore := TotalViews()

	result, err := IncrementViews(ctx, tenant, tenant.NotionToken, testPageId)
	assert.Nil(result)
	sessionErr, ok := err.(session.Error)
	assert.True(ok)
	assert.Equal(http.StatusServiceUnavailable, sessionErr.Status)
	assert.NotNil(sessionErr.Upstream)
	assert.Equal(int64(0), stub.patches)
	assert.Equal(int64(0), tenant.IncrementCount)
	assert.Equal(viewsBefore, TotalViews())
}

func TestIncrementViewsMalformedPageId(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	result, err := IncrementViews(ctx, nil, "secret_good", "short-id")
	assert.Nil(result)
	sessionErr, ok := err.(session.Error)
	assert.True(ok)
	assert.Equal(20003, sessionErr.Code)
	assert.Equal(int64(0), stub.requests)
}

func TestPopularPages(t *testing.T) {
	assert := assert.New(t)
	stub := newUpstreamStub()
	defer stub.server.Close()
	ctx := setupTestContext(stub.server.URL)

	tenant := &Tenant{APIKey: "nvk_test", NotionToken: "secret_good"}

	result, err := PopularPages(ctx, tenant, 5)
	assert.Nil(result)
	sessionErr, ok := err.(session.Error)
	assert.True(ok)
	assert.Equal(20006, sessionErr.Code)

	tenant.DatabaseId = "known-db"
	result, err = PopularPages(ctx, tenant, 5)
	assert.Nil(err)
	assert.Contains(string(result), `"results"`)

	var query struct {
		Sorts []struct {
			Property  string `json:"property"`
			Direction string `json:"direction"`
		} `json:"sorts"`
		PageSize int `json:"page_size"`
	}
	assert.Nil(json.Unmarshal(stub.lastQuery, &query))
	assert.Len(query.Sorts, 1)
	assert.Equal("Views", query.Sorts[0].Property)
	assert.Equal("descending", query.Sorts[0].Direction)
	assert.Equal(5, query.PageSize)
}
