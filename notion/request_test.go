package notion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notionviews/relay/config"
	"github.com/stretchr/testify/assert"
)

func TestSendRequestHeaders(t *testing.T) {
	assert := assert.New(t)

	var gotAuth, gotVersion, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"object":"user"}`))
	}))
	defer server.Close()

	client := NewClient()
	client.Endpoint = server.URL
	body, err := client.SendRequest(context.Background(), "secret_abc", "GET", "/v1/users/me", nil)
	assert.Nil(err)
	assert.Equal(`{"object":"user"}`, string(body))
	assert.Equal("Bearer secret_abc", gotAuth)
	assert.Equal(config.NotionVersion, gotVersion)
	assert.Equal("application/json", gotContentType)
}

func TestSendRequestUpstreamError(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object":"error","status":404,"message":"Could not find page."}`))
	}))
	defer server.Close()

	client := NewClient()
	client.Endpoint = server.URL
	body, err := client.SendRequest(context.Background(), "secret_abc", "GET", "/v1/pages/abc", nil)
	assert.Nil(body)
	var requestErr *RequestError
	assert.True(errors.As(err, &requestErr))
	assert.Equal(404, requestErr.Status)
	assert.Contains(string(requestErr.Body), "Could not find page.")
}

func TestSendRequestEmptyErrorBody(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient()
	client.Endpoint = server.URL
	_, err := client.SendRequest(context.Background(), "secret_abc", "GET", "/v1/pages/abc", nil)
	var requestErr *RequestError
	assert.True(errors.As(err, &requestErr))
	assert.Equal(502, requestErr.Status)
	assert.Equal(`{"error":"upstream status 502"}`, string(requestErr.Body))
}

func TestSendRequestConnectivityError(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient()
	client.Endpoint = server.URL
	_, err := client.SendRequest(context.Background(), "secret_abc", "GET", "/v1/users/me", nil)
	var connectivityErr *ConnectivityError
	assert.True(errors.As(err, &connectivityErr))
	var requestErr *RequestError
	assert.False(errors.As(err, &requestErr))
}
