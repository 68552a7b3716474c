package notion

import (
	"fmt"
	"net/http"
	"time"

	"github.com/notionviews/relay/config"
)

// Client talks to the Notion REST API on behalf of a tenant. A single
// client is shared across requests, the integration token is supplied per
// call because every tenant carries its own.
type Client struct {
	Endpoint string

	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		Endpoint: config.NotionAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RequestError is a non-2xx response from the Notion API, relayed with the
// upstream status code and body verbatim.
type RequestError struct {
	Status int
	Body   []byte
}

func (err *RequestError) Error() string {
	return fmt.Sprintf("notion: upstream status %d %s", err.Status, string(err.Body))
}

// ConnectivityError is a network level failure reaching the Notion API,
// distinct from an upstream HTTP error.
type ConnectivityError struct {
	wrapped error
}

func (err *ConnectivityError) Error() string {
	return fmt.Sprintf("notion: unreachable %s", err.wrapped.Error())
}

func (err *ConnectivityError) Unwrap() error {
	return err.wrapped
}
