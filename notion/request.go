package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/notionviews/relay/config"
)

func (client *Client) SendRequest(ctx context.Context, token, method, uri string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, client.Endpoint+uri, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Close = true
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Notion-Version", config.NotionVersion)
	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{wrapped: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectivityError{wrapped: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) == 0 {
			body = []byte(fmt.Sprintf(`{"error":"upstream status %d"}`, resp.StatusCode))
		}
		return nil, &RequestError{Status: resp.StatusCode, Body: body}
	}
	return body, nil
}

// GetSelf verifies an integration token against the Notion identity
// endpoint and returns the bot user it belongs to.
func (client *Client) GetSelf(ctx context.Context, token string) (*User, error) {
	body, err := client.SendRequest(ctx, token, "GET", "/v1/users/me", nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (client *Client) GetPage(ctx context.Context, token, pageId string) (*Page, error) {
	body, err := client.SendRequest(ctx, token, "GET", "/v1/pages/"+pageId, nil)
	if err != nil {
		return nil, err
	}
	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDatabase reads a database resource, used both for the best effort
// access check at registration and to resolve the counter column before a
// sorted query.
func (client *Client) GetDatabase(ctx context.Context, token, databaseId string) (*Database, error) {
	body, err := client.SendRequest(ctx, token, "GET", "/v1/databases/"+databaseId, nil)
	if err != nil {
		return nil, err
	}
	var database Database
	if err := json.Unmarshal(body, &database); err != nil {
		return nil, err
	}
	return &database, nil
}

// UpdatePageNumber patches a single numeric property to the given value.
func (client *Client) UpdatePageNumber(ctx context.Context, token, pageId, property string, value float64) error {
	payload, err := json.Marshal(map[string]interface{}{
		"properties": map[string]interface{}{
			property: map[string]interface{}{"number": value},
		},
	})
	if err != nil {
		return err
	}
	_, err = client.SendRequest(ctx, token, "PATCH", "/v1/pages/"+pageId, payload)
	return err
}

// QueryDatabase posts a sorted query and returns the raw Notion result so
// callers can relay it untouched.
func (client *Client) QueryDatabase(ctx context.Context, token, databaseId, sortProperty string, limit int) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"sorts": []map[string]string{
			{"property": sortProperty, "direction": "descending"},
		},
		"page_size": limit,
	})
	if err != nil {
		return nil, err
	}
	body, err := client.SendRequest(ctx, token, "POST", "/v1/databases/"+databaseId+"/query", payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
