package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorRoundTrip(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	original := AuthorizationError(ctx)
	parsed, ok := ParseError(original.Error())
	assert.True(ok)
	assert.Equal(401, parsed.Status)
	assert.Equal(401, parsed.Code)
	assert.Equal(original.Description, parsed.Description)

	// coded errors survive a trip through a plain error value
	var wrapped error = original
	parsed, ok = ParseError(wrapped.Error())
	assert.True(ok)
	assert.Equal(401, parsed.Status)

	_, ok = ParseError(errors.New("plain failure").Error())
	assert.False(ok)

	_, ok = ParseError(fmt.Errorf("wrapped: %w", errors.New("boom")).Error())
	assert.False(ok)
}

func TestUpstreamErrorBody(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	err := UpstreamError(ctx, 429, []byte(`{"object":"error","message":"rate limited"}`))
	assert.Equal(429, err.Status)
	assert.Equal(30001, err.Code)
	assert.Contains(string(err.Upstream), "rate limited")

	// non-JSON bodies get wrapped instead of corrupting the envelope
	err = UpstreamError(ctx, 502, []byte("bad gateway"))
	assert.Equal(`{"error":"bad gateway"}`, string(err.Upstream))

	err = UpstreamError(ctx, 502, nil)
	assert.Nil(err.Upstream)
}
