package httpx

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedToken_Subprotocol(t *testing.T) {
	r := httptest.NewRequest("GET", "/staff/feed", nil)
	r.Header.Set("Sec-WebSocket-Protocol", "bearer, tok-123")

	token, viaProtocol := feedToken(r)

	assert.Equal(t, "tok-123", token)
	assert.True(t, viaProtocol)
}

func TestFeedToken_SubprotocolWinsOverQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/staff/feed?token=from-url", nil)
	r.Header.Set("Sec-WebSocket-Protocol", "bearer,tok-123")

	token, viaProtocol := feedToken(r)

	assert.Equal(t, "tok-123", token)
	assert.True(t, viaProtocol)
}

func TestFeedToken_AuthorizationFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/staff/feed", nil)
	r.Header.Set("Authorization", "Bearer tok-456")

	token, viaProtocol := feedToken(r)

	assert.Equal(t, "tok-456", token)
	assert.False(t, viaProtocol)
}

func TestFeedToken_QueryFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/staff/feed?token=tok-789", nil)

	token, viaProtocol := feedToken(r)

	assert.Equal(t, "tok-789", token)
	assert.False(t, viaProtocol)
}

func TestFeedToken_MalformedSubprotocol(t *testing.T) {
	r := httptest.NewRequest("GET", "/staff/feed", nil)
	r.Header.Set("Sec-WebSocket-Protocol", "graphql-ws")

	token, viaProtocol := feedToken(r)

	assert.Empty(t, token)
	assert.False(t, viaProtocol)
}
