package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/backend/internal/infrastructure/auth"
	"github.com/fieldops/backend/internal/infrastructure/config"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
)

// TestJWTSecret signs the tokens minted by NewJWTService.
const TestJWTSecret = "fieldops-test-secret-with-enough-length"

// NewJWTService returns a JWT service over TestJWTSecret.
func NewJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                TestJWTSecret,
		Issuer:                "fieldops-test",
		AccessTokenExpiration: time.Hour,
	})
}

// BearerToken mints an access token for tenantID and returns it with its prefix.
func BearerToken(t *testing.T, svc *auth.JWTService, tenantID uuid.UUID, username string) string {
	t.Helper()

	token, _, err := svc.GenerateAccessToken(auth.TokenInput{
		TenantID: tenantID,
		UserID:   NewTestUUID(username),
		Username: username,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

// APIClient sends requests to an in-process handler with fixed headers.
type APIClient struct {
	Handler http.Handler
	Headers map[string]string
}

// NewAPIClient creates a client. authorization may be empty.
func NewAPIClient(h http.Handler, authorization string) *APIClient {
	headers := map[string]string{}
	if authorization != "" {
		headers["Authorization"] = authorization
	}
	return &APIClient{Handler: h, Headers: headers}
}

// APIResponse is a recorded response
type APIResponse struct {
	Code   int
	Header http.Header
	Body   []byte
}

// Do sends a request. body is JSON-encoded when not nil.
func (c *APIClient) Do(t *testing.T, method, path string, body any, headers ...map[string]string) *APIResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	for _, extra := range headers {
		for k, v := range extra {
			req.Header.Set(k, v)
		}
	}

	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, req)
	return &APIResponse{Code: rec.Code, Header: rec.Header(), Body: rec.Body.Bytes()}
}

// Envelope decodes the response envelope.
func (r *APIResponse) Envelope(t *testing.T) dto.Response {
	t.Helper()

	var env dto.Response
	require.NoError(t, json.Unmarshal(r.Body, &env), "body: %s", r.Body)
	return env
}

// DataAs decodes the data member of a success envelope into T.
func DataAs[T any](t *testing.T, r *APIResponse) T {
	t.Helper()

	var env struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(r.Body, &env), "body: %s", r.Body)
	require.True(t, env.Success, "body: %s", r.Body)
	return env.Data
}

// AssertStatus checks the status code, printing the body on mismatch.
func (r *APIResponse) AssertStatus(t *testing.T, want int) {
	t.Helper()
	assert.Equal(t, want, r.Code, "body: %s", r.Body)
}

// AssertError checks status and envelope code of an error response.
func (r *APIResponse) AssertError(t *testing.T, status int, code string) {
	t.Helper()

	r.AssertStatus(t, status)
	env := r.Envelope(t)
	assert.False(t, env.Success)
	assert.Equal(t, code, env.Code)
}
