package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:   "field errors",
			err:    shared.ValidationErrors{{Field: "name", Message: "is required"}},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeValidation,
		},
		{
			name:    "wrapped not found",
			err:     fmt.Errorf("load: %w", shared.NewNotFoundError("Customer")),
			status:  http.StatusNotFound,
			code:    dto.ErrCodeNotFound,
			message: "Customer not found",
		},
		{
			name:   "tenant missing",
			err:    shared.ErrTenantContextMissing,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeTenantMissing,
		},
		{
			name:   "business rule",
			err:    shared.NewDomainError("LOCATION_MISMATCH", "Location belongs to another customer"),
			status: http.StatusUnprocessableEntity,
			code:   dto.ErrCodeBusinessRule,
		},
		{
			name:   "conflict",
			err:    shared.NewConflictError("Service code already exists"),
			status: http.StatusConflict,
			code:   dto.ErrCodeAlreadyExists,
		},
		{
			name:    "infrastructure failure is hidden",
			err:     errors.New("pq: connection refused"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "An unexpected error occurred",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := testContext(http.MethodGet, "/", nil)
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestRespondResult(t *testing.T) {
	h := &BaseHandler{}

	t.Run("tenant missing", func(t *testing.T) {
		c, rec := testContext(http.MethodGet, "/", nil)
		respondResult(h, c, query.Fail[shared.Paginated[string]](query.TenantContextNotFound), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, dto.ErrCodeTenantMissing, resp.Code)
		assert.Equal(t, "Tenant context not found", resp.Message)
		assert.Nil(t, resp.Data)
	})

	t.Run("success", func(t *testing.T) {
		c, rec := testContext(http.MethodGet, "/", nil)
		respondResult(h, c, query.Ok(shared.NewPaginated([]string{"a"}, 1, 1, 20)), nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Success bool                     `json:"success"`
			Data    shared.Paginated[string] `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, int64(1), body.Data.TotalCount)
		assert.Equal(t, 1, body.Data.TotalPages)
	})
}

func TestBaseHandler_PathID(t *testing.T) {
	h := &BaseHandler{}
	c, rec := testContext(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := h.pathID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decode(t, rec).Code)
}
