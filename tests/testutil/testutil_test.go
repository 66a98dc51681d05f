package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
)

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
	assert.NotEqual(t, TestTenantID(), TestUserID())
}

func TestTenantContext(t *testing.T) {
	tenantID := uuid.New()
	got, ok := shared.TenantIDFromContext(TenantContext(tenantID))
	require.True(t, ok)
	assert.Equal(t, tenantID, got)
}

func TestNewSQLiteDB(t *testing.T) {
	db := NewSQLiteDB(t)
	assert.True(t, db.Migrator().HasTable("work_orders"))
	assert.True(t, db.Migrator().HasTable("payments"))
}

func TestBearerToken(t *testing.T) {
	svc := NewJWTService()
	tenantID := uuid.New()

	header := BearerToken(t, svc, tenantID, "sam")
	require.Contains(t, header, "Bearer ")

	claims, err := svc.ValidateAccessToken(header[len("Bearer "):])
	require.NoError(t, err)
	assert.Equal(t, "sam", claims.Username)
	assert.Equal(t, tenantID.String(), claims.TenantID)
}

func TestAPIClient(t *testing.T) {
	r := gin.New()
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"auth": c.GetHeader("Authorization"), "tenant": c.GetHeader("X-Tenant-ID")}))
	})
	r.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "Customer not found"))
	})

	client := NewAPIClient(r, "Bearer x")

	resp := client.Do(t, http.MethodGet, "/ok", nil, map[string]string{"X-Tenant-ID": "t1"})
	resp.AssertStatus(t, http.StatusOK)
	data := DataAs[map[string]string](t, resp)
	assert.Equal(t, "Bearer x", data["auth"])
	assert.Equal(t, "t1", data["tenant"])

	client.Do(t, http.MethodGet, "/fail", nil).AssertError(t, http.StatusNotFound, dto.ErrCodeNotFound)
}

func TestRequireEventually(t *testing.T) {
	start := time.Now()
	RequireEventually(t, func() bool { return time.Since(start) > 20*time.Millisecond }, time.Second, 5*time.Millisecond)
}
