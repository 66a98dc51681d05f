package middleware

import (
	"net/http"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// HeaderEnabled accepts X-Tenant-ID when no token carried a tenant
	HeaderEnabled bool
	// SkipPaths are paths that don't carry tenant context
	SkipPaths        []string
	SkipPathPrefixes []string
	// Required rejects requests without a tenant here instead of leaving the
	// decision to the use case
	Required bool
	Logger   *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		SkipPaths:        []string{"/health", "/ready", "/metrics"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// TenantMiddleware resolves the tenant of the request and stores it on the
// request context with shared.WithTenantID.
// Resolution order: JWT tenant claim, then X-Tenant-ID when enabled.
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig returns tenant middleware with custom configuration
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipPath(c.Request.URL.Path, cfg.SkipPaths, cfg.SkipPathPrefixes) {
			c.Next()
			return
		}

		raw, method := GetJWTTenantID(c), "jwt"
		if raw == "" && cfg.HeaderEnabled {
			raw, method = c.GetHeader(TenantHeaderKey), "header"
		}

		if raw == "" {
			if cfg.Required {
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponse(dto.ErrCodeTenantMissing, "Tenant context not found"))
				return
			}
			c.Next()
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeInvalidInput, "Invalid tenant ID format"))
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(shared.WithTenantID(c.Request.Context(), tenantID))

		if cfg.Logger != nil {
			cfg.Logger.Debug("Tenant identified",
				zap.String("tenant_id", tenantID.String()),
				zap.String("method", method),
			)
		}

		c.Next()
	}
}

// GetTenantID returns the tenant resolved for the request, if any
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
