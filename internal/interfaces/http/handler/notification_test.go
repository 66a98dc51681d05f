package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	notificationapp "github.com/fieldops/backend/internal/application/notification"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/infrastructure/auth"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/fieldops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// notificationRouter mounts the handler behind a stub that plays the JWT
// middleware when username is set.
func notificationRouter(svc NotificationUseCases, username string) *gin.Engine {
	h := NewNotificationHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if username != "" {
			c.Set(middleware.JWTClaimsKey, &auth.Claims{Username: username})
			c.Set(middleware.JWTUsernameKey, username)
		}
		c.Next()
	})
	r.GET("/notifications", h.List)
	r.PATCH("/notifications/:id/read", h.MarkRead)
	r.POST("/notifications/read-all", h.MarkAllRead)
	r.GET("/notifications/unread-count", h.UnreadCount)
	return r
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	t.Run("query parameter wins", func(t *testing.T) {
		svc := new(MockNotificationUseCases)
		svc.On("UnreadCount", mock.Anything, "dispatch").
			Return(&notificationapp.UnreadCountResponse{Recipient: "dispatch", Unread: 3}, nil)

		rec := serve(notificationRouter(svc, "sam"), http.MethodGet, "/notifications/unread-count?recipient=dispatch")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unread":3`)
		svc.AssertExpectations(t)
	})

	t.Run("defaults to the caller", func(t *testing.T) {
		svc := new(MockNotificationUseCases)
		svc.On("UnreadCount", mock.Anything, "sam").
			Return(&notificationapp.UnreadCountResponse{Recipient: "sam"}, nil)

		rec := serve(notificationRouter(svc, "sam"), http.MethodGet, "/notifications/unread-count")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("anonymous without recipient is rejected", func(t *testing.T) {
		svc := new(MockNotificationUseCases)

		rec := serve(notificationRouter(svc, ""), http.MethodGet, "/notifications/unread-count")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, rec).Code)
		svc.AssertNotCalled(t, "UnreadCount", mock.Anything, mock.Anything)
	})
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	svc := new(MockNotificationUseCases)
	svc.On("MarkAllRead", mock.Anything, "sam").Return(&notificationapp.MarkAllReadResponse{Updated: 4}, nil)

	rec := serve(notificationRouter(svc, "sam"), http.MethodPost, "/notifications/read-all")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":4`)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	id := uuid.New()
	svc := new(MockNotificationUseCases)
	svc.On("MarkRead", mock.Anything, id).Return(nil, shared.NewNotFoundError("Notification"))

	rec := serve(notificationRouter(svc, "sam"), http.MethodPatch, "/notifications/"+id.String()+"/read")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Notification not found", decode(t, rec).Message)
}

func TestNotificationHandler_List(t *testing.T) {
	t.Run("binds the read filter", func(t *testing.T) {
		svc := new(MockNotificationUseCases)
		svc.On("List", mock.Anything, mock.MatchedBy(func(q notificationapp.NotificationListQuery) bool {
			return q.IsRead != nil && !*q.IsRead && q.Channel != nil && *q.Channel == "email" && q.Recipient == nil
		})).Return(query.Ok(shared.NewPaginated([]notificationapp.NotificationResponse{}, 0, 1, 20)), nil)

		rec := serve(notificationRouter(svc, "sam"), http.MethodGet, "/notifications?is_read=false&channel=email")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown channel fails binding", func(t *testing.T) {
		svc := new(MockNotificationUseCases)

		rec := serve(notificationRouter(svc, "sam"), http.MethodGet, "/notifications?channel=fax")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing tenant", func(t *testing.T) {
		svc := new(MockNotificationUseCases)
		svc.On("List", mock.Anything, mock.Anything).
			Return(query.Fail[shared.Paginated[notificationapp.NotificationResponse]](query.TenantContextNotFound), nil)

		rec := serve(notificationRouter(svc, ""), http.MethodGet, "/notifications")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeTenantMissing, decode(t, rec).Code)
	})
}
