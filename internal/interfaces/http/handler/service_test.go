package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/fieldops/backend/internal/application/catalog"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func serviceRouter(svc ServiceUseCases) *gin.Engine {
	h := NewServiceHandler(svc)
	r := gin.New()
	r.POST("/services", h.Create)
	r.GET("/services", h.List)
	return r
}

func TestServiceHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockServiceUseCases)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(cmd catalogapp.CreateServiceCommand) bool {
			return cmd.Code == "HVAC-TUNE" &&
				cmd.UnitPrice.Equal(decimal.RequireFromString("89.50")) &&
				cmd.TaxRatePercent.Equal(decimal.NewFromInt(8)) &&
				cmd.DurationMinutes == 60
		})).Return(&catalogapp.ServiceResponse{ID: uuid.New(), Code: "HVAC-TUNE", DurationMinutes: 60, IsActive: true}, nil)

		rec := postJSON(serviceRouter(svc), "/services",
			`{"code":"HVAC-TUNE","name":"Tune-up","unitPrice":"89.50","taxRatePercent":"8","durationMinutes":60}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "HVAC-TUNE", decode(t, rec).Data.(map[string]any)["code"])
		svc.AssertExpectations(t)
	})

	t.Run("negative duration fails binding", func(t *testing.T) {
		svc := new(MockServiceUseCases)

		rec := postJSON(serviceRouter(svc), "/services",
			`{"code":"HVAC-TUNE","name":"Tune-up","durationMinutes":-5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, rec).Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		svc := new(MockServiceUseCases)
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, shared.NewConflictError("A service with this code already exists"))

		rec := postJSON(serviceRouter(svc), "/services", `{"code":"HVAC-TUNE","name":"Tune-up"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServiceHandler_List(t *testing.T) {
	t.Run("binds search and paging", func(t *testing.T) {
		svc := new(MockServiceUseCases)
		svc.On("List", mock.Anything, mock.MatchedBy(func(q catalogapp.ServiceListQuery) bool {
			return q.Search == "tune" && q.PageSize == 10 && q.IsActive != nil && *q.IsActive
		})).Return(query.Ok(shared.NewPaginated([]catalogapp.ServiceResponse{{Code: "HVAC-TUNE"}}, 1, 1, 10)), nil)

		rec := serve(serviceRouter(svc), http.MethodGet, "/services?search=tune&page_size=10&is_active=true")

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec).Data.(map[string]any)
		assert.Len(t, data["items"], 1)
		svc.AssertExpectations(t)
	})

	t.Run("missing tenant is a 400 envelope", func(t *testing.T) {
		svc := new(MockServiceUseCases)
		svc.On("List", mock.Anything, mock.Anything).
			Return(query.Fail[shared.Paginated[catalogapp.ServiceResponse]](query.TenantContextNotFound), nil)

		rec := serve(serviceRouter(svc), http.MethodGet, "/services")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode(t, rec)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeTenantMissing, resp.Code)
	})
}
