package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/fieldops/backend/internal/application/query"
	schedulingapp "github.com/fieldops/backend/internal/application/scheduling"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func appointmentRouter(svc AppointmentUseCases) *gin.Engine {
	h := NewAppointmentHandler(svc)
	r := gin.New()
	r.POST("/appointments", h.Schedule)
	r.GET("/appointments", h.List)
	return r
}

func TestAppointmentHandler_Schedule(t *testing.T) {
	customerID, locationID, serviceID := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	body := fmt.Sprintf(`{"customerId":%q,"locationId":%q,"serviceId":%q,"technician":"sam","scheduledStart":%q,"scheduledEnd":%q}`,
		customerID, locationID, serviceID, start.Format(time.RFC3339), start.Add(time.Hour).Format(time.RFC3339))

	t.Run("created", func(t *testing.T) {
		svc := new(MockAppointmentUseCases)
		svc.On("Schedule", mock.Anything, mock.MatchedBy(func(cmd schedulingapp.ScheduleAppointmentCommand) bool {
			return cmd.LocationID == locationID && cmd.Technician == "sam" && cmd.ScheduledStart.Equal(start)
		})).Return(&schedulingapp.AppointmentResponse{ID: uuid.New(), Status: "scheduled", DurationMinutes: 60}, nil)

		rec := postJSON(appointmentRouter(svc), "/appointments", body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "scheduled", decode(t, rec).Data.(map[string]any)["status"])
		svc.AssertExpectations(t)
	})

	t.Run("missing service fails binding", func(t *testing.T) {
		svc := new(MockAppointmentUseCases)

		rec := postJSON(appointmentRouter(svc), "/appointments",
			fmt.Sprintf(`{"customerId":%q,"locationId":%q,"scheduledStart":%q,"scheduledEnd":%q}`,
				customerID, locationID, start.Format(time.RFC3339), start.Add(time.Hour).Format(time.RFC3339)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, rec).Code)
		svc.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
	})

	t.Run("inactive service is a business rule failure", func(t *testing.T) {
		svc := new(MockAppointmentUseCases)
		svc.On("Schedule", mock.Anything, mock.Anything).
			Return(nil, shared.NewDomainError("BUSINESS_RULE", "Service is not active"))

		rec := postJSON(appointmentRouter(svc), "/appointments", body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, dto.ErrCodeBusinessRule, decode(t, rec).Code)
	})
}

func TestAppointmentHandler_List(t *testing.T) {
	t.Run("binds status and technician", func(t *testing.T) {
		svc := new(MockAppointmentUseCases)
		svc.On("List", mock.Anything, mock.MatchedBy(func(q schedulingapp.AppointmentListQuery) bool {
			return q.Status != nil && *q.Status == "confirmed" && q.Technician != nil && *q.Technician == "sam"
		})).Return(query.Ok(shared.NewPaginated([]schedulingapp.AppointmentResponse{{Status: "confirmed"}}, 1, 1, 20)), nil)

		rec := serve(appointmentRouter(svc), http.MethodGet, "/appointments?status=confirmed&technician=sam")

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown status fails binding", func(t *testing.T) {
		svc := new(MockAppointmentUseCases)

		rec := serve(appointmentRouter(svc), http.MethodGet, "/appointments?status=lost")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, rec).Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("blank status fails binding", func(t *testing.T) {
		svc := new(MockAppointmentUseCases)

		rec := serve(appointmentRouter(svc), http.MethodGet, "/appointments?status=")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("missing tenant is a 400 envelope", func(t *testing.T) {
		svc := new(MockAppointmentUseCases)
		svc.On("List", mock.Anything, mock.Anything).
			Return(query.Fail[shared.Paginated[schedulingapp.AppointmentResponse]](query.TenantContextNotFound), nil)

		rec := serve(appointmentRouter(svc), http.MethodGet, "/appointments")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, dto.ErrCodeTenantMissing, resp.Code)
		assert.Equal(t, query.TenantContextNotFound, resp.Message)
	})
}
