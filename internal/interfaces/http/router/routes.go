package router

import (
	"github.com/fieldops/backend/internal/interfaces/http/handler"
)

// Handlers holds one handler per API resource
type Handlers struct {
	Customer     *handler.CustomerHandler
	Location     *handler.LocationHandler
	Service      *handler.ServiceHandler
	Appointment  *handler.AppointmentHandler
	WorkOrder    *handler.WorkOrderHandler
	Attachment   *handler.AttachmentHandler
	Payment      *handler.PaymentHandler
	Notification *handler.NotificationHandler
}

// APIRoutes returns the resource groups mounted under /api/v1
func APIRoutes(h Handlers) []RouteRegistrar {
	customers := NewDomainGroup("customers", "/customers").
		POST("", h.Customer.Create).
		GET("", h.Customer.List).
		GET("/:id", h.Customer.GetByID).
		PUT("/:id", h.Customer.Update).
		DELETE("/:id", h.Customer.Delete).
		POST("/:id/activate", h.Customer.Activate).
		POST("/:id/deactivate", h.Customer.Deactivate)

	locations := NewDomainGroup("locations", "/locations").
		POST("", h.Location.Create).
		GET("", h.Location.List).
		GET("/:id", h.Location.GetByID).
		PUT("/:id", h.Location.Update).
		DELETE("/:id", h.Location.Delete)

	services := NewDomainGroup("services", "/services").
		POST("", h.Service.Create).
		GET("", h.Service.List).
		GET("/:id", h.Service.GetByID).
		PUT("/:id", h.Service.Update).
		DELETE("/:id", h.Service.Delete).
		POST("/:id/activate", h.Service.Activate).
		POST("/:id/deactivate", h.Service.Deactivate)

	appointments := NewDomainGroup("appointments", "/appointments").
		POST("", h.Appointment.Schedule).
		GET("", h.Appointment.List).
		GET("/:id", h.Appointment.GetByID).
		PUT("/:id", h.Appointment.Update).
		DELETE("/:id", h.Appointment.Delete).
		POST("/:id/reschedule", h.Appointment.Reschedule).
		POST("/:id/confirm", h.Appointment.Confirm).
		POST("/:id/start", h.Appointment.Start).
		POST("/:id/complete", h.Appointment.Complete).
		POST("/:id/cancel", h.Appointment.Cancel)

	workOrders := NewDomainGroup("work-orders", "/work-orders").
		POST("", h.WorkOrder.Create).
		GET("", h.WorkOrder.List).
		GET("/:id", h.WorkOrder.GetByID).
		PUT("/:id", h.WorkOrder.Update).
		DELETE("/:id", h.WorkOrder.Delete).
		POST("/:id/items", h.WorkOrder.AddItem).
		DELETE("/:id/items/:itemId", h.WorkOrder.RemoveItem).
		POST("/:id/start", h.WorkOrder.Start).
		POST("/:id/complete", h.WorkOrder.Complete).
		POST("/:id/cancel", h.WorkOrder.Cancel).
		POST("/:id/attachments", h.Attachment.InitiateUpload).
		GET("/:id/attachments", h.Attachment.List).
		GET("/:id/attachments/:attachmentId", h.Attachment.GetByID).
		DELETE("/:id/attachments/:attachmentId", h.Attachment.Delete).
		POST("/:id/attachments/:attachmentId/confirm", h.Attachment.ConfirmUpload)

	payments := NewDomainGroup("payments", "/payments").
		POST("", h.Payment.Record).
		GET("", h.Payment.List).
		GET("/:id", h.Payment.GetByID).
		POST("/:id/refund", h.Payment.Refund)

	// static segments are registered alongside /:id; gin prefers them
	notifications := NewDomainGroup("notifications", "/notifications").
		POST("", h.Notification.Create).
		GET("", h.Notification.List).
		GET("/unread-count", h.Notification.UnreadCount).
		POST("/read-all", h.Notification.MarkAllRead).
		GET("/:id", h.Notification.GetByID).
		PATCH("/:id/read", h.Notification.MarkRead)

	return []RouteRegistrar{customers, locations, services, appointments, workOrders, payments, notifications}
}
