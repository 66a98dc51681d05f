// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, TenantAggregateModel)
// - customer.go: Customer and Location
// - catalog.go: Service
// - scheduling.go: Appointment
// - workorder.go: WorkOrder, WorkOrderItem, Attachment
// - billing.go: Payment
// - notification.go: Notification
//
// Column types stay portable (no jsonb, no arrays) so the same models migrate
// under SQLite in repository tests.
package models
