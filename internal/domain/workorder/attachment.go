package workorder

import (
	"path/filepath"
	"strings"

	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxAttachmentFileSize is the maximum allowed file size (50MB)
const MaxAttachmentFileSize = 50 * 1024 * 1024

// AttachmentStatus represents the upload state of an attachment
type AttachmentStatus string

const (
	AttachmentStatusPending AttachmentStatus = "pending"
	AttachmentStatusActive  AttachmentStatus = "active"
)

// Attachment is a file (photo, signed form) stored alongside a work order
type Attachment struct {
	shared.TenantAggregateRoot
	WorkOrderID uuid.UUID
	FileName    string
	ContentType string
	FileSize    int64
	StorageKey  string
	Status      AttachmentStatus
}

// NewAttachment creates a pending attachment awaiting upload
func NewAttachment(tenantID, workOrderID uuid.UUID, fileName, contentType string, fileSize int64, storageKey string) (*Attachment, error) {
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER", "Work order ID cannot be empty")
	}
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(fileName) > 255 {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if fileSize <= 0 || fileSize > MaxAttachmentFileSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be between 1 byte and 50MB")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	return &Attachment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WorkOrderID:         workOrderID,
		FileName:            fileName,
		ContentType:         contentType,
		FileSize:            fileSize,
		StorageKey:          storageKey,
		Status:              AttachmentStatusPending,
	}, nil
}

// Confirm marks the upload as finished
func (a *Attachment) Confirm() error {
	if a.Status != AttachmentStatusPending {
		return shared.NewInvalidStateError("Attachment upload is already confirmed")
	}
	a.Status = AttachmentStatusActive
	a.Touch()
	a.IncrementVersion()
	return nil
}

// IsImage reports whether the attachment is an image
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}
