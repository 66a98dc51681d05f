package workorder

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldops/backend/internal/application/common"
	"github.com/fieldops/backend/internal/application/query"
	"github.com/fieldops/backend/internal/domain/shared"
	"github.com/fieldops/backend/internal/domain/workorder"
	"github.com/fieldops/backend/internal/infrastructure/logger"
	"github.com/fieldops/backend/internal/infrastructure/telemetry"
)

// AttachmentConfig holds presign lifetimes and per-work-order limits
type AttachmentConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxPerWorkOrder   int
}

// DefaultAttachmentConfig returns the default configuration
func DefaultAttachmentConfig() AttachmentConfig {
	return AttachmentConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
		MaxPerWorkOrder:   50,
	}
}

// AttachmentService handles work-order attachments. Files never pass through
// the server: clients PUT to a presigned URL and then confirm.
type AttachmentService struct {
	attachmentRepo workorder.AttachmentRepository
	workOrderRepo  workorder.WorkOrderRepository
	storage        ObjectStorage
	config         AttachmentConfig
	limits         query.Limits
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	attachmentRepo workorder.AttachmentRepository,
	workOrderRepo workorder.WorkOrderRepository,
	storage ObjectStorage,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		workOrderRepo:  workOrderRepo,
		storage:        storage,
		config:         DefaultAttachmentConfig(),
		limits:         query.DefaultLimits(),
	}
}

// SetConfig sets the service configuration
func (s *AttachmentService) SetConfig(config AttachmentConfig) {
	s.config = config
}

// SetLimits overrides the pagination policy
func (s *AttachmentService) SetLimits(limits query.Limits) {
	s.limits = limits
}

// InitiateUpload creates a pending attachment and returns a presigned upload URL
func (s *AttachmentService) InitiateUpload(ctx context.Context, workOrderID uuid.UUID, cmd InitiateUploadCommand) (*InitiateUploadResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "attachment", "initiate_upload",
		"work_order_id", workOrderID.String(),
		"content_type", cmd.ContentType,
	)
	defer span.End()

	if err := common.Validate(cmd); err != nil {
		return nil, err
	}
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	wo, err := s.workOrderRepo.FindByIDForTenant(ctx, tenantID, workOrderID)
	if err != nil {
		return nil, common.NotFound(err, "Work order")
	}
	if wo.Status == workorder.StatusCancelled {
		return nil, shared.NewInvalidStateError("Cannot attach files to a cancelled work order")
	}

	var filter shared.Filter
	filter.Set(workorder.FilterWorkOrderID, workOrderID)
	count, err := s.attachmentRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	if s.config.MaxPerWorkOrder > 0 && count >= int64(s.config.MaxPerWorkOrder) {
		return nil, shared.NewDomainError("ATTACHMENT_LIMIT_EXCEEDED",
			fmt.Sprintf("Maximum %d attachments per work order allowed", s.config.MaxPerWorkOrder))
	}

	key := storageKey(tenantID, workOrderID, cmd.FileName)
	attachment, err := workorder.NewAttachment(tenantID, workOrderID, cmd.FileName, cmd.ContentType, cmd.FileSize, key)
	if err != nil {
		return nil, err
	}
	uploadURL, expiresAt, err := s.storage.PresignUpload(ctx, key, cmd.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Failed to presign upload", zap.String("storage_key", key), zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}
	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("Attachment upload initiated",
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("work_order_id", workOrderID.String()),
		zap.Int64("file_size", cmd.FileSize),
	)
	return &InitiateUploadResponse{
		Attachment: ToAttachmentResponse(attachment),
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object was uploaded and activates the attachment
func (s *AttachmentService) ConfirmUpload(ctx context.Context, workOrderID, attachmentID uuid.UUID) (*AttachmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "attachment", "confirm_upload", "attachment_id", attachmentID.String())
	defer span.End()

	attachment, err := s.load(ctx, workOrderID, attachmentID)
	if err != nil {
		return nil, err
	}
	exists, err := s.storage.ObjectExists(ctx, attachment.StorageKey)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "File not found in storage. Please upload the file first.")
	}
	if err := attachment.Confirm(); err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := s.withDownloadURL(ctx, attachment)
	return &response, nil
}

// GetByID returns an attachment with a fresh download URL when it is active
func (s *AttachmentService) GetByID(ctx context.Context, workOrderID, attachmentID uuid.UUID) (*AttachmentResponse, error) {
	attachment, err := s.load(ctx, workOrderID, attachmentID)
	if err != nil {
		return nil, err
	}
	response := s.withDownloadURL(ctx, attachment)
	return &response, nil
}

// List returns one page of a work order's active attachments with download URLs
func (s *AttachmentService) List(ctx context.Context, workOrderID uuid.UUID, q AttachmentListQuery) (query.Result[shared.Paginated[AttachmentResponse]], error) {
	filter := shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	filter.Set(workorder.FilterWorkOrderID, workOrderID)
	filter.Set(workorder.FilterStatus, workorder.AttachmentStatusActive)

	project := func(a *workorder.Attachment) AttachmentResponse {
		return s.withDownloadURL(ctx, a)
	}
	return query.ListPaged[workorder.Attachment, AttachmentResponse](ctx, s.attachmentRepo, filter, s.limits, project)
}

// Delete soft-deletes the attachment and removes the stored object. A failed
// object removal is logged and does not fail the request.
func (s *AttachmentService) Delete(ctx context.Context, workOrderID, attachmentID uuid.UUID) error {
	attachment, err := s.load(ctx, workOrderID, attachmentID)
	if err != nil {
		return err
	}
	if err := attachment.SoftDelete(); err != nil {
		return err
	}
	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, attachment.StorageKey); err != nil {
		logger.L(ctx).Warn("Failed to delete attachment object",
			zap.String("attachment_id", attachment.ID.String()),
			zap.String("storage_key", attachment.StorageKey),
			zap.Error(err),
		)
	}
	logger.L(ctx).Info("Attachment deleted", zap.String("attachment_id", attachmentID.String()))
	return nil
}

func (s *AttachmentService) withDownloadURL(ctx context.Context, a *workorder.Attachment) AttachmentResponse {
	response := ToAttachmentResponse(a)
	if a.Status != workorder.AttachmentStatusActive {
		return response
	}
	url, expiresAt, err := s.storage.PresignDownload(ctx, a.StorageKey, a.FileName, s.config.DownloadURLExpiry)
	if err != nil {
		logger.L(ctx).Warn("Failed to presign download", zap.String("attachment_id", a.ID.String()), zap.Error(err))
		return response
	}
	response.DownloadURL = url
	response.URLExpires = &expiresAt
	return response
}

// load fetches an attachment and checks it belongs to the work order in the path
func (s *AttachmentService) load(ctx context.Context, workOrderID, attachmentID uuid.UUID) (*workorder.Attachment, error) {
	tenantID, err := query.RequireTenant(ctx)
	if err != nil {
		return nil, err
	}
	attachment, err := s.attachmentRepo.FindByIDForTenant(ctx, tenantID, attachmentID)
	if err != nil {
		return nil, common.NotFound(err, "Attachment")
	}
	if attachment.WorkOrderID != workOrderID {
		return nil, shared.NewNotFoundError("Attachment")
	}
	return attachment, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// storageKey builds tenants/{tenant}/work-orders/{wo}/{uuid}_{name}
func storageKey(tenantID, workOrderID uuid.UUID, fileName string) string {
	name := unsafeKeyChars.ReplaceAllString(filepath.Base(strings.TrimSpace(fileName)), "_")
	name = strings.Trim(name, "_")
	if name == "" || name == "." {
		name = "file"
	}
	return fmt.Sprintf("tenants/%s/work-orders/%s/%s_%s", tenantID, workOrderID, uuid.New(), name)
}
