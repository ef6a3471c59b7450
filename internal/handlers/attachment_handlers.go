package handlers

import (
	"net/http"

	"taskboard/internal/common"
	"taskboard/internal/models"
	"taskboard/internal/services"

	"github.com/labstack/echo/v4"
)

// AttachmentHandlers handles file attachments on tasks.
type AttachmentHandlers struct {
	attachmentService services.AttachmentService
}

func NewAttachmentHandlers(attachmentService services.AttachmentService) *AttachmentHandlers {
	return &AttachmentHandlers{attachmentService: attachmentService}
}

func attachmentIDs(c echo.Context) (taskID, attachmentID int64, err error) {
	taskID, err = common.ParseID(c.Param("id"), "task id")
	if err != nil {
		return 0, 0, err
	}
	attachmentID, err = common.ParseID(c.Param("attachmentID"), "attachment id")
	if err != nil {
		return 0, 0, err
	}
	return taskID, attachmentID, nil
}

// UploadAttachment stores a multipart file under the caller's task.
func (h *AttachmentHandlers) UploadAttachment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	taskID, err := common.ParseID(c.Param("id"), "task id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := h.attachmentService.Upload(ctx, userID, taskID, services.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		return sendResourceError(c, "Task", err)
	}

	return c.JSON(http.StatusCreated, attachment)
}

// ListAttachments returns a task's attachments.
func (h *AttachmentHandlers) ListAttachments(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	taskID, err := common.ParseID(c.Param("id"), "task id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	attachments, err := h.attachmentService.List(ctx, userID, taskID)
	if err != nil {
		return sendResourceError(c, "Task", err)
	}
	if attachments == nil {
		attachments = []*models.TaskAttachment{}
	}

	return c.JSON(http.StatusOK, attachments)
}

// GetAttachmentURL returns a short-lived presigned download URL.
func (h *AttachmentHandlers) GetAttachmentURL(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	taskID, attachmentID, err := attachmentIDs(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.attachmentService.GetDownloadURL(ctx, userID, taskID, attachmentID)
	if err != nil {
		return sendResourceError(c, "Attachment", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// DeleteAttachment removes an attachment record and its stored object.
func (h *AttachmentHandlers) DeleteAttachment(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	taskID, attachmentID, err := attachmentIDs(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.attachmentService.Delete(ctx, userID, taskID, attachmentID); err != nil {
		return sendResourceError(c, "Attachment", err)
	}

	return c.NoContent(http.StatusNoContent)
}
