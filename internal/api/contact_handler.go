package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio/internal/api/middleware"
	"portfolio/internal/database"
	"portfolio/internal/validation"
)

var contactSchema = validation.NewSchema(validation.Messages{
	"email.email": "email must be a valid email address",
})

type contactPayload struct {
	Name    string `json:"name" validate:"max=100"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Message string `json:"message" validate:"max=5000"`
}

type contactInserter interface {
	Insert(ctx context.Context, submission *database.ContactSubmission) error
}

// ContactNotifier 将新提交的联系表单交给后台处理；为 nil 时不通知。
type ContactNotifier interface {
	NotifyContact(ctx context.Context, submissionID uuid.UUID, requestID string) (string, error)
}

// ContactHandler 只负责写入联系表单，不提供读取、修改、删除接口。
type ContactHandler struct {
	submissions contactInserter
	notifier    ContactNotifier
}

func NewContactHandler(submissions contactInserter, notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{submissions: submissions, notifier: notifier}
}

// Submit 保存一条联系表单，并尽力投递通知任务；投递失败不影响响应。
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactPayload
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		InvalidData(c, err.Error())
		return
	}
	if err := contactSchema.Check(req); err != nil {
		InvalidData(c, err.Error())
		return
	}

	logger := middleware.LoggerFromContext(c)
	ctx := c.Request.Context()

	submission := database.ContactSubmission{
		Name:    optional(req.Name),
		Email:   optional(req.Email),
		Message: optional(req.Message),
	}
	if err := h.submissions.Insert(ctx, &submission); err != nil {
		logger.Error("contact submission failed", slog.Any("error", err))
		Internal(c)
		return
	}
	logger.Info("contact submission stored", slog.String("id", submission.ID.String()))

	if h.notifier != nil {
		taskID, err := h.notifier.NotifyContact(ctx, submission.ID, middleware.GetRequestID(c))
		if err != nil {
			logger.Warn("enqueue contact notification failed", slog.Any("error", err))
		} else {
			logger.Info("contact notification queued", slog.String("task_id", taskID))
		}
	}

	Success(c, http.StatusCreated, gin.H{"id": submission.ID})
}
