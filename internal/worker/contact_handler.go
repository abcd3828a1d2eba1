package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"portfolio/internal/database"
	"portfolio/internal/store"
	"portfolio/internal/tasks"
)

type submissionFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*database.ContactSubmission, error)
}

// Publisher 是 redis.Client 的发布子集。
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// ContactNotifyHandler 负责消费联系表单通知任务。
type ContactNotifyHandler struct {
	submissions submissionFinder
	publisher   Publisher
	channel     string
	logger      *slog.Logger
}

// NewContactNotifyHandler 创建任务处理器。
func NewContactNotifyHandler(submissions submissionFinder, publisher Publisher, channel string, logger *slog.Logger) *ContactNotifyHandler {
	return &ContactNotifyHandler{
		submissions: submissions,
		publisher:   publisher,
		channel:     channel,
		logger:      logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ContactNotifyHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseContactNotifyPayload(t)
	if err != nil {
		h.logger.Error("invalid contact notify payload", slog.Any("error", err))
		// 负载损坏重试也不会成功。
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log := h.logger.With(
		slog.String("request_id", payload.RequestID),
		slog.String("submission_id", payload.SubmissionID.String()),
	)

	submission, err := h.submissions.FindByID(ctx, payload.SubmissionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("contact submission not found, skipping task")
			return nil
		}
		log.Error("query contact submission failed", slog.Any("error", err))
		return err
	}

	body, err := json.Marshal(newContactNotifyMessage(submission, payload.RequestID))
	if err != nil {
		return fmt.Errorf("marshal contact notify message: %w", err)
	}

	receivers, err := h.publisher.Publish(ctx, h.channel, body).Result()
	if err != nil {
		log.Error("publish contact notification failed", slog.Any("error", err))
		return fmt.Errorf("publish contact notification: %w", err)
	}

	log.Info("contact notification published",
		slog.String("channel", h.channel),
		slog.Int64("receivers", receivers),
	)
	return nil
}
