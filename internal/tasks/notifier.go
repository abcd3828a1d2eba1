package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
)

// RedisConnOpt 将 Redis 配置转换为 asynq 连接参数，API 与 worker 共用。
func RedisConnOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Enqueuer 是 asynq.Client 的投递子集，便于测试替换。
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ContactNotifier 将联系表单通知投递到队列。
type ContactNotifier struct {
	client Enqueuer
}

func NewContactNotifier(client Enqueuer) *ContactNotifier {
	return &ContactNotifier{client: client}
}

// NotifyContact 投递一次通知任务，返回任务 ID。
func (n *ContactNotifier) NotifyContact(ctx context.Context, submissionID uuid.UUID, requestID string) (string, error) {
	task, err := NewContactNotifyTask(submissionID, requestID)
	if err != nil {
		return "", err
	}

	info, err := n.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	metrics.ObserveEnqueue(TypeContactNotify, err)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", TypeContactNotify, err)
	}
	return info.ID, nil
}
