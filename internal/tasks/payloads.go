package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeContactNotify = "contact:notify"
)

// ContactNotifyPayload 描述一次联系表单通知所需的最小信息，表单内容由 worker 回查数据库。
type ContactNotifyPayload struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	RequestID    string    `json:"request_id"`
}

// NewContactNotifyTask 构造联系表单通知任务。
func NewContactNotifyTask(submissionID uuid.UUID, requestID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactNotifyPayload{
		SubmissionID: submissionID,
		RequestID:    requestID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal contact notify payload: %w", err)
	}
	return asynq.NewTask(TypeContactNotify, payload), nil
}

// ParseContactNotifyPayload 解析任务负载。
func ParseContactNotifyPayload(task *asynq.Task) (ContactNotifyPayload, error) {
	var payload ContactNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ContactNotifyPayload{}, fmt.Errorf("unmarshal contact notify payload: %w", err)
	}
	if payload.SubmissionID == uuid.Nil {
		return ContactNotifyPayload{}, fmt.Errorf("contact notify payload: missing submission id")
	}
	return payload, nil
}
