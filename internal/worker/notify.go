package worker

import (
	"time"

	"github.com/google/uuid"

	"portfolio/internal/database"
)

// ContactNotifyMessage 是发布到 Redis Pub/Sub 的通知格式。
// 订阅方（站点后台、聊天机器人等）按这里的字段名解析。
type ContactNotifyMessage struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	RequestID    string    `json:"request_id,omitempty"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Message      string    `json:"message,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func newContactNotifyMessage(s *database.ContactSubmission, requestID string) ContactNotifyMessage {
	return ContactNotifyMessage{
		SubmissionID: s.ID,
		RequestID:    requestID,
		Name:         deref(s.Name),
		Email:        deref(s.Email),
		Message:      deref(s.Message),
		SubmittedAt:  s.SubmittedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
