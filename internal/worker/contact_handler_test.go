package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/database"
	"portfolio/internal/store"
	"portfolio/internal/tasks"
)

type fakeSubmissions struct {
	byID map[uuid.UUID]database.ContactSubmission
	err  error
}

func (f *fakeSubmissions) FindByID(_ context.Context, id uuid.UUID) (*database.ContactSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

type fakePublisher struct {
	channel  string
	messages [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if p.err != nil {
		cmd.SetErr(p.err)
		return cmd
	}
	p.channel = channel
	p.messages = append(p.messages, message.([]byte))
	cmd.SetVal(1)
	return cmd
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func TestProcessTask_PublishesSubmission(t *testing.T) {
	id := uuid.New()
	submittedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	finder := &fakeSubmissions{byID: map[uuid.UUID]database.ContactSubmission{
		id: {ID: id, Name: strPtr("Ada"), Email: strPtr("ada@example.com"), Message: strPtr("Hello"), SubmittedAt: submittedAt},
	}}
	publisher := &fakePublisher{}
	h := NewContactNotifyHandler(finder, publisher, "portfolio:contact", discardLogger())

	task, err := tasks.NewContactNotifyTask(id, "req-1")
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), task))

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "portfolio:contact", publisher.channel)

	var msg ContactNotifyMessage
	require.NoError(t, json.Unmarshal(publisher.messages[0], &msg))
	assert.Equal(t, id, msg.SubmissionID)
	assert.Equal(t, "req-1", msg.RequestID)
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, "ada@example.com", msg.Email)
	assert.Equal(t, "Hello", msg.Message)
	assert.True(t, submittedAt.Equal(msg.SubmittedAt))
}

func TestProcessTask_MissingSubmissionIsSkipped(t *testing.T) {
	publisher := &fakePublisher{}
	h := NewContactNotifyHandler(&fakeSubmissions{}, publisher, "c", discardLogger())

	task, err := tasks.NewContactNotifyTask(uuid.New(), "")
	require.NoError(t, err)
	assert.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Empty(t, publisher.messages)
}

func TestProcessTask_CorruptPayloadSkipsRetry(t *testing.T) {
	h := NewContactNotifyHandler(&fakeSubmissions{}, &fakePublisher{}, "c", discardLogger())

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeContactNotify, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestProcessTask_PublishFailureIsReturned(t *testing.T) {
	id := uuid.New()
	finder := &fakeSubmissions{byID: map[uuid.UUID]database.ContactSubmission{id: {ID: id}}}
	h := NewContactNotifyHandler(finder, &fakePublisher{err: errors.New("connection refused")}, "c", discardLogger())

	task, err := tasks.NewContactNotifyTask(id, "")
	require.NoError(t, err)
	err = h.ProcessTask(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}
