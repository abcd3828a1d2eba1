package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio/internal/database"
)

const contactTable = "contact"

// ContactStore 负责联系表单的写入，以及 worker/管理工具的只读查询。
type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Insert(ctx context.Context, submission *database.ContactSubmission) (err error) {
	defer observe(contactTable, "insert", time.Now(), &err)

	if err = s.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

func (s *ContactStore) FindByID(ctx context.Context, id uuid.UUID) (submission *database.ContactSubmission, err error) {
	defer observe(contactTable, "find_by_id", time.Now(), &err)

	var found database.ContactSubmission
	if err = s.db.WithContext(ctx).Where("id = ?", id.String()).Take(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find contact submission %s: %w", id, err)
	}
	return &found, nil
}

// Recent 按提交时间倒序返回最近 limit 条记录。
func (s *ContactStore) Recent(ctx context.Context, limit int) (submissions []database.ContactSubmission, err error) {
	defer observe(contactTable, "recent", time.Now(), &err)

	if limit <= 0 {
		limit = 20
	}
	submissions = make([]database.ContactSubmission, 0, limit)
	if err = s.db.WithContext(ctx).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return submissions, nil
}
