package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio/internal/metrics"
)

// ErrNotFound 表示按 ID 查找、更新的目标行不存在。
var ErrNotFound = errors.New("record not found")

// Store 是单一资源表上的数据访问接口，每次调用只执行一条 SQL。
type Store[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Insert(ctx context.Context, record *T) error
	Update(ctx context.Context, id uuid.UUID, record *T) (*T, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
}

// GormStore 基于 GORM 实现 Store，适用于以 uuid 列 id 为主键的模型。
type GormStore[T any] struct {
	db        *gorm.DB
	table     string
	immutable []string
}

// NewGormStore 构造 GormStore。immutable 列（如 created_at）在更新时保持不变。
func NewGormStore[T any](db *gorm.DB, table string, immutable ...string) *GormStore[T] {
	return &GormStore[T]{
		db:        db,
		table:     table,
		immutable: append([]string{"id"}, immutable...),
	}
}

func (s *GormStore[T]) FindAll(ctx context.Context) (records []T, err error) {
	defer s.observe("find_all", time.Now(), &err)

	records = make([]T, 0)
	if err = s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	return records, nil
}

func (s *GormStore[T]) FindByID(ctx context.Context, id uuid.UUID) (record *T, err error) {
	defer s.observe("find_by_id", time.Now(), &err)

	var found T
	if err = s.db.WithContext(ctx).Where("id = ?", id.String()).Take(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s %s: %w", s.table, id, err)
	}
	return &found, nil
}

func (s *GormStore[T]) Insert(ctx context.Context, record *T) (err error) {
	defer s.observe("insert", time.Now(), &err)

	if err = s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("insert %s: %w", s.table, err)
	}
	return nil
}

// Update 覆盖全部可写列，并通过 RETURNING 取回更新后的行。
func (s *GormStore[T]) Update(ctx context.Context, id uuid.UUID, record *T) (updated *T, err error) {
	defer s.observe("update", time.Now(), &err)

	result := s.db.WithContext(ctx).
		Model(record).
		Clauses(clause.Returning{}).
		Where("id = ?", id.String()).
		Select("*").
		Omit(s.immutable...).
		Updates(record)
	if result.Error != nil {
		err = fmt.Errorf("update %s %s: %w", s.table, id, result.Error)
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *GormStore[T]) DeleteByID(ctx context.Context, id uuid.UUID) (deleted int64, err error) {
	defer s.observe("delete", time.Now(), &err)

	result := s.db.WithContext(ctx).Where("id = ?", id.String()).Delete(new(T))
	if result.Error != nil {
		err = fmt.Errorf("delete %s %s: %w", s.table, id, result.Error)
		return 0, err
	}
	return result.RowsAffected, nil
}

func (s *GormStore[T]) observe(operation string, start time.Time, err *error) {
	observe(s.table, operation, start, err)
}

func observe(table, operation string, start time.Time, err *error) {
	metrics.ObserveStoreQuery(table, operation, outcome(*err), time.Since(start))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
