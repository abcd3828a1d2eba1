package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal/config"
	"portfolio/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func strPtr(s string) *string { return &s }

func TestGormStore_CRUDRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewGormStore[database.Skill](newTestDB(t), "skills")

	skill := database.Skill{Name: "Go", Category: strPtr("language")}
	require.NoError(t, s.Insert(ctx, &skill))
	require.NotEqual(t, uuid.Nil, skill.ID)

	found, err := s.FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", found.Name)
	assert.Equal(t, "language", *found.Category)
	assert.Nil(t, found.Proficiency)

	updated, err := s.Update(ctx, skill.ID, &database.Skill{Name: "Golang", Proficiency: strPtr("expert")})
	require.NoError(t, err)
	assert.Equal(t, skill.ID, updated.ID)
	assert.Equal(t, "Golang", updated.Name)
	assert.Nil(t, updated.Category, "update replaces every writable column")

	found, err = s.FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Golang", found.Name)
	assert.Equal(t, "expert", *found.Proficiency)
	assert.Nil(t, found.Category)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := s.DeleteByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = s.FindByID(ctx, skill.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_FindAllEmptyIsNotNil(t *testing.T) {
	s := NewGormStore[database.Education](newTestDB(t), "education")

	all, err := s.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestGormStore_UpdateMissingRowLeavesTableUnchanged(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewGormStore[database.Skill](db, "skills")
	require.NoError(t, s.Insert(ctx, &database.Skill{Name: "SQL"}))

	_, err := s.Update(ctx, uuid.New(), &database.Skill{Name: "Rust"})
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&database.Skill{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SQL", all[0].Name)
}

func TestGormStore_UpdateKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewGormStore[database.Project](newTestDB(t), "projects", "created_at")

	project := database.Project{Title: "Site", Description: "Personal website"}
	require.NoError(t, s.Insert(ctx, &project))

	_, err := s.Update(ctx, project.ID, &database.Project{Title: "Site v2", Description: "Personal website, rebuilt"})
	require.NoError(t, err)

	found, err := s.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site v2", found.Title)
	assert.WithinDuration(t, project.CreatedAt, found.CreatedAt, time.Second)
}

func TestGormStore_DeleteMissingRowReportsZero(t *testing.T) {
	s := NewGormStore[database.Skill](newTestDB(t), "skills")

	deleted, err := s.DeleteByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestGormStore_DatabaseErrorsPropagate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewGormStore[database.Skill](db, "skills")
	dbErr := errors.New("connection reset by peer")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "skills"`)).WillReturnError(dbErr)
	_, err := s.FindAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "skills" WHERE id = $1`)).
		WithArgs(id.String(), sqlmock.AnyArg()).
		WillReturnError(dbErr)
	_, err = s.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, dbErr)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "skills"`)).WillReturnError(dbErr)
	err = s.Insert(context.Background(), &database.Skill{Name: "Go"})
	assert.ErrorIs(t, err, dbErr)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "skills" SET`)).WillReturnError(dbErr)
	_, err = s.Update(context.Background(), id, &database.Skill{Name: "Go"})
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "skills" WHERE id = $1`)).
		WithArgs(id.String()).
		WillReturnError(dbErr)
	_, err = s.DeleteByID(context.Background(), id)
	assert.ErrorIs(t, err, dbErr)

	require.NoError(t, mock.ExpectationsWereMet())
}

// 写操作不能带 BEGIN/COMMIT：sqlmock 未声明事务时，任何 Begin 都会报错。
func TestGormStore_WritesAreSingleStatements(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewGormStore[database.Skill](db, "skills")
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "skills"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	skill := database.Skill{Name: "Go"}
	require.NoError(t, s.Insert(ctx, &skill))

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "skills" SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "proficiency"}).
			AddRow(skill.ID.String(), "Golang", nil, nil))
	updated, err := s.Update(ctx, skill.ID, &database.Skill{Name: "Golang"})
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Name)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "skills" WHERE id = $1`)).
		WithArgs(skill.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	deleted, err := s.DeleteByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactStore_InsertFindRecent(t *testing.T) {
	ctx := context.Background()
	s := NewContactStore(newTestDB(t))

	first := database.ContactSubmission{Name: strPtr("Ada"), Message: strPtr("Hi")}
	require.NoError(t, s.Insert(ctx, &first))
	time.Sleep(5 * time.Millisecond)
	second := database.ContactSubmission{Email: strPtr("grace@example.com")}
	require.NoError(t, s.Insert(ctx, &second))

	found, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", *found.Name)
	assert.False(t, found.SubmittedAt.IsZero())

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].ID)

	_, err = s.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
