package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal/config"
	"portfolio/internal/database"
)

func testConfig() *config.Config {
	return &config.Config{
		Profile: config.ProfileLocal,
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

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

// newTestRouter 返回挂载了 SQLite 存储的完整路由。
func newTestRouter(t *testing.T, notifier ContactNotifier) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	router := NewRouter(testConfig(), db, discardLogger())
	RegisterRoutes(router, NewGormStores(db), notifier)
	return router, db
}

// doJSON 发送请求并把响应体解码为 map。body 为 string 时原样发送。
func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

// spyStore 记录调用次数，并对每次调用返回 err。
type spyStore[T any] struct {
	calls int
	err   error
}

func (s *spyStore[T]) FindAll(context.Context) ([]T, error) {
	s.calls++
	return nil, s.err
}

func (s *spyStore[T]) FindByID(context.Context, uuid.UUID) (*T, error) {
	s.calls++
	return nil, s.err
}

func (s *spyStore[T]) Insert(context.Context, *T) error {
	s.calls++
	return s.err
}

func (s *spyStore[T]) Update(context.Context, uuid.UUID, *T) (*T, error) {
	s.calls++
	return nil, s.err
}

func (s *spyStore[T]) DeleteByID(context.Context, uuid.UUID) (int64, error) {
	s.calls++
	return 0, s.err
}

type spyStores struct {
	projects        *spyStore[database.Project]
	skills          *spyStore[database.Skill]
	workExperiences *spyStore[database.WorkExperience]
	education       *spyStore[database.Education]
}

func (s spyStores) total() int {
	return s.projects.calls + s.skills.calls + s.workExperiences.calls + s.education.calls
}

func newSpyRouter(err error) (*gin.Engine, spyStores) {
	gin.SetMode(gin.TestMode)
	spies := spyStores{
		projects:        &spyStore[database.Project]{err: err},
		skills:          &spyStore[database.Skill]{err: err},
		workExperiences: &spyStore[database.WorkExperience]{err: err},
		education:       &spyStore[database.Education]{err: err},
	}
	router := gin.New()
	RegisterRoutes(router, Stores{
		Projects:        spies.projects,
		Skills:          spies.skills,
		WorkExperiences: spies.workExperiences,
		Education:       spies.education,
	}, nil)
	return router, spies
}
