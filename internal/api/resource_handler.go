package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio/internal/api/middleware"
	"portfolio/internal/store"
	"portfolio/internal/validation"
)

// Payload 是写请求体：Schema 描述字段规则，Record 把通过校验的请求体转换为待存储的行。
type Payload[T any] interface {
	Schema() *validation.Schema
	Record() (T, error)
}

// ResourceNames 描述一种资源在信封中的键名与提示文案。
type ResourceNames struct {
	Plural   string // 列表键，如 "skills"
	Singular string // 单条键，如 "skill"
	Updated  string // 更新响应键，如 "updatedSkill"
	Label    string // 提示文案中的名称，如 "Skill"
}

// ResourceHandler 为一种资源提供 List/Get/Create/Update/Delete 五个操作。
type ResourceHandler[T any, P Payload[T]] struct {
	store store.Store[T]
	names ResourceNames
}

// NewResourceHandler 构造 ResourceHandler。
func NewResourceHandler[T any, P Payload[T]](s store.Store[T], names ResourceNames) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{store: s, names: names}
}

// List 返回该资源的全部记录。
func (h *ResourceHandler[T, P]) List(c *gin.Context) {
	records, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		h.storeFailure(c, "list", err)
		return
	}
	Success(c, http.StatusOK, gin.H{h.names.Plural: records})
}

// Get 按 ID 返回单条记录。
func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	record, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.storeFailure(c, "get", err)
		return
	}
	Success(c, http.StatusOK, gin.H{h.names.Singular: record})
}

// Create 校验请求体后插入新记录，返回 201。
func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	record, ok := h.bindRecord(c)
	if !ok {
		return
	}

	if err := h.store.Insert(c.Request.Context(), &record); err != nil {
		h.storeFailure(c, "create", err)
		return
	}

	middleware.LoggerFromContext(c).Info(h.names.Label+" created", slog.String("id", recordID(&record)))
	Success(c, http.StatusCreated, gin.H{h.names.Singular: record})
}

// Update 整体覆盖指定记录的可写字段。
func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	record, ok := h.bindRecord(c)
	if !ok {
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, &record)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.storeFailure(c, "update", err)
		return
	}

	middleware.LoggerFromContext(c).Info(h.names.Label+" updated", slog.String("id", id.String()))
	Success(c, http.StatusOK, gin.H{h.names.Updated: updated})
}

// Delete 删除指定记录；未命中任何行时返回 404。
func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		h.storeFailure(c, "delete", err)
		return
	}
	if deleted == 0 {
		h.notFound(c)
		return
	}

	middleware.LoggerFromContext(c).Info(h.names.Label+" deleted", slog.String("id", id.String()))
	Success(c, http.StatusOK, nil)
}

func (h *ResourceHandler[T, P]) parseID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	if !validation.IsValidID(raw) {
		BadRequest(c, msgInvalidID)
		return uuid.Nil, false
	}
	return uuid.MustParse(raw), true
}

// bindRecord 解码并校验请求体。空请求体按 {} 校验，以便列出全部缺失字段。
func (h *ResourceHandler[T, P]) bindRecord(c *gin.Context) (T, bool) {
	var (
		payload P
		zero    T
	)
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		InvalidData(c, err.Error())
		return zero, false
	}

	if err := payload.Schema().Check(payload); err != nil {
		InvalidData(c, err.Error())
		return zero, false
	}

	record, err := payload.Record()
	if err != nil {
		InvalidData(c, err.Error())
		return zero, false
	}
	return record, true
}

func (h *ResourceHandler[T, P]) notFound(c *gin.Context) {
	NotFound(c, h.names.Label+" not found")
}

func (h *ResourceHandler[T, P]) storeFailure(c *gin.Context, op string, err error) {
	middleware.LoggerFromContext(c).Error(h.names.Label+" "+op+" failed", slog.Any("error", err))
	Internal(c)
}

// recordID 取出记录的主键，用于日志。
func recordID(record any) string {
	if r, ok := record.(interface{ GetID() uuid.UUID }); ok {
		return r.GetID().String()
	}
	return ""
}
