package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio/internal/database"
	"portfolio/internal/store"
)

// Stores 汇集各资源的数据访问实现，由 main 构造后注入。
type Stores struct {
	Projects        store.Store[database.Project]
	Skills          store.Store[database.Skill]
	WorkExperiences store.Store[database.WorkExperience]
	Education       store.Store[database.Education]
	Contacts        contactInserter
}

// NewGormStores 基于同一个 *gorm.DB 构造全部存储。
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Projects:        store.NewGormStore[database.Project](db, "projects", "created_at"),
		Skills:          store.NewGormStore[database.Skill](db, "skills"),
		WorkExperiences: store.NewGormStore[database.WorkExperience](db, "work_experience"),
		Education:       store.NewGormStore[database.Education](db, "education"),
		Contacts:        store.NewContactStore(db),
	}
}

// crudRoutes 是单个资源组需要的五个操作。
type crudRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterRoutes 注册资源路由。notifier 可为 nil。
func RegisterRoutes(router *gin.Engine, stores Stores, notifier ContactNotifier) {
	registerResource(router.Group("/projects"),
		NewResourceHandler[database.Project, projectPayload](stores.Projects, projectNames))
	registerResource(router.Group("/skills"),
		NewResourceHandler[database.Skill, skillPayload](stores.Skills, skillNames))
	registerResource(router.Group("/workExperience"),
		NewResourceHandler[database.WorkExperience, workExperiencePayload](stores.WorkExperiences, workExperienceNames))
	registerResource(router.Group("/education"),
		NewResourceHandler[database.Education, educationPayload](stores.Education, educationNames))

	contactHandler := NewContactHandler(stores.Contacts, notifier)
	router.POST("/contact/new", contactHandler.Submit)
}

func registerResource(group *gin.RouterGroup, h crudRoutes) {
	group.GET("/all", h.List)
	group.GET("/:id", h.Get)
	group.POST("/new", h.Create)
	group.PUT("/update/:id", h.Update)
	group.DELETE("/delete/:id", h.Delete)
}
