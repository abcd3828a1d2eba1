package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project 表示作品集中的一个项目。
type Project struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	TechStack   datatypes.JSONSlice[string] `gorm:"not null" json:"techStack"`
	ImageURL    *string                     `gorm:"size:500" json:"imageUrl"`
	ProjectURL  *string                     `gorm:"size:500" json:"projectUrl"`
	RepoURL     *string                     `gorm:"size:500" json:"repoUrl"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	if p.TechStack == nil {
		p.TechStack = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Skill 表示一项技能。
type Skill struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Category    *string   `gorm:"size:100" json:"category"`
	Proficiency *string   `gorm:"size:10" json:"proficiency"`
}

func (Skill) TableName() string { return "skills" }

func (s *Skill) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// WorkExperience 表示一段工作经历，起止时间均可为空（例如仍在职）。
type WorkExperience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName string     `gorm:"size:255;not null" json:"companyName"`
	Role        string     `gorm:"size:255;not null" json:"role"`
	Description *string    `gorm:"type:text" json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	LogoURL     *string    `gorm:"size:500" json:"logoUrl"`
}

func (WorkExperience) TableName() string { return "work_experience" }

func (w *WorkExperience) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}

// Education 表示一段教育经历。
type Education struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InstitutionName string    `gorm:"size:255;not null" json:"institutionName"`
	Degree          string    `gorm:"size:255;not null" json:"degree"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Location        *string   `gorm:"size:255" json:"location"`
	LogoURL         *string   `gorm:"size:500" json:"logoUrl"`
}

func (Education) TableName() string { return "education" }

func (e *Education) BeforeCreate(*gorm.DB) error {
	assignID(&e.ID)
	return nil
}

// ContactSubmission 表示访客提交的联系表单，只写入，不提供 CRUD 路由。
type ContactSubmission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        *string   `gorm:"size:100" json:"name"`
	Email       *string   `gorm:"size:255" json:"email"`
	Message     *string   `gorm:"type:text" json:"message"`
	SubmittedAt time.Time `gorm:"autoCreateTime;index" json:"submittedAt"`
}

func (ContactSubmission) TableName() string { return "contact" }

func (c *ContactSubmission) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// GetID 供日志等通用逻辑读取主键。
func (p Project) GetID() uuid.UUID           { return p.ID }
func (s Skill) GetID() uuid.UUID             { return s.ID }
func (w WorkExperience) GetID() uuid.UUID    { return w.ID }
func (e Education) GetID() uuid.UUID         { return e.ID }
func (c ContactSubmission) GetID() uuid.UUID { return c.ID }
