package api

import (
	"gorm.io/datatypes"

	"portfolio/internal/database"
	"portfolio/internal/validation"
)

var projectNames = ResourceNames{
	Plural:   "projects",
	Singular: "project",
	Updated:  "updatedProject",
	Label:    "Project",
}

var projectSchema = validation.NewSchema(validation.Messages{
	"title.required":       "title is required",
	"title.min":            "title must be at least 3 characters",
	"title.max":            "title must be at most 200 characters",
	"description.required": "description is required",
	"description.min":      "description must be at least 10 characters",
	"imageUrl.url":         "imageUrl must be an url",
	"projectUrl.url":       "projectUrl must be an url",
	"repoUrl.url":          "repoUrl must be an url",
})

// projectPayload 是创建/更新项目的请求体。
type projectPayload struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required,min=10"`
	TechStack   []string `json:"techStack" validate:"omitempty,dive,max=100"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url,max=500"`
	ProjectURL  string   `json:"projectUrl" validate:"omitempty,url,max=500"`
	RepoURL     string   `json:"repoUrl" validate:"omitempty,url,max=500"`
}

func (projectPayload) Schema() *validation.Schema { return projectSchema }

func (p projectPayload) Record() (database.Project, error) {
	techStack := datatypes.JSONSlice[string]{}
	if len(p.TechStack) > 0 {
		techStack = datatypes.JSONSlice[string](p.TechStack)
	}
	return database.Project{
		Title:       p.Title,
		Description: p.Description,
		TechStack:   techStack,
		ImageURL:    optional(p.ImageURL),
		ProjectURL:  optional(p.ProjectURL),
		RepoURL:     optional(p.RepoURL),
	}, nil
}
