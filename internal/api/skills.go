package api

import (
	"portfolio/internal/database"
	"portfolio/internal/validation"
)

var skillNames = ResourceNames{
	Plural:   "skills",
	Singular: "skill",
	Updated:  "updatedSkill",
	Label:    "Skill",
}

var skillSchema = validation.NewSchema(validation.Messages{
	"name.required": "Skill name is required",
	"name.min":      "Skill name cannot be empty",
	"name.max":      "Skill name must be at most 100 characters",
})

// skillPayload.Name 用指针区分字段缺失（required）与空串（min）。
type skillPayload struct {
	Name        *string `json:"name" validate:"required,min=1,max=100"`
	Category    string  `json:"category" validate:"max=100"`
	Proficiency string  `json:"proficiency" validate:"max=10"`
}

func (skillPayload) Schema() *validation.Schema { return skillSchema }

func (p skillPayload) Record() (database.Skill, error) {
	return database.Skill{
		Name:        *p.Name,
		Category:    optional(p.Category),
		Proficiency: optional(p.Proficiency),
	}, nil
}
