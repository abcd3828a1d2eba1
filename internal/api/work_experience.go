package api

import (
	"portfolio/internal/database"
	"portfolio/internal/validation"
)

var workExperienceNames = ResourceNames{
	Plural:   "workExperiences",
	Singular: "workExperience",
	Updated:  "updatedWorkExperience",
	Label:    "Work experience",
}

var workExperienceSchema = validation.NewSchema(validation.Messages{
	"companyName.required": "Company name is required",
	"role.required":        "Role is required",
	"startDate.date":       "Start date must be a valid date",
	"endDate.date":         "End date must be a valid date",
	"logoUrl.url":          "Logo URL must be a valid URL",
})

// workExperiencePayload 的起止日期可省略，例如当前仍在职。
type workExperiencePayload struct {
	CompanyName string `json:"companyName" validate:"required,max=255"`
	Role        string `json:"role" validate:"required,max=255"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"omitempty,date"`
	EndDate     string `json:"endDate" validate:"omitempty,date"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url,max=500"`
}

func (workExperiencePayload) Schema() *validation.Schema { return workExperienceSchema }

func (p workExperiencePayload) Record() (database.WorkExperience, error) {
	start, err := optionalDate(p.StartDate)
	if err != nil {
		return database.WorkExperience{}, err
	}
	end, err := optionalDate(p.EndDate)
	if err != nil {
		return database.WorkExperience{}, err
	}
	return database.WorkExperience{
		CompanyName: p.CompanyName,
		Role:        p.Role,
		Description: optional(p.Description),
		StartDate:   start,
		EndDate:     end,
		LogoURL:     optional(p.LogoURL),
	}, nil
}
