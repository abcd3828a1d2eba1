package api

import (
	"portfolio/internal/database"
	"portfolio/internal/validation"
)

var educationNames = ResourceNames{
	Plural:   "education",
	Singular: "educationEntry",
	Updated:  "updatedEducationEntry",
	Label:    "Education entry",
}

var educationSchema = validation.NewSchema(validation.Messages{
	"institutionName.required": "Institution name is required",
	"degree.required":          "Degree is required",
	"startDate.required":       "Start date is required",
	"startDate.date":           "Start date must be a valid date",
	"endDate.required":         "End date is required",
	"endDate.date":             "End date must be a valid date",
	"logoUrl.url":              "Logo URL must be a valid URL",
})

type educationPayload struct {
	InstitutionName string `json:"institutionName" validate:"required,max=255"`
	Degree          string `json:"degree" validate:"required,max=255"`
	StartDate       string `json:"startDate" validate:"required,date"`
	EndDate         string `json:"endDate" validate:"required,date"`
	Location        string `json:"location" validate:"max=255"`
	LogoURL         string `json:"logoUrl" validate:"omitempty,url,max=500"`
}

func (educationPayload) Schema() *validation.Schema { return educationSchema }

func (p educationPayload) Record() (database.Education, error) {
	start, err := validation.ParseDate(p.StartDate)
	if err != nil {
		return database.Education{}, err
	}
	end, err := validation.ParseDate(p.EndDate)
	if err != nil {
		return database.Education{}, err
	}
	return database.Education{
		InstitutionName: p.InstitutionName,
		Degree:          p.Degree,
		StartDate:       start,
		EndDate:         end,
		Location:        optional(p.Location),
		LogoURL:         optional(p.LogoURL),
	}, nil
}
