package entity

import "time"

type ProjectType string

const (
	ProjectWeb       ProjectType = "web"
	ProjectMobile    ProjectType = "mobile"
	ProjectDesktop   ProjectType = "desktop"
	ProjectFullstack ProjectType = "fullstack"
	ProjectAPI       ProjectType = "api"
	ProjectDesign    ProjectType = "design"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectWeb, ProjectMobile, ProjectDesktop, ProjectFullstack, ProjectAPI, ProjectDesign:
		return true
	}
	return false
}

type Project struct {
	ID              string      `json:"_id"`
	Name            string      `json:"name"`
	LongDescription string      `json:"longDescription"`
	Challenges      []string    `json:"challenges"`
	Learnings       []string    `json:"learnings"`
	Role            string      `json:"role"`
	Technologies    []string    `json:"technologies"`
	Type            ProjectType `json:"type"`
	GithubURL       string      `json:"githubUrl"`
	DemoURL         string      `json:"demoUrl"`
	Images          []Asset     `json:"images"`
	CreatedAt       time.Time   `json:"createdAt"`
}
