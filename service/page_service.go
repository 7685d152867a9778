package service

import (
	"bytes"
	"fmt"
	"html/template"

	"board-customizer/models"
	"board-customizer/templates"
)

// PageService renders the customizer HTML pages
type PageService struct {
	tmpl *template.Template
}

// NewPageService parses the embedded templates
func NewPageService() (*PageService, error) {
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &PageService{tmpl: tmpl}, nil
}

// RenderBuildPage renders the customizer page
func (s *PageService) RenderBuildPage(data models.BuildPage) ([]byte, error) {
	return s.render("build.html", data)
}

// RenderErrorPage renders the generic error page
func (s *PageService) RenderErrorPage(data models.ErrorPage) ([]byte, error) {
	return s.render("error.html", data)
}

func (s *PageService) render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
