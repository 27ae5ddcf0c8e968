package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

type pageTemplates struct {
	index   *template.Template
	repos   *template.Template
	enabled *template.Template
}

func parsePageTemplates() (*pageTemplates, error) {
	var (
		p   pageTemplates
		err error
	)
	if p.index, err = ParseTemplate("index.html"); err != nil {
		return nil, err
	}
	if p.repos, err = ParseTemplate("repos.html"); err != nil {
		return nil, err
	}
	if p.enabled, err = ParseTemplate("enabled.html"); err != nil {
		return nil, err
	}
	return &p, nil
}

func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
