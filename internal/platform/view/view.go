// Package view は組み込みHTMLテンプレートを読み込み、gin のHTMLレンダラーに渡します。
package view

import (
	"embed"
	"fmt"
	"html/template"

	"employee_directory/internal/feature/auth/domain/entity"
)

// View names passed to gin.Context.HTML.
const (
	EmployeeList = "emp-dir-page"
	EmployeeForm = "add-update-emp"
	Login        = "login"
	Error        = "error"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"hasRole": func(p *entity.Principal, role string) bool {
		return p.HasRole(entity.Role(role))
	},
}

// New parses the embedded templates.
func New() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, name := range []string{EmployeeList, EmployeeForm, Login, Error} {
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q is not defined", name)
		}
	}
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew() *template.Template {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}
