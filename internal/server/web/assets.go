package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

func staticFileSystem() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// page is the data every template renders from.
type page struct {
	Title    string
	Message  string
	Error    string
	Username string
	Email    string
	User     *models.User
	Tasks    []*models.Task
}
