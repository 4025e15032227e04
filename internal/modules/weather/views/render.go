package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

var indexTmpl *template.Template

// loadTemplatesFromFS parses the page templates under dir in fsys.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	indexTmpl, err = template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

type IndexData struct {
	MinCityLength int
	MaxCityLength int
}

func RenderIndex(w io.Writer) error {
	if indexTmpl == nil {
		return errors.New("index template not loaded: call views.LoadTemplates during startup")
	}
	return indexTmpl.ExecuteTemplate(w, "index.html", IndexData{MinCityLength: 2, MaxCityLength: 50})
}

// StaticHandler serves the embedded assets rooted at static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(viewsFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}
