package views

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRenderIndex_NotLoaded(t *testing.T) {
	indexTmpl = nil
	if err := RenderIndex(io.Discard); err == nil {
		t.Fatal("RenderIndex err = nil; want not loaded error")
	}
}

func TestRenderIndex(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	t.Cleanup(func() { indexTmpl = nil })

	var buf bytes.Buffer
	if err := RenderIndex(&buf); err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`id="lookup-form"`, `minlength="2"`, `maxlength="50"`, `/static/app.js`} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestLoadTemplatesFromFS_Errors(t *testing.T) {
	t.Cleanup(func() { indexTmpl = nil })

	t.Run("no templates", func(t *testing.T) {
		if err := loadTemplatesFromFS(fstest.MapFS{}, "templates"); err == nil {
			t.Error("err = nil; want pattern matches no files")
		}
	})

	t.Run("parse error", func(t *testing.T) {
		fsys := fstest.MapFS{
			"templates/index.html": {Data: []byte("{{ .Broken ")},
		}
		if err := loadTemplatesFromFS(fsys, "templates"); err == nil {
			t.Error("err = nil; want parse error")
		}
	})
}

func TestStaticHandler(t *testing.T) {
	h := http.StripPrefix("/static/", StaticHandler())

	tests := []struct {
		path string
		want int
	}{
		{path: "/static/app.js", want: http.StatusOK},
		{path: "/static/style.css", want: http.StatusOK},
		{path: "/static/missing.js", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d; want %d", rec.Code, tt.want)
			}
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	if !strings.Contains(rec.Body.String(), "/weather?city=") {
		t.Errorf("app.js does not call /weather")
	}
}
