package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
)

// loadTemplates assembles each view with the shared layouts and includes.
// Keys match what the handlers pass to Render (e.g. "topic/list.html").
func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"formatTime": func(t time.Time) string {
			return t.Format("02/01/2006 at 15:04")
		},
		"timeAgo": func(t time.Time) string {
			seconds := int(time.Since(t).Seconds())
			switch {
			case seconds < 60:
				return fmt.Sprintf("%ds ago", seconds)
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			case seconds < 2592000:
				return fmt.Sprintf("%dd ago", seconds/86400)
			case seconds < 31536000:
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
	}

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Topics
	r.AddFromFilesFuncs("topic/list.html", funcMap, assemble(templatesDir+"/views/topic/list.html")...)
	r.AddFromFilesFuncs("topic/detail.html", funcMap, assemble(templatesDir+"/views/topic/detail.html")...)
	r.AddFromFilesFuncs("topic/create.html", funcMap, assemble(templatesDir+"/views/topic/create.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
