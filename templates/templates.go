// Package templates embeds the HTML views.
package templates

import (
	"embed"
	"html/template"
	"strings"

	"barbershop-web/models"
	"barbershop-web/utils"
)

//go:embed *.html
var files embed.FS

// Static holds the stylesheet under static/.
//
//go:embed static
var Static embed.FS

// Funcs are the helpers available to every view.
var Funcs = template.FuncMap{
	"date": utils.FormatDate,
	"money": func(n models.Number) string {
		return "$" + n.String()
	},
	"minutes": func(n models.Number) int {
		return n.Int()
	},
	"can": func(a models.Appointment, action string) bool {
		return a.Actions().Has(models.Action(action))
	},
	"lower": func(s any) string {
		switch v := s.(type) {
		case models.Status:
			return strings.ToLower(string(v))
		case models.Role:
			return strings.ToLower(string(v))
		case string:
			return strings.ToLower(v)
		}
		return ""
	},
	"notes": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
}

// Load parses every view with Funcs.
func Load() (*template.Template, error) {
	return template.New("views").Funcs(Funcs).ParseFS(files, "*.html")
}

func MustLoad() *template.Template {
	return template.Must(Load())
}
