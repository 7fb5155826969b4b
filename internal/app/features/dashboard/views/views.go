// internal/app/features/dashboard/views/views.go
package dashboardviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

// Patterns lists the files that make up the dashboard template set.
var Patterns = []string{"templates/*.gohtml"}

func init() {
	templates.Register(templates.Set{
		Name:     "dashboard",
		FS:       FS,
		Patterns: Patterns,
	})
}
