// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in page titles.
const SiteName = "AI Models Dashboard"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title"),
//	}
type BaseVM struct {
	SiteName string

	// Page context
	Title       string
	CurrentPath string

	// CSRF protection for form posts. Empty when the CSRF middleware
	// is not in the chain (e.g. handler tests).
	CSRFToken     string
	CSRFFieldName string
}

// CSRFFieldName is the form field gorilla/csrf reads the token from.
const CSRFFieldName = "gorilla.csrf.Token"

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	full := SiteName
	if title != "" {
		full = title + " · " + SiteName
	}
	return BaseVM{
		SiteName:      SiteName,
		Title:         full,
		CurrentPath:   httpnav.CurrentPath(r),
		CSRFToken:     csrf.Token(r),
		CSRFFieldName: CSRFFieldName,
	}
}
