package dashboard

import (
	"net/http"

	"github.com/dalemusser/modeldash/internal/app/system/viewdata"
)

// refreshSeconds is how often a Loading page reloads itself.
const refreshSeconds = 1

// PageVM is the view model for the dashboard page. Exactly one of the
// loading indicator, the error panel, or the sections is rendered,
// selected by State.
type PageVM struct {
	viewdata.BaseVM

	ViewID         string
	State          string
	Message        string
	Sections       []SectionVM
	RetryURL       string
	RefreshSeconds int
}

// NewPageVM builds the page for a view in state st.
func NewPageVM(r *http.Request, viewID string, st State) PageVM {
	vm := PageVM{
		ViewID:   viewID,
		State:    st.Kind(),
		RetryURL: ViewPath(viewID) + "/retry",
	}

	switch s := st.(type) {
	case Loading:
		vm.BaseVM = viewdata.NewBaseVM(r, "Loading")
		vm.RefreshSeconds = refreshSeconds
	case Failed:
		vm.BaseVM = viewdata.NewBaseVM(r, "Error")
		vm.Message = s.Message
	case Ready:
		vm.BaseVM = viewdata.NewBaseVM(r, "")
		vm.Sections = BuildSections(s.Payload)
	}
	return vm
}
