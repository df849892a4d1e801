// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/navigation"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// SiteName is shown in the nav bar and the page title.
const SiteName = "EmployeeHub"

// NavItem is one link of the nav bar.
type NavItem struct {
	Href   string
	Label  string
	Active bool
}

// LanguageOption is one entry of the language selector.
type LanguageOption struct {
	Code     string
	Label    string
	Selected bool
}

// DialogVM is the template model of the confirmation dialog.
type DialogVM struct {
	Open         bool
	ID           string
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	IsAlert      bool
	ReturnURL    string
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "employees.title", "/"),
//	}
type BaseVM struct {
	SiteName string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Localization
	Lang          string
	LanguageLabel string
	Languages     []LanguageOption

	Nav    []NavItem
	Dialog DialogVM

	tr i18n.Translator
}

var (
	bundle   *i18n.Bundle
	registry *confirm.Registry
)

// Init sets the catalogs and the confirmation registry used by NewBaseVM.
// Call this once at startup from bootstrap.
func Init(b *i18n.Bundle, r *confirm.Registry) {
	bundle = b
	registry = r
}

// Translator returns the translator for the request's language.
func Translator(r *http.Request) i18n.Translator {
	st := uistate.From(r)
	if bundle == nil {
		return passthrough{lang: i18n.Fallback}
	}
	return bundle.For(bundle.Match(st.Language, r.Header.Get("Accept-Language")))
}

// Dialog returns the coordinator of the request's session, or nil before Init.
func Dialog(r *http.Request) *confirm.Coordinator {
	if registry == nil {
		return nil
	}
	return registry.For(uistate.From(r).SessionID)
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - titleKey: translation key of the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, titleKey, backDefault string) BaseVM {
	tr := Translator(r)
	path := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:      SiteName,
		Title:         tr.T(titleKey, nil),
		BackURL:       navigation.SafeBackURL(r, navigation.BackURLOptions{Fallback: backDefault}),
		CurrentPath:   path,
		Lang:          tr.Language(),
		LanguageLabel: tr.T("nav.language", nil),
		tr:            tr,
		Nav: []NavItem{
			{Href: "/", Label: tr.T("nav.employees", nil), Active: path == "/"},
			{Href: "/add-employee", Label: tr.T("nav.addEmployee", nil), Active: path == "/add-employee"},
		},
	}
	if bundle != nil {
		for _, code := range bundle.Languages() {
			vm.Languages = append(vm.Languages, LanguageOption{
				Code:     code,
				Label:    tr.T("language."+code, nil),
				Selected: code == vm.Lang,
			})
		}
	}
	if c := Dialog(r); c != nil {
		vm.Dialog = NewDialogVM(c.State())
	}
	return vm
}

// NewDialogVM converts the coordinator state into its template model.
func NewDialogVM(st confirm.State) DialogVM {
	if !st.Open {
		return DialogVM{}
	}
	req := st.Request
	return DialogVM{
		Open:         true,
		ID:           req.ID,
		Title:        req.Title,
		Message:      req.Message,
		ConfirmLabel: req.ConfirmLabel,
		CancelLabel:  req.CancelLabel,
		IsAlert:      req.IsAlert(),
		ReturnURL:    req.ReturnURL,
	}
}

// Tr translates key for the page's language; templates call {{.Tr "key"}}.
func (vm BaseVM) Tr(key string) string {
	if vm.tr == nil {
		return key
	}
	return vm.tr.T(key, nil)
}

// T returns the page's translator.
func (vm BaseVM) T() i18n.Translator {
	if vm.tr == nil {
		return passthrough{lang: i18n.Fallback}
	}
	return vm.tr
}

type passthrough struct{ lang string }

func (p passthrough) T(key string, _ i18n.Params) string { return key }
func (p passthrough) Language() string                  { return p.lang }
