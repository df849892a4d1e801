package language_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/employeehub/internal/app/features/language"
	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/i18n"
	"github.com/dalemusser/employeehub/internal/app/system/uistate"
	"github.com/dalemusser/employeehub/internal/testutil"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *language.Handler {
	t.Helper()
	b, err := i18n.Load()
	if err != nil {
		t.Fatalf("i18n.Load: %v", err)
	}
	ui, err := uistate.NewManager("0123456789abcdef0123456789abcdef", "", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return language.NewHandler(b, ui, zap.NewNop())
}

func TestHandleChange(t *testing.T) {
	h := newHandler(t)

	var notified []string
	unsub := h.Bundle.Subscribe(func(lang string) { notified = append(notified, lang) })
	defer unsub()

	var got *language.Change
	h.Events.AddListener(events.LanguageChange, func(e *events.Event) {
		c := e.Detail.(language.Change)
		got = &c
	})

	st := &uistate.State{SessionID: "s1", Language: "en"}
	req := testutil.NewFormRequest("/language", url.Values{"lang": {"tr"}, "return": {"/add-employee"}})
	req = testutil.WithUIState(req, st)
	rec := httptest.NewRecorder()
	h.HandleChange(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/add-employee" {
		t.Errorf("Location = %q", loc)
	}
	if st.Language != "tr" {
		t.Errorf("state language = %q, want tr", st.Language)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected the choice to be persisted in a cookie")
	}
	if len(notified) != 1 || notified[0] != "tr" {
		t.Errorf("subscribers notified with %v", notified)
	}
	if got == nil || got.Language != "tr" || got.SessionID != "s1" {
		t.Errorf("language-change detail = %+v", got)
	}
}

func TestHandleChange_Unsupported(t *testing.T) {
	h := newHandler(t)
	fired := false
	h.Events.AddListener(events.LanguageChange, func(*events.Event) { fired = true })

	st := &uistate.State{SessionID: "s1", Language: "en"}
	req := testutil.WithUIState(testutil.NewFormRequest("/language", url.Values{"lang": {"de"}}), st)
	rec := httptest.NewRecorder()
	h.HandleChange(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if st.Language != "en" || fired {
		t.Error("unsupported language must not change anything")
	}
}

func TestHandleChange_HTMX(t *testing.T) {
	h := newHandler(t)
	req := testutil.NewFormRequest("/language", url.Values{"lang": {"tr"}})
	req = testutil.NewHTMXRequest(testutil.WithUIState(req, &uistate.State{SessionID: "s"}), "")
	rec := httptest.NewRecorder()
	h.HandleChange(rec, req)

	if rec.Header().Get("HX-Redirect") != "/" {
		t.Errorf("HX-Redirect = %q", rec.Header().Get("HX-Redirect"))
	}
}
