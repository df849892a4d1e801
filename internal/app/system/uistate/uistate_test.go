package uistate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(testKey, "", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func carryCookies(from *httptest.ResponseRecorder, to *http.Request) {
	for _, c := range from.Result().Cookies() {
		to.AddCookie(c)
	}
}

func TestNewManager_EmptyKey(t *testing.T) {
	if _, err := NewManager("", "", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestLoad_FreshStateHasSessionID(t *testing.T) {
	m := newManager(t)
	st := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	if st.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if st.Selected != nil {
		t.Errorf("Selected = %v, want nil (selection never enabled)", st.Selected)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := newManager(t)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	in := &State{SessionID: "abc", Language: "tr", View: "list", Selected: []string{"1", "22"}}
	if err := m.Save(w, r, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(w, r2)
	out := m.Load(r2)

	if out.SessionID != "abc" || out.Language != "tr" || out.View != "list" {
		t.Errorf("Load() = %+v", out)
	}
	if len(out.Selected) != 2 || !out.IsSelected("22") || out.IsSelected("2") {
		t.Errorf("Selected = %v", out.Selected)
	}
}

func TestEmptySelectionIsNotNil(t *testing.T) {
	m := newManager(t)
	w := httptest.NewRecorder()
	if err := m.Save(w, httptest.NewRequest(http.MethodGet, "/", nil), &State{SessionID: "x", Selected: []string{}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(w, r)
	st := m.Load(r)
	if st.Selected == nil || len(st.Selected) != 0 {
		t.Errorf("Selected = %#v, want empty non-nil", st.Selected)
	}
}

func TestMiddleware(t *testing.T) {
	m := newManager(t)
	var seen *State
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = From(r)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == nil || seen.SessionID == "" {
		t.Fatal("expected state with session id in context")
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("expected a cookie for a new browser")
	}

	// the same browser keeps its id
	first := seen.SessionID
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(w, r)
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r)
	if seen.SessionID != first {
		t.Errorf("SessionID = %q, want %q", seen.SessionID, first)
	}
}

func TestFrom_WithoutMiddleware(t *testing.T) {
	st := From(httptest.NewRequest(http.MethodGet, "/", nil))
	if st == nil {
		t.Fatal("From returned nil")
	}
}
