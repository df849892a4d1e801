package actions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalemusser/employeehub/internal/app/system/events"
)

func TestClick(t *testing.T) {
	item := map[string]any{"id": 7}
	b := New(item, "7", Options{},
		Action{Type: "edit", Icon: "edit", Label: "Edit"},
		Action{Type: "delete", Icon: "delete", Label: "Delete", Disabled: true},
		Action{Type: "archive", Label: "Archive", EventName: "archive-request"},
	)

	parent := events.NewTarget()
	b.Events.AttachTo(parent)

	var got []events.Event
	for _, name := range []string{events.Action, "archive-request"} {
		parent.AddListener(name, func(e *events.Event) { got = append(got, *e) })
	}

	assert.True(t, b.Click("edit"))
	assert.False(t, b.Click("delete"), "disabled action must not dispatch")
	assert.False(t, b.Click("missing"), "unknown action must not dispatch")
	assert.True(t, b.Click("archive"))

	require.Len(t, got, 2)
	assert.Equal(t, events.Action, got[0].Name)
	assert.Equal(t, Click{Type: "edit", Item: item}, got[0].Detail)
	assert.True(t, got[0].Composed)
	assert.Equal(t, "archive-request", got[1].Name)
}

func TestClickCrossesBoundary(t *testing.T) {
	b := New("x", "1", Options{}, Action{Type: "edit", Label: "Edit"})
	grid := events.NewBoundary()
	page := events.NewTarget()
	b.Events.AttachTo(grid)
	grid.AttachTo(page)

	n := 0
	page.AddListener(events.Action, func(*events.Event) { n++ })
	b.Click("edit")
	assert.Equal(t, 1, n)
}

var gridOpts = Options{PostURL: "/rows/act", Target: "#rows"}

func TestRender(t *testing.T) {
	b := New(nil, "42", gridOpts,
		Action{Type: "edit", Icon: "edit", Label: "Edit"},
		Action{Type: "delete", Label: `<Delete>`, Disabled: true},
	)
	b.ReturnURL = "/?page=2"

	html, err := b.Render()
	require.NoError(t, err)
	out := string(html)
	assert.Equal(t, 2, strings.Count(out, "<form"))
	assert.Equal(t, 2, strings.Count(out, `action="/rows/act"`))
	assert.Contains(t, out, `hx-post="/rows/act" hx-target="#rows"`)
	assert.NotContains(t, out, "/actions")
	assert.Contains(t, out, `name="id" value="42"`)
	assert.Contains(t, out, `value="edit"`)
	assert.Contains(t, out, "btn-small")
	assert.Contains(t, out, " disabled")
	assert.Contains(t, out, "&lt;Delete&gt;")
	assert.Contains(t, out, `name="return"`)
}

func TestRender_PlainForms(t *testing.T) {
	b := New(nil, "1", Options{PostURL: "/rows/act"}, Action{Type: "edit", Label: "Edit"})
	html, err := b.Render()
	require.NoError(t, err)
	assert.Contains(t, string(html), `action="/rows/act" class="action-form">`)
	assert.NotContains(t, string(html), "hx-post")
}

func TestRender_NoPostURL(t *testing.T) {
	html, err := New(nil, "1", Options{}, Action{Type: "edit"}).Render()
	assert.Error(t, err)
	assert.Empty(t, html)
}
