// Package actions implements the per-row action button group (edit, delete, ...).
package actions

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/dalemusser/employeehub/internal/app/system/events"
)

// Size of the rendered buttons.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
)

// Action is one button.
type Action struct {
	Type     string
	Icon     string
	Label    string
	Disabled bool
	// EventName overrides the default "action" event name.
	EventName string
}

// Click is the detail of an action event.
type Click struct {
	Type string
	Item any
}

// Options says where the button forms post.
type Options struct {
	// PostURL receives the id, type and return fields of a click.
	PostURL string
	// Target is the hx-target selector swapped with the response. Empty
	// renders plain forms.
	Target string
}

// Buttons is a group of actions bound to one item.
type Buttons struct {
	Actions []Action
	Item    any
	ItemID  string
	Size    Size
	Options Options

	// ReturnURL is posted with each button so the handler can redirect back.
	ReturnURL string

	Events *events.Target
}

// New returns a button group with its own event target.
func New(item any, itemID string, opts Options, acts ...Action) *Buttons {
	return &Buttons{
		Actions: acts,
		Item:    item,
		ItemID:  itemID,
		Size:    SizeSmall,
		Options: opts,
		Events:  events.NewTarget(),
	}
}

// Click dispatches the event for the action of type t. Unknown or disabled
// actions dispatch nothing. Reports whether an event was sent.
func (b *Buttons) Click(t string) bool {
	for _, a := range b.Actions {
		if a.Type != t {
			continue
		}
		if a.Disabled {
			return false
		}
		name := a.EventName
		if name == "" {
			name = events.Action
		}
		b.Events.Dispatch(events.Event{
			Name:     name,
			Detail:   Click{Type: a.Type, Item: b.Item},
			Bubbles:  true,
			Composed: true,
		})
		return true
	}
	return false
}

var buttonsTmpl = template.Must(template.New("actions").Parse(buttonsHTML))

// Render renders the group as one small POST form per action.
func (b *Buttons) Render() (template.HTML, error) {
	if b.Options.PostURL == "" {
		return "", errors.New("actions: no post URL")
	}
	size := b.Size
	if size == "" {
		size = SizeSmall
	}
	var buf bytes.Buffer
	err := buttonsTmpl.Execute(&buf, struct {
		*Buttons
		SizeClass string
	}{b, "btn-" + string(size)})
	if err != nil {
		return "", fmt.Errorf("actions: render %s: %w", b.ItemID, err)
	}
	return template.HTML(buf.String()), nil
}

const buttonsHTML = `<div class="action-buttons">
{{- range .Actions}}
<form method="post" action="{{$.Options.PostURL}}" class="action-form"
{{- with $.Options.Target}} hx-post="{{$.Options.PostURL}}" hx-target="{{.}}" hx-swap="outerHTML"{{end}}>
<input type="hidden" name="id" value="{{$.ItemID}}">
<input type="hidden" name="type" value="{{.Type}}">
{{- if $.ReturnURL}}<input type="hidden" name="return" value="{{$.ReturnURL}}">{{end}}
<button type="submit" class="action-button {{$.SizeClass}} action-{{.Type}}" title="{{.Label}}" aria-label="{{.Label}}"{{if .Disabled}} disabled{{end}}>
{{- if .Icon}}<span class="icon icon-{{.Icon}}" aria-hidden="true"></span>{{else}}{{.Label}}{{end -}}
</button>
</form>
{{- end}}
</div>`
