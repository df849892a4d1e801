package formbuilder

import (
	"testing"

	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalemusser/employeehub/internal/app/system/events"
	"github.com/dalemusser/employeehub/internal/app/system/inputval"
)

var testFields = []Field{
	{Name: "firstName", Label: "First Name", Type: TypeText},
	{Name: "lastName", Label: "Last Name", Type: TypeText},
	{Name: "phone", Label: "Phone", Type: TypeTel},
	{Name: "department", Label: "Department", Type: TypeSelect, Options: []Option{{"1", "Analytics"}, {"2", "Tech"}}},
}

type person struct {
	FirstName  string `json:"firstName" validate:"min=2,max=50"`
	LastName   string `json:"lastName" validate:"min=2"`
	Phone      string `json:"phone" validate:"required,phone"`
	Department string `json:"department" validate:"required"`
}

var testMessages = map[string]string{
	"firstName.min":       "too short",
	"firstName.max":       "too long",
	"lastName.min":        "too short",
	"phone.required":      "phone required",
	"phone.phone":         "bad phone",
	"department.required": "department required",
}

var testSchema = TagSchema{
	Validator: inputval.Validator(),
	Decode:    func(d map[string]string) any {
		return person{FirstName: d["firstName"], LastName: d["lastName"], Phone: d["phone"], Department: d["department"]}
	},
	Message: func(e *validate.Error) string { return testMessages[e.Field+"."+e.Rule] },
}

func TestNewStartsEmpty(t *testing.T) {
	f := New(testFields, testSchema)
	for _, fd := range testFields {
		v, ok := f.FormData[fd.Name]
		assert.True(t, ok)
		assert.Equal(t, "", v)
		assert.Equal(t, Untouched, f.State(fd.Name))
	}
}

func TestInputValidatesSingleField(t *testing.T) {
	f := New(testFields, testSchema)
	var changes []Change
	f.Events.AddListener(events.FormChange, func(e *events.Event) {
		changes = append(changes, e.Detail.(Change))
	})

	f.Input("firstName", "J")
	assert.Equal(t, "too short", f.Errors["firstName"])
	assert.Equal(t, Invalid, f.State("firstName"))
	_, other := f.Errors["lastName"]
	assert.False(t, other, "only the changed field is validated")

	f.Input("firstName", "John")
	_, still := f.Errors["firstName"]
	assert.False(t, still)
	assert.Equal(t, Valid, f.State("firstName"))

	require.Len(t, changes, 2)
	assert.False(t, changes[0].IsValid)
	assert.True(t, changes[1].IsValid)
	assert.Equal(t, "John", changes[1].FormData["firstName"])
}

func TestSubmit(t *testing.T) {
	f := New(testFields, testSchema)
	submitted := 0
	f.Events.AddListener(events.FormSubmit, func(*events.Event) { submitted++ })

	f.Input("firstName", "John")
	assert.False(t, f.Submit())
	assert.Equal(t, 0, submitted)
	assert.Equal(t, map[string]string{
		"lastName":   "too short",
		"phone":      "phone required",
		"department": "department required",
	}, f.Errors)

	f.Seed(map[string]string{"firstName": "John", "lastName": "Doe", "phone": "+90 555 123 4567", "department": "2"})
	assert.True(t, f.Submit())
	assert.Equal(t, 1, submitted)
	assert.Empty(t, f.Errors)
}

func TestTagSchema(t *testing.T) {
	data := map[string]string{"firstName": "John", "lastName": "Doe", "phone": "12345", "department": "1"}

	msg, ok := testSchema.ValidateField("phone", data)
	assert.False(t, ok)
	assert.Equal(t, "bad phone", msg)

	_, ok = testSchema.ValidateField("firstName", data)
	assert.True(t, ok, "other failures do not leak into a valid field")

	data["phone"] = ""
	data["lastName"] = "D"
	assert.Equal(t, []FieldError{
		{Path: []string{"lastName"}, Message: "too short"},
		{Path: []string{"phone"}, Message: "phone required"},
	}, testSchema.Validate(data))
}

func TestTagSchema_DefaultMessages(t *testing.T) {
	s := TagSchema{Decode: func(d map[string]string) any { return person{FirstName: d["firstName"], Phone: "1234567890", Department: "1", LastName: "Doe"} }}
	msg, ok := s.ValidateField("firstName", map[string]string{"firstName": "J"})
	assert.False(t, ok)
	assert.Equal(t, "firstName must be at least 2 characters", msg)
}

func TestSubmitWithoutSchema(t *testing.T) {
	f := New(testFields, nil)
	f.Input("firstName", "J")
	assert.Empty(t, f.Errors)
	assert.False(t, f.Submit())
}

func TestSeed(t *testing.T) {
	f := New(testFields, testSchema)
	initial := map[string]string{"firstName": "Ada", "lastName": "Lovelace"}
	f.Seed(initial)
	assert.Equal(t, "Ada", f.FormData["firstName"])
	assert.Equal(t, "", f.FormData["phone"], "missing fields are filled with empty strings")

	// user edits survive a re-seed with identical data
	f.Input("firstName", "Augusta")
	f.Seed(map[string]string{"firstName": "Ada", "lastName": "Lovelace"})
	assert.Equal(t, "Augusta", f.FormData["firstName"])

	// changed initial data re-seeds entirely
	f.Seed(map[string]string{"firstName": "Grace"})
	assert.Equal(t, "Grace", f.FormData["firstName"])
	assert.Equal(t, "", f.FormData["lastName"])

	initial["firstName"] = "mutated"
	assert.Equal(t, "Grace", f.FormData["firstName"])
}

func TestRows(t *testing.T) {
	name := func(n string) Field { return Field{Name: n} }
	full := func(n string) Field { return Field{Name: n, FullWidth: true} }

	tests := []struct {
		name   string
		fields []Field
		want   [][]string
	}{
		{"pairs", []Field{name("a"), name("b"), name("c"), name("d")}, [][]string{{"a", "b"}, {"c", "d"}}},
		{"odd tail", []Field{name("a"), name("b"), name("c")}, [][]string{{"a", "b"}, {"c"}}},
		{"full flushes half row", []Field{name("a"), full("b"), name("c")}, [][]string{{"a"}, {"b"}, {"c"}}},
		{"full first", []Field{full("a"), name("b"), name("c")}, [][]string{{"a"}, {"b", "c"}}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]string
			for _, row := range New(tt.fields, nil).Rows() {
				var names []string
				for _, fd := range row {
					names = append(names, fd.Name)
				}
				got = append(got, names)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestView(t *testing.T) {
	f := New(testFields, testSchema)
	f.Seed(map[string]string{"department": "2"})
	f.Input("firstName", "J")
	f.Disabled = true

	v := f.View()
	require.Len(t, v.Rows, 2)
	assert.True(t, v.Disabled)
	assert.False(t, v.IsValid)
	assert.Equal(t, "too short", v.Rows[0][0].Error)
	assert.Equal(t, "invalid", v.Rows[0][0].State)

	dept := v.Rows[1][1]
	assert.True(t, dept.IsSelect)
	require.Len(t, dept.Choices, 2)
	assert.False(t, dept.Choices[0].Selected)
	assert.True(t, dept.Choices[1].Selected)
}
