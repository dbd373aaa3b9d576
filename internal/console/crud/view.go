package crud

import "strconv"

// Notice levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notice is a one-shot message shown on the next render.
type Notice struct {
	Level string
	Text  string
}

// Cell is one table cell. Slot cells carry two lines, course over teacher.
type Cell struct {
	Lines []string
	Class string
}

// TextCell is a single line cell.
func TextCell(text string) Cell { return Cell{Lines: []string{text}} }

// Link is a row action. Post links render as a form button.
type Link struct {
	Label string
	Href  string
	Post  bool
}

type Row struct {
	ID    int64
	Cells []Cell
	Links []Link
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Checked     bool
	Required    bool
	Placeholder string
	Options     []Option
	Error       string
}

type Dialog struct {
	Title       string
	Action      string
	CloseAction string
	SubmitLabel string
	Fields      []Field
}

type Confirm struct {
	Message       string
	ConfirmAction string
	CancelAction  string
}

// Table is everything an entity page template needs.
type Table struct {
	Title       string
	BasePath    string
	CreateLabel string
	Columns     []string
	Rows        []Row
	Dialog      *Dialog
	Confirm     *Confirm
}

func TextField(name, label, value string, required bool) Field {
	return Field{Name: name, Label: label, Type: "text", Value: value, Required: required}
}

func NumberField(name, label string, value int, required bool) Field {
	return Field{Name: name, Label: label, Type: "number", Value: strconv.Itoa(value), Required: required}
}

func SelectField(name, label, value, placeholder string, options []Option, required bool) Field {
	marked := make([]Option, len(options))
	for i, o := range options {
		o.Selected = o.Value == value
		marked[i] = o
	}
	return Field{Name: name, Label: label, Type: "select", Value: value, Placeholder: placeholder, Options: marked, Required: required}
}

func CheckboxField(name, label string, checked bool) Field {
	return Field{Name: name, Label: label, Type: "checkbox", Value: "true", Checked: checked}
}

// IDOption builds a select option for an entity id.
func IDOption(id int64, label string) Option {
	return Option{Value: strconv.FormatInt(id, 10), Label: label}
}
