package resource

import "time"

type Kind uint8

const (
	Text Kind = iota
	Integer
	Decimal
)

// Field describes one editable column. Name is the column name and the form
// key; the id column is implicit and never editable.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Unique      bool
	Email       bool
	NonNegative bool
	Options     []string // closed set of accepted values, when set
	Summary     bool     // shown in the list view
	Default     func(now time.Time) string
}

// Descriptor parametrizes a Manager for one table.
type Descriptor struct {
	Table   string
	Entity  string // singular, used in messages ("product")
	Title   string // list heading ("Products")
	OrderBy string // trusted SQL ordering clause
	Fields  []Field
}

func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (d *Descriptor) SummaryFields() []Field {
	out := make([]Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Summary {
			out = append(out, f)
		}
	}
	return out
}

// Columns returns the list headings, id first.
func (d *Descriptor) Columns() []string {
	cols := []string{"ID"}
	for _, f := range d.SummaryFields() {
		cols = append(cols, f.Label)
	}
	return cols
}

// Defaults builds the empty form a create starts from.
func (d *Descriptor) Defaults(now time.Time) Form {
	form := Form{}
	for _, f := range d.Fields {
		if f.Default != nil {
			form[f.Name] = f.Default(now)
		} else {
			form[f.Name] = ""
		}
	}
	return form
}

// Common defaults.
func Today(now time.Time) string     { return now.Format("2006-01-02") }
func Timestamp(now time.Time) string { return now.Format("2006-01-02 15:04:05") }

func Const(v string) func(time.Time) string {
	return func(time.Time) string { return v }
}
