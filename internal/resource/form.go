package resource

import "strconv"

// IDKey is the form key holding the row id. An empty id means "create".
const IDKey = "id"

// Form holds the detail form as the user typed it.
type Form map[string]string

func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// ID parses the id entry; ok is false when the entry is empty.
func (f Form) ID() (id int64, ok bool, err error) {
	raw := f[IDKey]
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	return id, err == nil, err
}

type Mode uint8

const (
	Empty Mode = iota
	Viewing
	Editing
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "empty"
	}
}

// FormState is the detail form state machine: Empty, Viewing(id) or
// Editing(id or none). ID is zero when no row is bound.
type FormState struct {
	Mode   Mode
	ID     int64
	Values Form
}

type Summary struct {
	ID     int64
	Values []string // display values in Descriptor.Columns order, id first
}

type Match struct {
	Summary
	Match bool
}

// Confirm is the yes/no gate asked before a delete.
type Confirm func(prompt string) bool
