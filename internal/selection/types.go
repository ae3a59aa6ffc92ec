package selection

import (
	"errors"
	"io"
	"strings"
)

// ErrNoColumnsSelected is returned when the operator confirms an empty
// selection or cancels the prompt. It is not a failure: the run ends
// without writing anything.
var ErrNoColumnsSelected = errors.New("no columns selected")

// Preselect decides which columns start out checked.
type Preselect int

const (
	PreselectNone Preselect = iota
	PreselectAll
)

// DefaultPreselect is the pre-check policy of the column prompt: nothing is
// checked until the operator toggles it.
const DefaultPreselect = PreselectNone

// Selection is the set of chosen column names, always in source column
// order.
type Selection []string

func (s Selection) String() string {
	return strings.Join(s, ", ")
}

// Contains reports whether name is selected.
func (s Selection) Contains(name string) bool {
	for _, c := range s {
		if c == name {
			return true
		}
	}
	return false
}

// Options configures Prompt.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	PageSize  int // 0 fits the list to the terminal height
	AltScreen bool
	Preselect Preselect
}

// FromChecked builds a Selection from columns and a parallel checked slice,
// keeping column order.
func FromChecked(columns []string, checked []bool) Selection {
	var sel Selection
	for i, c := range columns {
		if i < len(checked) && checked[i] {
			sel = append(sel, c)
		}
	}
	return sel
}
