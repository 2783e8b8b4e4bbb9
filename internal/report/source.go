package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Kind string

const (
	KindTaskCompletion Kind = "task-completion"
	KindTeamSummary    Kind = "team-summary"
	KindLoggedTime     Kind = "logged-time"
)

// Kinds lists every supported report kind in display order.
func Kinds() []Kind {
	return []Kind{KindTaskCompletion, KindTeamSummary, KindLoggedTime}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown report type '%s'", ErrValidation, s)
}

// DisplayName turns "task-completion" into "Task Completion".
func (k Kind) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(k), "-", " "))
}

// RawRecord is one loosely shaped input row. Keys may be missing.
type RawRecord map[string]string

type Field struct {
	Name  string
	Value string
}

// MappedRecord holds exactly the fields a layout asks for, in column order.
type MappedRecord []Field

func (r MappedRecord) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (r MappedRecord) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Request is a single report job as read from the caller.
type Request struct {
	Kind      Kind
	Filename  string
	Title     string
	TimeFrame string
	Variant   string
	Records   []RawRecord
}
