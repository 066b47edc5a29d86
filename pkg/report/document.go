// Package report renders collection assertion failures position by
// position as YAML, JSON or Markdown.
package report

import (
	"fmt"

	"digital.vasic.iterables/pkg/assertion"
	"digital.vasic.iterables/pkg/logging"
)

// Position statuses.
const (
	StatusPassed     = "passed"
	StatusFailed     = "failed"
	StatusNotReached = "not reached"
)

// Document is the renderable form of a CollectionError.
type Document struct {
	Message   string           `yaml:"message" json:"message"`
	Passed    int              `yaml:"passed" json:"passed"`
	Total     int              `yaml:"total" json:"total"`
	Mismatch  *MismatchSummary `yaml:"mismatch,omitempty" json:"mismatch,omitempty"`
	Positions []Position       `yaml:"positions" json:"positions"`
}

// MismatchSummary mirrors assertion.Mismatch with readable names.
type MismatchSummary struct {
	Error     string `yaml:"error" json:"error"`
	Produced  int    `yaml:"produced" json:"produced"`
	Requested int    `yaml:"requested" json:"requested"`
}

// Position describes one expectation and what happened to it.
// Values are rendered with %v and truncated.
type Position struct {
	Index    int    `yaml:"index" json:"index"`
	Status   string `yaml:"status" json:"status"`
	Expected string `yaml:"expected" json:"expected"`
	Actual   string `yaml:"actual,omitempty" json:"actual,omitempty"`
	Value    string `yaml:"value,omitempty" json:"value,omitempty"`
	Error    string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Build converts a failure into a Document. maxValueLength bounds
// rendered values; non-positive selects
// logging.DefaultMaxValueLength.
func Build(err *assertion.CollectionError, maxValueLength int) Document {
	if maxValueLength <= 0 {
		maxValueLength = logging.DefaultMaxValueLength
	}
	render := func(v any) string {
		return logging.Truncate(v, maxValueLength)
	}

	doc := Document{
		Message:   err.Error(),
		Passed:    err.PassedCount(),
		Total:     len(err.Passed),
		Positions: make([]Position, 0, len(err.Outcomes)),
	}

	if m := err.Mismatch; m != nil && m.Kind != assertion.MismatchNone {
		doc.Mismatch = &MismatchSummary{
			Error:     m.Kind.String(),
			Produced:  m.Produced,
			Requested: m.Requested,
		}
	}

	for i, o := range err.Outcomes {
		p := Position{
			Index:    i,
			Status:   status(o),
			Expected: o.Expectation.String(),
		}
		if o.Evaluated {
			p.Actual = render(o.Actual)
		}
		if _, isCmp := o.Detail.(assertion.Comparison); !isCmp &&
			o.Detail != nil {
			p.Value = render(o.Detail)
		}
		if o.Err != nil {
			p.Error = render(o.Err.Error())
		}
		doc.Positions = append(doc.Positions, p)
	}

	return doc
}

func status(o assertion.Outcome) string {
	switch {
	case !o.Evaluated:
		return StatusNotReached
	case o.Passed:
		return StatusPassed
	default:
		return StatusFailed
	}
}

// Summary returns "passed/total" for the document.
func (d Document) Summary() string {
	return fmt.Sprintf("%d/%d", d.Passed, d.Total)
}
