package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.iterables/pkg/assertion"
)

// Reporter renders collection failures.
type Reporter interface {
	// Generate renders err.
	Generate(err *assertion.CollectionError) ([]byte, error)

	// Write renders err to w.
	Write(w io.Writer, err *assertion.CollectionError) error
}

var errNilFailure = errors.New("report: nil collection error")

// YAMLReporter renders failures as YAML documents.
type YAMLReporter struct {
	maxValueLength int
}

// NewYAMLReporter creates a YAML reporter.
func NewYAMLReporter(maxValueLength int) *YAMLReporter {
	return &YAMLReporter{maxValueLength: maxValueLength}
}

// Generate renders err as YAML.
func (r *YAMLReporter) Generate(
	err *assertion.CollectionError,
) ([]byte, error) {
	if err == nil {
		return nil, errNilFailure
	}
	return yaml.Marshal(Build(err, r.maxValueLength))
}

// Write renders err to w.
func (r *YAMLReporter) Write(
	w io.Writer, err *assertion.CollectionError,
) error {
	return write(r, w, err)
}

// JSONReporter renders failures as JSON.
type JSONReporter struct {
	maxValueLength int
	pretty         bool
}

// NewJSONReporter creates a JSON reporter. When pretty is true,
// output is indented for readability.
func NewJSONReporter(maxValueLength int, pretty bool) *JSONReporter {
	return &JSONReporter{maxValueLength: maxValueLength, pretty: pretty}
}

// Generate renders err as JSON.
func (r *JSONReporter) Generate(
	err *assertion.CollectionError,
) ([]byte, error) {
	if err == nil {
		return nil, errNilFailure
	}
	doc := Build(err, r.maxValueLength)
	if r.pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// Write renders err to w.
func (r *JSONReporter) Write(
	w io.Writer, err *assertion.CollectionError,
) error {
	return write(r, w, err)
}

// MarkdownReporter renders failures as a Markdown table, which
// reads well in `go test` output and CI summaries.
type MarkdownReporter struct {
	maxValueLength int
}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter(maxValueLength int) *MarkdownReporter {
	return &MarkdownReporter{maxValueLength: maxValueLength}
}

// Generate renders err as Markdown.
func (r *MarkdownReporter) Generate(
	err *assertion.CollectionError,
) ([]byte, error) {
	if err == nil {
		return nil, errNilFailure
	}
	return []byte(markdown(Build(err, r.maxValueLength))), nil
}

// Write renders err to w.
func (r *MarkdownReporter) Write(
	w io.Writer, err *assertion.CollectionError,
) error {
	return write(r, w, err)
}

func write(
	r Reporter, w io.Writer, err *assertion.CollectionError,
) error {
	data, genErr := r.Generate(err)
	if genErr != nil {
		return genErr
	}
	if _, wErr := w.Write(data); wErr != nil {
		return fmt.Errorf("failed to write report: %w", wErr)
	}
	return nil
}

func markdown(doc Document) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("**%s** (%s passed)\n\n",
		doc.Message, doc.Summary()))

	if m := doc.Mismatch; m != nil {
		sb.WriteString(fmt.Sprintf(
			"Structural mismatch: %s (produced %d, requested %d)\n\n",
			m.Error, m.Produced, m.Requested,
		))
	}

	sb.WriteString("| # | Status | Expected | Actual | Detail |\n")
	sb.WriteString("|---|--------|----------|--------|--------|\n")

	for _, p := range doc.Positions {
		detail := p.Value
		if p.Error != "" {
			detail = p.Error
		}
		sb.WriteString(fmt.Sprintf(
			"| %d | %s | %s | %s | %s |\n",
			p.Index, strings.ToUpper(p.Status),
			cell(p.Expected), cell(p.Actual), cell(detail),
		))
	}

	return sb.String()
}

// cell escapes characters that would break a table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Describe renders err as Markdown when it is a CollectionError and
// returns "" otherwise.
func Describe(err error, maxValueLength int) string {
	var ce *assertion.CollectionError
	if !errors.As(err, &ce) {
		return ""
	}
	return markdown(Build(ce, maxValueLength))
}
