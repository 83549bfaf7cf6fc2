// Package form implements the validated, step-by-step form flows behind the
// registration wizard and the project submission form.
//
// A form is described by data (Steps made of Field descriptors) and driven
// by a Wizard, which owns the current values, the per-field errors and the
// Idle → Validating → Submitting state machine. A single-step form is
// simply a Wizard with one Step.
package form

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tags how a field is entered. It is the only thing that changes how
// a value is checked beyond Required and Rules.
type Kind int

const (
	// Text is a single-line input.
	Text Kind = iota
	// Email is a single-line input checked against the address pattern.
	Email
	// TextArea is a multi-line input.
	TextArea
	// Select only accepts one of the field's Choices.
	Select
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Email:
		return "email"
	case TextArea:
		return "textarea"
	case Select:
		return "select"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Choice is one entry of a Select field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one input.
//
// Rules is a validator tag expression applied only to non-empty values, so
// an optional field can still be pattern-checked. Message replaces the
// default text shown when Rules (or the Kind check) fail.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Kind        Kind     `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Choices     []Choice `json:"options,omitempty"`
	Rules       string   `json:"-"`
	Message     string   `json:"-"`
}

// Step is one page of a form.
type Step struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Check returns the error message for value, or "" when value is
// acceptable. Whitespace alone does not satisfy Required. Only the empty
// string skips the Kind and Rules checks, so "   " in an optional field is
// still pattern-checked.
func (f Field) Check(value string) string {
	if f.Required && strings.TrimSpace(value) == "" {
		return f.Label + " is required"
	}
	if value == "" {
		return ""
	}

	switch f.Kind {
	case Email:
		if !Matches(value, "address") {
			return f.invalid("Please enter a valid email address")
		}
	case Select:
		if !f.hasChoice(value) {
			return f.invalid("Please select a valid " + strings.ToLower(f.Label))
		}
	case Text, TextArea:
	}

	if f.Rules != "" && !Matches(value, f.Rules) {
		return f.invalid("Please enter a valid " + strings.ToLower(f.Label))
	}

	return ""
}

func (f Field) invalid(fallback string) string {
	if f.Message != "" {
		return f.Message
	}
	return fallback
}

func (f Field) hasChoice(value string) bool {
	for _, c := range f.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
