package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError carries field-level detail for a rejected request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a body field error.
func (e *ValidationError) Add(field, msg, typ string) {
	e.Fields = append(e.Fields, FieldError{Loc: []string{"body", field}, Msg: msg, Type: typ})
}

// AddQuery appends a query parameter error.
func (e *ValidationError) AddQuery(param, msg, typ string) {
	e.Fields = append(e.Fields, FieldError{Loc: []string{"query", param}, Msg: msg, Type: typ})
}

// OrNil returns e when it holds at least one field error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Missing builds a ValidationError for a single required field.
func Missing(field string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, "Field required", "missing")
	return v
}

// FromBinding converts a gin/validator binding error into a ValidationError.
// Malformed JSON becomes a single body-level error.
func FromBinding(err error) *ValidationError {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := &ValidationError{}
		for _, fe := range ve {
			field := jsonName(fe)
			switch fe.Tag() {
			case "required":
				out.Add(field, "Field required", "missing")
			case "max":
				out.Add(field, fmt.Sprintf("String should have at most %s characters", fe.Param()), "string_too_long")
			case "min":
				out.Add(field, fmt.Sprintf("Value should be at least %s", fe.Param()), "too_short")
			case "gte":
				out.Add(field, fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()), "greater_than_equal")
			default:
				out.Add(field, "Invalid value", fe.Tag())
			}
		}
		return out
	}
	return &ValidationError{Fields: []FieldError{{
		Loc:  []string{"body"},
		Msg:  "Invalid JSON body",
		Type: "json_invalid",
	}}}
}

func jsonName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "body"
	}
	return strings.ToLower(name[:1]) + toSnake(name[1:])
}

func toSnake(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
