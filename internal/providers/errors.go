package providers

import (
	"errors"
	"fmt"
)

var (
	ErrMissingElement = errors.New("missing element")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUpstream       = errors.New("upstream failure")
)

// MissingElementError reports a required selector, attribute or payload
// field that was absent.
type MissingElementError struct {
	Kind string // selector, attribute, field
	Name string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("no %s found: `%s`", e.Kind, e.Name)
}

func (e *MissingElementError) Is(target error) bool { return target == ErrMissingElement }

func MissingSelector(selector string) error {
	return &MissingElementError{Kind: "element for selector", Name: selector}
}

func MissingAttr(attr string) error {
	return &MissingElementError{Kind: "attribute", Name: attr}
}

func MissingField(field string) error {
	return &MissingElementError{Kind: "field", Name: field}
}

// InvalidInputError reports a caller-supplied value the source cannot map:
// unknown filter ids, unknown enum values or unknown listings.
type InvalidInputError struct {
	What  string
	Value string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: `%s`", e.What, e.Value)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func InvalidInput(what, value string) error {
	return &InvalidInputError{What: what, Value: value}
}

// UpstreamError carries a failure the site reported in its payload.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return "upstream reported failure"
	}
	return e.Message
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
