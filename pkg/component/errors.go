package component

import (
	"errors"
	"fmt"
)

// Sentinel errors for component creation failures.
// Use errors.Is to classify a *CreationError.
var (
	// ErrMissingAttribute indicates a required attribute was absent.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrAttributeParse indicates an attribute value could not be parsed into the requested type.
	ErrAttributeParse = errors.New("invalid attribute value")

	// ErrUnknownComponent indicates a component tag whose name is not registered.
	ErrUnknownComponent = errors.New("unknown component")
)

// CreationError describes why a component could not be created.
type CreationError struct {
	// Kind is one of ErrMissingAttribute, ErrAttributeParse or ErrUnknownComponent.
	Kind error

	// Name is the attribute name, or the component name for ErrUnknownComponent.
	Name string

	// Value is the raw attribute value for ErrAttributeParse.
	Value string

	// Err is the underlying parse error, if any.
	Err error
}

// MissingAttribute returns a CreationError for an absent required attribute.
func MissingAttribute(name string) *CreationError {
	return &CreationError{Kind: ErrMissingAttribute, Name: name}
}

// AttributeParse returns a CreationError for a malformed attribute value.
func AttributeParse(name, value string, err error) *CreationError {
	return &CreationError{Kind: ErrAttributeParse, Name: name, Value: value, Err: err}
}

// UnknownComponent returns a CreationError for an unregistered component name.
func UnknownComponent(name string) *CreationError {
	return &CreationError{Kind: ErrUnknownComponent, Name: name}
}

func (e *CreationError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrMissingAttribute):
		return fmt.Sprintf("missing required attribute %q", e.Name)
	case errors.Is(e.Kind, ErrAttributeParse):
		if e.Err != nil {
			return fmt.Sprintf("invalid value %q for attribute %q: %v", e.Value, e.Name, e.Err)
		}
		return fmt.Sprintf("invalid value %q for attribute %q", e.Value, e.Name)
	case errors.Is(e.Kind, ErrUnknownComponent):
		return fmt.Sprintf("unknown component %q", e.Name)
	default:
		return fmt.Sprintf("component creation failed: %s", e.Name)
	}
}

// Is reports whether target is the error's Kind.
func (e *CreationError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Unwrap returns the underlying parse error.
func (e *CreationError) Unwrap() error {
	return e.Err
}
