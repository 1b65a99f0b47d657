package component

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

// Attribute is a raw name/value pair taken from a component tag.
type Attribute = mdast.Attribute

// Attrs holds a tag's attributes in source order. Duplicates are kept.
type Attrs []Attribute

// Get returns the value of the first attribute called name.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether an attribute called name is present.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Names returns attribute names in source order.
func (a Attrs) Names() []string {
	names := make([]string, len(a))
	for i, attr := range a {
		names[i] = attr.Name
	}
	return names
}

// Props is everything a component function receives for one tag occurrence.
type Props[V any] struct {
	// Name is the tag name as written in the source.
	Name string

	// Attrs are the tag's attributes in source order.
	Attrs Attrs

	// Children is the already-rendered content between the open and close tags.
	// Self-closing tags receive an empty fragment.
	Children V

	// SelfClosing is true for <Name/> occurrences.
	SelfClosing bool

	// Range is the byte span of the whole occurrence, tags included.
	Range mdast.SourceRange
}

// Value is the set of types an attribute can be parsed into.
type Value interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Required parses the attribute called name into T.
// It fails with ErrMissingAttribute when absent and ErrAttributeParse when malformed.
func Required[T Value](attrs Attrs, name string) (T, error) {
	raw, ok := attrs.Get(name)
	if !ok {
		var zero T
		return zero, MissingAttribute(name)
	}
	return parseAttr[T](name, raw)
}

// Optional parses the attribute called name into T.
// An absent attribute yields (zero, false, nil); a malformed one is still an error.
func Optional[T Value](attrs Attrs, name string) (T, bool, error) {
	var zero T
	raw, ok := attrs.Get(name)
	if !ok {
		return zero, false, nil
	}
	value, err := parseAttr[T](name, raw)
	if err != nil {
		return zero, false, err
	}
	return value, true, nil
}

// OptionalOr is Optional with a fallback for absent attributes.
func OptionalOr[T Value](attrs Attrs, name string, def T) (T, error) {
	value, ok, err := Optional[T](attrs, name)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return value, nil
}

func parseAttr[T Value](name, raw string) (T, error) {
	var out T
	if err := parseInto(reflect.ValueOf(&out).Elem(), raw); err != nil {
		var zero T
		return zero, AttributeParse(name, raw, err)
	}
	return out, nil
}

// parseInto sets dst from raw using strconv with dst's bit size,
// so out-of-range literals are rejected rather than truncated.
func parseInto(dst reflect.Value, raw string) error {
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return unwrapNumError(err)
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, dst.Type().Bits())
		if err != nil {
			return unwrapNumError(err)
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, dst.Type().Bits())
		if err != nil {
			return unwrapNumError(err)
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, dst.Type().Bits())
		if err != nil {
			return unwrapNumError(err)
		}
		dst.SetFloat(f)
	default:
		return fmt.Errorf("unsupported attribute type %s", dst.Type())
	}
	return nil
}

// unwrapNumError strips strconv's "strconv.ParseInt: parsing ..." prefix;
// CreationError already reports the raw value.
func unwrapNumError(err error) error {
	if numErr, ok := err.(*strconv.NumError); ok { //nolint:errorlint // strconv returns the concrete type
		return numErr.Err
	}
	return err
}
