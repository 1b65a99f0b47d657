// Package builtin provides the components available to every document:
// Counter, box and Callout. They are written against view.RenderContext and
// therefore work with any render target.
package builtin

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/view"
)

// Component names.
const (
	NameCounter = "Counter"
	NameBox     = "box"
	NameCallout = "Callout"
)

// CalloutKinds are the accepted values of the Callout "kind" attribute.
var CalloutKinds = []string{"note", "tip", "important", "warning", "caution"} //nolint:gochecknoglobals // read-only

var errCalloutKind = fmt.Errorf("must be one of %s", strings.Join(CalloutKinds, ", "))

// Registry returns a registry holding every built-in component, rendering
// through rc. Extra entries are added after the built-ins and can replace them.
func Registry[V, E any](rc view.RenderContext[V, E], extra ...component.Entry[V]) *component.Registry[V] {
	entries := []component.Entry[V]{
		component.NewEntry(NameCounter, Counter(rc)),
		component.NewEntry(NameBox, Box(rc)),
		component.NewEntry(NameCallout, Callout(rc)),
	}
	return component.NewRegistry(append(entries, extra...)...)
}

// Counter renders a counter initialised from the optional integer attribute
// "initial" (default 0). Its buttons report clicks at the tag's source range.
func Counter[V, E any](rc view.RenderContext[V, E]) component.Func[V] {
	return func(props component.Props[V]) (V, error) {
		initial, err := component.OptionalOr(props.Attrs, "initial", 0)
		if err != nil {
			var zero V
			return zero, err
		}

		button := func(label, class string) V {
			return rc.ElementWithAttributes(view.Span{}, rc.Text(label), view.ElementAttributes[E]{
				Classes: []string{"counter-button", class},
				OnClick: rc.MakeHandler(props.Range, true),
			})
		}
		value := rc.ElementWithAttributes(view.Span{}, rc.Text(strconv.Itoa(initial)), view.ElementAttributes[E]{
			Classes: []string{"counter-value"},
		})

		return rc.ElementWithAttributes(view.Div{},
			rc.Fragment([]V{button("-", "counter-decrement"), value, button("+", "counter-increment")}),
			view.ElementAttributes[E]{Classes: []string{"counter"}},
		), nil
	}
}

// Box renders its children inside a blue-bordered container.
func Box[V, E any](rc view.RenderContext[V, E]) component.Func[V] {
	return func(props component.Props[V]) (V, error) {
		return rc.ElementWithAttributes(view.Div{}, props.Children, view.ElementAttributes[E]{
			Classes: []string{"box"},
			Style:   "border: 2px solid blue",
		}), nil
	}
}

// Callout renders an admonition. "kind" is required and must be one of
// CalloutKinds; "title" defaults to the capitalised kind.
func Callout[V, E any](rc view.RenderContext[V, E]) component.Func[V] {
	return func(props component.Props[V]) (V, error) {
		var zero V

		kind, err := component.Required[string](props.Attrs, "kind")
		if err != nil {
			return zero, err
		}
		kind = strings.ToLower(kind)
		if !slices.Contains(CalloutKinds, kind) {
			return zero, component.AttributeParse("kind", kind, errCalloutKind)
		}

		title, err := component.OptionalOr(props.Attrs, "title", strings.ToUpper(kind[:1])+kind[1:])
		if err != nil {
			return zero, err
		}

		heading := rc.ElementWithAttributes(view.Paragraph{},
			rc.ElementWithAttributes(view.Bold{}, rc.Text(title), view.ElementAttributes[E]{}),
			view.ElementAttributes[E]{
				Classes: []string{"callout-title"},
				OnClick: rc.MakeHandler(props.Range, true),
			})

		return rc.ElementWithAttributes(view.Div{},
			rc.Fragment([]V{heading, props.Children}),
			view.ElementAttributes[E]{Classes: []string{"callout", "callout-" + kind}},
		), nil
	}
}

// AttributeInfo documents one component attribute.
type AttributeInfo struct {
	Name     string
	Type     string
	Required bool
	Default  string
}

// Info documents a built-in component.
type Info struct {
	Name        string
	Summary     string
	SelfClosing bool
	Attributes  []AttributeInfo
}

// Catalog describes the built-in components in name order.
func Catalog() []Info {
	return []Info{
		{
			Name:        NameCallout,
			Summary:     "Admonition block with a title line",
			SelfClosing: false,
			Attributes: []AttributeInfo{
				{Name: "kind", Type: "string", Required: true},
				{Name: "title", Type: "string", Default: "capitalised kind"},
			},
		},
		{
			Name:        NameCounter,
			Summary:     "Counter with decrement and increment buttons",
			SelfClosing: true,
			Attributes: []AttributeInfo{
				{Name: "initial", Type: "int", Default: "0"},
			},
		},
		{
			Name:    NameBox,
			Summary: "Blue-bordered container for its children",
		},
	}
}

// IsCalloutKindError reports whether err is a rejected Callout kind.
func IsCalloutKindError(err error) bool {
	return errors.Is(err, errCalloutKind)
}
