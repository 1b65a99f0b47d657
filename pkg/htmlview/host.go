// Package htmlview renders markdown into golang.org/x/net/html node trees.
//
// A Host holds the render configuration and the live host state a render
// pass talks to: the click callback, the frontmatter sink, mounted resources
// and the debug trace. Host implements view.RenderContext and is safe for
// concurrent use; render passes themselves are synchronous.
package htmlview

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/net/html"

	"github.com/yaklabco/gomdview/pkg/component"
	"github.com/yaklabco/gomdview/pkg/markdown"
	"github.com/yaklabco/gomdview/pkg/view"
)

// Registry is a component registry producing HTML nodes.
type Registry = component.Registry[*html.Node]

// LinkFunc renders a link or image in place of the default <a>/<img>.
type LinkFunc func(link view.LinkDescription[*html.Node]) (*html.Node, error)

// LinkOverride wraps a LinkFunc so configurations can compare it by identity.
type LinkOverride struct {
	render LinkFunc
}

// NewLinkOverride returns a shareable link override.
func NewLinkOverride(fn LinkFunc) *LinkOverride {
	return &LinkOverride{render: fn}
}

// Config is the source-independent render configuration of a Host.
type Config struct {
	Options      view.Options
	Components   *Registry
	LinkOverride *LinkOverride
}

// Equal reports whether two configurations would render identically:
// options by value, components and link override by identity.
func (c Config) Equal(other Config) bool {
	return c.Options == other.Options &&
		c.Components.Equal(other.Components) &&
		c.LinkOverride == other.LinkOverride
}

// Resource is a mounted external resource.
type Resource struct {
	Rel         string
	Href        string
	Integrity   string
	CrossOrigin string
}

// ClickFunc receives attributed click events.
type ClickFunc func(event view.MouseEvent[*Event])

// Host is the HTML render target.
type Host struct {
	mu sync.RWMutex

	config         Config
	onClick        ClickFunc
	frontmatter    string
	hasFrontmatter bool
	resources      []Resource
	trace          []string
	traceUpdates   int

	// handlers maps interactive nodes of the latest pass to their handlers.
	handlers map[*html.Node]view.Handler[*Event]
}

var _ view.RenderContext[*html.Node, *Event] = (*Host)(nil)

// NewHost returns a host with the given configuration.
func NewHost(config Config) *Host {
	return &Host{
		config:   config,
		handlers: make(map[*html.Node]view.Handler[*Event]),
	}
}

// Config returns the current configuration.
func (h *Host) Config() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.config
}

// SetConfig replaces the configuration and reports whether it changed.
func (h *Host) SetConfig(config Config) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.config.Equal(config) {
		return false
	}
	h.config = config
	return true
}

// SetComponents replaces the component registry.
func (h *Host) SetComponents(reg *Registry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config.Components = reg
}

// SetLinkOverride replaces the link override. Nil restores default links.
func (h *Host) SetLinkOverride(override *LinkOverride) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config.LinkOverride = override
}

// SetOnClick replaces the click callback. Handlers created by earlier passes
// report to the new callback.
func (h *Host) SetOnClick(fn ClickFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClick = fn
}

// Frontmatter returns the frontmatter captured by the latest pass.
func (h *Host) Frontmatter() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frontmatter, h.hasFrontmatter
}

// Resources returns the mounted resources in mount order.
func (h *Host) Resources() []Resource {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.resources)
}

// Trace returns the trace of the latest debug pass.
func (h *Host) Trace() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.trace)
}

// TraceUpdates counts how often the stored trace actually changed.
func (h *Host) TraceUpdates() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.traceUpdates
}

// Render renders source into a fragment node whose children are the
// top-level blocks.
//
// Each pass starts with no handlers and no frontmatter. A failed pass leaves
// no handlers behind.
func (h *Host) Render(ctx context.Context, source []byte) (*html.Node, error) {
	h.resetPass()

	root, err := markdown.Render[*html.Node, *Event](ctx, h, source)
	if err != nil {
		h.mu.Lock()
		clear(h.handlers)
		h.mu.Unlock()
		return nil, err
	}
	return root, nil
}

func (h *Host) resetPass() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = make(map[*html.Node]view.Handler[*Event])
	h.frontmatter, h.hasFrontmatter = "", false
}

// RenderString renders source and serializes the result.
func (h *Host) RenderString(ctx context.Context, source []byte) (string, error) {
	root, err := h.Render(ctx, source)
	if err != nil {
		return "", err
	}
	return Serialize(root)
}

// Serialize writes node, or the children of a fragment, as HTML.
func Serialize(node *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return "", fmt.Errorf("serialize html: %w", err)
	}
	return buf.String(), nil
}

func (h *Host) currentOnClick() func(view.MouseEvent[*Event]) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.onClick == nil {
		return nil
	}
	return h.onClick
}
