package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdview/internal/logging"
	"github.com/yaklabco/gomdview/pkg/builtin"
	"github.com/yaklabco/gomdview/pkg/config"
	"github.com/yaklabco/gomdview/pkg/fsutil"
	"github.com/yaklabco/gomdview/pkg/highlight"
	"github.com/yaklabco/gomdview/pkg/htmlview"
	"github.com/yaklabco/gomdview/pkg/runner"
	"github.com/yaklabco/gomdview/pkg/termview"
)

// ErrInvalidFrontmatter is returned in validate mode for frontmatter that
// is not a YAML mapping.
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

// renderSettings is everything a renderer needs besides the source.
type renderSettings struct {
	cfg   *config.Config
	width int

	// color enables ANSI styling of terminal output.
	color bool
	out   io.Writer
}

// newRendererFactory returns the runner factory for the configured format.
// A fresh host is created per document so captured frontmatter, resources
// and traces never leak between files.
func newRendererFactory(settings renderSettings) runner.Factory {
	return func() (runner.Renderer, error) {
		if settings.cfg.Format == config.FormatTerm {
			return runner.RendererFunc(settings.renderTerm), nil
		}
		return runner.RendererFunc(settings.renderHTML), nil
	}
}

func (s renderSettings) renderTerm(ctx context.Context, src *fsutil.Source) (*runner.Output, error) {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.Ascii)
	if s.color && s.out != nil {
		lr = lipgloss.NewRenderer(s.out)
	}

	term := termview.New(termview.Config{
		Options:  s.cfg.RenderingOptions(),
		Width:    s.width,
		Renderer: lr,
	})
	term.SetComponents(builtin.Registry[*termview.Node, *termview.Event](term))

	text, err := term.RenderString(ctx, src.Content)
	if err != nil {
		return nil, err
	}

	fm, hasFM := term.Frontmatter()
	out := &runner.Output{Frontmatter: fm, HasFrontmatter: hasFM, Trace: term.Trace()}
	body, err := s.withFrontmatter(out, text+"\n")
	if err != nil {
		return nil, err
	}
	out.Content = []byte(body)
	return out, nil
}

func (s renderSettings) renderHTML(ctx context.Context, src *fsutil.Source) (*runner.Output, error) {
	host := htmlview.NewHost(htmlview.Config{Options: s.cfg.RenderingOptions()})
	host.SetComponents(builtin.Registry[*html.Node, *htmlview.Event](host))

	root, err := host.Render(ctx, src.Content)
	if err != nil {
		return nil, err
	}

	fm, hasFM := host.Frontmatter()
	out := &runner.Output{Frontmatter: fm, HasFrontmatter: hasFM, Trace: host.Trace()}

	toc := s.cfg.TOC && s.cfg.Format == config.FormatPage
	var headings []htmlview.Heading
	if s.cfg.HeadingIDs || toc {
		headings = htmlview.AddHeadingIDs(root)
	}

	if s.cfg.Select != "" {
		root, err = selectNodes(root, s.cfg.Select)
		if err != nil {
			return nil, err
		}
		logging.FromContext(ctx).Debug("selected nodes",
			logging.FieldSelector, s.cfg.Select,
			logging.FieldMatches, countChildren(root))
	}

	if toc && len(headings) > 0 {
		root.InsertBefore(htmlview.TableOfContents(headings), root.FirstChild)
	}

	if s.cfg.Format == config.FormatPage {
		root, err = s.page(root, host, src.Path)
		if err != nil {
			return nil, err
		}
	}

	serialized, err := htmlview.Serialize(root)
	if err != nil {
		return nil, err
	}
	body, err := s.withFrontmatter(out, serialized+"\n")
	if err != nil {
		return nil, err
	}
	out.Content = []byte(body)
	return out, nil
}

// selectNodes keeps only the nodes matching selector, detached into a new
// fragment in document order.
func selectNodes(root *html.Node, selector string) (*html.Node, error) {
	matches, err := htmlview.Select(root, selector)
	if err != nil {
		return nil, err
	}
	frag := htmlview.NewFragment()
	for _, n := range matches {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		frag.AppendChild(n)
	}
	return frag, nil
}

func countChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func (s renderSettings) page(body *html.Node, host *htmlview.Host, path string) (*html.Node, error) {
	opts := htmlview.PageOptions{
		Title:     pageTitle(body, path),
		Resources: host.Resources(),
	}

	hl := s.cfg.Highlight
	if !hl.Disabled && hl.Classes && hl.Stylesheet == "" {
		highlighter, err := highlight.New(s.cfg.RenderingOptions().Theme, true)
		if err != nil {
			return nil, err
		}
		css, err := highlighter.CSS()
		if err != nil {
			return nil, err
		}
		opts.CSS = css
	}

	return htmlview.Page(body, opts), nil
}

// pageTitle is the text of the first h1, or the file name without extension.
func pageTitle(body *html.Node, path string) string {
	if h1, err := htmlview.Select(body, "h1"); err == nil && len(h1) > 0 {
		if title := strings.TrimSpace(htmlview.TextContent(h1[0])); title != "" {
			return title
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// withFrontmatter applies the frontmatter mode to a rendered body.
func (s renderSettings) withFrontmatter(out *runner.Output, body string) (string, error) {
	if !out.HasFrontmatter {
		return body, nil
	}

	switch s.cfg.Frontmatter {
	case config.FrontmatterShow:
		block := "---\n" + out.Frontmatter + "---\n"
		if s.cfg.Format != config.FormatTerm {
			block = "<!--\n" + block + "-->\n"
		}
		return block + body, nil
	case config.FrontmatterValidate:
		if err := validateFrontmatter(out.Frontmatter); err != nil {
			return "", err
		}
	}
	return body, nil
}

// validateFrontmatter checks that text is empty or a YAML mapping.
func validateFrontmatter(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var node yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&node); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFrontmatter, err)
	}
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a mapping", ErrInvalidFrontmatter)
	}
	return nil
}
