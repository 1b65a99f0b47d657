package goldmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/gomdview/pkg/mdast"
)

// FuzzParse fuzzes the full parser with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list\n- items",
		"```\ncode\n```",
		"*emphasis* and **strong**",
		"[link](url) and ![image](src)",
		"- [x] task\n\n| a |\n|---|\n| 1 |",
		"<Counter initial=\"5\"/>\n\n<box>\n\n**x**\n\n</box>",
		"a <B>b</B> [[w|x]] <C",
		"---\nk: v\n---\n> <Q>\n> x\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p := New(FlavorGFM, WithWikilinks(true), WithTypographer(true))

		// Parse should never panic.
		snapshot, err := p.Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			return
		}

		if !bytes.Equal(snapshot.Content, data) {
			t.Error("content mismatch")
		}

		if snapshot.Root == nil || snapshot.Root.Kind != mdast.NodeDocument {
			t.Fatal("expected document root")
		}

		err = mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
			if n.File != snapshot {
				t.Error("node has incorrect File reference")
			}
			if !n.Range.Within(len(data)) {
				t.Errorf("%s range %s out of bounds", n.Kind, n.Range)
			}
			return nil
		})
		if err != nil {
			t.Errorf("walk error: %v", err)
		}
	})
}
