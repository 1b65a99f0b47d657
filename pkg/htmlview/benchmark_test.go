package htmlview_test

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/yaklabco/gomdview/pkg/builtin"
	"github.com/yaklabco/gomdview/pkg/htmlview"
)

const benchDoc = `# Guide

Some *emphasis*, a [link](https://example.com) and ` + "`code`" + `.

<Callout kind="note">
Remember **this**.
</Callout>

- one
- two
- [x] done

<Counter initial="3"/>
`

func BenchmarkRender(b *testing.B) {
	host := htmlview.NewHost(htmlview.Config{Options: plainOptions()})
	host.SetComponents(builtin.Registry[*html.Node, *htmlview.Event](host))
	src := []byte(strings.Repeat(benchDoc, 20))

	b.ResetTimer()
	for range b.N {
		if _, err := host.Render(context.Background(), src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAddHeadingIDs(b *testing.B) {
	host := htmlview.NewHost(htmlview.Config{Options: plainOptions()})
	src := []byte(strings.Repeat("## Section\n\ntext\n\n", 200))

	b.ResetTimer()
	for range b.N {
		b.StopTimer()
		root, err := host.Render(context.Background(), src)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		htmlview.AddHeadingIDs(root)
	}
}
