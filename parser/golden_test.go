package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/jinrudals/wake/cst"
	"github.com/jinrudals/wake/diagnostics"
	"github.com/jinrudals/wake/source"
	"github.com/stretchr/testify/require"
)

// interiorShape walks a tree in pre-order and renders the kind name of
// every interior node, one per line — the structural "shape" a golden
// fixture checks, deliberately excluding leaves so the fixture doesn't
// have to account for exactly which NL/EOF tokens the builder leaves
// loose between top-level forms.
func interiorShape(e cst.Element) string {
	var b strings.Builder
	walkInterior(&b, e)
	return b.String()
}

func walkInterior(b *strings.Builder, e cst.Element) {
	if e.Empty() || !e.IsNode() {
		return
	}
	fmt.Fprintln(b, e.ID())
	child := e.FirstChildElement()
	for !child.Empty() {
		walkInterior(b, child)
		child = child.NextSiblingElement(e)
	}
}

// Each fixture bundles one source file with its expected interior-node
// shape, the way the teacher's own `tools`-dependency corpus stores
// multi-file test data as a single text archive instead of a pair of
// loose files.
var goldenFixtures = []string{
	`-- source.wake --
def x = 1
-- want.shape --
Top
Def
ID
Literal
`,
	`-- source.wake --
package p

export def f x = x
-- want.shape --
Top
Package
FlagExport
Def
App
ID
ID
ID
`,
}

func TestGoldenCSTShapes(t *testing.T) {
	for i, raw := range goldenFixtures {
		raw := raw
		t.Run(fmt.Sprintf("fixture_%d", i), func(t *testing.T) {
			arc := txtar.Parse([]byte(raw))
			var src, want string
			for _, f := range arc.Files {
				switch f.Name {
				case "source.wake":
					src = string(f.Data)
				case "want.shape":
					want = string(f.Data)
				}
			}
			require.NotEmpty(t, src)

			file, err := source.FromString("source.wake", src)
			require.NoError(t, err)
			diags := diagnostics.NewSink()
			tree := New(file, diags).Parse()
			require.False(t, diags.HasSeverity(diagnostics.ERROR))

			got := interiorShape(tree.Root())
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("CST shape mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
