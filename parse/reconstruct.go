package parse

import (
	"strings"

	"github.com/tamut/tamut/ast"
)

// Reconstruct walks root and re-emits TChecker system-declaration
// source text. Reconstructing an un-mutated AST yields text
// syntactically equivalent to the original input (spec.md §8 invariant
// 1); every mutation operator's output is expected to round-trip
// through Reconstruct the same way.
func Reconstruct(root *ast.Node) string {
	var b strings.Builder
	writeNode(&b, root, true)
	return b.String()
}

// topLevelDecls is the set of kinds that start a new line when they
// appear as a child of system_declaration.
var topLevelDecls = map[ast.Kind]bool{
	ast.KindProcessDecl:  true,
	ast.KindEventDecl:    true,
	ast.KindClockDecl:    true,
	ast.KindIntDecl:      true,
	ast.KindLocationDecl: true,
	ast.KindEdgeDecl:     true,
	ast.KindSyncDecl:     true,
}

func writeNode(b *strings.Builder, n *ast.Node, topLevel bool) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		b.WriteString(n.Text)
		return
	}

	switch n.Rule {
	case ast.KindSystemDecl:
		for i, c := range n.Children {
			if i > 0 && topLevelDecls[c.Rule] {
				b.WriteByte('\n')
			}
			writeNode(b, c, true)
		}
	case ast.KindAttributes:
		writeJoined(b, n.Children, "")
	default:
		writeJoined(b, n.Children, "")
	}
}

func writeJoined(b *strings.Builder, children []*ast.Node, sep string) {
	for i, c := range children {
		if i > 0 && sep != "" {
			b.WriteString(sep)
		}
		writeNode(b, c, false)
	}
}
