package mutate

import "github.com/tamut/tamut/ast"

func processDecl(name string) *ast.Node {
	return ast.New(ast.KindProcessDecl, ast.Leaf(ast.TokKeyword, "process"), ast.Leaf(ast.TokColon, ":"), ast.NewID(name))
}

func eventDecl(name string) *ast.Node {
	return ast.New(ast.KindEventDecl, ast.Leaf(ast.TokKeyword, "event"), ast.Leaf(ast.TokColon, ":"), ast.NewID(name))
}

func clockDecl(size int, name string) *ast.Node {
	return ast.New(ast.KindClockDecl,
		ast.Leaf(ast.TokKeyword, "clock"), ast.Leaf(ast.TokColon, ":"), ast.NewIntLit(size), ast.Leaf(ast.TokColon, ":"), ast.NewID(name))
}

func locationDecl(proc, name string, attrs ...*ast.Node) *ast.Node {
	children := []*ast.Node{
		ast.Leaf(ast.TokKeyword, "location"), ast.Leaf(ast.TokColon, ":"), ast.NewID(proc), ast.Leaf(ast.TokColon, ":"), ast.NewID(name),
	}
	if len(attrs) > 0 {
		children = append(children, ast.NewAttributes(attrs...))
	}
	return ast.New(ast.KindLocationDecl, children...)
}

func edgeDecl(proc, src, dst, evt string, attrs ...*ast.Node) *ast.Node {
	children := []*ast.Node{
		ast.Leaf(ast.TokKeyword, "edge"), ast.Leaf(ast.TokColon, ":"), ast.NewID(proc), ast.Leaf(ast.TokColon, ":"),
		ast.NewID(src), ast.Leaf(ast.TokColon, ":"), ast.NewID(dst), ast.Leaf(ast.TokColon, ":"), ast.NewID(evt),
	}
	if len(attrs) > 0 {
		children = append(children, ast.NewAttributes(attrs...))
	}
	return ast.New(ast.KindEdgeDecl, children...)
}

func syncConstraint(proc, evt string, weak bool) *ast.Node {
	children := []*ast.Node{ast.NewID(proc), ast.Leaf(ast.TokAt, "@"), ast.NewID(evt)}
	if weak {
		children = append(children, ast.Leaf(ast.TokQuery, "?"))
	}
	return ast.New(ast.KindSyncConstraint, children...)
}

func syncDecl(constraints ...*ast.Node) *ast.Node {
	return buildSync(constraints)
}

func providedAttr(guard *ast.Node) *ast.Node {
	return ast.New(ast.KindProvidedAttr, ast.Leaf(ast.TokKeyword, "provided"), ast.Leaf(ast.TokColon, ":"), guard)
}

func initialAttr() *ast.Node {
	return ast.New(ast.KindInitialAttr, ast.Leaf(ast.TokKeyword, "initial"))
}

// sampleSystem builds a small, two-process network:
//
//	process:P1  process:P2  event:a  event:b  clock:1:x
//	location:P1:l0{initial:}  location:P1:l1
//	edge:P1:l0:l1:a{provided: x<=5}
//	sync:P1@a:P2@a
func sampleSystem() *ast.Node {
	guard := ast.New(ast.KindExpr, ast.NewAtomicExpr(ast.NewComparison(true, ast.NewID("x"), ast.TokLE, ast.NewIntLit(5))))
	edge := edgeDecl("P1", "l0", "l1", "a", providedAttr(guard))
	sync := syncDecl(syncConstraint("P1", "a", false), syncConstraint("P2", "a", false))

	return ast.New(ast.KindSystemDecl,
		ast.Leaf(ast.TokKeyword, "system"), ast.Leaf(ast.TokColon, ":"), ast.NewID("S"),
		processDecl("P1"), processDecl("P2"),
		eventDecl("a"), eventDecl("b"),
		clockDecl(1, "x"),
		locationDecl("P1", "l0", initialAttr()),
		locationDecl("P1", "l1"),
		edge,
		sync,
	)
}
