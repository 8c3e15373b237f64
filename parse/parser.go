package parse

import (
	"fmt"
	"io"

	"github.com/tamut/tamut/ast"
	"github.com/tamut/tamut/tckerr"
)

// Parse reads one TChecker system-declaration source file and returns
// its AST, or the aggregated tckerr.List of every syntax error found.
//
// The grammar implemented here realizes the "opaque parser service" of
// spec.md §6: a system declaration followed by zero or more process,
// event, clock, int, location, edge, and sync declarations, matching
// every positional contract spec.md §3.1 fixes.
func Parse(r io.Reader) (*ast.Node, error) {
	p, err := newParser(r)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

type parser struct {
	lex  *lexer
	errs tckerr.List
}

func newParser(r io.Reader) (*parser, error) {
	lex, err := newLexer(r)
	if err != nil {
		return nil, err
	}
	return &parser{lex: lex}, nil
}

func (p *parser) parse() (root *ast.Node, retErr error) {
	root = p.parseSystem()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return root, nil
}

// raiseSyntaxError aborts the current production with a panic the
// nearest recover() converts into a collected tckerr.Error, mirroring
// spec/grammar/parser/parser.go's raiseSyntaxError/recover idiom.
func raiseSyntaxError(pos tckerr.Position, format string, a ...any) {
	panic(tckerr.New(pos, format, a...))
}

func (p *parser) recoverInto(dst *error) {
	if r := recover(); r != nil {
		e, ok := r.(*tckerr.Error)
		if !ok {
			panic(fmt.Errorf("an unexpected error occurred: %v", r))
		}
		p.errs = append(p.errs, e)
		*dst = e
	}
}

// expect consumes the next token if it matches kind, else raises a
// syntax error naming what was expected.
func (p *parser) expect(kind ast.TokenKind) *token {
	tok, err := p.lex.next()
	if err != nil {
		if e, ok := err.(*tckerr.Error); ok {
			panic(e)
		}
		panic(tckerr.New(tckerr.Position{}, "%v", err))
	}
	if tok.kind != kind {
		raiseSyntaxError(tok.pos, "expected %s, got %q", kind, tok.text)
	}
	return tok
}

// expectKeyword consumes a keyword token whose text matches word.
func (p *parser) expectKeyword(word string) *token {
	tok := p.expect(ast.TokKeyword)
	if tok.text != word {
		raiseSyntaxError(tok.pos, "expected keyword %q, got %q", word, tok.text)
	}
	return tok
}

func (p *parser) at(kind ast.TokenKind) bool {
	tok, err := p.lex.peek()
	if err != nil {
		return false
	}
	return tok.kind == kind
}

func (p *parser) atKeyword(word string) bool {
	tok, err := p.lex.peek()
	if err != nil || tok.kind != ast.TokKeyword {
		return false
	}
	return tok.text == word
}

func leafOf(t *token) *ast.Node {
	return ast.LeafAt(t.kind, t.text, t.pos)
}

func (p *parser) parseID() *ast.Node {
	tok := p.expect(ast.TokIdent)
	return ast.New(ast.KindID, leafOf(tok))
}

// parseSystem parses the top-level sequence: "system" ":" id, followed
// by every process/event/clock/int/location/edge/sync declaration in
// the file, in document order.
func (p *parser) parseSystem() (root *ast.Node) {
	defer p.recoverInto(new(error))

	kw := p.expectKeyword("system")
	colon := p.expect(ast.TokColon)
	name := p.parseID()

	children := []*ast.Node{leafOf(kw), leafOf(colon), name}

	for !p.at(tokEOF) {
		before := len(p.errs)
		decl := p.parseDecl()
		if decl == nil {
			if len(p.errs) > before {
				// parseDecl recovered and skipped ahead; keep going.
				continue
			}
			break
		}
		children = append(children, decl)
	}

	return ast.New(ast.KindSystemDecl, children...)
}

func (p *parser) parseDecl() (decl *ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*tckerr.Error)
			if !ok {
				panic(r)
			}
			p.errs = append(p.errs, e)
			p.skipPastNextKeyword()
		}
	}()

	switch {
	case p.atKeyword("process"):
		return p.parseSimpleDecl(ast.KindProcessDecl, "process")
	case p.atKeyword("event"):
		return p.parseSimpleDecl(ast.KindEventDecl, "event")
	case p.atKeyword("clock"):
		return p.parseClockDecl()
	case p.atKeyword("int"):
		return p.parseIntDecl()
	case p.atKeyword("location"):
		return p.parseLocationDecl()
	case p.atKeyword("edge"):
		return p.parseEdgeDecl()
	case p.atKeyword("sync"):
		return p.parseSyncDecl()
	}
	return nil
}

// skipPastNextKeyword discards tokens until the next declaration
// keyword or EOF, so one malformed declaration does not cascade into
// spurious errors for the rest of the file.
func (p *parser) skipPastNextKeyword() {
	for {
		if p.at(tokEOF) {
			return
		}
		for _, kw := range []string{"process", "event", "clock", "int", "location", "edge", "sync"} {
			if p.atKeyword(kw) {
				return
			}
		}
		if _, err := p.lex.next(); err != nil {
			return
		}
	}
}

// parseSimpleDecl parses the shared shape of process_declaration and
// event_declaration: keyword ":" id.
func (p *parser) parseSimpleDecl(kind ast.Kind, keyword string) *ast.Node {
	kw := p.expectKeyword(keyword)
	colon := p.expect(ast.TokColon)
	name := p.parseID()
	return ast.New(kind, leafOf(kw), leafOf(colon), name)
}

func (p *parser) parseClockDecl() *ast.Node {
	kw := p.expectKeyword("clock")
	c1 := p.expect(ast.TokColon)
	size := p.parseIntLiteral()
	c2 := p.expect(ast.TokColon)
	name := p.parseID()
	return ast.New(ast.KindClockDecl, leafOf(kw), leafOf(c1), size, leafOf(c2), name)
}

func (p *parser) parseIntDecl() *ast.Node {
	kw := p.expectKeyword("int")
	c1 := p.expect(ast.TokColon)
	size := p.parseIntLiteral()
	c2 := p.expect(ast.TokColon)
	lo := p.parseIntLiteral()
	c3 := p.expect(ast.TokColon)
	hi := p.parseIntLiteral()
	c4 := p.expect(ast.TokColon)
	init := p.parseIntLiteral()
	c5 := p.expect(ast.TokColon)
	name := p.parseID()
	return ast.New(ast.KindIntDecl,
		leafOf(kw), leafOf(c1), size, leafOf(c2), lo, leafOf(c3), hi,
		leafOf(c4), init, leafOf(c5), name,
	)
}

func (p *parser) parseLocationDecl() *ast.Node {
	kw := p.expectKeyword("location")
	c1 := p.expect(ast.TokColon)
	proc := p.parseID()
	c2 := p.expect(ast.TokColon)
	loc := p.parseID()

	children := []*ast.Node{leafOf(kw), leafOf(c1), proc, leafOf(c2), loc}
	if p.at(ast.TokLBrace) {
		children = append(children, p.parseAttributes())
	}
	return ast.New(ast.KindLocationDecl, children...)
}

func (p *parser) parseEdgeDecl() *ast.Node {
	kw := p.expectKeyword("edge")
	c1 := p.expect(ast.TokColon)
	proc := p.parseID()
	c2 := p.expect(ast.TokColon)
	src := p.parseID()
	c3 := p.expect(ast.TokColon)
	dst := p.parseID()
	c4 := p.expect(ast.TokColon)
	evt := p.parseID()

	children := []*ast.Node{
		leafOf(kw), leafOf(c1), proc, leafOf(c2), src,
		leafOf(c3), dst, leafOf(c4), evt,
	}
	if p.at(ast.TokLBrace) {
		children = append(children, p.parseAttributes())
	}
	return ast.New(ast.KindEdgeDecl, children...)
}

func (p *parser) parseSyncDecl() *ast.Node {
	kw := p.expectKeyword("sync")
	colon := p.expect(ast.TokColon)
	constraints := p.parseSyncConstraints()
	return ast.New(ast.KindSyncDecl, leafOf(kw), leafOf(colon), constraints)
}

func (p *parser) parseSyncConstraints() *ast.Node {
	children := []*ast.Node{p.parseSyncConstraint()}
	for p.at(ast.TokColon) {
		colon := p.expect(ast.TokColon)
		children = append(children, leafOf(colon), p.parseSyncConstraint())
	}
	return ast.New(ast.KindSyncConstraints, children...)
}

func (p *parser) parseSyncConstraint() *ast.Node {
	proc := p.parseID()
	at := p.expect(ast.TokAt)
	evt := p.parseID()
	children := []*ast.Node{proc, leafOf(at), evt}
	if p.at(ast.TokQuery) {
		q := p.expect(ast.TokQuery)
		children = append(children, leafOf(q))
	}
	return ast.New(ast.KindSyncConstraint, children...)
}

// parseAttributes parses the brace-wrapped, colon-separated attribute
// list attached to a location or edge declaration.
func (p *parser) parseAttributes() *ast.Node {
	lbrace := p.expect(ast.TokLBrace)
	children := []*ast.Node{leafOf(lbrace)}

	if !p.at(ast.TokRBrace) {
		children = append(children, p.parseAttribute())
		for p.at(ast.TokColon) {
			colon := p.expect(ast.TokColon)
			children = append(children, leafOf(colon), p.parseAttribute())
		}
	}

	rbrace := p.expect(ast.TokRBrace)
	children = append(children, leafOf(rbrace))
	return ast.New(ast.KindAttributes, children...)
}

func (p *parser) parseAttribute() *ast.Node {
	switch {
	case p.atKeyword("initial"):
		return ast.New(ast.KindInitialAttr, leafOf(p.expectKeyword("initial")))
	case p.atKeyword("urgent"):
		return ast.New(ast.KindUrgentAttr, leafOf(p.expectKeyword("urgent")))
	case p.atKeyword("committed"):
		return ast.New(ast.KindCommittedAttr, leafOf(p.expectKeyword("committed")))
	case p.atKeyword("labels"):
		return p.parseLabelsAttr()
	case p.atKeyword("provided"):
		return p.parseGuardAttr(ast.KindProvidedAttr, "provided")
	case p.atKeyword("invariant"):
		return p.parseGuardAttr(ast.KindInvariantAttr, "invariant")
	case p.atKeyword("do"):
		return p.parseDoAttr()
	}
	tok, _ := p.lex.peek()
	pos := tckerr.Position{}
	if tok != nil {
		pos = tok.pos
	}
	raiseSyntaxError(pos, "expected an attribute, got %q", tok.text)
	return nil
}

func (p *parser) parseLabelsAttr() *ast.Node {
	kw := p.expectKeyword("labels")
	colon := p.expect(ast.TokColon)
	children := []*ast.Node{leafOf(kw), leafOf(colon), p.parseID()}
	for p.at(ast.TokComma) {
		comma := p.expect(ast.TokComma)
		children = append(children, leafOf(comma), p.parseID())
	}
	return ast.New(ast.KindLabelsAttr, children...)
}

func (p *parser) parseGuardAttr(kind ast.Kind, keyword string) *ast.Node {
	kw := p.expectKeyword(keyword)
	colon := p.expect(ast.TokColon)
	expr := p.parseExpr()
	return ast.New(kind, leafOf(kw), leafOf(colon), expr)
}

func (p *parser) parseDoAttr() *ast.Node {
	kw := p.expectKeyword("do")
	colon := p.expect(ast.TokColon)
	children := []*ast.Node{leafOf(kw), leafOf(colon), p.parseStmt()}
	for p.at(ast.TokComma) {
		comma := p.expect(ast.TokComma)
		children = append(children, leafOf(comma), p.parseStmt())
	}
	return ast.New(ast.KindDoAttr, children...)
}

func (p *parser) parseStmt() *ast.Node {
	if p.atKeyword("nop") {
		return ast.New(ast.KindNop, leafOf(p.expectKeyword("nop")))
	}
	id := p.parseID()
	assign := p.expect(ast.TokAssign)
	val := p.parseIntTerm()
	return ast.New(ast.KindAssignment, id, leafOf(assign), val)
}

// parseExpr parses a conjunction of atomic_exprs joined by "&&", the
// shape transform.Simplify and transform.BreakUpEquals both rewrite in
// place (spec.md §4.2).
func (p *parser) parseExpr() *ast.Node {
	children := []*ast.Node{p.parseAtomicExpr()}
	for p.at(ast.TokAnd) {
		and := p.expect(ast.TokAnd)
		children = append(children, leafOf(and), p.parseAtomicExpr())
	}
	return ast.New(ast.KindExpr, children...)
}

// parseAtomicExpr parses a (possibly chained) comparison: `a cmp b` or
// the chained form `a cmp1 b cmp2 c` that transform.Simplify later
// splits into a conjunction (spec.md §4.2).
func (p *parser) parseAtomicExpr() *ast.Node {
	children := []*ast.Node{p.parseIntTerm()}
	anyClock := looksLikeClockOperand(children[0])

	for {
		tok, err := p.lex.peek()
		if err != nil || !ast.IsComparator(tok.kind) {
			break
		}
		cmp, _ := p.lex.next()
		operand := p.parseIntTerm()
		anyClock = anyClock || looksLikeClockOperand(operand)
		children = append(children, leafOf(cmp), operand)
	}

	if len(children) == 1 {
		pos := tckerr.Position{}
		if tok, err := p.lex.peek(); err == nil {
			pos = tok.pos
		}
		raiseSyntaxError(pos, "expected a comparator")
	}

	kind := ast.KindPredicateExpr
	if anyClock {
		kind = ast.KindClockExpr
	}
	return ast.New(ast.KindAtomicExpr, ast.New(kind, children...))
}

// looksLikeClockOperand is the parser's best-effort, non-authoritative
// guess at whether an operand denotes a clock (spec.md §3.3:
// "disambiguation is unreliable" — the real arbiter is
// ast.IsClockExpr, consulted independently wherever it matters).
func looksLikeClockOperand(n *ast.Node) bool {
	if n == nil {
		return false
	}
	if n.Rule == ast.KindIntOrClockID {
		return true
	}
	for _, c := range n.Children {
		if looksLikeClockOperand(c) {
			return true
		}
	}
	return false
}

// parseIntTerm parses an int_term: a clock/int identifier, an integer
// literal, or a two-operand arithmetic/diagonal form `a op b`.
func (p *parser) parseIntTerm() *ast.Node {
	left := p.parseTermOperand()
	if p.at(ast.TokPlus) || p.at(ast.TokMinus) {
		opTok, _ := p.lex.next()
		right := p.parseTermOperand()
		return ast.New(ast.KindIntTerm, left, ast.New(ast.KindOp, leafOf(opTok)), right)
	}
	return ast.New(ast.KindIntTerm, left)
}

// parseTermOperand parses one bare operand of an int_term: an integer
// literal leaf, a plain identifier (an "id" node), or an indexed clock
// reference int_or_clock_id(id, '[', int_term, ']'). It does not wrap
// its result in int_term; parseIntTerm does that at the call site so a
// binary form `a op b` produces a single int_term node, not nested
// ones.
func (p *parser) parseTermOperand() *ast.Node {
	if p.at(ast.TokInt) {
		tok, _ := p.lex.next()
		return leafOf(tok)
	}
	if p.at(ast.TokMinus) {
		minus, _ := p.lex.next()
		lit := p.expect(ast.TokInt)
		return ast.LeafAt(ast.TokInt, minus.text+lit.text, minus.pos)
	}
	id := p.parseID()
	if p.at(ast.TokLBracket) {
		p.expect(ast.TokLBracket)
		idx := p.parseIntTerm()
		p.expect(ast.TokRBracket)
		return ast.New(ast.KindIntOrClockID, id, ast.Leaf(ast.TokLBracket, "["), idx, ast.Leaf(ast.TokRBracket, "]"))
	}
	return id
}

// parseIntLiteral parses a bare integer literal and wraps it as an
// int_term, the shape clock_declaration/int_declaration's numeric
// slots use (matching ast.NewIntLit).
func (p *parser) parseIntLiteral() *ast.Node {
	tok := p.expect(ast.TokInt)
	return ast.New(ast.KindIntTerm, leafOf(tok))
}
