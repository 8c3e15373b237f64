package ast

// Kind identifies a grammar rule that an internal Node instantiates.
// Leaf tokens carry the zero Kind ("") and are distinguished instead by
// their Token.Kind; see Node.IsLeaf.
//
// This is the "tagged AST" redesign of the distillation's string-keyed
// Lark rule names: a finite sum type whose variants mirror the
// TChecker system-declaration grammar (spec.md §3.1), so that the
// positional child contracts that operator (mutate package) code
// relies on become named accessors on top of fixed indices, not raw
// magic numbers scattered through the codebase.
type Kind string

const (
	// System declarations.
	KindSystemDecl      Kind = "system_declaration"
	KindProcessDecl     Kind = "process_declaration"
	KindEventDecl       Kind = "event_declaration"
	KindClockDecl       Kind = "clock_declaration"
	KindIntDecl         Kind = "int_declaration"
	KindLocationDecl    Kind = "location_declaration"
	KindEdgeDecl        Kind = "edge_declaration"
	KindSyncDecl        Kind = "sync_declaration"
	KindSyncConstraint  Kind = "sync_constraint"
	KindSyncConstraints Kind = "sync_constraints"

	// Attribute lists.
	KindAttributes    Kind = "attributes"
	KindInitialAttr   Kind = "initial_attribute"
	KindUrgentAttr    Kind = "urgent_attribute"
	KindCommittedAttr Kind = "committed_attribute"
	KindLabelsAttr    Kind = "labels_attribute"
	KindProvidedAttr  Kind = "provided_attribute"
	KindInvariantAttr Kind = "invariant_attribute"
	KindDoAttr        Kind = "do_attribute"

	// Expressions.
	KindExpr         Kind = "expr"
	KindAtomicExpr   Kind = "atomic_expr"
	KindPredicateExpr Kind = "predicate_expr"
	KindClockExpr    Kind = "clock_expr"
	KindIntTerm      Kind = "int_term"
	KindOp           Kind = "op"
	KindIntOrClockID Kind = "int_or_clock_id"
	KindID           Kind = "id"
	KindNop          Kind = "nop"

	// KindAssignment is not one of spec.md §3.1's explicitly enumerated
	// kinds; it is the single-slot wrapper a do_attribute's comma-
	// separated statement list needs so that invert_reset's "replace
	// this one reset with a nop" is an Exchange of one child node for
	// another, not a splice of a variable-width token run.
	KindAssignment Kind = "assignment"
)

// TokenKind identifies the lexical category of a leaf node.
type TokenKind string

const (
	TokKeyword TokenKind = "keyword"
	TokIdent   TokenKind = "ident"
	TokInt     TokenKind = "int"
	TokColon   TokenKind = ":"
	TokComma   TokenKind = ","
	TokAt      TokenKind = "@"
	TokQuery   TokenKind = "?"
	TokLBrace  TokenKind = "{"
	TokRBrace  TokenKind = "}"
	TokLBracket TokenKind = "["
	TokRBracket TokenKind = "]"
	TokAssign  TokenKind = "="
	TokPlus    TokenKind = "+"
	TokMinus   TokenKind = "-"
	TokAnd     TokenKind = "&&"
	TokNop     TokenKind = "nop"

	// Comparators. These six are the only tokens that every
	// comparator-mutating operator needs to recognize and swap.
	TokEQ TokenKind = "=="
	TokLE TokenKind = "<="
	TokLT TokenKind = "<"
	TokGE TokenKind = ">="
	TokGT TokenKind = ">"
	TokNE TokenKind = "!="
)

// Comparators lists the six comparator token kinds in a fixed order.
// change_constraint_cmp does not use it: it enumerates its own list,
// which leaves out "!=".
var Comparators = []TokenKind{TokEQ, TokLE, TokLT, TokGE, TokGT, TokNE}

// IsComparator reports whether k is one of the six comparator kinds.
func IsComparator(k TokenKind) bool {
	switch k {
	case TokEQ, TokLE, TokLT, TokGE, TokGT, TokNE:
		return true
	}
	return false
}

// NegatedComparator returns the comparator that negates cmp, valid
// only for the four ordering comparators clock constraints allow
// (spec.md §4.3 negate_guard: <=→>, <→>=, >=→<, >→<=).
func NegatedComparator(cmp TokenKind) (TokenKind, bool) {
	switch cmp {
	case TokLE:
		return TokGT, true
	case TokLT:
		return TokGE, true
	case TokGE:
		return TokLT, true
	case TokGT:
		return TokLE, true
	}
	return "", false
}
