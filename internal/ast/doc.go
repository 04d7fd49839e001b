// Package ast defines the syntax tree produced by the parser.
//
// Node variants form a closed set behind sealed interfaces (Expr, Stmt,
// TypeHint, ClassMember). Every node carries a span that contains the spans
// of all of its children. A finished tree is never mutated; relations such as
// parent or enclosing declaration are computed by Index.
package ast
