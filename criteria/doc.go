// Package criteria builds typed, composable filter specifications.
//
// Fields are addressed through accessor methods of the target type
// (Getter(Order.GetPid)) or generated field tags (Named[Order]("pid")),
// never through free-form strings at the call site. A Builder accumulates
// comparison conditions on one Specification; AndOr nests another
// specification as a block of alternatives.
//
// A Specification is backend-neutral. It compiles against any Backend in
// two steps: Expression evaluates its predicate factories into an
// immutable Expr tree, and Fold turns that tree into backend predicates
// using only complete AND/OR operand lists.
package criteria
