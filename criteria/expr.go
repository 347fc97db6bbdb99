package criteria

import "fmt"

var errNilBackend = fmt.Errorf("%w: nil backend", ErrInvalidSpecification)

// Connector joins the operands of a junction.
type Connector string

const (
	ConnectorAnd Connector = "AND"
	ConnectorOr  Connector = "OR"
)

func (c Connector) validate() error {
	switch c {
	case ConnectorAnd, ConnectorOr:
		return nil
	default:
		return fmt.Errorf("%w: unsupported connector %q", ErrInvalidSpecification, c)
	}
}

// Expr is the immutable tree a specification compiles to before it is
// folded into backend predicates.
type Expr interface {
	isExpr()
}

// Leaf holds one predicate produced by a factory.
type Leaf struct {
	Predicate Predicate
}

func (Leaf) isExpr() {}

// Junction combines its operands with a connector.
type Junction struct {
	Connector Connector
	Operands  []Expr
}

func (Junction) isExpr() {}

// Fold builds backend predicates from an expression tree, bottom-up, using
// only complete operand lists. A junction without operands folds to
// b.And() or b.Or() with no arguments, which backends treat as true and
// false respectively.
func Fold(expr Expr, b Backend) (Predicate, error) {
	if b == nil {
		return nil, errNilBackend
	}
	return fold(expr, b)
}

func fold(expr Expr, b Backend) (Predicate, error) {
	switch node := expr.(type) {
	case Leaf:
		return node.Predicate, nil
	case *Leaf:
		if node == nil {
			return nil, fmt.Errorf("%w: nil leaf", ErrInvalidSpecification)
		}
		return node.Predicate, nil
	case Junction:
		return foldJunction(node, b)
	case *Junction:
		if node == nil {
			return nil, fmt.Errorf("%w: nil junction", ErrInvalidSpecification)
		}
		return foldJunction(*node, b)
	case nil:
		return nil, fmt.Errorf("%w: nil expression", ErrInvalidSpecification)
	default:
		return nil, fmt.Errorf("%w: unsupported expression type %T", ErrInvalidSpecification, expr)
	}
}

func foldJunction(node Junction, b Backend) (Predicate, error) {
	if err := node.Connector.validate(); err != nil {
		return nil, err
	}
	operands := make([]Predicate, 0, len(node.Operands))
	for _, operand := range node.Operands {
		pred, err := fold(operand, b)
		if err != nil {
			return nil, err
		}
		operands = append(operands, pred)
	}
	if node.Connector == ConnectorOr {
		return b.Or(operands...)
	}
	return b.And(operands...)
}
