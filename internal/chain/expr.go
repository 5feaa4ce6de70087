package chain

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
)

// ErrInvalidExpr is returned for access expressions that are not a plain
// chain of property selections.
var ErrInvalidExpr = errors.New("invalid access expression")

// CanonicalExpr returns the canonical source form of an access expression
// such as "B . C.Test" or "B().C.Test()". Whitespace differences disappear;
// call parentheses are kept, so the result is still the literal body.
func CanonicalExpr(expr string) (string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidExpr, expr, err)
	}

	if _, err := segments(node); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidExpr, expr, err)
	}

	return types.ExprString(node), nil
}

// Segments returns the property names of an access expression in order.
func Segments(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidExpr, expr, err)
	}

	names, err := segments(node)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidExpr, expr, err)
	}

	return names, nil
}

func segments(node ast.Expr) ([]string, error) {
	switch n := node.(type) {
	case *ast.Ident:
		return []string{n.Name}, nil

	case *ast.SelectorExpr:
		head, err := segments(n.X)
		if err != nil {
			return nil, err
		}

		return append(head, n.Sel.Name), nil

	case *ast.CallExpr:
		// Getter call: only zero-argument calls are property reads.
		if len(n.Args) > 0 {
			return nil, errors.New("getter calls take no arguments")
		}

		return segments(n.Fun)

	case *ast.ParenExpr:
		return segments(n.X)

	default:
		return nil, fmt.Errorf("unsupported %T", node)
	}
}
