package query

import (
	"strings"

	"github.com/pkg/errors"
)

// Validate reports a structured build-time failure for a malformed
// expression: an empty or malformed path, or a composite with the wrong
// arity. It does not touch any index; callers run it once per expression
// before evaluating.
func Validate(e Expr) error {
	switch e.op {
	case OpEq, OpNe, OpGt, OpGe, OpLt, OpLe:
		return validatePath(e.path)
	case OpBetween:
		return validatePath(e.path)
	case OpIn:
		if err := validatePath(e.path); err != nil {
			return err
		}
		if len(e.values) == 0 {
			return errors.Errorf("in(%q): requires at least one value", e.path)
		}
		return nil
	case OpAnd, OpOr:
		if len(e.children) == 0 {
			return errors.New("and/or requires at least one child")
		}
		for _, c := range e.children {
			if err := Validate(c); err != nil {
				return err
			}
		}
		return nil
	case OpNot:
		if len(e.children) != 1 {
			return errors.New("not requires exactly one child")
		}
		return Validate(e.children[0])
	default:
		return errors.Errorf("unknown expression op %d", e.op)
	}
}

func validatePath(path string) error {
	if path == "" {
		return errors.New("empty attribute path")
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return errors.Errorf("malformed attribute path %q", path)
		}
	}
	return nil
}
