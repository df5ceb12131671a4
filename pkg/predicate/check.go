package predicate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
)

// ErrInvalidNode is wrapped by every structural error reported by Check.
var ErrInvalidNode = errors.New("predicate: invalid node")

// Check validates the structure of the tree without evaluating it: kinds are
// known, combinators have the right arity, field tests name a field and
// eventHasAction names an action.
func Check(n *Node) error {
	if n == nil {
		return ErrNilNode
	}

	switch n.Kind {
	case KindAlways:
		return nil
	case KindAnd, KindOr:
		for i, arg := range n.Args {
			if err := Check(arg); err != nil {
				return fmt.Errorf("%s[%d]: %w", n.Kind, i, err)
			}
		}
		return nil
	case KindNot:
		if len(n.Args) != 1 {
			return fmt.Errorf("%w: not expects 1 argument, got %d", ErrInvalidNode, len(n.Args))
		}
		if err := Check(n.Args[0]); err != nil {
			return fmt.Errorf("not: %w", err)
		}
		return nil
	case KindIsEqualTo:
		if err := checkField(n); err != nil {
			return err
		}
		if n.Value == nil {
			return fmt.Errorf("%w: %s on %s needs a value", ErrInvalidNode, n.Kind, n.Field)
		}
		return nil
	case KindIsInArray, KindIsUndefinedOrInArray, KindIsUndefinedOrNotInArray:
		if err := checkField(n); err != nil {
			return err
		}
		for i, v := range n.Values {
			if v == nil {
				return fmt.Errorf("%w: %s on %s has a null entry at %d", ErrInvalidNode, n.Kind, n.Field, i)
			}
		}
		return nil
	case KindIsUndefined, KindIsBeforeNow, KindIsAfterNow:
		return checkField(n)
	case KindEventHasAction:
		if strings.TrimSpace(n.Action) == "" {
			return fmt.Errorf("%w: eventHasAction needs an action", ErrInvalidNode)
		}
		return nil
	case "":
		return fmt.Errorf("%w: missing kind", ErrInvalidNode)
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, n.Kind)
	}
}

func checkField(n *Node) error {
	if n.Field.IsZero() {
		return fmt.Errorf("%w: %s needs a field", ErrInvalidNode, n.Kind)
	}
	if len(n.Args) > 0 {
		return fmt.Errorf("%w: %s on %s takes no arguments", ErrInvalidNode, n.Kind, n.Field)
	}
	return nil
}

// Paths returns every field path referenced by the tree, in first-seen
// order and without duplicates.
func Paths(n *Node) []fieldpath.Path {
	var out []fieldpath.Path
	seen := make(map[string]struct{})
	walk(n, func(node *Node) {
		if node.Field.IsZero() {
			return
		}
		key := node.Field.String()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, node.Field.Clone())
	})
	return out
}

func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, arg := range n.Args {
		walk(arg, fn)
	}
}

// Rebase returns a copy of the tree with every relative field path resolved
// against prefix.
func Rebase(n *Node, prefix fieldpath.Path) *Node {
	out := n.Clone()
	walk(out, func(node *Node) {
		node.Field = node.Field.Rebase(prefix)
	})
	return out
}

// String renders the node in the text shorthand accepted by ParseExpr.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case KindAlways:
		return "always()"
	case KindAnd, KindOr:
		if len(n.Args) == 0 {
			if n.Kind == KindAnd {
				return "always()"
			}
			return "!always()"
		}
		op := " && "
		if n.Kind == KindOr {
			op = " || "
		}
		parts := make([]string, len(n.Args))
		for i, arg := range n.Args {
			parts[i] = arg.String()
		}
		return "(" + strings.Join(parts, op) + ")"
	case KindNot:
		if len(n.Args) == 1 {
			return "!" + n.Args[0].String()
		}
		return "!<invalid>"
	case KindIsEqualTo:
		return n.Field.String() + " == " + formatLiteral(n.Value)
	case KindIsInArray:
		return n.Field.String() + " in " + formatList(n.Values)
	case KindIsUndefined:
		return "undefined(" + n.Field.String() + ")"
	case KindIsUndefinedOrInArray:
		return "undefinedOrIn(" + n.Field.String() + ", " + formatList(n.Values) + ")"
	case KindIsUndefinedOrNotInArray:
		return "undefinedOrNotIn(" + n.Field.String() + ", " + formatList(n.Values) + ")"
	case KindIsBeforeNow:
		return "beforeNow(" + n.Field.String() + ")"
	case KindIsAfterNow:
		return "afterNow(" + n.Field.String() + ")"
	case KindEventHasAction:
		return "hasAction(" + formatLiteral(n.Action) + ")"
	default:
		return fmt.Sprintf("<%s>", n.Kind)
	}
}

func formatList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatLiteral(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
