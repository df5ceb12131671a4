// Package predicate implements the boolean expression language used by form
// conditionals and validation rules.
//
// Predicates are plain data: a tree of Node values tagged by Kind that can be
// serialised to JSON/YAML, checked statically before a form version is
// activated, and evaluated by a single recursive interpreter (Eval) against a
// snapshot of declaration values plus the event's action history. Nothing is
// cached between evaluations.
package predicate

import (
	"github.com/goliatone/go-formcond/pkg/action"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
)

// Kind tags a predicate node.
type Kind string

const (
	KindAnd                     Kind = "and"
	KindOr                      Kind = "or"
	KindNot                     Kind = "not"
	KindAlways                  Kind = "always"
	KindIsEqualTo               Kind = "isEqualTo"
	KindIsInArray               Kind = "isInArray"
	KindIsUndefined             Kind = "isUndefined"
	KindIsUndefinedOrInArray    Kind = "isUndefinedOrInArray"
	KindIsUndefinedOrNotInArray Kind = "isUndefinedOrNotInArray"
	KindIsBeforeNow             Kind = "isBeforeNow"
	KindIsAfterNow              Kind = "isAfterNow"
	KindEventHasAction          Kind = "eventHasAction"
)

// Node is one node of a predicate tree. Which attributes are meaningful
// depends on Kind: combinators use Args, field tests use Field plus Value or
// Values, eventHasAction uses Action.
type Node struct {
	Kind   Kind           `json:"kind" yaml:"kind"`
	Field  fieldpath.Path `json:"field,omitempty" yaml:"field,omitempty"`
	Value  any            `json:"value,omitempty" yaml:"value,omitempty"`
	Values []any          `json:"values,omitempty" yaml:"values,omitempty"`
	Action string         `json:"action,omitempty" yaml:"action,omitempty"`
	Args   []*Node        `json:"args,omitempty" yaml:"args,omitempty"`
}

// FieldRef starts a field test, mirroring the `field('a.b').isEqualTo(x)`
// configuration idiom.
type FieldRef struct {
	path fieldpath.Path
}

// Field references a field by its canonical path string. It panics on a
// malformed path since it is meant for static configuration code.
func Field(path string) FieldRef {
	return FieldRef{path: fieldpath.MustParse(path)}
}

// FieldAt references a field by structured path.
func FieldAt(path fieldpath.Path) FieldRef {
	return FieldRef{path: path.Clone()}
}

// Path returns the referenced path.
func (f FieldRef) Path() fieldpath.Path { return f.path.Clone() }

func (f FieldRef) IsEqualTo(value any) *Node {
	return &Node{Kind: KindIsEqualTo, Field: f.path.Clone(), Value: value}
}

func (f FieldRef) IsInArray(values ...any) *Node {
	return &Node{Kind: KindIsInArray, Field: f.path.Clone(), Values: cloneValues(values)}
}

func (f FieldRef) IsUndefined() *Node {
	return &Node{Kind: KindIsUndefined, Field: f.path.Clone()}
}

// IsUndefinedOrInArray holds while the field is unanswered or its value is
// one of values: the field stays "default visible" until proven otherwise.
func (f FieldRef) IsUndefinedOrInArray(values ...any) *Node {
	return &Node{Kind: KindIsUndefinedOrInArray, Field: f.path.Clone(), Values: cloneValues(values)}
}

// IsUndefinedOrNotInArray is the dual of IsUndefinedOrInArray.
func (f FieldRef) IsUndefinedOrNotInArray(values ...any) *Node {
	return &Node{Kind: KindIsUndefinedOrNotInArray, Field: f.path.Clone(), Values: cloneValues(values)}
}

func (f FieldRef) IsBeforeNow() *Node {
	return &Node{Kind: KindIsBeforeNow, Field: f.path.Clone()}
}

func (f FieldRef) IsAfterNow() *Node {
	return &Node{Kind: KindIsAfterNow, Field: f.path.Clone()}
}

// And holds when every argument holds. An empty And is true.
func And(args ...*Node) *Node {
	return &Node{Kind: KindAnd, Args: args}
}

// Or holds when any argument holds. An empty Or is false.
func Or(args ...*Node) *Node {
	return &Node{Kind: KindOr, Args: args}
}

// Not negates its argument.
func Not(arg *Node) *Node {
	return &Node{Kind: KindNot, Args: []*Node{arg}}
}

// Always is the constant true predicate.
func Always() *Node {
	return &Node{Kind: KindAlways}
}

// EventHasAction holds when the event history contains an action of type t.
func EventHasAction(t action.Type) *Node {
	return &Node{Kind: KindEventHasAction, Action: string(t)}
}

// Clone deep-copies the tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:   n.Kind,
		Field:  n.Field.Clone(),
		Value:  n.Value,
		Values: cloneValues(n.Values),
		Action: n.Action,
	}
	if len(n.Args) > 0 {
		out.Args = make([]*Node, len(n.Args))
		for i, arg := range n.Args {
			out.Args[i] = arg.Clone()
		}
	}
	return out
}

func cloneValues(values []any) []any {
	if values == nil {
		return nil
	}
	return append([]any(nil), values...)
}
