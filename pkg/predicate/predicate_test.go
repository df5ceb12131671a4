package predicate

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcond/pkg/action"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
)

type mapValues map[string]any

func (m mapValues) Get(path fieldpath.Path) (any, bool) {
	v, ok := m[path.String()]
	return v, ok
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func env(values map[string]any, history ...action.Action) Env {
	return Env{Values: mapValues(values), Actions: action.History(history), Now: fixedNow}
}

func mustEval(t *testing.T, n *Node, e Env) bool {
	t.Helper()
	ok, err := Eval(n, e)
	if err != nil {
		t.Fatalf("Eval(%s): %v", n, err)
	}
	return ok
}

func TestLeafTests(t *testing.T) {
	t.Parallel()

	relation := Field("informant.relation")
	cases := []struct {
		name   string
		node   *Node
		values map[string]any
		want   bool
	}{
		{"equal string", relation.IsEqualTo("MOTHER"), map[string]any{"informant.relation": "MOTHER"}, true},
		{"equal absent", relation.IsEqualTo("MOTHER"), nil, false},
		{"equal nil value is absent", relation.IsEqualTo("MOTHER"), map[string]any{"informant.relation": nil}, false},
		{"equal strict kinds", Field("child.order").IsEqualTo(1), map[string]any{"child.order": "1"}, false},
		{"equal numeric kinds", Field("child.order").IsEqualTo(1), map[string]any{"child.order": float64(1)}, true},
		{"equal bool", Field("mother.detailsNotAvailable").IsEqualTo(true), map[string]any{"mother.detailsNotAvailable": true}, true},
		{"in array hit", relation.IsInArray("MOTHER", "FATHER"), map[string]any{"informant.relation": "FATHER"}, true},
		{"in array miss", relation.IsInArray("MOTHER"), map[string]any{"informant.relation": "FATHER"}, false},
		{"in array absent", relation.IsInArray("MOTHER"), nil, false},
		{"undefined", relation.IsUndefined(), nil, true},
		{"undefined set", relation.IsUndefined(), map[string]any{"informant.relation": "X"}, false},
		{"before now", Field("child.dob").IsBeforeNow(), map[string]any{"child.dob": "2024-12-31"}, true},
		{"before now future", Field("child.dob").IsBeforeNow(), map[string]any{"child.dob": "2030-01-01"}, false},
		{"before now absent", Field("child.dob").IsBeforeNow(), nil, false},
		{"after now", Field("child.dob").IsAfterNow(), map[string]any{"child.dob": "2030-01-01T00:00:00Z"}, true},
		{"always", Always(), nil, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := mustEval(t, tc.node, env(tc.values)); got != tc.want {
				t.Fatalf("%s = %v, want %v", tc.node, got, tc.want)
			}
		})
	}
}

func TestUndefinedOrInArrayProperty(t *testing.T) {
	t.Parallel()

	set := []any{"MOTHER", "FATHER"}
	node := Field("informant.relation").IsUndefinedOrInArray(set...)
	dual := Field("informant.relation").IsUndefinedOrNotInArray(set...)

	if !mustEval(t, node, env(nil)) || !mustEval(t, dual, env(nil)) {
		t.Fatalf("absent path must satisfy both undefined-or predicates")
	}
	for _, value := range []string{"MOTHER", "FATHER"} {
		e := env(map[string]any{"informant.relation": value})
		if !mustEval(t, node, e) {
			t.Fatalf("%s in set must be true", value)
		}
		if mustEval(t, dual, e) {
			t.Fatalf("%s in set must be false for the dual", value)
		}
	}
	e := env(map[string]any{"informant.relation": "GRANDMOTHER"})
	if mustEval(t, node, e) {
		t.Fatalf("value outside set must be false")
	}
	if !mustEval(t, dual, e) {
		t.Fatalf("value outside set must be true for the dual")
	}
}

func TestCombinators(t *testing.T) {
	t.Parallel()

	values := map[string]any{"a": "x", "b": true}
	if !mustEval(t, And(), env(values)) {
		t.Fatalf("empty and must be true")
	}
	if mustEval(t, Or(), env(values)) {
		t.Fatalf("empty or must be false")
	}
	if !mustEval(t, And(Field("a").IsEqualTo("x"), Field("b").IsEqualTo(true)), env(values)) {
		t.Fatalf("and mismatch")
	}
	if !mustEval(t, Or(Field("a").IsEqualTo("nope"), Field("b").IsEqualTo(true)), env(values)) {
		t.Fatalf("or mismatch")
	}
	if mustEval(t, Not(Field("b").IsEqualTo(true)), env(values)) {
		t.Fatalf("not mismatch")
	}

	// Short circuit: the malformed date is never reached.
	broken := Field("a").IsBeforeNow()
	if mustEval(t, And(Field("b").IsEqualTo(false), broken), env(values)) {
		t.Fatalf("expected false")
	}
	if !mustEval(t, Or(Field("b").IsEqualTo(true), broken), env(values)) {
		t.Fatalf("expected true")
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()

	_, err := Eval(Field("child.dob").IsBeforeNow(), env(map[string]any{"child.dob": "yesterday"}))
	if !errors.Is(err, ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}
	if _, err := Eval(nil, env(nil)); !errors.Is(err, ErrNilNode) {
		t.Fatalf("expected ErrNilNode, got %v", err)
	}
	if _, err := Eval(&Node{Kind: "nope"}, env(nil)); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestEventHasAction(t *testing.T) {
	t.Parallel()

	node := EventHasAction(action.Register)
	if mustEval(t, node, Env{Now: fixedNow}) {
		t.Fatalf("nil history must be false")
	}
	e := env(nil, action.Action{Type: action.Declare}, action.Action{Type: action.Register})
	if !mustEval(t, node, e) {
		t.Fatalf("expected REGISTER to be found")
	}
	if mustEval(t, EventHasAction(action.Archive), e) {
		t.Fatalf("unexpected ARCHIVE")
	}
}

func TestEvalIsRepeatable(t *testing.T) {
	t.Parallel()

	values := mapValues{"informant.relation": "MOTHER"}
	node := Field("informant.relation").IsInArray("MOTHER")
	e := Env{Values: values, Now: fixedNow}
	if !mustEval(t, node, e) {
		t.Fatalf("expected true")
	}
	values["informant.relation"] = "FATHER"
	if mustEval(t, node, e) {
		t.Fatalf("evaluation must reflect the current values, not a cached result")
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	valid := []*Node{
		Always(),
		And(),
		Not(Field("a").IsEqualTo("x")),
		Field("a").IsUndefinedOrInArray(),
		EventHasAction(action.Declare),
	}
	for _, n := range valid {
		if err := Check(n); err != nil {
			t.Fatalf("Check(%s): %v", n, err)
		}
	}

	invalid := []*Node{
		nil,
		{},
		{Kind: KindNot},
		{Kind: KindIsEqualTo, Value: "x"},
		{Kind: KindIsEqualTo, Field: fieldpath.New("a")},
		{Kind: KindEventHasAction},
		{Kind: KindIsInArray, Field: fieldpath.New("a"), Values: []any{nil}},
		And(Field("a").IsBeforeNow(), &Node{Kind: "bogus"}),
	}
	for i, n := range invalid {
		if err := Check(n); err == nil {
			t.Fatalf("case %d: expected error for %s", i, n)
		}
	}
}

func TestPathsAndRebase(t *testing.T) {
	t.Parallel()

	node := Or(
		Not(Field("$.detailsNotAvailable").IsEqualTo(true)),
		Field("informant.relation").IsInArray("MOTHER"),
		Field("$.detailsNotAvailable").IsUndefined(),
	)
	rebased := Rebase(node, fieldpath.New("mother"))

	got := make([]string, 0)
	for _, p := range Paths(rebased) {
		got = append(got, p.String())
	}
	want := []string{"mother.detailsNotAvailable", "informant.relation"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if Paths(node)[0].String() != "$.detailsNotAvailable" {
		t.Fatalf("Rebase must not mutate the original tree")
	}
}

func TestParseExpr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want *Node
	}{
		{`informant.relation == "MOTHER"`, Field("informant.relation").IsEqualTo("MOTHER")},
		{`informant.relation != MOTHER`, Not(Field("informant.relation").IsEqualTo("MOTHER"))},
		{`child.order == 2`, Field("child.order").IsEqualTo(float64(2))},
		{`mother.detailsNotAvailable`, Field("mother.detailsNotAvailable").IsEqualTo(true)},
		{`informant.relation in ['MOTHER', "FATHER"]`, Field("informant.relation").IsInArray("MOTHER", "FATHER")},
		{`undefinedOrNotIn(informant.relation, [MOTHER])`, Field("informant.relation").IsUndefinedOrNotInArray("MOTHER")},
		{`undefinedOrIn(informant.relation, [])`, Field("informant.relation").IsUndefinedOrInArray()},
		{`hasAction("register")`, EventHasAction(action.Register)},
		{
			`mother.detailsNotAvailable && !(informant.relation in [MOTHER] || beforeNow(child.dob))`,
			And(
				Field("mother.detailsNotAvailable").IsEqualTo(true),
				Not(Or(Field("informant.relation").IsInArray("MOTHER"), Field("child.dob").IsBeforeNow())),
			),
		},
	}

	for _, tc := range cases {
		got, err := ParseExpr(tc.text)
		if err != nil {
			t.Fatalf("ParseExpr(%q): %v", tc.text, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseExpr(%q) mismatch (-want +got):\n%s", tc.text, diff)
		}
		if err := Check(got); err != nil {
			t.Fatalf("Check(%q): %v", tc.text, err)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"a = 1",
		"a == ",
		"(a == 1",
		`a == "open`,
		"a in [1, 2",
		"unknown(a)",
		"a == 1 b",
		"undefinedOrIn(a)",
	} {
		if _, err := ParseExpr(text); err == nil {
			t.Fatalf("ParseExpr(%q): expected error", text)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	node := And(
		Not(Field("a.b").IsEqualTo("x")),
		Field("c").IsUndefinedOrNotInArray("P", "Q"),
		EventHasAction(action.Validate),
		Field("d").IsAfterNow(),
	)
	parsed, err := ParseExpr(node.String())
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", node.String(), err)
	}
	if diff := cmp.Diff(node, parsed); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSONAndYAML(t *testing.T) {
	t.Parallel()

	want := Or(
		Field("informant.relation").IsInArray("MOTHER"),
		Not(Field("mother.detailsNotAvailable").IsEqualTo(true)),
	)

	var fromJSON Node
	raw := `{"kind":"or","args":[
		{"kind":"isInArray","field":"informant.relation","values":["MOTHER"]},
		"mother.detailsNotAvailable != true"
	]}`
	if err := json.Unmarshal([]byte(raw), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}
	if diff := cmp.Diff(want, &fromJSON); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	var fromYAML Node
	doc := "kind: or\nargs:\n  - kind: isInArray\n    field: informant.relation\n    values: [MOTHER]\n  - \"!mother.detailsNotAvailable\"\n"
	if err := yaml.Unmarshal([]byte(doc), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if diff := cmp.Diff(want, &fromYAML); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Node
	if err := json.Unmarshal(encoded, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, &back); diff != "" {
		t.Fatalf("marshal round trip mismatch (-want +got):\n%s", diff)
	}
}
