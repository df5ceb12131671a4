package form

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcond/pkg/countries"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

type mapValues map[string]any

func (m mapValues) Get(path fieldpath.Path) (any, bool) {
	v, ok := m[path.String()]
	return v, ok
}

func hidden(t *testing.T, f Field, values mapValues) bool {
	t.Helper()
	for _, cond := range f.Conditionals {
		ok, err := predicate.Eval(cond.Predicate, predicate.Env{Values: values})
		if err != nil {
			t.Fatalf("eval %s: %v", f.ID, err)
		}
		if ok {
			return true
		}
	}
	return false
}

func textField(path string, conds ...Conditional) Field {
	return Field{
		ID:           fieldpath.MustParse(path),
		Type:         TypeText,
		Label:        message.New("label."+path, path),
		Conditionals: conds,
	}
}

func TestAppendConditionalsIsPure(t *testing.T) {
	t.Parallel()

	own := Hide(predicate.Field("informant.relation").IsEqualTo("MOTHER"))
	input := []Field{textField("mother.firstname", own), textField("mother.surname")}
	extra := Hide(predicate.Field("mother.detailsNotAvailable").IsEqualTo(true))

	out := AppendConditionals(input, extra)

	if len(input[0].Conditionals) != 1 || len(input[1].Conditionals) != 0 {
		t.Fatalf("input fields were mutated: %+v", input)
	}
	if len(out[0].Conditionals) != 2 || len(out[1].Conditionals) != 1 {
		t.Fatalf("unexpected conditional counts: %d, %d", len(out[0].Conditionals), len(out[1].Conditionals))
	}
	out[0].Conditionals[0].Predicate.Value = "FATHER"
	if input[0].Conditionals[0].Predicate.Value != "MOTHER" {
		t.Fatalf("output shares predicate nodes with input")
	}
}

func TestAppendConditionalsTwiceKeepsOutcome(t *testing.T) {
	t.Parallel()

	cond := Hide(predicate.Field("mother.detailsNotAvailable").IsEqualTo(true))
	base := []Field{textField("mother.firstname", Hide(predicate.Field("informant.relation").IsInArray("MOTHER")))}
	once := AppendConditionals(base, cond)
	twice := AppendConditionals(once, cond)

	if len(twice[0].Conditionals) != len(once[0].Conditionals)+1 {
		t.Fatalf("second append must grow the list")
	}

	stores := []mapValues{
		{},
		{"mother.detailsNotAvailable": true},
		{"mother.detailsNotAvailable": false},
		{"informant.relation": "MOTHER"},
		{"informant.relation": "FATHER", "mother.detailsNotAvailable": true},
	}
	for _, values := range stores {
		if hidden(t, once[0], values) != hidden(t, twice[0], values) {
			t.Fatalf("visibility diverged for %v", values)
		}
	}
}

func TestPrefixRebasesIdsAndPredicates(t *testing.T) {
	t.Parallel()

	fragment := []Field{
		textField("$.reason", Hide(predicate.Not(predicate.Field("$.detailsNotAvailable").IsEqualTo(true)))),
		textField("$.nid", Hide(predicate.Field("informant.relation").IsEqualTo("MOTHER"))),
	}
	fragment[0].Validation = []ValidationRule{{
		Predicate: predicate.Field("$.reason").IsUndefinedOrNotInArray(""),
		Message:   message.New("v", "v"),
	}}

	out := Prefix(fragment, fieldpath.MustParse("mother"))

	if got := out[0].ID.String(); got != "mother.reason" {
		t.Fatalf("id = %q", got)
	}
	want := []fieldpath.Path{fieldpath.MustParse("mother.detailsNotAvailable")}
	if diff := cmp.Diff(want, predicate.Paths(out[0].Conditionals[0].Predicate)); diff != "" {
		t.Fatalf("conditional paths (-want +got):\n%s", diff)
	}
	if got := out[0].Validation[0].Predicate.Field.String(); got != "mother.reason" {
		t.Fatalf("validation path = %q", got)
	}
	if got := out[1].Conditionals[0].Predicate.Field.String(); got != "informant.relation" {
		t.Fatalf("absolute path rewritten to %q", got)
	}
	if !fragment[0].ID.IsRelative() {
		t.Fatalf("Prefix mutated the fragment")
	}
}

func TestAddressCountryBranchExclusive(t *testing.T) {
	t.Parallel()

	table, err := countries.ISO().With(countries.Country{Code: "FAR", Name: "Farajaland"})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	fields := Prefix(AddressFields(table, "FAR"), fieldpath.MustParse("child.address"))

	generic := fieldpath.MustParse("child.address.state")
	specific := fieldpath.MustParse("child.address.province")
	find := func(path fieldpath.Path) Field {
		for _, f := range fields {
			if f.ID.Equal(path) {
				return f
			}
		}
		t.Fatalf("field %s not found", path)
		return Field{}
	}
	genericField, specificField := find(generic), find(specific)

	check := func(values mapValues) {
		g := !hidden(t, genericField, values)
		s := !hidden(t, specificField, values)
		if g == s {
			t.Fatalf("exactly one address variant must be visible for %v (generic=%v specific=%v)", values, g, s)
		}
	}

	check(mapValues{})
	for _, code := range table.Codes() {
		check(mapValues{"child.address.country": code})
	}
	if !hidden(t, genericField, mapValues{"child.address.country": "FAR"}) {
		t.Fatalf("generic variant must hide for the home country")
	}
}

func TestComposerBuildValidates(t *testing.T) {
	t.Parallel()

	person := Prefix(PersonFields(nil), fieldpath.MustParse("child"))
	v, err := NewComposer("v1", "birth").
		Label(message.New("event.birth", "Birth")).
		Page("child", message.New("page.child", "Child"), person).
		Page("child", message.Message{}, []Field{textField("child.weight")}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(v.Pages) != 1 || len(v.Pages[0].Fields) != len(person)+1 {
		t.Fatalf("unexpected shape: %d pages", len(v.Pages))
	}

	_, err = NewComposer("v2", "birth").
		Page("child", message.Message{}, []Field{textField("child.reason", Hide(predicate.Field("child.detailsNotAvailabel").IsEqualTo(true)))}).
		Build()
	if !errors.Is(err, ErrUnknownFieldPath) {
		t.Fatalf("expected ErrUnknownFieldPath, got %v", err)
	}
	problems := ConfigErrors(err)
	if len(problems) != 1 || problems[0].Path.String() != "child.detailsNotAvailabel" {
		t.Fatalf("error must identify the offending path: %+v", problems)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()

	v := &Version{
		ID:        "v1",
		EventType: "birth",
		Pages: []Page{{
			ID: "p",
			Fields: []Field{
				textField("a"),
				textField("a"),
				{ID: fieldpath.MustParse("b"), Type: TypeSelect, Label: message.New("b", "b")},
				{ID: fieldpath.MustParse("c"), Type: TypeParagraph, Required: true, Label: message.New("c", "c")},
				textField("$.d"),
				textField("e", Hide(&predicate.Node{Kind: predicate.KindNot})),
				textField("f", Conditional{Type: "SHOW", Predicate: predicate.Always()}),
				{ID: fieldpath.MustParse("documents.proof"), Type: TypeFile, Label: message.New("p", "p")},
				textField("g", Hide(predicate.Field("documents.proof.type").IsEqualTo("PASSPORT"))),
			},
		}},
	}

	err := v.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, sentinel := range []error{ErrDuplicateField, ErrInvalidField, ErrInvalidPredicate} {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected %v in %v", sentinel, err)
		}
	}
	if errors.Is(err, ErrUnknownFieldPath) {
		t.Fatalf("member of a FILE field must resolve: %v", err)
	}
	if got := len(ConfigErrors(err)); got != 6 {
		t.Fatalf("expected 6 problems, got %d: %v", got, err)
	}
}

func TestLoadFSTestdata(t *testing.T) {
	t.Parallel()

	versions, err := LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("expected one version, got %d", len(versions))
	}
	v := versions[0]
	if !v.Active || v.EventType != "birth" || len(v.Pages) != 3 {
		t.Fatalf("unexpected version %+v", v)
	}

	if got := v.Pages[0].Fields[0].ID.String(); got != "child.firstname" {
		t.Fatalf("person fragment not prefixed: %q", got)
	}
	phone, ok := v.Field(fieldpath.MustParse("informant.phone"))
	if !ok {
		t.Fatalf("contact fragment not included")
	}
	if phone.Label.DefaultMessage != "Phone number" {
		t.Fatalf("label not sanitized: %q", phone.Label.DefaultMessage)
	}
	if len(phone.Conditionals) != 1 || !hidden(t, phone, mapValues{"informant.relation": "MOTHER"}) {
		t.Fatalf("include conditionals not grafted: %+v", phone.Conditionals)
	}

	country, _ := v.Field(fieldpath.MustParse("mother.country"))
	if len(country.Options) != countries.ISO().Len() {
		t.Fatalf("countries option source not expanded: %d", len(country.Options))
	}
	province, _ := v.Field(fieldpath.MustParse("mother.province"))
	if !hidden(t, province, mapValues{"mother.country": "GBR"}) || hidden(t, province, mapValues{"mother.country": "FAR"}) {
		t.Fatalf("branch conditionals wrong on province")
	}

	reason, _ := v.Field(fieldpath.MustParse("mother.reason"))
	if !hidden(t, reason, mapValues{}) || hidden(t, reason, mapValues{"mother.detailsNotAvailable": true}) {
		t.Fatalf("shorthand predicate decoded incorrectly: %s", reason.Conditionals[0].Predicate)
	}
}

func TestLoadFSFragmentCycle(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"cycle.yaml": &fstest.MapFile{Data: []byte(`
fragments:
  a:
    fields:
      - include: b
  b:
    fields:
      - include: a
forms:
  - id: v1
    eventType: birth
    pages:
      - id: p
        fields:
          - include: a
`)},
	}
	_, err := LoadFS(fsys)
	if !errors.Is(err, ErrFragmentCycle) {
		t.Fatalf("expected ErrFragmentCycle, got %v", err)
	}
}

func TestLoadFSJSONAndUnknownPath(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"forms/death.json": &fstest.MapFile{Data: []byte(`{
  "forms": [{
    "id": "death-v1",
    "eventType": "death",
    "pages": [{
      "id": "deceased",
      "fields": [
        {"include": "address", "prefix": "deceased.address"},
        {"id": "deceased.cause", "type": "TEXT", "label": {"id": "c", "defaultMessage": "Cause"},
         "conditionals": [{"type": "HIDE", "conditional": {"kind": "isEqualTo", "field": "deceased.mannerOfDeath", "value": "NATURAL"}}]}
      ]
    }]
  }]
}`)},
	}
	_, err := LoadFS(fsys, WithHomeCountry("GBR"))
	if !errors.Is(err, ErrUnknownFieldPath) {
		t.Fatalf("expected ErrUnknownFieldPath, got %v", err)
	}
	problems := ConfigErrors(err)
	if len(problems) != 1 || problems[0].Path.String() != "deceased.mannerOfDeath" {
		t.Fatalf("unexpected problems %+v", problems)
	}
}

func TestRegistryActivation(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	good := &Version{ID: "v1", EventType: "birth", Active: true, Pages: []Page{{ID: "p", Fields: []Field{textField("a")}}}}
	bad := &Version{ID: "v2", EventType: "birth", Pages: []Page{{ID: "p", Fields: []Field{textField("a", Hide(predicate.Field("zz").IsEqualTo(1)))}}}}

	if err := r.Load(good, bad); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := r.Register(good); !errors.Is(err, ErrVersionExists) {
		t.Fatalf("expected ErrVersionExists, got %v", err)
	}
	if err := r.Activate("v2"); !errors.Is(err, ErrUnknownFieldPath) {
		t.Fatalf("invalid version must not activate: %v", err)
	}
	active, err := r.Active("birth")
	if err != nil || active.ID != "v1" {
		t.Fatalf("Active = %v, %v", active, err)
	}

	active.Pages[0].Fields[0].Required = true
	again, _ := r.Active("birth")
	if again.Pages[0].Fields[0].Required {
		t.Fatalf("registry handed out a shared version")
	}

	if _, err := r.Active("death"); !errors.Is(err, ErrNoActiveVersion) {
		t.Fatalf("expected ErrNoActiveVersion, got %v", err)
	}
	if _, err := r.Version("nope"); !errors.Is(err, ErrVersionNotFound) {
		t.Fatalf("expected ErrVersionNotFound, got %v", err)
	}
	if diff := cmp.Diff([]string{"v1", "v2"}, r.Versions()); diff != "" {
		t.Fatalf("versions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"birth"}, r.EventTypes()); diff != "" {
		t.Fatalf("event types (-want +got):\n%s", diff)
	}
}
