package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
	"github.com/goliatone/go-formcond/pkg/resolver"
	"github.com/goliatone/go-formcond/pkg/valuestore"
)

func motherForm(t *testing.T) *form.Version {
	t.Helper()
	missing := predicate.Field("mother.detailsNotAvailable")
	fields := []form.Field{
		{ID: fieldpath.MustParse("mother.detailsNotAvailable"), Type: form.TypeCheckbox, Label: message.New("mother.na", "Mother's details are not available")},
		{
			ID:           fieldpath.MustParse("mother.reason"),
			Type:         form.TypeText,
			Required:     true,
			Label:        message.New("mother.reason", "Reason"),
			Conditionals: []form.Conditional{form.Hide(predicate.Not(missing.IsEqualTo(true)))},
		},
		{
			ID:           fieldpath.MustParse("mother.firstname"),
			Type:         form.TypeText,
			Required:     true,
			Label:        message.New("mother.firstname", "First name"),
			Conditionals: []form.Conditional{form.Hide(missing.IsEqualTo(true))},
		},
	}
	return form.NewComposer("mother-v1", "birth").
		Label(message.New("form.birth", "Birth declaration")).
		Page("mother", message.New("page.mother", "Mother"), fields).
		MustBuild()
}

func resolve(t *testing.T, v *form.Version, values map[string]any) resolver.Result {
	t.Helper()
	store, err := valuestore.FromMap(values)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return resolver.New().Resolve(v, store.Snapshot(), nil)
}

func TestBuildLocalizesLabelsAndErrors(t *testing.T) {
	t.Parallel()

	catalog := message.NewCatalog()
	catalog.Add("fr", map[string]string{
		"form.birth":    "Déclaration de naissance",
		"mother.reason": "Motif",
		"form.required": "Obligatoire",
	})
	r, err := NewRenderer(WithLocale("fr"), WithTranslator(catalog))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	v := motherForm(t)
	rep := r.Build(v, resolve(t, v, map[string]any{"mother.detailsNotAvailable": true}))

	if rep.Title != "Déclaration de naissance" || rep.Valid || rep.Blocking != 1 {
		t.Fatalf("unexpected summary %+v", rep)
	}
	want := []Field{
		{Path: "mother.detailsNotAvailable", Label: "Mother's details are not available", Type: "CHECKBOX", Visible: true},
		{Path: "mother.reason", Label: "Motif", Type: "TEXT", Visible: true, Required: true, Errors: []string{"Obligatoire"}},
		{Path: "mother.firstname", Label: "First name", Type: "TEXT"},
	}
	if diff := cmp.Diff(want, rep.Fields); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}

func TestTextRendering(t *testing.T) {
	t.Parallel()

	v := motherForm(t)
	res := resolve(t, v, map[string]any{"mother.firstname": "Ada"})

	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Text(&buf, r.Build(v, res)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Birth declaration [mother-v1]",
		"- mother.firstname *: First name",
		"Mother's details are not available",
		"ready to submit",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "mother.reason") {
		t.Fatalf("hidden field rendered without WithHidden:\n%s", out)
	}

	r, err = NewRenderer(WithHidden(true))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	buf.Reset()
	if err := r.Text(&buf, r.Build(v, res)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(buf.String(), "~ mother.reason (hidden)") {
		t.Fatalf("hidden field missing:\n%s", buf.String())
	}
}

func TestJSONAndCustomTemplate(t *testing.T) {
	t.Parallel()

	v := motherForm(t)
	r, err := NewRenderer(WithTemplate("{{ report.Version }}:{{ report.Blocking }}"))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	rep := r.Build(v, resolve(t, v, nil))

	var buf bytes.Buffer
	if err := r.Text(&buf, rep); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if buf.String() != "mother-v1:1" {
		t.Fatalf("custom template output %q", buf.String())
	}

	buf.Reset()
	if err := r.JSON(&buf, rep); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(rep, decoded); diff != "" {
		t.Fatalf("json round trip (-want +got):\n%s", diff)
	}

	if _, err := NewRenderer(WithTemplate("{% if %}")); err == nil {
		t.Fatalf("expected compile error")
	}
}
