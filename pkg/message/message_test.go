package message

import (
	"errors"
	"testing"
	"testing/fstest"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizeFallbacks(t *testing.T) {
	t.Parallel()

	m := New("form.required", "Required for registration")

	if got := Localize("fr", m, stubTranslator{"form.required": "Obligatoire"}, nil); got != "Obligatoire" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := Localize("fr", m, stubTranslator{}, nil); got != "Required for registration" {
		t.Fatalf("expected default message fallback, got %q", got)
	}
	if got := Localize("fr", Message{ID: "only.id"}, nil, nil); got != "only.id" {
		t.Fatalf("expected id fallback, got %q", got)
	}

	var seen error
	got := Localize("fr", m, nil, func(_, key string, _ []any, err error) string {
		seen = err
		return "<" + key + ">"
	})
	if got != "<form.required>" || !errors.Is(seen, ErrMissingTranslator) {
		t.Fatalf("unexpected missing handler result %q / %v", got, seen)
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	t.Parallel()

	got := Sanitize(Message{
		ID:             " field.mother.reason ",
		DefaultMessage: `<b>Mother's</b> details <script>alert(1)</script>unavailable`,
	})
	if got.ID != "field.mother.reason" {
		t.Fatalf("id not trimmed: %q", got.ID)
	}
	if got.DefaultMessage != "Mother's details unavailable" {
		t.Fatalf("unexpected sanitized text %q", got.DefaultMessage)
	}
}

func TestLoadCatalogFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en.yaml":   {Data: []byte("en:\n  form.required: Required\n  greeting: Hello {name}\n")},
		"fr.json":   {Data: []byte(`{"fr":{"form.required":"Obligatoire"}}`)},
		"notes.txt": {Data: []byte("ignored")},
	}

	catalog, err := LoadCatalogFS(fsys)
	if err != nil {
		t.Fatalf("LoadCatalogFS: %v", err)
	}
	if got, _ := catalog.Translate("FR", "form.required"); got != "Obligatoire" {
		t.Fatalf("unexpected fr translation %q", got)
	}
	got, err := catalog.Translate("en", "greeting", map[string]any{"name": "Ada"})
	if err != nil || got != "Hello Ada" {
		t.Fatalf("unexpected interpolation %q (%v)", got, err)
	}
	if _, err := catalog.Translate("en", "missing"); err == nil {
		t.Fatalf("expected missing translation error")
	}
}

func TestLoadCatalogFSRejectsEmptyFile(t *testing.T) {
	t.Parallel()

	_, err := LoadCatalogFS(fstest.MapFS{"en.yaml": {Data: []byte("   ")}})
	if err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}
