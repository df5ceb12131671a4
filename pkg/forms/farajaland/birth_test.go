package farajaland

import (
	"testing"
	"time"

	"github.com/goliatone/go-formcond/pkg/action"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/resolver"
	"github.com/goliatone/go-formcond/pkg/valuestore"
)

var now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func resolve(t *testing.T, values map[string]any, history action.History) resolver.Result {
	t.Helper()
	store, err := valuestore.FromMap(values)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	r := resolver.New(resolver.WithClock(func() time.Time { return now }))
	return r.Resolve(Birth(), store.Snapshot(), history)
}

func state(t *testing.T, res resolver.Result, path string) resolver.FieldState {
	t.Helper()
	s, ok := res.Field(fieldpath.MustParse(path))
	if !ok {
		t.Fatalf("field %s not in form", path)
	}
	return s
}

func TestBirthFormValidates(t *testing.T) {
	t.Parallel()

	v := Birth()
	if err := v.Validate(); err != nil {
		t.Fatalf("birth form invalid: %v", err)
	}
	reg := form.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	active, err := reg.Active(EventBirth)
	if err != nil || active.ID != BirthVersion || !active.Active {
		t.Fatalf("Active = %v, %v", active, err)
	}
}

func TestMotherReasonScenario(t *testing.T) {
	t.Parallel()

	res := resolve(t, map[string]any{"mother.detailsNotAvailable": true}, nil)
	reason := state(t, res, "mother.reason")
	if !reason.Visible || !reason.RequiredNow {
		t.Fatalf("mother.reason must be visible and required: %+v", reason)
	}
	if len(reason.Errors) != 1 || reason.Errors[0] != resolver.MsgRequired {
		t.Fatalf("expected the required error, got %v", reason.Errors)
	}

	res = resolve(t, map[string]any{"mother.detailsNotAvailable": true, "mother.reason": "Unknown whereabouts"}, nil)
	if errs := state(t, res, "mother.reason").Errors; len(errs) != 0 {
		t.Fatalf("answered reason still errors: %v", errs)
	}
	if state(t, res, "mother.firstname").Visible {
		t.Fatalf("mother's identity must hide when details are not available")
	}
}

func TestInformantMotherScenario(t *testing.T) {
	t.Parallel()

	for _, stored := range []any{nil, true, false} {
		values := map[string]any{"informant.relation": RelationMother}
		if stored != nil {
			values["mother.detailsNotAvailable"] = stored
		}
		s := state(t, resolve(t, values, nil), "mother.detailsNotAvailable")
		if s.Visible {
			t.Fatalf("stored %v: mother.detailsNotAvailable must be hidden", stored)
		}
	}
}

// The two "details not available" checkboxes look mirrored but follow
// different policies; each gets its own table.
func TestDetailsNotAvailablePolicies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		relation      any
		motherVisible bool
		fatherVisible bool
	}{
		{relation: nil, motherVisible: true, fatherVisible: false},
		{relation: RelationMother, motherVisible: false, fatherVisible: true},
		{relation: RelationFather, motherVisible: true, fatherVisible: false},
		{relation: RelationGrandmother, motherVisible: true, fatherVisible: true},
		{relation: RelationSomeoneElse, motherVisible: true, fatherVisible: true},
	}
	for _, tc := range cases {
		values := map[string]any{}
		if tc.relation != nil {
			values["informant.relation"] = tc.relation
		}
		res := resolve(t, values, nil)
		if got := state(t, res, "mother.detailsNotAvailable").Visible; got != tc.motherVisible {
			t.Fatalf("relation %v: mother checkbox visible = %v, want %v", tc.relation, got, tc.motherVisible)
		}
		if got := state(t, res, "father.detailsNotAvailable").Visible; got != tc.fatherVisible {
			t.Fatalf("relation %v: father checkbox visible = %v, want %v", tc.relation, got, tc.fatherVisible)
		}
	}
}

func TestAddressCountryBranchIsExclusive(t *testing.T) {
	t.Parallel()

	generic := []string{"state", "district2", "cityOrTown", "addressLine1", "postcodeOrZip"}
	specific := []string{"province", "district"}

	anyVisible := func(res resolver.Result, prefix string, names []string) (visible, hidden bool) {
		for _, name := range names {
			if state(t, res, prefix+"."+name).Visible {
				visible = true
			} else {
				hidden = true
			}
		}
		return visible, hidden
	}

	check := func(values map[string]any, prefix string) {
		res := resolve(t, values, nil)
		gVisible, gHidden := anyVisible(res, prefix, generic)
		sVisible, sHidden := anyVisible(res, prefix, specific)
		if gVisible && gHidden || sVisible && sHidden {
			t.Fatalf("%v: variant partially visible", values)
		}
		if gVisible == sVisible {
			t.Fatalf("%v: exactly one variant must be visible (generic=%v specific=%v)", values, gVisible, sVisible)
		}
	}

	check(map[string]any{}, "mother.address")
	for _, code := range Countries().Codes() {
		check(map[string]any{"mother.address.country": code}, "mother.address")
		check(map[string]any{"informant.relation": RelationSomeoneElse, "informant.address.country": code}, "informant.address")
	}
}

func TestFarajalandSettlementFields(t *testing.T) {
	t.Parallel()

	urban := resolve(t, map[string]any{"mother.address.country": CountryCode, "mother.address.urbanOrRural": "URBAN"}, nil)
	if !state(t, urban, "mother.address.town").Visible || state(t, urban, "mother.address.village").Visible {
		t.Fatalf("urban address must show town only")
	}
	rural := resolve(t, map[string]any{"mother.address.country": CountryCode, "mother.address.urbanOrRural": "RURAL"}, nil)
	if state(t, rural, "mother.address.town").Visible || !state(t, rural, "mother.address.village").Visible {
		t.Fatalf("rural address must show village only")
	}
}

func TestChildPlaceOfBirth(t *testing.T) {
	t.Parallel()

	res := resolve(t, map[string]any{}, nil)
	if state(t, res, "child.birthLocation").Visible || state(t, res, "child.address.country").Visible {
		t.Fatalf("place of birth details must wait for child.placeOfBirth")
	}
	res = resolve(t, map[string]any{"child.placeOfBirth": PlaceHealthFacility}, nil)
	if !state(t, res, "child.birthLocation").Visible || state(t, res, "child.address.country").Visible {
		t.Fatalf("health facility must show the facility picker only")
	}
	res = resolve(t, map[string]any{"child.placeOfBirth": PlacePrivateHome, "child.address.country": "GBR"}, nil)
	if state(t, res, "child.birthLocation").Visible || !state(t, res, "child.address.state").Visible || state(t, res, "child.address.province").Visible {
		t.Fatalf("private home abroad must show the international address")
	}
}

func TestFatherAddress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		values  map[string]any
		visible bool
	}{
		{name: "unanswered", values: map[string]any{}, visible: false},
		{name: "same as mother", values: map[string]any{"father.addressSameAsMother": Yes}, visible: false},
		{name: "different", values: map[string]any{"father.addressSameAsMother": No}, visible: true},
		{name: "mother missing", values: map[string]any{"mother.detailsNotAvailable": true, "father.addressSameAsMother": Yes}, visible: true},
		{name: "father missing", values: map[string]any{"father.detailsNotAvailable": true, "father.addressSameAsMother": No}, visible: false},
	}
	for _, tc := range cases {
		res := resolve(t, tc.values, nil)
		if got := state(t, res, "father.address.country").Visible; got != tc.visible {
			t.Fatalf("%s: father.address.country visible = %v, want %v", tc.name, got, tc.visible)
		}
	}
	res := resolve(t, map[string]any{"mother.detailsNotAvailable": true}, nil)
	if state(t, res, "father.addressSameAsMother").Visible {
		t.Fatalf("same-as-mother question must hide without mother details")
	}
}

func TestCorrectionReasonNeedsRegistration(t *testing.T) {
	t.Parallel()

	declared := action.History{{Type: action.Declare, CreatedAt: now.Add(-time.Hour)}}
	if state(t, resolve(t, nil, declared), "correction.reason").Visible {
		t.Fatalf("correction reason must hide before registration")
	}
	registered := append(declared, action.Action{Type: action.Register, CreatedAt: now})
	s := state(t, resolve(t, nil, registered), "correction.reason")
	if !s.Visible || !s.RequiredNow {
		t.Fatalf("correction reason must be required after registration: %+v", s)
	}
}

func TestUnconditionalFieldsAlwaysVisible(t *testing.T) {
	t.Parallel()

	v := Birth()
	stores := []map[string]any{
		{},
		{"informant.relation": RelationMother, "mother.detailsNotAvailable": true, "child.placeOfBirth": PlaceOther},
		{"father.detailsNotAvailable": true, "mother.address.country": "KEN"},
	}
	for _, values := range stores {
		res := resolve(t, values, action.History{{Type: action.Register}})
		for _, f := range v.Fields() {
			if len(f.Conditionals) > 0 {
				continue
			}
			if !state(t, res, f.ID.String()).Visible {
				t.Fatalf("%s has no conditionals but resolved hidden for %v", f.ID, values)
			}
		}
	}
}

func TestDefaultsPrefill(t *testing.T) {
	t.Parallel()

	v := Birth()
	store := valuestore.New()
	n, err := store.Prefill(v.Defaults())
	if err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if n == 0 {
		t.Fatalf("expected defaults to be written")
	}
	got, ok := store.Get(fieldpath.MustParse("mother.address.country"))
	if !ok || got != CountryCode {
		t.Fatalf("mother.address.country default = %v, %v", got, ok)
	}
}
