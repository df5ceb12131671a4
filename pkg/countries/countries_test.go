package countries

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestISOTable(t *testing.T) {
	t.Parallel()

	table := ISO()
	if table.Len() != 249 {
		t.Fatalf("expected 249 ISO entries, got %d", table.Len())
	}
	gbr, ok := table.Lookup("gbr")
	if !ok || gbr.Alpha2 != "GB" {
		t.Fatalf("Lookup(gbr) = %+v, %v", gbr, ok)
	}
	if table.Contains("FAR") {
		t.Fatalf("FAR is not an ISO code")
	}
	codes := table.Codes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted at %d: %q >= %q", i, codes[i-1], codes[i])
		}
	}
}

func TestWithExtendsCopy(t *testing.T) {
	t.Parallel()

	extended, err := ISO().With(Country{Code: "far", Name: "Farajaland"})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	got, ok := extended.Lookup("FAR")
	if !ok {
		t.Fatalf("extended table is missing FAR")
	}
	if diff := cmp.Diff(Country{Code: "FAR", Name: "Farajaland"}, got); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
	if ISO().Contains("FAR") {
		t.Fatalf("With must not mutate the ISO table")
	}
	if extended.Len() != ISO().Len()+1 {
		t.Fatalf("unexpected length %d", extended.Len())
	}
}

func TestNewTableRejectsBadCodes(t *testing.T) {
	t.Parallel()

	if _, err := NewTable(Country{Code: "GB"}); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if _, err := NewTable(Country{Code: "ABC"}, Country{Code: "abc"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
