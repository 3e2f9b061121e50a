package testutil

import (
	"testing"

	"github.com/aidanlsb/rtend/internal/store"
)

// AssertCount fails the test if the table of kind does not hold n rows.
func (p *TestProfile) AssertCount(kind store.Kind, n int64) {
	p.t.Helper()
	db := p.Open()
	got, err := db.Count(kind)
	if err != nil {
		p.t.Fatalf("count %s: %v", kind, err)
	}
	if got != n {
		p.t.Errorf("expected %d %s rows, got %d", n, kind, got)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

// AssertResultCount checks the meta count of a listing.
func (r *CLIResult) AssertResultCount(t *testing.T, expected int) {
	t.Helper()
	got := 0
	if r.Meta != nil {
		got = r.Meta.Count
	}
	if got != expected {
		t.Errorf("expected %d results, got %d\nRaw: %s", expected, got, r.RawJSON)
	}
}
