package util

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestParseDateRange_DateOnlyEndIsInclusive(t *testing.T) {
	start, hasStart, endEx, hasEnd, err := ParseDateRange(strPtr("2026-01-01"), strPtr("2026-01-31"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !hasStart || !hasEnd {
		t.Fatalf("hasStart=%v hasEnd=%v", hasStart, hasEnd)
	}
	if start != time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("start=%v", start)
	}
	// whole end day included
	if endEx != time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("endExclusive=%v", endEx)
	}
}

func TestParseDateRange_RFC3339EndIsExclusive(t *testing.T) {
	_, _, endEx, hasEnd, err := ParseDateRange(nil, strPtr("2026-01-31T12:30:00Z"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !hasEnd {
		t.Fatalf("expected hasEnd")
	}
	if endEx != time.Date(2026, 1, 31, 12, 30, 0, 0, time.UTC) {
		t.Fatalf("endExclusive=%v", endEx)
	}
}

func TestParseDateRange_SwapsReversedBounds(t *testing.T) {
	start, _, endEx, _, err := ParseDateRange(strPtr("2026-03-10"), strPtr("2026-03-01"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !start.Before(endEx) {
		t.Fatalf("start=%v not before endExclusive=%v", start, endEx)
	}
}

func TestParseDateRange_InvalidFormat(t *testing.T) {
	if _, _, _, _, err := ParseDateRange(strPtr("01/02/2026"), nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseDateRange_EmptyInputs(t *testing.T) {
	_, hasStart, _, hasEnd, err := ParseDateRange(nil, strPtr("   "))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if hasStart || hasEnd {
		t.Fatalf("expected no bounds")
	}
}
