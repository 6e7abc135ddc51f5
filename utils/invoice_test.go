package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateInvoiceNo(t *testing.T) {
	got := GenerateInvoiceNo("INV")

	parts := strings.Split(got, "-")
	if len(parts) != 3 {
		t.Fatalf("unexpected invoice shape: %q", got)
	}
	if parts[0] != "INV" {
		t.Errorf("expected prefix INV, got %q", parts[0])
	}
	if parts[1] != time.Now().Format("20060102") {
		t.Errorf("expected today's date segment, got %q", parts[1])
	}
	if len(parts[2]) != 8 {
		t.Errorf("expected 8-character suffix, got %q", parts[2])
	}
}

func TestGenerateInvoiceNoIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		no := GenerateInvoiceNo("PUR")
		if seen[no] {
			t.Fatalf("duplicate invoice number %q", no)
		}
		seen[no] = true
	}
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2025-08-14")
	if err != nil {
		t.Fatalf("failed to parse day format: %v", err)
	}
	if day.Year() != 2025 || day.Month() != time.August || day.Day() != 14 {
		t.Errorf("unexpected parsed date: %v", day)
	}

	stamp, err := ParseDate("2025-08-14T09:30:00Z")
	if err != nil {
		t.Fatalf("failed to parse RFC3339: %v", err)
	}
	if stamp.Hour() != 9 || stamp.Minute() != 30 {
		t.Errorf("unexpected parsed timestamp: %v", stamp)
	}

	if _, err := ParseDate("14/08/2025"); err == nil {
		t.Error("expected unsupported format to fail")
	}

	now, err := ParseDate("")
	if err != nil {
		t.Fatalf("empty date should default to now: %v", err)
	}
	if time.Since(now) > time.Minute {
		t.Errorf("expected empty date to resolve near now, got %v", now)
	}
}
