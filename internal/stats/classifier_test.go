package stats

import (
	"strings"
	"testing"

	"streakboard/internal/records"
)

var statusSamples = []string{
	"", " ", "approved", "Approved", " APPROVED ", "rejected", "REJECTED", "pending",
	"Pending", "missing", "Missing Invoices", "partially missing", "approved-ish", "unknown",
}

func TestIsSuccessful(t *testing.T) {
	tests := []struct {
		name     string
		category records.Category
		status   string
		expected bool
	}{
		{"Empty", records.Deposits, "", false},
		{"Approved", records.Deposits, "approved", true},
		{"UpperCase", records.Handover, "APPROVED", true},
		{"Padded", records.Invoices, "  Approved ", true},
		{"Pending", records.Deposits, "pending", false},
		{"Rejected", records.Handover, "rejected", false},
		{"MissingInvoice", records.Invoices, "missing invoices", false},
		{"Prefix", records.Deposits, "approved later", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSuccessful(tt.category, tt.status); got != tt.expected {
				t.Errorf("IsSuccessful(%s, %q) = %v, want %v", tt.category, tt.status, got, tt.expected)
			}
		})
	}
}

func TestIsRejected(t *testing.T) {
	tests := []struct {
		name     string
		category records.Category
		status   string
		expected bool
	}{
		{"Empty", records.Deposits, "", false},
		{"Rejected", records.Deposits, "rejected", true},
		{"RejectedUpper", records.Handover, " REJECTED", true},
		{"InvoiceRejected", records.Invoices, "rejected", true},
		{"Pending", records.Deposits, "pending", false},
		{"Approved", records.Invoices, "approved", false},
		{"InvoiceMissing", records.Invoices, "Missing Invoices", true},
		{"InvoiceMissingInside", records.Invoices, "2 missing", true},
		{"DepositMissing", records.Deposits, "missing", false},
		{"HandoverMissing", records.Handover, "missing handover", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRejected(tt.category, tt.status); got != tt.expected {
				t.Errorf("IsRejected(%s, %q) = %v, want %v", tt.category, tt.status, got, tt.expected)
			}
		})
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	for _, c := range records.Categories() {
		for _, s := range statusSamples {
			if IsSuccessful(c, s) != IsSuccessful(c, strings.ToUpper(s)) {
				t.Errorf("IsSuccessful(%s, %q) differs from upper-cased input", c, s)
			}
			if IsRejected(c, s) != IsRejected(c, strings.ToUpper(s)) {
				t.Errorf("IsRejected(%s, %q) differs from upper-cased input", c, s)
			}
		}
	}
}

func TestClassifier_MutuallyExclusive(t *testing.T) {
	for _, c := range records.Categories() {
		for _, s := range statusSamples {
			if IsSuccessful(c, s) && IsRejected(c, s) {
				t.Errorf("status %q is both successful and rejected for %s", s, c)
			}
		}
	}
}

func TestClassifier_UnknownCategory(t *testing.T) {
	for _, c := range []records.Category{"payroll", "deposit", ""} {
		if IsSuccessful(c, "approved") {
			t.Errorf("Expected IsSuccessful(%q, approved) to be false", c)
		}
		if IsRejected(c, "rejected") {
			t.Errorf("Expected IsRejected(%q, rejected) to be false", c)
		}
	}
}

func TestIsOverallSuccessful(t *testing.T) {
	if !IsOverallSuccessful(rec("1", "2024-03-18", "approved", "Approved", "APPROVED")) {
		t.Error("all approved record should be overall successful")
	}
	if IsOverallSuccessful(rec("1", "2024-03-18", "approved", "pending", "approved")) {
		t.Error("pending deposit should break overall success")
	}
	if IsOverallSuccessful(rec("1", "2024-03-18", "approved", "approved", "")) {
		t.Error("missing invoice status should break overall success")
	}
}
