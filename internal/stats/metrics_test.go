package stats

import (
	"errors"
	"testing"

	"streakboard/internal/records"
)

func TestComputeDashboardMetrics_DepositScenario(t *testing.T) {
	recs := history(records.Deposits, "approved", "approved", "pending", "rejected")

	metrics := ComputeDashboardMetrics(recs)

	expected := CategoryMetrics{Total: 4, Approved: 2, Rejected: 1, CurrentStreak: 2, LongestStreak: 2}
	if metrics.Deposits != expected {
		t.Errorf("deposits = %+v, want %+v", metrics.Deposits, expected)
	}

	// Handover and invoices are empty on every record: counted, never classified.
	for _, c := range []records.Category{records.Handover, records.Invoices} {
		m := metrics.For(c)
		if m.Total != 4 || m.Approved != 0 || m.Rejected != 0 || m.CurrentStreak != 0 {
			t.Errorf("%s metrics = %+v", c, m)
		}
	}
}

func TestComputeDashboardMetrics_Empty(t *testing.T) {
	metrics := ComputeDashboardMetrics(nil)

	for _, c := range records.Categories() {
		if m := metrics.For(c); m != (CategoryMetrics{}) {
			t.Errorf("expected zero metrics for %s, got %+v", c, m)
		}
	}
}

func TestComputeCategoryMetrics_InvoiceMissing(t *testing.T) {
	recs := history(records.Invoices, "approved", "Missing invoices", "rejected", "pending", "")

	m, err := ComputeCategoryMetrics(recs, records.Invoices)
	if err != nil {
		t.Fatal(err)
	}

	if m.Total != 5 {
		t.Errorf("Expected total 5, got %d", m.Total)
	}
	if m.Approved != 1 {
		t.Errorf("Expected 1 approved, got %d", m.Approved)
	}
	if m.Rejected != 2 {
		t.Errorf("Expected 2 rejected (missing + rejected), got %d", m.Rejected)
	}
	if m.CurrentStreak != 1 || m.LongestStreak != 1 {
		t.Errorf("Expected 1/1 streak, got %d/%d", m.CurrentStreak, m.LongestStreak)
	}
}

func TestComputeCategoryMetrics_PendingIsNotRejected(t *testing.T) {
	recs := history(records.Handover, "pending", "pending", "approved")

	m, _ := ComputeCategoryMetrics(recs, records.Handover)
	if m.Rejected != 0 {
		t.Errorf("pending must not count as rejected, got %d", m.Rejected)
	}
	if m.Approved != 1 {
		t.Errorf("Expected 1 approved, got %d", m.Approved)
	}
}

func TestComputeCategoryMetrics_Consistency(t *testing.T) {
	inputs := [][]string{
		{},
		{"approved"},
		{"rejected", "pending", "", "missing"},
		{"approved", "rejected", "approved", "Missing Invoices", "APPROVED"},
	}

	for _, statuses := range inputs {
		for _, c := range records.Categories() {
			m, err := ComputeCategoryMetrics(history(c, statuses...), c)
			if err != nil {
				t.Fatal(err)
			}
			if m.Approved+m.Rejected > m.Total {
				t.Errorf("%s %v: approved %d + rejected %d > total %d", c, statuses, m.Approved, m.Rejected, m.Total)
			}
			if m.LongestStreak < m.CurrentStreak {
				t.Errorf("%s %v: longest %d < current %d", c, statuses, m.LongestStreak, m.CurrentStreak)
			}
		}
	}
}

func TestComputeCategoryMetrics_UnknownCategory(t *testing.T) {
	_, err := ComputeCategoryMetrics(nil, records.Category("payroll"))
	if !errors.Is(err, records.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCategoryMetrics_SuccessRate(t *testing.T) {
	tests := []struct {
		name     string
		metrics  CategoryMetrics
		expected float64
	}{
		{"Empty", CategoryMetrics{}, 0},
		{"Half", CategoryMetrics{Total: 4, Approved: 2}, 50},
		{"All", CategoryMetrics{Total: 3, Approved: 3}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.metrics.SuccessRate(); got != tt.expected {
				t.Errorf("SuccessRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}
