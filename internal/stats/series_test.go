package stats

import (
	"testing"
	"time"

	"streakboard/internal/records"
)

func TestComputeSuccessRateSeries_Scenario(t *testing.T) {
	recs := []records.Record{
		rec("1", "2024-03-19", "approved", "rejected", "approved"),
		rec("1", "2024-03-18", "approved", "approved", "approved"),
	}

	got := ComputeSuccessRateSeries(recs)

	expected := []SubmissionHistoryPoint{
		{Date: "2024-03-18", SuccessRate: 100},
		{Date: "2024-03-19", SuccessRate: 0},
	}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d points, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], expected[i])
		}
	}
}

func TestComputeSuccessRateSeries_GroupsByDate(t *testing.T) {
	recs := []records.Record{
		rec("1", "2024-03-20", "approved", "approved", "approved"),
		rec("2", "2024-03-20", "approved", "approved", "missing invoices"),
		rec("3", "2024-03-20", "approved", "approved", "approved"),
		rec("4", "2024-03-20", "pending", "approved", "approved"),
		rec("1", "2024-03-22", "approved", "approved", "approved"),
	}

	got := ComputeSuccessRateSeries(recs)

	if len(got) != 2 {
		t.Fatalf("Expected 2 points (no zero-filled 2024-03-21), got %d", len(got))
	}
	if got[0].Date != "2024-03-20" || got[0].SuccessRate != 50 {
		t.Errorf("unexpected first point %+v", got[0])
	}
	if got[1].Date != "2024-03-22" || got[1].SuccessRate != 100 {
		t.Errorf("unexpected second point %+v", got[1])
	}
}

func TestComputeSuccessRateSeries_TimeOfDayIgnored(t *testing.T) {
	morning := records.Record{BranchID: "1", Date: time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC),
		HandoverStatus: "approved", DepositStatus: "approved", InvoiceStatus: "approved"}
	evening := records.Record{BranchID: "2", Date: time.Date(2024, 3, 18, 21, 30, 0, 0, time.UTC)}

	got := ComputeSuccessRateSeries([]records.Record{evening, morning})
	if len(got) != 1 {
		t.Fatalf("Expected a single day bucket, got %+v", got)
	}
	if got[0].SuccessRate != 50 {
		t.Errorf("Expected 50%%, got %v", got[0].SuccessRate)
	}
}

func TestComputeSuccessRateSeries_Bounds(t *testing.T) {
	statuses := []string{"approved", "rejected", "pending", "", "APPROVED"}
	var recs []records.Record
	for i := 0; i < 40; i++ {
		r := records.Record{
			BranchID:       "1",
			Date:           lastDay.AddDate(0, 0, -(i % 7)),
			HandoverStatus: statuses[i%len(statuses)],
			DepositStatus:  statuses[(i+1)%len(statuses)],
			InvoiceStatus:  statuses[(i*3)%len(statuses)],
		}
		recs = append(recs, r)
	}

	points := ComputeSuccessRateSeries(recs)
	if len(points) != 7 {
		t.Fatalf("Expected 7 distinct dates, got %d", len(points))
	}
	for i, p := range points {
		if p.SuccessRate < 0 || p.SuccessRate > 100 {
			t.Errorf("success rate out of range: %+v", p)
		}
		if i > 0 && points[i-1].Date >= p.Date {
			t.Errorf("series not ascending at %d: %s >= %s", i, points[i-1].Date, p.Date)
		}
	}
}

func TestComputeSuccessRateSeries_EmptyAndUndated(t *testing.T) {
	if got := ComputeSuccessRateSeries(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil series, got %#v", got)
	}

	undated := []records.Record{{BranchID: "1", HandoverStatus: "approved", DepositStatus: "approved", InvoiceStatus: "approved"}}
	if got := ComputeSuccessRateSeries(undated); len(got) != 0 {
		t.Errorf("undated records must not produce points, got %+v", got)
	}
}

func TestComputeSuccessRateSeries_MixedZonesAscending(t *testing.T) {
	east := time.FixedZone("UTC+14", 14*60*60)
	west := time.FixedZone("UTC-12", -12*60*60)
	recs := []records.Record{
		{BranchID: "1", Date: time.Date(2024, 3, 19, 1, 0, 0, 0, east),
			HandoverStatus: "approved", DepositStatus: "approved", InvoiceStatus: "approved"},
		{BranchID: "1", Date: time.Date(2024, 3, 18, 20, 0, 0, 0, west)},
	}

	got := ComputeSuccessRateSeries(recs)

	expected := []SubmissionHistoryPoint{
		{Date: "2024-03-18", SuccessRate: 0},
		{Date: "2024-03-19", SuccessRate: 100},
	}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d points, got %+v", len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], expected[i])
		}
	}
}
