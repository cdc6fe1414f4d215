package stats

import (
	"fmt"
	"time"

	"streakboard/internal/records"
)

var lastDay = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

// history builds one record per status for a category, newest first: statuses[0]
// lands on lastDay, statuses[1] the day before, and so on.
func history(c records.Category, statuses ...string) []records.Record {
	recs := make([]records.Record, 0, len(statuses))
	for i, s := range statuses {
		r := records.Record{
			ID:       fmt.Sprintf("R%d", i+1),
			BranchID: "1",
			Date:     lastDay.AddDate(0, 0, -i),
		}
		switch c {
		case records.Handover:
			r.HandoverStatus = s
		case records.Deposits:
			r.DepositStatus = s
		case records.Invoices:
			r.InvoiceStatus = s
		}
		recs = append(recs, r)
	}
	return recs
}

func day(s string) time.Time {
	d, err := records.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rec(branchID, date, handover, deposit, invoice string) records.Record {
	return records.Record{
		ID:             branchID + "-" + date,
		BranchID:       branchID,
		Date:           day(date),
		HandoverStatus: handover,
		DepositStatus:  deposit,
		InvoiceStatus:  invoice,
	}
}
