package stats

import (
	"strings"

	"streakboard/internal/records"
)

const (
	statusApproved = "approved"
	statusRejected = "rejected"
	statusMissing  = "missing"
)

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsSuccessful reports whether a status counts as an approval.
// Approval is the only success state and is the same for every category.
// A category outside the known set never classifies.
func IsSuccessful(c records.Category, status string) bool {
	if c.Validate() != nil {
		return false
	}
	return normalizeStatus(status) == statusApproved
}

// IsRejected reports whether a status is an explicit failure for the category.
// Invoices fail with any status mentioning "missing"; everything else only with "rejected".
// An empty or pending status is neither successful nor rejected, and so is any
// status under an unknown category.
func IsRejected(c records.Category, status string) bool {
	s := normalizeStatus(status)
	if s == "" || c.Validate() != nil {
		return false
	}
	if s == statusRejected {
		return true
	}
	return c == records.Invoices && strings.Contains(s, statusMissing)
}

// IsOverallSuccessful reports whether all three categories of a record are approved.
func IsOverallSuccessful(r records.Record) bool {
	for _, c := range records.Categories() {
		if !IsSuccessful(c, r.Status(c)) {
			return false
		}
	}
	return true
}
