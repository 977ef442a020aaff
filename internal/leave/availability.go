package leave

import "time"

// annualLeaveLimit is the fixed cap the availability checker budgets
// against. It is intentionally separate from the tenure entitlement on
// Person; the cap is policy, the entitlement is seniority.
const annualLeaveLimit = 20

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// usedDaysInYear sums the day counts of approved requests against the
// calendar year of the query start. Each request is clipped to
// [Jan 1, Dec 31] of that year. A request lying entirely in an adjacent
// year contributes nothing even if it overlaps the query range.
func usedDaysInYear(approved []LeaveRequest, year int) int {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	total := 0
	for _, r := range approved {
		if r.StartDate.Year() != year && r.EndDate.Year() != year {
			continue
		}
		clipStart := r.StartDate
		if clipStart.Before(yearStart) {
			clipStart = yearStart
		}
		clipEnd := r.EndDate
		if clipEnd.After(yearEnd) {
			clipEnd = yearEnd
		}
		total += daysInclusive(clipStart, clipEnd)
	}
	return total
}
