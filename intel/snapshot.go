// ABOUTME: Immutable input snapshot for one analysis run
// ABOUTME: Applies period windows and ownership scoping before any metric is computed
package intel

import (
	"time"

	"github.com/harperreed/dealscope/models"
)

// Period selects the reporting window ending at the snapshot time.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Start returns the beginning of the period relative to now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodQuarter:
		quarterMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
		return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return now.AddDate(0, 0, -7)
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// Scope restricts a report to a single owner unless the caller is an admin.
type Scope struct {
	IsAdmin bool
	UserID  string
}

// Snapshot holds the record collections one analysis run operates over.
// Nothing mutates it after construction; every calculator reads the same data.
type Snapshot struct {
	Opportunities []models.Opportunity
	FollowUps     []models.FollowUp
	Activities    []models.Activity
	Contacts      []models.Contact
	Companies     []models.Company
	Quotations    []models.Quotation
	Now           time.Time
}

// Filter returns a new snapshot containing only records inside the period
// window and, for non-admin scopes, only records owned by the scope's user.
// Contacts and companies carry no owner and are never scoped by user.
func (s *Snapshot) Filter(period Period, scope Scope) *Snapshot {
	start := period.Start(s.Now)
	out := &Snapshot{Now: s.Now}

	for _, o := range s.Opportunities {
		if !inWindow(o.CreatedAt, start, s.Now) {
			continue
		}
		if !scope.IsAdmin && o.OwnerID != scope.UserID {
			continue
		}
		out.Opportunities = append(out.Opportunities, o)
	}

	for _, f := range s.FollowUps {
		if !inWindow(f.FollowUpDate, start, s.Now) {
			continue
		}
		if !scope.IsAdmin && f.AssignedTo != scope.UserID {
			continue
		}
		out.FollowUps = append(out.FollowUps, f)
	}

	for _, a := range s.Activities {
		if !inWindow(a.OccurredAt, start, s.Now) {
			continue
		}
		if !scope.IsAdmin && a.OwnerID != scope.UserID {
			continue
		}
		out.Activities = append(out.Activities, a)
	}

	for _, c := range s.Contacts {
		if !inWindow(c.CreatedAt, start, s.Now) {
			continue
		}
		out.Contacts = append(out.Contacts, c)
	}

	for _, c := range s.Companies {
		if !inWindow(c.CreatedAt, start, s.Now) {
			continue
		}
		out.Companies = append(out.Companies, c)
	}

	for _, q := range s.Quotations {
		if !inWindow(q.CreatedAt, start, s.Now) {
			continue
		}
		if !scope.IsAdmin && q.OwnerID != scope.UserID {
			continue
		}
		out.Quotations = append(out.Quotations, q)
	}

	return out
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// daysSince returns fractional days between then and now, never negative.
func daysSince(then, now time.Time) float64 {
	d := now.Sub(then).Hours() / 24
	if d < 0 {
		return 0
	}
	return d
}

// daysBetween returns whole days from a to b, truncated toward zero.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
