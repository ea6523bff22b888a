// Package reminder nudges senders who stalled mid-conversation after their
// record was made durable. Sends only go out during the configured business
// window; outside it the sweep is a no-op and the backlog waits.
package reminder

import "time"

// ActiveWindow is a daily send window in a fixed timezone. Start is
// inclusive, End exclusive, both whole hours. Start == End means always open.
type ActiveWindow struct {
	Start int
	End   int
	Loc   *time.Location
}

// Contains reports whether now falls inside the window. A window with
// End < Start wraps past midnight, e.g. 22 to 6.
func (w ActiveWindow) Contains(now time.Time) bool {
	if w.Start == w.End {
		return true
	}

	loc := w.Loc
	if loc == nil {
		loc = time.UTC
	}

	hour := now.In(loc).Hour()
	if w.Start < w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}
