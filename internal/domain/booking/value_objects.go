package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateRange = errors.New("return date must be after pickup date")

// DateLayout is the wire format for calendar dates. Pickup and return times of
// day exist elsewhere in the rental flow but never participate in availability
// or pricing arithmetic.
const DateLayout = "2006-01-02"

// DateRange is a half-open calendar interval [pickup, return): a return on day
// D and a pickup on day D do not conflict, so same-day turnover is allowed.
type DateRange struct {
	pickup time.Time
	ret    time.Time
}

func NewDateRange(pickup, ret time.Time) (DateRange, error) {
	pickup = truncateToDate(pickup)
	ret = truncateToDate(ret)
	if !ret.After(pickup) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{pickup: pickup, ret: ret}, nil
}

// DateRangeOf builds a range without ordering validation. Used when
// reconstructing persisted bookings and by the pricing minimum-day rule, which
// floors a degenerate range at one rental day instead of rejecting it.
func DateRangeOf(pickup, ret time.Time) DateRange {
	return DateRange{pickup: truncateToDate(pickup), ret: truncateToDate(ret)}
}

func ParseDateRange(pickup, ret string) (DateRange, error) {
	p, err := time.ParseInLocation(DateLayout, pickup, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid pickup date %q: %w", pickup, err)
	}
	r, err := time.ParseInLocation(DateLayout, ret, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid return date %q: %w", ret, err)
	}
	return NewDateRange(p, r)
}

func (d DateRange) Pickup() time.Time { return d.pickup }
func (d DateRange) Return() time.Time { return d.ret }

// Days is the chargeable rental length, floored at one day. A same-day range
// still rents for a full day.
func (d DateRange) Days() int {
	days := int(d.ret.Sub(d.pickup).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Overlaps applies the standard half-open interval intersection test:
// [a1, a2) and [b1, b2) overlap iff a1 < b2 && a2 > b1.
func (d DateRange) Overlaps(other DateRange) bool {
	return d.pickup.Before(other.ret) && d.ret.After(other.pickup)
}

// ContainsWeekend reports whether any day in [pickup, return) is a Saturday or
// Sunday.
func (d DateRange) ContainsWeekend() bool {
	for day := d.pickup; day.Before(d.ret); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	return false
}

func (d DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", d.pickup.Format(DateLayout), d.ret.Format(DateLayout))
}

func truncateToDate(t time.Time) time.Time {
	y, m, day := t.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}
