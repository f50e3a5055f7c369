package vehicle

import (
	"time"

	"rentfleet/internal/domain/booking"
)

type RuleKind string

// Closed set of rule kinds with real behavior. The kinds are a tagged variant,
// not an open string: anything else is rejected at construction.
const (
	RuleWeekend   RuleKind = "weekend"
	RuleDateRange RuleKind = "date_range"
)

func (k RuleKind) IsValid() bool {
	switch k {
	case RuleWeekend, RuleDateRange:
		return true
	default:
		return false
	}
}

// RateRule is a per-day surcharge attached to a vehicle. A weekend rule
// applies when any day of the stay falls on Saturday or Sunday; a date_range
// rule applies when its window overlaps the stay (half-open on both sides).
type RateRule struct {
	kind            RuleKind
	extraDailyCents int64
	start           time.Time
	end             time.Time
}

func NewWeekendRule(extraDailyCents int64) RateRule {
	return RateRule{kind: RuleWeekend, extraDailyCents: extraDailyCents}
}

func NewDateRangeRule(extraDailyCents int64, start, end time.Time) RateRule {
	return RateRule{kind: RuleDateRange, extraDailyCents: extraDailyCents, start: start, end: end}
}

// ReconstructRateRule rebuilds a persisted rule. An unknown kind yields an
// inert rule rather than an error so that stale rows never break pricing.
func ReconstructRateRule(kind string, extraDailyCents int64, start, end *time.Time) RateRule {
	r := RateRule{kind: RuleKind(kind), extraDailyCents: extraDailyCents}
	if start != nil {
		r.start = *start
	}
	if end != nil {
		r.end = *end
	}
	return r
}

// IsInert reports whether the rule can never apply: unknown kind,
// non-positive surcharge, or a date_range rule without a usable window.
func (r RateRule) IsInert() bool {
	if !r.kind.IsValid() {
		return true
	}
	if r.extraDailyCents <= 0 {
		return true
	}
	if r.kind == RuleDateRange {
		if r.start.IsZero() || r.end.IsZero() || !r.end.After(r.start) {
			return true
		}
	}
	return false
}

// AppliesTo decides whether the surcharge is charged for the given stay. The
// charge covers the whole stay, not just the matching days.
func (r RateRule) AppliesTo(period booking.DateRange) bool {
	if r.IsInert() {
		return false
	}
	switch r.kind {
	case RuleWeekend:
		return period.ContainsWeekend()
	case RuleDateRange:
		return booking.DateRangeOf(r.start, r.end).Overlaps(period)
	default:
		return false
	}
}

func (r RateRule) Kind() RuleKind         { return r.kind }
func (r RateRule) ExtraDailyCents() int64 { return r.extraDailyCents }
func (r RateRule) Start() time.Time       { return r.start }
func (r RateRule) End() time.Time         { return r.end }
