package booking

// Span is the slice of an existing booking that matters for capacity: its date
// range and status. Reads are performed by the persistence layer; the
// calculation itself is pure.
type Span struct {
	Range  DateRange
	Status Status
}

// AvailableUnits computes how many units of a vehicle remain free for the
// requested range. Each overlapping capacity-counting booking consumes one
// unit; the result is floored at zero.
func AvailableUnits(totalUnits int, requested DateRange, existing []Span) int {
	if totalUnits <= 0 {
		return 0
	}

	booked := 0
	for _, span := range existing {
		if !span.Status.CountsAgainstCapacity() {
			continue
		}
		if span.Range.Overlaps(requested) {
			booked++
		}
	}

	free := totalUnits - booked
	if free < 0 {
		return 0
	}
	return free
}
