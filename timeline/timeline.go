// Package timeline turns raw offset to record tables into ordered per zone
// sequences of property changes.
package timeline

import (
	"fmt"
	"slices"
	"strings"

	"ldx/zone"
)

// Kind of property record. Declaration order defines ordering of events which
// share an offset: markers arrive before formatting they annotate.
// ENUM(marker, paragraph, font)
type Kind int

// DefaultID refers to default record of any kind.
const DefaultID = -1

// Record is a decoded property with the range of text it applies to.
type Record struct {
	Kind     Kind
	ID       int
	Validity zone.ByteRange
}

// Event is a point where active record of Kind changes.
type Event struct {
	Offset int64
	Kind   Kind
	ID     int
}

func (e Event) String() string {
	return fmt.Sprintf("%d:%s:%d", e.Offset, e.Kind, e.ID)
}

func compareEvents(a, b Event) int {
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return int(a.Kind) - int(b.Kind)
}

// Timeline is ordered sequence of events for a zone. Events are ordered by
// offset and then by kind, no two events of the same kind share an offset.
type Timeline struct {
	rng    zone.ByteRange
	events []Event
}

// New builds timeline from arbitrary events. Events are stable sorted, when
// several events of the same kind share an offset the first one wins.
func New(rng zone.ByteRange, events ...Event) Timeline {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, compareEvents)
	res := Timeline{rng: rng, events: make([]Event, 0, len(sorted))}
	for _, e := range sorted {
		if n := len(res.events); n > 0 && compareEvents(res.events[n-1], e) == 0 {
			res.events[n-1] = pick(res.events[n-1], e)
			continue
		}
		res.events = append(res.events, e)
	}
	return res
}

// pick resolves collision of two events of the same kind at the same offset.
// First one wins unless it is a default marker: those only fill gaps between
// real markers and never hide one.
func pick(first, second Event) Event {
	if first.Kind == KindMarker && first.ID == DefaultID {
		return second
	}
	return first
}

// Fallback returns timeline where single default record covers whole zone.
func Fallback(kind Kind, rng zone.ByteRange) Timeline {
	return Timeline{rng: rng, events: []Event{{Offset: rng.Begin, Kind: kind, ID: DefaultID}}}
}

func (t Timeline) Range() zone.ByteRange {
	return t.rng
}

func (t Timeline) Events() []Event {
	return slices.Clone(t.events)
}

func (t Timeline) Len() int {
	return len(t.events)
}

// Equal compares event sequences and ranges.
func (t Timeline) Equal(other Timeline) bool {
	return t.rng == other.rng && slices.Equal(t.events, other.events)
}

// At returns id of record of kind active at offset.
func (t Timeline) At(off int64, kind Kind) int {
	id := DefaultID
	for _, e := range t.events {
		if e.Offset > off {
			break
		}
		if e.Kind == kind {
			id = e.ID
		}
	}
	return id
}

// Records returns validity ranges of records of kind in order. For font and
// paragraph kinds produced by FromTable they cover timeline range exactly.
func (t Timeline) Records(kind Kind) []Record {
	var (
		recs []Record
		cur  *Record
	)
	for _, e := range t.events {
		if e.Kind != kind {
			continue
		}
		if cur != nil {
			cur.Validity.End = e.Offset
			if cur.Validity.Valid() {
				recs = append(recs, *cur)
			}
		}
		cur = &Record{Kind: kind, ID: e.ID, Validity: zone.ByteRange{Begin: e.Offset}}
	}
	if cur != nil {
		cur.Validity.End = t.rng.End
		if cur.Validity.Valid() {
			recs = append(recs, *cur)
		}
	}
	return recs
}

func (t Timeline) String() string {
	var buf strings.Builder
	buf.WriteString(t.rng.String())
	for _, e := range t.events {
		buf.WriteByte(' ')
		buf.WriteString(e.String())
	}
	return buf.String()
}

// Merge combines two timelines in O(n+m). When both have event of the same
// kind at the same offset the one from a is kept unless it is a default
// marker, so merging is associative.
func Merge(a, b Timeline) Timeline {
	res := Timeline{
		rng:    union(a.rng, b.rng),
		events: make([]Event, 0, len(a.events)+len(b.events)),
	}
	i, j := 0, 0
	for i < len(a.events) && j < len(b.events) {
		switch c := compareEvents(a.events[i], b.events[j]); {
		case c < 0:
			res.events = append(res.events, a.events[i])
			i++
		case c > 0:
			res.events = append(res.events, b.events[j])
			j++
		default:
			res.events = append(res.events, pick(a.events[i], b.events[j]))
			i++
			j++
		}
	}
	res.events = append(res.events, a.events[i:]...)
	res.events = append(res.events, b.events[j:]...)
	return res
}

// MergeAll folds timelines left to right.
func MergeAll(tls ...Timeline) Timeline {
	var res Timeline
	for _, t := range tls {
		res = Merge(res, t)
	}
	return res
}

func union(a, b zone.ByteRange) zone.ByteRange {
	switch {
	case !a.Valid():
		return b
	case !b.Valid():
		return a
	}
	return zone.ByteRange{Begin: min(a.Begin, b.Begin), End: max(a.End, b.End)}
}
