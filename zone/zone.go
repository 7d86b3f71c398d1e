// Package zone keeps logical regions of a document text stream.
package zone

import (
	"fmt"
	"slices"
)

// Kind of logical region.
// ENUM(main, header, footer, footnote, endnote, bookmark, object, other)
type Kind int

// ByteRange is half-open interval [Begin, End) over logical text stream.
type ByteRange struct {
	Begin int64
	End   int64
}

func (r ByteRange) Valid() bool {
	return 0 <= r.Begin && r.Begin < r.End
}

func (r ByteRange) Len() int64 {
	if !r.Valid() {
		return 0
	}
	return r.End - r.Begin
}

// Contains reports whether offset lies inside of the range. End is
// considered inside so that table limits equal to zone end are accepted.
func (r ByteRange) Contains(off int64) bool {
	return r.Begin <= off && off <= r.End
}

// Covers reports whether other is fully inside of r.
func (r ByteRange) Covers(other ByteRange) bool {
	return r.Begin <= other.Begin && other.End <= r.End
}

func (r ByteRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Begin, r.End)
}

// Key is symbolic zone identity.
type Key struct {
	Kind  Kind
	Index int
}

func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.Kind, k.Index)
}

// Zone is a logical region of text stream.
type Zone struct {
	Key   Key
	Range ByteRange

	claimed bool
}

func (z *Zone) Claimed() bool {
	return z.claimed
}

// Registry maps zone identities to their ranges. Zones are kept in order of
// registration.
type Registry struct {
	zones map[Key]*Zone
	order []Key
}

func NewRegistry() *Registry {
	return &Registry{zones: make(map[Key]*Zone)}
}

// Add registers new zone. Ranges must be valid, keys unique.
func (r *Registry) Add(key Key, rng ByteRange) (*Zone, error) {
	if !rng.Valid() {
		return nil, fmt.Errorf("zone %s has invalid range %s", key, rng)
	}
	if _, exists := r.zones[key]; exists {
		return nil, fmt.Errorf("zone %s already registered", key)
	}
	z := &Zone{Key: key, Range: rng}
	r.zones[key] = z
	r.order = append(r.order, key)
	return z, nil
}

func (r *Registry) Get(key Key) (*Zone, bool) {
	z, ok := r.zones[key]
	return z, ok
}

// Claim marks zone as sent to the sink. It returns false when zone is
// unknown or was claimed before.
func (r *Registry) Claim(key Key) bool {
	z, ok := r.zones[key]
	if !ok || z.claimed {
		return false
	}
	z.claimed = true
	return true
}

func (r *Registry) Claimed(key Key) bool {
	z, ok := r.zones[key]
	return ok && z.claimed
}

// Keys returns all registered keys in registration order.
func (r *Registry) Keys() []Key {
	return slices.Clone(r.order)
}

// ByKind returns keys of zones of requested kind in index order.
func (r *Registry) ByKind(kind Kind) []Key {
	var keys []Key
	for _, k := range r.order {
		if k.Kind == kind {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b Key) int { return a.Index - b.Index })
	return keys
}

// Unclaimed returns keys of zones never sent to the sink, in registration
// order.
func (r *Registry) Unclaimed() []Key {
	var keys []Key
	for _, k := range r.order {
		if !r.zones[k].claimed {
			keys = append(keys, k)
		}
	}
	return keys
}

func (r *Registry) Len() int {
	return len(r.order)
}
