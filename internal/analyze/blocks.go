package analyze

import "sort"

// BlockSet is a set of physical block identifiers within one relation.
type BlockSet map[int64]struct{}

// NewBlockSet returns a set holding ids.
func NewBlockSet(ids ...int64) BlockSet {
	s := make(BlockSet, len(ids))
	s.Add(ids...)
	return s
}

// Add inserts ids into the set.
func (s BlockSet) Add(ids ...int64) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Union folds other into s.
func (s BlockSet) Union(other BlockSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Contains reports membership.
func (s BlockSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Len returns the set size.
func (s BlockSet) Len() int { return len(s) }

// Sorted returns the identifiers in ascending order.
func (s BlockSet) Sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BlockAccessMap maps relation names (never aliases) to the blocks the
// analyzed query touches in them. Merging partial maps for the same
// relation takes the set union.
type BlockAccessMap map[string]BlockSet

// Add unions ids into relation's set.
func (m BlockAccessMap) Add(relation string, ids ...int64) {
	s, ok := m[relation]
	if !ok {
		s = make(BlockSet, len(ids))
		m[relation] = s
	}
	s.Add(ids...)
}

// Merge folds other into m, relation by relation, by set union.
func (m BlockAccessMap) Merge(other BlockAccessMap) {
	for rel, blocks := range other {
		s, ok := m[rel]
		if !ok {
			s = make(BlockSet, len(blocks))
			m[rel] = s
		}
		s.Union(blocks)
	}
}

// Total returns the number of blocks across all relations.
func (m BlockAccessMap) Total() int {
	n := 0
	for _, s := range m {
		n += len(s)
	}
	return n
}

// Relations returns the relation names in sorted order.
func (m BlockAccessMap) Relations() []string {
	out := make([]string, 0, len(m))
	for rel := range m {
		out = append(out, rel)
	}
	sort.Strings(out)
	return out
}
