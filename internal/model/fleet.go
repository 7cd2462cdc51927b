package model

import "sort"

// Phase records which selection phase picked a vessel.
// Keep these values stable; they are intended for CSV output.
type Phase string

const (
	PhaseSeed Phase = "SEED"
	PhaseFill Phase = "FILL"
)

// Selection is one row of the ordered selection log: which vessel was picked,
// by which phase, at which rank, and why. The log is the audit trail for the
// greedy selector; exact-solver fleets carry no log.
type Selection struct {
	VesselID int64
	Phase    Phase
	Rank     int
	Reason   string
}

// Fleet is a set of vessel ids chosen from one scenario's table. Fleets are
// never mutated after creation; re-runs produce new Fleets.
type Fleet struct {
	IDs []int64
}

// NewFleet builds a fleet from ids, deduplicating and sorting ascending so
// that identical selections compare equal regardless of discovery order.
func NewFleet(ids []int64) Fleet {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return Fleet{IDs: out}
}

// Size returns the number of vessels in the fleet.
func (f Fleet) Size() int { return len(f.IDs) }

// Contains reports whether the fleet includes the vessel id.
func (f Fleet) Contains(id int64) bool {
	i := sort.Search(len(f.IDs), func(i int) bool { return f.IDs[i] >= id })
	return i < len(f.IDs) && f.IDs[i] == id
}
