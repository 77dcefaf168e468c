package zone

import "errors"

// ErrUnknownZoneType is returned by Cost for a Type outside the four
// recognized values. A validated mapgraph.Graph never produces one.
var ErrUnknownZoneType = errors.New("zone: unknown zone type")

// Type identifies a hub's travel-cost policy.
type Type string

// Recognized zone types.
const (
	Normal     Type = "normal"
	Priority   Type = "priority"
	Restricted Type = "restricted"
	Blocked    Type = "blocked"
)

// blockedCost is the sentinel step cost returned by Cost for a Blocked zone.
// Any non-negative value is a traversable cost in turns.
const blockedCost = -1

// Cost returns the number of turns required to step onto a hub of zone
// type t: 1 for Normal/Priority, 2 for Restricted, -1 (impassable) for
// Blocked. Returns ErrUnknownZoneType for any other value.
func Cost(t Type) (int, error) {
	switch t {
	case Normal, Priority:
		return 1, nil
	case Restricted:
		return 2, nil
	case Blocked:
		return blockedCost, nil
	default:
		return 0, ErrUnknownZoneType
	}
}

// Passable reports whether a hub of zone type t can ever be entered.
func Passable(t Type) bool {
	cost, err := Cost(t)

	return err == nil && cost >= 0
}

// PriorityFirst reports whether a has priority tiebreak precedence over b
// when both are candidates of equal remaining cost, per the reverse-cost
// BFS mapper's sort key.
func PriorityFirst(a, b Type) bool {
	return a == Priority && b != Priority
}
