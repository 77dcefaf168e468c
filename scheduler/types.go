package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/relaforg/fly-in/mapgraph"
)

// ErrGraphNil is returned by Run when g is nil.
var ErrGraphNil = errors.New("scheduler: graph is nil")

// ErrUnreachableGoal is returned by Run when the candidate table shows no
// route from the start hub — the UnreachableGoal error kind of spec §7.
// Run never advances a single turn in this case.
var ErrUnreachableGoal = errors.New("scheduler: start hub has no route to goal")

// ErrInternalInvariant wraps a diagnostic for a condition the scheduler
// treats as a fatal bug per spec §7 (InternalInvariantBroken): a drone
// lookup failing mid-schedule, or a committed move's connection not
// resolving. Not expected to fire against a validated graph and candidate
// table.
type ErrInternalInvariant struct {
	Diagnostic string
}

func (e *ErrInternalInvariant) Error() string {
	return fmt.Sprintf("scheduler: internal invariant broken: %s", e.Diagnostic)
}

func internalErr(format string, args ...interface{}) error {
	return &ErrInternalInvariant{Diagnostic: fmt.Sprintf(format, args...)}
}

// State maps every location name (hub or connection) to the drones
// occupying it at one turn boundary. Drone values, not pointers — copying
// a Drone by value is a complete deep copy since it holds no pointers or
// slices, so a State snapshot can never be corrupted by later mutation.
type State map[string][]mapgraph.Drone

// History is the ordered sequence of States from the initial configuration
// (History[0], all drones at start) through the terminal configuration
// (all drones at goal). History is append-only: Run never mutates an
// entry once appended.
type History []State

// Moves returns, for state transition History[turn-1] -> History[turn],
// every drone whose location changed, as (droneID, newLocation) pairs in
// drone-ID order. turn must be in [1, len(h)-1]. This is the diff
// package logline serializes one line from; it is exported so tests and
// alternate renderers can share one diffing routine instead of each
// re-deriving it from two raw State maps.
func (h History) Moves(turn int) []Move {
	if turn <= 0 || turn >= len(h) {
		return nil
	}

	prevLoc := make(map[string]string, len(h[turn-1]))
	for loc, drones := range h[turn-1] {
		for _, d := range drones {
			prevLoc[d.ID] = loc
		}
	}

	var moves []Move
	for loc, drones := range h[turn] {
		for _, d := range drones {
			if prevLoc[d.ID] != loc {
				moves = append(moves, Move{DroneID: d.ID, NewLocation: loc})
			}
		}
	}
	sort.Slice(moves, func(i, j int) bool {
		return droneOrdinal(moves[i].DroneID) < droneOrdinal(moves[j].DroneID)
	})

	return moves
}

// Move records that a drone arrived at NewLocation during one turn.
type Move struct {
	DroneID     string
	NewLocation string
}

// droneOrdinal extracts N from a drone ID of the form "D<N>" for ordering;
// IDs that don't parse sort after all that do; their order among
// themselves is not defined.
func droneOrdinal(id string) int {
	if len(id) < 2 {
		return 1<<31 - 1
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 1<<31 - 1
	}

	return n
}
